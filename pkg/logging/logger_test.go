package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, line)
	}
	return m
}

func TestJSONLogger_Basic(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, InfoLevel)

	log.Info("trial batch complete", Trials(100), Float64("final_size_mean", 612.4))

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	if m["level"] != "INFO" || m["msg"] != "trial batch complete" {
		t.Errorf("unexpected entry: %v", m)
	}
	fields := m["fields"].(map[string]any)
	if fields["trials"] != float64(100) {
		t.Errorf("expected trials field, got %v", fields)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, WarnLevel)

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly 1 line, got %d", len(lines))
	}
	if m := decodeLine(t, lines[0]); m["msg"] != "shown" {
		t.Errorf("unexpected entry: %v", m)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSONLogger(&buf, InfoLevel)

	child := log.With(Topology("BA(N=1000,m=5)"))
	child.Info("trial finished", Trial(3))

	m := decodeLine(t, strings.TrimSpace(buf.String()))
	fields := m["fields"].(map[string]any)
	if fields["topology"] != "BA(N=1000,m=5)" || fields["trial"] != float64(3) {
		t.Errorf("child fields missing: %v", fields)
	}

	// Parent must not inherit the child's fields.
	buf.Reset()
	log.Info("plain")
	if m := decodeLine(t, strings.TrimSpace(buf.String())); m["fields"] != nil {
		t.Errorf("parent logger leaked fields: %v", m)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warning": WarnLevel,
		"ERROR":   ErrorLevel,
		"bogus":   InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestErrorField(t *testing.T) {
	if f := Error(nil); f.Value != nil {
		t.Errorf("nil error must produce nil value, got %v", f.Value)
	}
}
