package logging

import "time"

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain field helpers.

func Topology(label string) Field { return String("topology", label) }

func Trial(i int) Field { return Int("trial", i) }

func Trials(n int) Field { return Int("trials", n) }

func Seed(s int64) Field { return Int64("seed", s) }

func Nodes(n int) Field { return Int("nodes", n) }

func Edges(n int) Field { return Int("edges", n) }

func Steps(n int) Field { return Int("steps", n) }

func Elapsed(d time.Duration) Field { return Duration("elapsed", d) }
