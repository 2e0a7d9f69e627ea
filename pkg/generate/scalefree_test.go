package generate

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/dd0wney/episim/pkg/algorithms"
)

func TestScaleFree_EdgeCount(t *testing.T) {
	cases := []struct {
		n, m int
	}{
		{50, 1},
		{100, 3},
		{500, 5},
	}
	for _, tc := range cases {
		g, err := ScaleFree(tc.n, tc.m, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("ScaleFree(n=%d,m=%d) failed: %v", tc.n, tc.m, err)
		}
		m0 := SeedSize(tc.m)
		want := SeedEdges(tc.m) + tc.m*(tc.n-m0)
		if g.NumEdges() != want {
			t.Errorf("n=%d m=%d: expected exactly %d edges, got %d", tc.n, tc.m, want, g.NumEdges())
		}
	}
}

// Every new node attaches to the existing graph, so BA networks are
// connected by construction.
func TestScaleFree_Connected(t *testing.T) {
	g, err := ScaleFree(1000, 5, rand.New(rand.NewSource(4)))
	if err != nil {
		t.Fatalf("ScaleFree failed: %v", err)
	}
	if size := algorithms.GiantComponent(g).Size; size != 1000 {
		t.Errorf("expected giant component of 1000 nodes, got %d", size)
	}
}

func TestScaleFree_PowerLawTail(t *testing.T) {
	g, err := ScaleFree(2000, 3, rand.New(rand.NewSource(8)))
	if err != nil {
		t.Fatalf("ScaleFree failed: %v", err)
	}

	slope, err := algorithms.PowerLawSlope(g, 3)
	if err != nil {
		t.Fatalf("PowerLawSlope failed: %v", err)
	}
	if slope >= -1.5 || slope <= -4.0 {
		t.Errorf("log-log degree slope %g outside plausible scale-free range (-4.0, -1.5)", slope)
	}
}

func TestScaleFree_MinDegreeIsM(t *testing.T) {
	const m = 4
	g, err := ScaleFree(300, m, rand.New(rand.NewSource(6)))
	if err != nil {
		t.Fatalf("ScaleFree failed: %v", err)
	}
	// Seed nodes start on the ring with degree 2 and only gain from there.
	for i := 0; i < SeedSize(m); i++ {
		if g.Degree(i) < 2 {
			t.Errorf("seed node %d has degree %d < 2", i, g.Degree(i))
		}
	}
	// Growth nodes attach exactly m edges and only gain from there.
	for i := SeedSize(m); i < g.NumNodes(); i++ {
		if g.Degree(i) < m {
			t.Errorf("growth node %d has degree %d < m=%d", i, g.Degree(i), m)
		}
	}
}

func TestScaleFree_InvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := ScaleFree(10, 0, rng); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for m=0, got %v", err)
	}
	if _, err := ScaleFree(5, 5, rng); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for m>=n, got %v", err)
	}
}

func TestScaleFree_Reproducible(t *testing.T) {
	a, err := ScaleFree(200, 4, rand.New(rand.NewSource(12)))
	if err != nil {
		t.Fatalf("ScaleFree failed: %v", err)
	}
	b, err := ScaleFree(200, 4, rand.New(rand.NewSource(12)))
	if err != nil {
		t.Fatalf("ScaleFree failed: %v", err)
	}

	ea, eb := a.Edges(), b.Edges()
	if len(ea) != len(eb) {
		t.Fatalf("edge counts differ: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i] != eb[i] {
			t.Fatalf("edge %d differs: %v vs %v", i, ea[i], eb[i])
		}
	}
}
