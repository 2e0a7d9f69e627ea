package generate

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/dd0wney/episim/pkg/algorithms"
)

func TestRandom_DegenerateCases(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	empty, err := Random(50, 0, rng)
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if empty.NumEdges() != 0 {
		t.Errorf("p=0 must yield the empty graph, got %d edges", empty.NumEdges())
	}

	complete, err := Random(50, 1, rng)
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if want := 50 * 49 / 2; complete.NumEdges() != want {
		t.Errorf("p=1 must yield the complete graph: expected %d edges, got %d", want, complete.NumEdges())
	}
}

func TestRandom_InvalidParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := Random(0, 0.5, rng); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for n=0, got %v", err)
	}
	if _, err := Random(10, -0.1, rng); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for p<0, got %v", err)
	}
	if _, err := Random(10, 1.1, rng); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for p>1, got %v", err)
	}
}

func TestRandom_ExpectedEdgeCount(t *testing.T) {
	const (
		n     = 200
		p     = 0.05
		runs  = 30
		pairs = n * (n - 1) / 2
	)

	total := 0
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < runs; i++ {
		g, err := Random(n, p, rng)
		if err != nil {
			t.Fatalf("Random failed: %v", err)
		}
		total += g.NumEdges()
	}

	mean := float64(total) / runs
	expected := p * pairs
	// Binomial std for one graph is ~sqrt(pairs*p*(1-p)) ~= 30.7; the
	// mean of 30 runs should sit well within 4 sigma of the mean.
	sigma := math.Sqrt(pairs*p*(1-p)) / math.Sqrt(runs)
	if math.Abs(mean-expected) > 4*sigma {
		t.Errorf("mean edge count %g too far from expectation %g (sigma %g)", mean, expected, sigma)
	}
}

func TestRandom_Reproducible(t *testing.T) {
	a, err := Random(100, 0.1, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	b, err := Random(100, 0.1, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Random failed: %v", err)
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

func TestRandomByAvgDegree(t *testing.T) {
	g, err := RandomByAvgDegree(500, 8, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("RandomByAvgDegree failed: %v", err)
	}
	if avg := g.AvgDegree(); math.Abs(avg-8) > 1.5 {
		t.Errorf("average degree %g too far from target 8", avg)
	}

	if _, err := RandomByAvgDegree(10, 20, rand.New(rand.NewSource(3))); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for <k> > n-1, got %v", err)
	}
}

// Supercritical ER (<k> ~ 9.9) must have a giant component spanning
// nearly everything; subcritical (<k> ~ 0.5) must stay fragmented.
func TestRandom_GiantComponentPhases(t *testing.T) {
	super, err := Random(100, 0.1, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if size := algorithms.GiantComponent(super).Size; size <= 90 {
		t.Errorf("supercritical giant component covers %d/100 nodes, expected > 90", size)
	}

	sub, err := Random(100, 0.005, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatalf("Random failed: %v", err)
	}
	if size := algorithms.GiantComponent(sub).Size; size >= 20 {
		t.Errorf("subcritical giant component covers %d/100 nodes, expected < 20", size)
	}
}

func TestGenerate_Dispatch(t *testing.T) {
	cases := []Config{
		{Topology: ErdosRenyi, N: 50, P: 0.1, Seed: 1},
		{Topology: WattsStrogatz, N: 50, K: 4, Rewire: 0.1, Seed: 1},
		{Topology: BarabasiAlbert, N: 50, M: 3, Seed: 1},
	}
	for _, cfg := range cases {
		g, err := Generate(cfg)
		if err != nil {
			t.Errorf("%s: Generate failed: %v", cfg.Label(), err)
			continue
		}
		if g.NumNodes() != 50 {
			t.Errorf("%s: expected 50 nodes, got %d", cfg.Label(), g.NumNodes())
		}
	}

	if _, err := Generate(Config{Topology: "ring", N: 10}); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for unknown topology, got %v", err)
	}
}
