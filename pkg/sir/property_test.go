package sir

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/episim/pkg/generate"
)

// TestEpidemicInvariants checks the state-machine invariants across
// random parameter combinations on random networks.
func TestEpidemicInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	runOne := func(seed int64, beta, gamma float64) Trajectory {
		rng := rand.New(rand.NewSource(seed))
		g, err := generate.Random(80, 0.08, rng)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		traj, err := Simulate(g, Params{Beta: beta, Gamma: gamma}, []int{0}, seed)
		if err != nil {
			t.Fatalf("simulate failed: %v", err)
		}
		return traj
	}

	properties.Property("compartments always partition the node set", prop.ForAll(
		func(seed int64, beta, gamma float64) bool {
			for _, rec := range runOne(seed, beta, gamma) {
				if rec.S+rec.I+rec.R != 80 {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, 1<<30),
		gen.Float64Range(0, 1),
		gen.Float64Range(0.05, 1),
	))

	properties.Property("S never rises and R never falls", prop.ForAll(
		func(seed int64, beta, gamma float64) bool {
			traj := runOne(seed, beta, gamma)
			for i := 1; i < len(traj); i++ {
				if traj[i].S > traj[i-1].S || traj[i].R < traj[i-1].R {
					return false
				}
			}
			return true
		},
		gen.Int64Range(1, 1<<30),
		gen.Float64Range(0, 1),
		gen.Float64Range(0.05, 1),
	))

	properties.Property("runs with gamma > 0 terminate with zero infected", prop.ForAll(
		func(seed int64, beta, gamma float64) bool {
			traj := runOne(seed, beta, gamma)
			return traj[len(traj)-1].I == 0
		},
		gen.Int64Range(1, 1<<30),
		gen.Float64Range(0, 1),
		gen.Float64Range(0.05, 1),
	))

	properties.TestingRun(t)
}
