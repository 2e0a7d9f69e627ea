package sir

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/dd0wney/episim/pkg/algorithms"
	"github.com/dd0wney/episim/pkg/graph"
)

// AdaptiveParams extends the epidemic parameters with the two behavioral
// rules of the adaptive model: fear-based edge cutting and pod-forming
// triadic closure.
type AdaptiveParams struct {
	Params `yaml:",inline"`

	// Alpha is the per-step probability that a susceptible node cuts an
	// edge to an infected neighbor.
	Alpha float64 `yaml:"alpha"`

	// Mu is the per-step probability that a susceptible node closes an
	// open triangle with a susceptible friend-of-friend.
	Mu float64 `yaml:"mu"`
}

// Validate checks all four probabilities are in [0,1].
func (p AdaptiveParams) Validate() error {
	if err := p.Params.Validate(); err != nil {
		return err
	}
	if p.Alpha < 0 || p.Alpha > 1 {
		return fmt.Errorf("%w: alpha must be in [0,1], got %g", ErrInvalidParameter, p.Alpha)
	}
	if p.Mu < 0 || p.Mu > 1 {
		return fmt.Errorf("%w: mu must be in [0,1], got %g", ErrInvalidParameter, p.Mu)
	}
	return nil
}

// NetworkRecord tracks topology metrics alongside one adaptive step,
// since the adaptive rules rewire the network while the epidemic runs.
type NetworkRecord struct {
	T          int     `json:"t"`
	AvgDegree  float64 `json:"avg_degree"`
	Clustering float64 `json:"clustering"`
	Edges      int     `json:"edges"`
	Components int     `json:"components"`
}

// AdaptiveResult bundles the epidemic trajectory with the co-evolving
// network series (empty unless tracking was requested).
type AdaptiveResult struct {
	Epidemic Trajectory
	Network  []NetworkRecord
}

// closureSampleLimit bounds how many susceptible nodes are probed for
// triadic closure on steps where no edge was cut.
const closureSampleLimit = 50

// AdaptiveSimulation couples the SIR process with network co-evolution:
// before each spread step, susceptible nodes cut edges to infected
// neighbors with probability Alpha, and susceptible nodes touched by
// cutting close open S-S-S triangles with probability Mu. The input graph
// is cloned at construction since the adaptive rules mutate it.
type AdaptiveSimulation struct {
	*Simulation
	g      *graph.Graph
	params AdaptiveParams
}

// NewAdaptive prepares an adaptive simulation over a private clone of g.
func NewAdaptive(g *graph.Graph, params AdaptiveParams, seeds []int, rng *rand.Rand) (*AdaptiveSimulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	clone := g.Clone()
	base, err := New(clone, params.Params, seeds, rng)
	if err != nil {
		return nil, err
	}
	return &AdaptiveSimulation{Simulation: base, g: clone, params: params}, nil
}

// Graph exposes the evolving network, mainly for metric tracking.
func (a *AdaptiveSimulation) Graph() *graph.Graph { return a.g }

// AdaptiveStep applies the two behavioral rules and returns how many
// edges were cut and added. Spread is not part of this step; callers run
// it via Step, adaptation first so isolation gets its head start.
func (a *AdaptiveSimulation) AdaptiveStep() (cut, added int) {
	// Rule 1: cut S-I edges. Edges() is deterministically ordered, so a
	// seeded run consumes the stream identically every time.
	cutEdges := make([]graph.Edge, 0)
	for _, e := range a.g.Edges() {
		su, sv := a.state[e.U], a.state[e.V]
		crossing := (su == Susceptible && sv == Infected) || (su == Infected && sv == Susceptible)
		if crossing && a.rng.Float64() < a.params.Alpha {
			cutEdges = append(cutEdges, e)
		}
	}
	for _, e := range cutEdges {
		a.g.RemoveEdge(e.U, e.V)
	}

	// Rule 2: triadic closure for susceptible nodes disturbed by cutting;
	// when nothing was cut, probe a bounded random sample instead.
	candidates := make(map[int]struct{})
	for _, e := range cutEdges {
		if a.state[e.U] == Susceptible {
			candidates[e.U] = struct{}{}
		}
		if a.state[e.V] == Susceptible {
			candidates[e.V] = struct{}{}
		}
	}
	if len(candidates) == 0 {
		susceptible := make([]int, 0)
		for node, st := range a.state {
			if st == Susceptible {
				susceptible = append(susceptible, node)
			}
		}
		if len(susceptible) > 0 {
			sample := closureSampleLimit
			if sample > len(susceptible) {
				sample = len(susceptible)
			}
			for _, idx := range a.rng.Perm(len(susceptible))[:sample] {
				candidates[susceptible[idx]] = struct{}{}
			}
		}
	}

	probe := make([]int, 0, len(candidates))
	for node := range candidates {
		probe = append(probe, node)
	}
	sort.Ints(probe)

	newEdges := make([]graph.Edge, 0)
	for _, u := range probe {
		if edge, ok := a.closureFor(u); ok {
			newEdges = append(newEdges, edge)
		}
	}
	for _, e := range newEdges {
		if ok, _ := a.g.AddEdge(e.U, e.V); ok {
			added++
		}
	}
	return len(cutEdges), added
}

// closureFor looks for one open triangle u-v-w with all three susceptible
// and u,w unconnected, closing it with probability Mu. At most one edge
// per probed node keeps pod formation from exploding.
func (a *AdaptiveSimulation) closureFor(u int) (graph.Edge, bool) {
	for _, v := range a.g.Neighbors(u) {
		if a.state[v] != Susceptible {
			continue
		}
		for _, w := range a.g.Neighbors(v) {
			if w == u || a.state[w] != Susceptible || a.g.HasEdge(u, w) {
				continue
			}
			if a.rng.Float64() < a.params.Mu {
				if u < w {
					return graph.Edge{U: u, V: w}, true
				}
				return graph.Edge{U: w, V: u}, true
			}
		}
	}
	return graph.Edge{}, false
}

// RunAdaptive records the epidemic (and optionally the network series),
// interleaving adaptation before spread each step, until the infected
// count reaches zero or maxSteps.
func (a *AdaptiveSimulation) RunAdaptive(maxSteps int, trackNetwork bool) AdaptiveResult {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	res := AdaptiveResult{Epidemic: make(Trajectory, 0, 64)}
	t := 0
	for {
		res.Epidemic = append(res.Epidemic, Record{T: t, S: a.susCount, I: a.infCount, R: a.recCount})
		if trackNetwork {
			res.Network = append(res.Network, NetworkRecord{
				T:          t,
				AvgDegree:  a.g.AvgDegree(),
				Clustering: algorithms.AverageClustering(a.g),
				Edges:      a.g.NumEdges(),
				Components: len(algorithms.ConnectedComponents(a.g)),
			})
		}
		if a.infCount == 0 || t >= maxSteps {
			return res
		}
		a.AdaptiveStep()
		a.Step()
		t++
	}
}
