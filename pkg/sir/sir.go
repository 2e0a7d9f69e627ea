// Package sir implements a discrete-time stochastic
// Susceptible-Infected-Recovered epidemic process over an undirected
// graph, with synchronous state updates and a seeded random source so
// trajectories are exactly reproducible.
package sir

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/dd0wney/episim/pkg/graph"
)

// ErrInvalidParameter is returned for out-of-range epidemic parameters or
// an invalid initial infected set.
var ErrInvalidParameter = errors.New("invalid simulation parameter")

// State is the epidemic compartment of one node. Transitions are
// one-directional: S -> I -> R, and R is terminal.
type State byte

const (
	Susceptible State = iota
	Infected
	Recovered
)

func (s State) String() string {
	switch s {
	case Susceptible:
		return "S"
	case Infected:
		return "I"
	case Recovered:
		return "R"
	}
	return fmt.Sprintf("State(%d)", byte(s))
}

// Params holds the per-step transition probabilities.
type Params struct {
	// Beta is the per-contact transmission probability: each infected
	// neighbor is an independent chance per step, so a susceptible node
	// with k infected neighbors stays susceptible with (1-Beta)^k.
	Beta float64 `yaml:"beta"`

	// Gamma is the per-step recovery probability of an infected node.
	Gamma float64 `yaml:"gamma"`
}

// Validate checks both probabilities are in [0,1].
func (p Params) Validate() error {
	if p.Beta < 0 || p.Beta > 1 {
		return fmt.Errorf("%w: beta must be in [0,1], got %g", ErrInvalidParameter, p.Beta)
	}
	if p.Gamma < 0 || p.Gamma > 1 {
		return fmt.Errorf("%w: gamma must be in [0,1], got %g", ErrInvalidParameter, p.Gamma)
	}
	return nil
}

// Record is one step of a trajectory. S+I+R always equals the node count.
type Record struct {
	T int `json:"t"`
	S int `json:"s"`
	I int `json:"i"`
	R int `json:"r"`
}

// Trajectory is the per-step state-count series of one simulation run,
// from t=0 through the first step with zero infected.
type Trajectory []Record

// FinalSize returns R at termination: the total number of nodes the
// outbreak ever reached.
func (tr Trajectory) FinalSize() int {
	if len(tr) == 0 {
		return 0
	}
	return tr[len(tr)-1].R
}

// PeakInfected returns the maximum simultaneous infected count.
func (tr Trajectory) PeakInfected() int {
	peak := 0
	for _, rec := range tr {
		if rec.I > peak {
			peak = rec.I
		}
	}
	return peak
}

// Duration returns the number of recorded steps.
func (tr Trajectory) Duration() int { return len(tr) }

// Simulation is one SIR process over a fixed graph. The graph is read,
// never written; many simulations can share one graph concurrently as
// long as each owns its own Simulation and random source.
type Simulation struct {
	g      *graph.Graph
	params Params
	rng    *rand.Rand

	state    []State
	susCount int
	infCount int
	recCount int
}

// New prepares a simulation with the given initially infected nodes and
// everyone else susceptible. The seed set must be a non-empty set of
// distinct, in-range node ids.
func New(g *graph.Graph, params Params, seeds []int, rng *rand.Rand) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("%w: initial infected set is empty", ErrInvalidParameter)
	}
	if len(seeds) > g.NumNodes() {
		return nil, fmt.Errorf("%w: %d seeds exceed %d nodes", ErrInvalidParameter, len(seeds), g.NumNodes())
	}

	sim := &Simulation{
		g:        g,
		params:   params,
		rng:      rng,
		state:    make([]State, g.NumNodes()),
		susCount: g.NumNodes(),
	}
	for _, id := range seeds {
		if id < 0 || id >= g.NumNodes() {
			return nil, fmt.Errorf("%w: seed node %d out of range", ErrInvalidParameter, id)
		}
		if sim.state[id] == Infected {
			return nil, fmt.Errorf("%w: duplicate seed node %d", ErrInvalidParameter, id)
		}
		sim.state[id] = Infected
		sim.susCount--
		sim.infCount++
	}
	return sim, nil
}

// State returns the compartment of one node.
func (s *Simulation) State(node int) State { return s.state[node] }

// Counts returns the current (S, I, R) totals.
func (s *Simulation) Counts() (int, int, int) {
	return s.susCount, s.infCount, s.recCount
}

// Step advances the process one time step with synchronous updates: every
// transition is decided from the state at the start of the step, then all
// are applied together. A node recovering this step still counted as a
// transmission source this step.
//
// Infection draws use the closed form: a susceptible node with k infected
// neighbors becomes infected with 1-(1-beta)^k, one uniform draw per
// exposed node in node-id order. This is distribution-identical to an
// independent Bernoulli per infected edge and keeps the consumed stream
// length independent of adjacency iteration order, which is what makes
// seeded runs byte-for-byte reproducible.
func (s *Simulation) Step() (infections, recoveries int) {
	n := s.g.NumNodes()
	toInfect := make([]int, 0)
	toRecover := make([]int, 0)

	for node := 0; node < n; node++ {
		if s.state[node] != Susceptible {
			continue
		}
		exposures := 0
		s.g.EachNeighbor(node, func(v int) {
			if s.state[v] == Infected {
				exposures++
			}
		})
		if exposures == 0 {
			continue
		}
		p := 1 - math.Pow(1-s.params.Beta, float64(exposures))
		if s.rng.Float64() < p {
			toInfect = append(toInfect, node)
		}
	}

	for node := 0; node < n; node++ {
		if s.state[node] != Infected {
			continue
		}
		if s.rng.Float64() < s.params.Gamma {
			toRecover = append(toRecover, node)
		}
	}

	for _, node := range toInfect {
		s.state[node] = Infected
	}
	for _, node := range toRecover {
		s.state[node] = Recovered
	}
	s.susCount -= len(toInfect)
	s.infCount += len(toInfect) - len(toRecover)
	s.recCount += len(toRecover)
	return len(toInfect), len(toRecover)
}

// DefaultMaxSteps caps a run when the caller does not choose a limit. It
// only matters for gamma=0, where infected nodes never drain; for any
// gamma > 0 the process terminates on its own because R is absorbing.
const DefaultMaxSteps = 1000

// Run records the state at t=0 and steps until no infected nodes remain
// or maxSteps is reached. maxSteps <= 0 selects DefaultMaxSteps.
func (s *Simulation) Run(maxSteps int) Trajectory {
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}
	traj := make(Trajectory, 0, 64)
	t := 0
	for {
		traj = append(traj, Record{T: t, S: s.susCount, I: s.infCount, R: s.recCount})
		if s.infCount == 0 || t >= maxSteps {
			return traj
		}
		s.Step()
		t++
	}
}

// RandomSeedNode picks a uniform patient zero.
func RandomSeedNode(g *graph.Graph, rng *rand.Rand) int {
	return rng.Intn(g.NumNodes())
}

// Simulate is the one-call form: seed the source, run to termination.
// Identical (graph, params, seeds, seed) inputs yield identical
// trajectories.
func Simulate(g *graph.Graph, params Params, seeds []int, seed int64) (Trajectory, error) {
	sim, err := New(g, params, seeds, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return sim.Run(0), nil
}
