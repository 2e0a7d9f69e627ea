package generate

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/episim/pkg/graph"
)

// ScaleFree builds a Barabási-Albert graph of n nodes where each node
// added after the seed attaches m edges to distinct existing nodes chosen
// with probability proportional to their current degree.
//
// The seed network is a cycle of m0 = m+1 nodes (a single edge when
// m0 = 2), so every seed node has degree >= 1 before growth begins and the
// graph is connected by construction.
//
// Degree bookkeeping is live: the attachment distribution is updated after
// every individual edge, so the later draws of one new node already see
// its earlier targets' raised degrees. This is the variant that gives
// early nodes the stronger advantage; it is fixed here so degree-evolution
// runs reproduce exactly.
//
// Sampling uses the repeated-endpoints list: every node appears in the
// list once per incident edge end, so a uniform index is a degree-weighted
// draw in O(1). Duplicate targets are rejected and redrawn.
func ScaleFree(n, m int, rng *rand.Rand) (*graph.Graph, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: m must be >= 1, got %d", ErrInvalidParameter, m)
	}
	if m >= n {
		return nil, fmt.Errorf("%w: m must be < n (m=%d, n=%d)", ErrInvalidParameter, m, n)
	}

	m0 := m + 1
	g := graph.New(n)

	// endpoints holds one entry per edge end; len(endpoints) == 2*edges.
	endpoints := make([]int, 0, 2*(m0+m*(n-m0)))
	addEdge := func(u, v int) {
		if added, _ := g.AddEdge(u, v); added {
			endpoints = append(endpoints, u, v)
		}
	}

	// Seed cycle. For m0 == 2 this degenerates to the single edge 0-1.
	if m0 == 2 {
		addEdge(0, 1)
	} else {
		for i := 0; i < m0; i++ {
			addEdge(i, (i+1)%m0)
		}
	}

	targets := make(map[int]struct{}, m)
	for t := m0; t < n; t++ {
		for k := range targets {
			delete(targets, k)
		}
		for len(targets) < m {
			candidate := endpoints[rng.Intn(len(endpoints))]
			if candidate == t {
				// t is in the list once it has edges of its own.
				continue
			}
			if _, dup := targets[candidate]; dup {
				continue
			}
			targets[candidate] = struct{}{}
			// Live update: this edge weighs into the remaining draws.
			addEdge(t, candidate)
		}
	}
	return g, nil
}

// SeedSize returns the seed-network node count ScaleFree uses for a given
// m, exposed so edge-count expectations (m0_edges + m*(n-m0)) can be
// computed by callers and tests.
func SeedSize(m int) int { return m + 1 }

// SeedEdges returns the seed-network edge count for a given m.
func SeedEdges(m int) int {
	if m+1 == 2 {
		return 1
	}
	return m + 1
}
