package generate

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/episim/pkg/graph"
)

// SmallWorld builds a Watts-Strogatz graph: a ring lattice where each node
// is connected to its k/2 nearest neighbors on each side, followed by one
// rewiring pass with probability beta per lattice edge.
//
// Lattice edges are visited in a fixed order (increasing clockwise offset,
// then increasing node index) and each is considered for rewiring exactly
// once. A rewired edge (i,j) becomes (i,j') with j' drawn uniformly,
// resampling on j'==i or an existing neighbor of i, so node i keeps its
// degree. If i is already connected to every other node the edge is left
// in place. Total edge count is N*k/2 regardless of beta.
//
// beta=0 returns the exact ring lattice; beta=1 rewires every edge but is
// still not G(N,p): edge count and per-source degree structure survive.
func SmallWorld(n, k int, beta float64, rng *rand.Rand) (*graph.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidParameter, n)
	}
	if k < 0 || k%2 != 0 {
		return nil, fmt.Errorf("%w: k must be a non-negative even integer, got %d", ErrInvalidParameter, k)
	}
	if k >= n {
		return nil, fmt.Errorf("%w: k must be < n (k=%d, n=%d)", ErrInvalidParameter, k, n)
	}
	if beta < 0 || beta > 1 {
		return nil, fmt.Errorf("%w: beta must be in [0,1], got %g", ErrInvalidParameter, beta)
	}

	g := graph.New(n)

	// Ring lattice: each node to its k/2 clockwise neighbors. The
	// counter-clockwise half arrives symmetrically from the other endpoint.
	for off := 1; off <= k/2; off++ {
		for i := 0; i < n; i++ {
			g.AddEdge(i, (i+off)%n)
		}
	}

	if beta == 0 {
		return g, nil
	}

	// Rewire in the same deterministic order the lattice was laid down.
	for off := 1; off <= k/2; off++ {
		for i := 0; i < n; i++ {
			j := (i + off) % n
			if rng.Float64() >= beta {
				continue
			}
			if g.Degree(i) >= n-1 {
				// No free endpoint left for i.
				continue
			}
			var target int
			for {
				target = rng.Intn(n)
				if target != i && !g.HasEdge(i, target) {
					break
				}
			}
			g.RemoveEdge(i, j)
			g.AddEdge(i, target)
		}
	}
	return g, nil
}
