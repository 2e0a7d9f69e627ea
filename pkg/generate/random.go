package generate

import (
	"fmt"
	"math/rand"

	"github.com/dd0wney/episim/pkg/graph"
)

// Random builds an Erdős–Rényi G(N,p) graph: every one of the C(N,2)
// unordered node pairs is connected with independent probability p.
// p=0 yields the empty graph and p=1 the complete graph.
func Random(n int, p float64, rng *rand.Rand) (*graph.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidParameter, n)
	}
	if p < 0 || p > 1 {
		return nil, fmt.Errorf("%w: p must be in [0,1], got %g", ErrInvalidParameter, p)
	}

	g := graph.New(n)
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				g.AddEdge(u, v)
			}
		}
	}
	return g, nil
}

// RandomByAvgDegree builds G(N,p) with p derived from a target average
// degree, p = <k>/(N-1). Used to match <k> across topologies so epidemic
// curves compare like for like.
func RandomByAvgDegree(n int, avgDegree float64, rng *rand.Rand) (*graph.Graph, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: n must be >= 1, got %d", ErrInvalidParameter, n)
	}
	if n == 1 {
		if avgDegree != 0 {
			return nil, fmt.Errorf("%w: average degree must be 0 for a single node", ErrInvalidParameter)
		}
		return graph.New(1), nil
	}
	if avgDegree < 0 || avgDegree > float64(n-1) {
		return nil, fmt.Errorf("%w: average degree must be in [0,%d], got %g", ErrInvalidParameter, n-1, avgDegree)
	}
	return Random(n, avgDegree/float64(n-1), rng)
}
