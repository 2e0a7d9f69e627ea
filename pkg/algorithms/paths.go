package algorithms

import (
	"fmt"

	"github.com/dd0wney/episim/pkg/graph"
)

// BFSDistances returns the unweighted shortest-path distance from source
// to every node; unreachable nodes get -1.
func BFSDistances(g *graph.Graph, source int) ([]int, error) {
	n := g.NumNodes()
	if source < 0 || source >= n {
		return nil, fmt.Errorf("%w: source %d", graph.ErrNodeOutOfRange, source)
	}

	dist := make([]int, n)
	for i := range dist {
		dist[i] = -1
	}
	dist[source] = 0

	queue := make([]int, 0, n)
	queue = append(queue, source)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		g.EachNeighbor(current, func(next int) {
			if dist[next] == -1 {
				dist[next] = dist[current] + 1
				queue = append(queue, next)
			}
		})
	}
	return dist, nil
}

// PathLengthResult summarizes all-pairs shortest paths. Unreachable pairs
// are excluded from the average; their fraction is reported separately
// since it is itself a fragmentation diagnostic.
type PathLengthResult struct {
	Average             float64
	ReachablePairs      int
	UnreachableFraction float64
}

// AveragePathLength runs a BFS from every node and averages the distances
// over all mutually reachable ordered-as-unordered pairs. A graph with no
// reachable pair at all (including n < 2) has no defined value.
func AveragePathLength(g *graph.Graph) (PathLengthResult, error) {
	n := g.NumNodes()
	totalPairs := n * (n - 1) / 2
	if totalPairs == 0 {
		return PathLengthResult{}, fmt.Errorf("%w: average path length needs at least two nodes", ErrUndefinedMetric)
	}

	sum := 0
	reachable := 0
	for source := 0; source < n; source++ {
		dist, err := BFSDistances(g, source)
		if err != nil {
			return PathLengthResult{}, err
		}
		// Count each unordered pair once.
		for target := source + 1; target < n; target++ {
			if dist[target] > 0 {
				sum += dist[target]
				reachable++
			}
		}
	}

	if reachable == 0 {
		return PathLengthResult{
			UnreachableFraction: 1,
		}, fmt.Errorf("%w: no mutually reachable pairs", ErrUndefinedMetric)
	}
	return PathLengthResult{
		Average:             float64(sum) / float64(reachable),
		ReachablePairs:      reachable,
		UnreachableFraction: 1 - float64(reachable)/float64(totalPairs),
	}, nil
}
