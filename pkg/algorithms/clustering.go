package algorithms

import "github.com/dd0wney/episim/pkg/graph"

// ClusteringCoefficient returns the local clustering coefficient of one
// node: the fraction of its neighbor pairs that are themselves connected.
// Nodes with degree below 2 have no neighbor pairs and score 0.
func ClusteringCoefficient(g *graph.Graph, node int) float64 {
	neighbors := g.Neighbors(node)
	k := len(neighbors)
	if k < 2 {
		return 0
	}

	closed := 0
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			if g.HasEdge(neighbors[i], neighbors[j]) {
				closed++
			}
		}
	}
	return float64(closed) / float64(k*(k-1)/2)
}

// AverageClustering returns the mean local clustering coefficient over all
// nodes, 0 for an empty graph.
func AverageClustering(g *graph.Graph) float64 {
	n := g.NumNodes()
	if n == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += ClusteringCoefficient(g, i)
	}
	return sum / float64(n)
}
