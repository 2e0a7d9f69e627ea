package algorithms

import (
	"sort"

	"github.com/dd0wney/episim/pkg/graph"
)

// Component is one connected component; Nodes are sorted ascending.
type Component struct {
	Nodes []int
	Size  int
}

// ConnectedComponents finds every connected component via BFS over all
// nodes. Components appear in order of their minimum node id.
func ConnectedComponents(g *graph.Graph) []Component {
	n := g.NumNodes()
	visited := make([]bool, n)
	components := make([]Component, 0)

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		nodes := []int{start}
		visited[start] = true
		queue := []int{start}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			g.EachNeighbor(current, func(next int) {
				if !visited[next] {
					visited[next] = true
					nodes = append(nodes, next)
					queue = append(queue, next)
				}
			})
		}
		sort.Ints(nodes)
		components = append(components, Component{Nodes: nodes, Size: len(nodes)})
	}
	return components
}

// GiantComponent returns the largest connected component. Size ties break
// toward the component containing the lowest node id, which is the first
// one encountered since components are discovered in min-id order.
func GiantComponent(g *graph.Graph) Component {
	var giant Component
	for _, c := range ConnectedComponents(g) {
		if c.Size > giant.Size {
			giant = c
		}
	}
	return giant
}
