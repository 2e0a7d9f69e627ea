package graph

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrNodeOutOfRange is returned when a node id is outside 0..N-1.
	ErrNodeOutOfRange = errors.New("node id out of range")

	// ErrSelfLoop is returned when an edge would connect a node to itself.
	ErrSelfLoop = errors.New("self-loops are not allowed")
)

// Graph is a simple undirected graph on a fixed set of nodes 0..N-1.
// Adjacency is stored as one neighbor set per node, so membership checks
// and degree queries are O(1). The neighbor relation is kept symmetric by
// every mutation: if j is a neighbor of i then i is a neighbor of j.
//
// Graphs are mutated only during generation. Simulators and metrics treat
// them as read-only, so a single Graph can back many concurrent trials.
type Graph struct {
	n   int
	adj []map[int]struct{}

	edgeCount int
}

// New creates a graph with n nodes and no edges.
func New(n int) *Graph {
	adj := make([]map[int]struct{}, n)
	for i := range adj {
		adj[i] = make(map[int]struct{})
	}
	return &Graph{n: n, adj: adj}
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int { return g.n }

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int { return g.edgeCount }

func (g *Graph) checkNode(id int) error {
	if id < 0 || id >= g.n {
		return fmt.Errorf("%w: %d (graph has %d nodes)", ErrNodeOutOfRange, id, g.n)
	}
	return nil
}

// AddEdge inserts the undirected edge (u,v). It reports whether the edge
// was actually inserted; adding an edge that already exists is a no-op.
func (g *Graph) AddEdge(u, v int) (bool, error) {
	if err := g.checkNode(u); err != nil {
		return false, err
	}
	if err := g.checkNode(v); err != nil {
		return false, err
	}
	if u == v {
		return false, fmt.Errorf("%w: node %d", ErrSelfLoop, u)
	}
	if _, ok := g.adj[u][v]; ok {
		return false, nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edgeCount++
	return true, nil
}

// RemoveEdge deletes the undirected edge (u,v). It reports whether the
// edge existed.
func (g *Graph) RemoveEdge(u, v int) (bool, error) {
	if err := g.checkNode(u); err != nil {
		return false, err
	}
	if err := g.checkNode(v); err != nil {
		return false, err
	}
	if _, ok := g.adj[u][v]; !ok {
		return false, nil
	}
	delete(g.adj[u], v)
	delete(g.adj[v], u)
	g.edgeCount--
	return true, nil
}

// HasEdge reports whether the undirected edge (u,v) exists. Out-of-range
// ids report false.
func (g *Graph) HasEdge(u, v int) bool {
	if u < 0 || u >= g.n || v < 0 || v >= g.n {
		return false
	}
	_, ok := g.adj[u][v]
	return ok
}

// Degree returns the number of edges incident to node id, or 0 for an
// out-of-range id.
func (g *Graph) Degree(id int) int {
	if id < 0 || id >= g.n {
		return 0
	}
	return len(g.adj[id])
}

// Neighbors returns the neighbor ids of a node in ascending order. The
// returned slice is a copy; callers may modify it freely.
func (g *Graph) Neighbors(id int) []int {
	if id < 0 || id >= g.n {
		return nil
	}
	out := make([]int, 0, len(g.adj[id]))
	for v := range g.adj[id] {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// EachNeighbor calls fn for every neighbor of id, in unspecified order.
// It avoids the allocation of Neighbors for hot loops.
func (g *Graph) EachNeighbor(id int, fn func(v int)) {
	if id < 0 || id >= g.n {
		return
	}
	for v := range g.adj[id] {
		fn(v)
	}
}

// Edge is one undirected edge with U < V.
type Edge struct {
	U, V int
}

// Edges returns every undirected edge exactly once, ordered by (U,V).
// The deterministic order matters for seeded algorithms that iterate edges.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edgeCount)
	for u := 0; u < g.n; u++ {
		for v := range g.adj[u] {
			if u < v {
				out = append(out, Edge{U: u, V: v})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].U != out[j].U {
			return out[i].U < out[j].U
		}
		return out[i].V < out[j].V
	})
	return out
}

// Clone returns a deep copy of the graph. Simulations that mutate their
// network (adaptive SIR) operate on a clone so the caller's graph survives.
func (g *Graph) Clone() *Graph {
	c := New(g.n)
	for u := 0; u < g.n; u++ {
		for v := range g.adj[u] {
			c.adj[u][v] = struct{}{}
		}
	}
	c.edgeCount = g.edgeCount
	return c
}

// AvgDegree returns 2E/N, or 0 for an empty graph.
func (g *Graph) AvgDegree() float64 {
	if g.n == 0 {
		return 0
	}
	return 2 * float64(g.edgeCount) / float64(g.n)
}
