package graph

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestGraphInvariants drives random edge insert/remove sequences and
// checks the structural invariants that every generator and simulator
// relies on.
func TestGraphInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	type op struct {
		u, v   int
		remove bool
	}

	genOps := gen.SliceOf(gopter.CombineGens(
		gen.IntRange(0, 19),
		gen.IntRange(0, 19),
		gen.Bool(),
	).Map(func(vals []interface{}) op {
		return op{u: vals[0].(int), v: vals[1].(int), remove: vals[2].(bool)}
	}))

	apply := func(ops []op) *Graph {
		g := New(20)
		for _, o := range ops {
			if o.remove {
				g.RemoveEdge(o.u, o.v)
			} else {
				g.AddEdge(o.u, o.v)
			}
		}
		return g
	}

	properties.Property("adjacency stays symmetric", prop.ForAll(
		func(ops []op) bool {
			g := apply(ops)
			for u := 0; u < g.NumNodes(); u++ {
				for _, v := range g.Neighbors(u) {
					if !g.HasEdge(v, u) {
						return false
					}
				}
			}
			return true
		},
		genOps,
	))

	properties.Property("no self-loops ever exist", prop.ForAll(
		func(ops []op) bool {
			g := apply(ops)
			for u := 0; u < g.NumNodes(); u++ {
				if g.HasEdge(u, u) {
					return false
				}
			}
			return true
		},
		genOps,
	))

	properties.Property("edge count matches half the degree sum", prop.ForAll(
		func(ops []op) bool {
			g := apply(ops)
			degreeSum := 0
			for u := 0; u < g.NumNodes(); u++ {
				degreeSum += g.Degree(u)
			}
			return degreeSum == 2*g.NumEdges() && len(g.Edges()) == g.NumEdges()
		},
		genOps,
	))

	properties.TestingRun(t)
}
