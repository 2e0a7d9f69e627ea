package algorithms

import (
	"fmt"
	"math"

	"github.com/dd0wney/episim/pkg/graph"
)

// Summary bundles the metrics reported for one generated network.
type Summary struct {
	Nodes              int
	Edges              int
	AvgDegree          float64
	DegreeDistribution map[int]int
	Clustering         float64
	AvgPathLength      float64
	GiantComponentSize int

	// SmallWorldSigma is 0 when the coefficient is undefined for the
	// graph (see SmallWorldCoefficient).
	SmallWorldSigma float64
}

// SmallWorldCoefficient computes sigma = (C/C_rand) / (L/L_rand), where
// C_rand ~ <k>/N and L_rand ~ ln(N)/ln(<k>) are the analytic expectations
// for a G(N,p) graph with the same node and edge counts. Values well above
// 1 indicate small-world structure.
func SmallWorldCoefficient(g *graph.Graph) (float64, error) {
	n := g.NumNodes()
	avgDegree := g.AvgDegree()
	if n < 2 || avgDegree <= 1 {
		// ln(<k>) <= 0 makes L_rand undefined or degenerate.
		return 0, fmt.Errorf("%w: small-world coefficient needs <k> > 1, got %g", ErrUndefinedMetric, avgDegree)
	}

	cRand := avgDegree / float64(n)
	lRand := math.Log(float64(n)) / math.Log(avgDegree)
	if cRand == 0 || lRand == 0 {
		return 0, fmt.Errorf("%w: degenerate random-graph baseline", ErrUndefinedMetric)
	}

	clustering := AverageClustering(g)
	paths, err := AveragePathLength(g)
	if err != nil {
		return 0, err
	}
	if paths.Average == 0 {
		return 0, fmt.Errorf("%w: zero average path length", ErrUndefinedMetric)
	}

	return (clustering / cRand) / (paths.Average / lRand), nil
}

// Summarize computes the full metric set for a graph. Metrics that are
// undefined for the graph (path length on a fully disconnected graph,
// sigma on a sparse one) are left at zero rather than failing the whole
// summary.
func Summarize(g *graph.Graph) Summary {
	s := Summary{
		Nodes:              g.NumNodes(),
		Edges:              g.NumEdges(),
		AvgDegree:          g.AvgDegree(),
		DegreeDistribution: DegreeDistribution(g),
		Clustering:         AverageClustering(g),
		GiantComponentSize: GiantComponent(g).Size,
	}
	if paths, err := AveragePathLength(g); err == nil {
		s.AvgPathLength = paths.Average
	}
	if sigma, err := SmallWorldCoefficient(g); err == nil {
		s.SmallWorldSigma = sigma
	}
	return s
}
