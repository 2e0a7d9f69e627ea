// Package algorithms computes the structural metrics used to validate the
// topology generators and to characterize networks before simulation:
// degree statistics, clustering, path lengths, connected components and
// the small-world coefficient.
package algorithms

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/episim/pkg/graph"
)

// ErrUndefinedMetric is returned when a metric has no defined value for
// the given graph (zero edges, disconnected, too few distinct degrees).
var ErrUndefinedMetric = errors.New("metric undefined for this graph")

// DegreeDistribution returns the count of nodes per degree value.
func DegreeDistribution(g *graph.Graph) map[int]int {
	dist := make(map[int]int)
	for i := 0; i < g.NumNodes(); i++ {
		dist[g.Degree(i)]++
	}
	return dist
}

// PowerLawSlope fits a line to the log-log degree distribution and returns
// its slope. For a scale-free network the slope approximates -gamma.
//
// Degree-0 buckets are excluded (log undefined), as are the lowest
// degrees below minDegree, which are dominated by the attachment floor
// rather than the tail. Fewer than two usable buckets is undefined.
func PowerLawSlope(g *graph.Graph, minDegree int) (float64, error) {
	dist := DegreeDistribution(g)

	degrees := make([]int, 0, len(dist))
	for k := range dist {
		if k >= minDegree && k > 0 {
			degrees = append(degrees, k)
		}
	}
	if len(degrees) < 2 {
		return 0, fmt.Errorf("%w: fewer than two degree buckets in fit range", ErrUndefinedMetric)
	}
	sort.Ints(degrees)

	xs := make([]float64, len(degrees))
	ys := make([]float64, len(degrees))
	for i, k := range degrees {
		xs[i] = math.Log(float64(k))
		ys[i] = math.Log(float64(dist[k]))
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, nil
}
