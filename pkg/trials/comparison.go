package trials

import (
	"math/rand"
	"sync"
	"time"

	"github.com/dd0wney/episim/pkg/generate"
	"github.com/dd0wney/episim/pkg/logging"
	"github.com/dd0wney/episim/pkg/metrics"
	"github.com/dd0wney/episim/pkg/sir"
)

// Experiment is one topology entry in a comparison run.
type Experiment struct {
	Config generate.Config `yaml:"network"`

	// RegeneratePerTrial draws a fresh graph every trial instead of
	// running all trials on one fixed realization.
	RegeneratePerTrial bool `yaml:"regenerate_per_trial"`
}

// ProgressFunc reports completed trials per topology label.
type ProgressFunc func(label string, completed, total int)

// RunComparison runs one batch per experiment, all under the same SIR
// parameters and trial count, so topologies are directly comparable.
// Topologies execute concurrently; each gets a disjoint seed range.
// Results come back in experiment order.
func RunComparison(experiments []Experiment, params sir.Params, opts Options, progress ProgressFunc) ([]*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}

	results := make([]*Result, len(experiments))
	errs := make([]error, len(experiments))

	var wg sync.WaitGroup
	for i, exp := range experiments {
		wg.Add(1)
		go func(i int, exp Experiment) {
			defer wg.Done()

			label := exp.Config.Label()
			batchOpts := opts
			batchOpts.Label = label
			batchOpts.Logger = log
			batchOpts.Metrics = reg
			// Disjoint per-topology seed ranges keep trial streams
			// independent across concurrent batches.
			batchOpts.BaseSeed = opts.BaseSeed + int64(i)<<32
			if progress != nil {
				batchOpts.Progress = func(completed, total int) {
					progress(label, completed, total)
				}
			}

			provider, err := providerFor(exp, batchOpts, reg)
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = Run(provider, params, batchOpts)
		}(i, exp)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

// providerFor builds the graph source for one experiment. Fixed mode
// generates the single shared realization up front and records it.
func providerFor(exp Experiment, opts Options, reg *metrics.Registry) (Provider, error) {
	if exp.RegeneratePerTrial {
		return Regenerating(exp.Config), nil
	}

	start := time.Now()
	g, err := generate.GenerateWith(exp.Config, rand.New(rand.NewSource(opts.BaseSeed)))
	if err != nil {
		return nil, err
	}
	reg.RecordGeneration(string(exp.Config.Topology), g.NumNodes(), g.NumEdges(), time.Since(start))
	return Fixed(g), nil
}
