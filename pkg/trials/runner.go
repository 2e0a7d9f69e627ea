// Package trials runs batches of independent SIR simulations and reduces
// their trajectories to per-step statistics and outbreak-size
// distributions. Trials execute on a worker pool; every trial owns its
// own random source derived from the batch seed, so batches are
// reproducible and race-free.
package trials

import (
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/dd0wney/episim/pkg/generate"
	"github.com/dd0wney/episim/pkg/graph"
	"github.com/dd0wney/episim/pkg/logging"
	"github.com/dd0wney/episim/pkg/metrics"
	"github.com/dd0wney/episim/pkg/sir"
)

// ErrInvalidOptions is returned for unusable batch options.
var ErrInvalidOptions = errors.New("invalid trial options")

// Provider hands each trial its graph. Fixed shares one immutable graph
// across trials; Regenerating builds a fresh one per trial, which is how
// "many draws from the same topology class" experiments run.
type Provider func(trial int, rng *rand.Rand) (*graph.Graph, error)

// Fixed returns a provider serving the same graph to every trial. The
// graph must not be mutated while the batch runs.
func Fixed(g *graph.Graph) Provider {
	return func(int, *rand.Rand) (*graph.Graph, error) {
		return g, nil
	}
}

// Regenerating returns a provider that generates a new graph per trial
// from the config, drawing from the trial's own stream.
func Regenerating(cfg generate.Config) Provider {
	return func(_ int, rng *rand.Rand) (*graph.Graph, error) {
		return generate.GenerateWith(cfg, rng)
	}
}

// Options configures one batch of trials.
type Options struct {
	// Trials is the number of independent simulations. Required.
	Trials int

	// Workers caps pool size; 0 means GOMAXPROCS-ish (NumCPU).
	Workers int

	// BaseSeed derives the per-trial seeds (BaseSeed + trial index).
	BaseSeed int64

	// MaxSteps caps one simulation; 0 selects sir.DefaultMaxSteps.
	MaxSteps int

	// SeedNodes pins the initially infected set for every trial. Nil
	// re-picks one random patient zero per trial.
	SeedNodes []int

	// Progress, when set, is called after each completed trial with
	// (completed, total). Calls are serialized.
	Progress func(completed, total int)

	// Label tags logs, metrics and the result (usually the topology
	// label).
	Label string

	Logger  logging.Logger
	Metrics *metrics.Registry
}

// StepStats is the across-trials mean and variance of the compartment
// counts at one time step.
type StepStats struct {
	T     int
	SMean float64
	SVar  float64
	IMean float64
	IVar  float64
	RMean float64
	RVar  float64
}

// Result is the aggregate of one batch.
type Result struct {
	RunID  string
	Label  string
	Trials int

	// Steps holds per-step statistics; shorter trajectories are padded
	// with their terminal state before averaging, so every step reflects
	// all trials.
	Steps []StepStats

	// FinalSizes is the empirical distribution of R at termination.
	FinalSizes map[int]int

	FinalSizeMean float64
	FinalSizeStd  float64
	PeakMean      float64
	PeakStd       float64
	DurationMean  float64
	DurationStd   float64

	Elapsed time.Duration
}

// Run executes opts.Trials independent simulations and aggregates them.
func Run(provider Provider, params sir.Params, opts Options) (*Result, error) {
	if opts.Trials < 1 {
		return nil, fmt.Errorf("%w: trial count must be >= 1, got %d", ErrInvalidOptions, opts.Trials)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	if opts.Label != "" {
		log = log.With(logging.Topology(opts.Label))
	}
	reg := opts.Metrics
	if reg == nil {
		reg = metrics.DefaultRegistry()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	start := time.Now()
	log.Info("starting trial batch",
		logging.Trials(opts.Trials),
		logging.Seed(opts.BaseSeed),
		logging.Int("workers", workers))

	trajectories := make([]sir.Trajectory, opts.Trials)
	trialErrs := make([]error, opts.Trials)

	var mu sync.Mutex
	completed := 0

	pool := newWorkerPool(workers, log)
	for i := 0; i < opts.Trials; i++ {
		trial := i
		pool.submit(func() {
			trialStart := time.Now()
			reg.TrialsInFlight.Inc()
			defer reg.TrialsInFlight.Dec()

			traj, err := runTrial(provider, params, opts, trial)
			mu.Lock()
			trajectories[trial] = traj
			trialErrs[trial] = err
			completed++
			done := completed
			mu.Unlock()

			if err == nil {
				reg.RecordTrial(opts.Label, traj.Duration(), traj.FinalSize(), time.Since(trialStart))
				log.Debug("trial finished",
					logging.Trial(trial),
					logging.Steps(traj.Duration()),
					logging.Int("final_size", traj.FinalSize()))
			}
			if opts.Progress != nil {
				mu.Lock()
				opts.Progress(done, opts.Trials)
				mu.Unlock()
			}
		})
	}
	pool.close()

	for _, err := range trialErrs {
		if err != nil {
			log.Error("trial batch failed", logging.Error(err))
			return nil, err
		}
	}

	result := aggregate(trajectories)
	result.RunID = uuid.NewString()
	result.Label = opts.Label
	result.Elapsed = time.Since(start)

	log.Info("trial batch complete",
		logging.Trials(opts.Trials),
		logging.Float64("final_size_mean", result.FinalSizeMean),
		logging.Float64("peak_mean", result.PeakMean),
		logging.Elapsed(result.Elapsed))
	return result, nil
}

func runTrial(provider Provider, params sir.Params, opts Options, trial int) (sir.Trajectory, error) {
	rng := rand.New(rand.NewSource(opts.BaseSeed + int64(trial)))

	g, err := provider(trial, rng)
	if err != nil {
		return nil, fmt.Errorf("trial %d: %w", trial, err)
	}

	seeds := opts.SeedNodes
	if len(seeds) == 0 {
		seeds = []int{sir.RandomSeedNode(g, rng)}
	}

	sim, err := sir.New(g, params, seeds, rng)
	if err != nil {
		return nil, fmt.Errorf("trial %d: %w", trial, err)
	}
	return sim.Run(opts.MaxSteps), nil
}

// variance is sample variance, 0 for a single trial where gonum's n-1
// denominator has no meaning.
func variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.Variance(xs, nil)
}

func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// aggregate aligns trajectories by padding each with its terminal record,
// then reduces across trials step by step.
func aggregate(trajectories []sir.Trajectory) *Result {
	n := len(trajectories)
	maxLen := 0
	for _, traj := range trajectories {
		if len(traj) > maxLen {
			maxLen = len(traj)
		}
	}

	result := &Result{
		Trials:     n,
		Steps:      make([]StepStats, maxLen),
		FinalSizes: make(map[int]int),
	}

	sVals := make([]float64, n)
	iVals := make([]float64, n)
	rVals := make([]float64, n)
	for t := 0; t < maxLen; t++ {
		for j, traj := range trajectories {
			rec := traj[len(traj)-1]
			if t < len(traj) {
				rec = traj[t]
			}
			sVals[j] = float64(rec.S)
			iVals[j] = float64(rec.I)
			rVals[j] = float64(rec.R)
		}
		result.Steps[t] = StepStats{
			T:     t,
			SMean: stat.Mean(sVals, nil),
			SVar:  variance(sVals),
			IMean: stat.Mean(iVals, nil),
			IVar:  variance(iVals),
			RMean: stat.Mean(rVals, nil),
			RVar:  variance(rVals),
		}
	}

	finals := make([]float64, n)
	peaks := make([]float64, n)
	durations := make([]float64, n)
	for j, traj := range trajectories {
		final := traj.FinalSize()
		result.FinalSizes[final]++
		finals[j] = float64(final)
		peaks[j] = float64(traj.PeakInfected())
		durations[j] = float64(traj.Duration())
	}
	result.FinalSizeMean = stat.Mean(finals, nil)
	result.FinalSizeStd = stdDev(finals)
	result.PeakMean = stat.Mean(peaks, nil)
	result.PeakStd = stdDev(peaks)
	result.DurationMean = stat.Mean(durations, nil)
	result.DurationStd = stdDev(durations)
	return result
}
