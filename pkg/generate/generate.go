// Package generate builds the three synthetic network topologies the
// simulator runs over: Erdős–Rényi random graphs, Watts-Strogatz
// small-world graphs and Barabási-Albert scale-free graphs.
//
// Every generator draws from an explicitly passed *rand.Rand, never from
// the global source, so a run is fully reproducible from its seed and
// concurrent trials can each own an independent stream.
package generate

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/episim/pkg/graph"
)

// ErrInvalidParameter is returned when a generator parameter is out of
// range. The graph is never partially built: on error, nothing is returned.
var ErrInvalidParameter = errors.New("invalid generator parameter")

// Topology identifies one of the supported network models. The set is
// closed: exactly these three are ever generated.
type Topology string

const (
	ErdosRenyi     Topology = "erdos-renyi"
	WattsStrogatz  Topology = "watts-strogatz"
	BarabasiAlbert Topology = "barabasi-albert"
)

// Config carries the parameters for one topology. Fields irrelevant to the
// selected topology are ignored (ER reads P or AvgDegree, WS reads K and
// Rewire, BA reads M).
type Config struct {
	Topology Topology `yaml:"topology" validate:"required,oneof=erdos-renyi watts-strogatz barabasi-albert"`
	N        int      `yaml:"n" validate:"required,min=1"`

	// P is the ER edge probability. When zero and AvgDegree is set, P is
	// derived as AvgDegree/(N-1) so topologies can be matched on <k>.
	P         float64 `yaml:"p" validate:"min=0,max=1"`
	AvgDegree float64 `yaml:"avg_degree" validate:"min=0"`

	// K is the WS ring-lattice degree (even), Rewire the WS rewiring
	// probability beta.
	K      int     `yaml:"k" validate:"min=0"`
	Rewire float64 `yaml:"rewire" validate:"min=0,max=1"`

	// M is the BA attachment count per new node.
	M int `yaml:"m" validate:"min=0"`

	Seed int64 `yaml:"seed"`
}

var validate = validator.New()

// Validate checks the config against its struct tags. Topology-specific
// range checks (K even, M < N, ...) happen in the individual generators.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return nil
}

// Label returns a short human-readable identifier for logs and results.
func (c Config) Label() string {
	switch c.Topology {
	case ErdosRenyi:
		if c.P > 0 {
			return fmt.Sprintf("ER(N=%d,p=%g)", c.N, c.P)
		}
		return fmt.Sprintf("ER(N=%d,<k>=%g)", c.N, c.AvgDegree)
	case WattsStrogatz:
		return fmt.Sprintf("WS(N=%d,k=%d,beta=%g)", c.N, c.K, c.Rewire)
	case BarabasiAlbert:
		return fmt.Sprintf("BA(N=%d,m=%d)", c.N, c.M)
	}
	return string(c.Topology)
}

// Generate builds a graph for the config using a source seeded from
// cfg.Seed. See GenerateWith for supplying your own stream.
func Generate(cfg Config) (*graph.Graph, error) {
	return GenerateWith(cfg, rand.New(rand.NewSource(cfg.Seed)))
}

// GenerateWith builds a graph for the config, drawing all randomness from
// rng. The same config and stream state always produce the same graph.
func GenerateWith(cfg Config, rng *rand.Rand) (*graph.Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Topology {
	case ErdosRenyi:
		if cfg.P == 0 && cfg.AvgDegree > 0 {
			return RandomByAvgDegree(cfg.N, cfg.AvgDegree, rng)
		}
		return Random(cfg.N, cfg.P, rng)
	case WattsStrogatz:
		return SmallWorld(cfg.N, cfg.K, cfg.Rewire, rng)
	case BarabasiAlbert:
		return ScaleFree(cfg.N, cfg.M, rng)
	}
	return nil, fmt.Errorf("%w: unknown topology %q", ErrInvalidParameter, cfg.Topology)
}
