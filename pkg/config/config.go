// Package config loads experiment definitions from YAML: which topologies
// to generate, the epidemic parameters, and how many trials to aggregate.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/episim/pkg/sir"
	"github.com/dd0wney/episim/pkg/trials"
)

// Experiment is one comparison run: several topologies simulated under
// identical epidemic parameters.
type Experiment struct {
	Name     string `yaml:"name" validate:"required"`
	Seed     int64  `yaml:"seed"`
	Trials   int    `yaml:"trials" validate:"required,min=1"`
	Workers  int    `yaml:"workers" validate:"min=0"`
	MaxSteps int    `yaml:"max_steps" validate:"min=0"`

	Epidemic sir.Params          `yaml:"epidemic"`
	Networks []trials.Experiment `yaml:"networks" validate:"required,min=1"`

	// Output, when set, is where the CLI writes per-step aggregate CSV.
	Output string `yaml:"output"`
}

var validate = validator.New()

// Parse decodes and validates an experiment definition.
func Parse(data []byte) (*Experiment, error) {
	var exp Experiment
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, fmt.Errorf("parsing experiment config: %w", err)
	}
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	return &exp, nil
}

// Load reads an experiment definition from a YAML file.
func Load(path string) (*Experiment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment config: %w", err)
	}
	return Parse(data)
}

// Validate checks the experiment, its epidemic parameters and every
// network config.
func (e *Experiment) Validate() error {
	if err := validate.Struct(e); err != nil {
		return fmt.Errorf("experiment config: %w", err)
	}
	if err := e.Epidemic.Validate(); err != nil {
		return err
	}
	for i, net := range e.Networks {
		if err := net.Config.Validate(); err != nil {
			return fmt.Errorf("network %d: %w", i, err)
		}
	}
	return nil
}

// Options builds trial options from the experiment.
func (e *Experiment) Options() trials.Options {
	return trials.Options{
		Trials:   e.Trials,
		Workers:  e.Workers,
		BaseSeed: e.Seed,
		MaxSteps: e.MaxSteps,
	}
}
