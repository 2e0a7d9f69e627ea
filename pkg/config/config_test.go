package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/episim/pkg/generate"
	"github.com/dd0wney/episim/pkg/sir"
)

const validYAML = `
name: topology-comparison
seed: 42
trials: 100
workers: 4
epidemic:
  beta: 0.1
  gamma: 0.1
networks:
  - network:
      topology: erdos-renyi
      n: 1000
      avg_degree: 10
  - network:
      topology: watts-strogatz
      n: 1000
      k: 10
      rewire: 0.1
  - network:
      topology: barabasi-albert
      n: 1000
      m: 5
    regenerate_per_trial: true
`

func TestParse_Valid(t *testing.T) {
	exp, err := Parse([]byte(validYAML))
	require.NoError(t, err)

	assert.Equal(t, "topology-comparison", exp.Name)
	assert.Equal(t, int64(42), exp.Seed)
	assert.Equal(t, 100, exp.Trials)
	assert.Equal(t, sir.Params{Beta: 0.1, Gamma: 0.1}, exp.Epidemic)

	require.Len(t, exp.Networks, 3)
	assert.Equal(t, generate.ErdosRenyi, exp.Networks[0].Config.Topology)
	assert.False(t, exp.Networks[0].RegeneratePerTrial)
	assert.Equal(t, 10, exp.Networks[1].Config.K)
	assert.True(t, exp.Networks[2].RegeneratePerTrial)

	opts := exp.Options()
	assert.Equal(t, 100, opts.Trials)
	assert.Equal(t, int64(42), opts.BaseSeed)
}

func TestParse_RejectsBadEpidemicParams(t *testing.T) {
	yaml := `
name: bad
trials: 10
epidemic:
  beta: 1.5
  gamma: 0.1
networks:
  - network:
      topology: erdos-renyi
      n: 100
      p: 0.1
`
	_, err := Parse([]byte(yaml))
	assert.ErrorIs(t, err, sir.ErrInvalidParameter)
}

func TestParse_RejectsMissingFields(t *testing.T) {
	_, err := Parse([]byte("name: x\ntrials: 0\n"))
	assert.Error(t, err, "zero trials and no networks must fail validation")

	_, err = Parse([]byte("::: not yaml"))
	assert.Error(t, err)
}

func TestParse_RejectsBadNetwork(t *testing.T) {
	yaml := `
name: bad-network
trials: 10
epidemic:
  beta: 0.1
  gamma: 0.1
networks:
  - network:
      topology: torus
      n: 100
`
	_, err := Parse([]byte(yaml))
	assert.ErrorIs(t, err, generate.ErrInvalidParameter)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	exp, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "topology-comparison", exp.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
