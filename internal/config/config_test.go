package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eepe-mcerror/internal/estimator"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: eepeerr\n"))
	require.NoError(t, err)

	assert.Equal(t, 100.0, cfg.Synthetic.Mean)
	assert.Equal(t, 10.0, cfg.Synthetic.Volatility)
	assert.Equal(t, 50, cfg.Method1.Runs)
	assert.Equal(t, 1000, cfg.Method1.MaxRuns)
	assert.Equal(t, 10000, cfg.Method2.Scenarios)
	assert.Equal(t, 100000, cfg.Method2.MaxScenarios)
	assert.Equal(t, 1.96, cfg.Estimator.PhiQuantile)
	assert.Equal(t, "stderr", cfg.Logging.Output)

	opts, err := cfg.EstimatorOptions()
	require.NoError(t, err)
	assert.Equal(t, estimator.DefaultOptions(), opts)
}

func TestLoadFileValues(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"synthetic:",
		"  mean: 250",
		"  volatility: 40",
		"  seed: 7",
		"method1:",
		"  runs: 100",
		"estimator:",
		"  conv_adj_policy: sentinel",
		"  quantile_mode: exact",
		"export:",
		"  output: yaml",
	}, "\n"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 250.0, cfg.Synthetic.Mean)
	assert.Equal(t, uint64(7), cfg.Synthetic.Seed)
	assert.Equal(t, 100, cfg.Method1.Runs)

	opts, err := cfg.EstimatorOptions()
	require.NoError(t, err)
	assert.Equal(t, estimator.PolicySentinel, opts.Policy)
	assert.Equal(t, estimator.QuantileExact, opts.Quantiles)

	out, err := cfg.ResolveOutput("")
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, out)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("EEPEERR_METHOD2_SCENARIOS", "500")
	cfg, err := Load(writeConfig(t, "app:\n  name: eepeerr\n"))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.Method2.Scenarios)
}

func TestLoadRejectsOutOfRange(t *testing.T) {
	cases := map[string]string{
		"mean":      "synthetic:\n  mean: 0.5\n",
		"vol":       "synthetic:\n  volatility: 101\n",
		"runs":      "method1:\n  runs: 1\n",
		"scenarios": "method2:\n  scenarios: 100001\n",
		"max runs":  "method1:\n  max_runs: 10\n",
		"phi":       "estimator:\n  phi_quantile: -1\n",
		"policy":    "estimator:\n  conv_adj_policy: lenient\n",
		"output":    "export:\n  output: xml\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestResolveOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: eepeerr\n"))
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.ResolveRuns(nil))
	assert.Equal(t, 7, cfg.ResolveRuns(ptr(7)))
	assert.Equal(t, 1000, cfg.ResolveMaxRuns(nil))
	assert.Equal(t, 200, cfg.ResolveMaxScenarios(ptr(200)))
	assert.Equal(t, 10000, cfg.ResolveScenarios(nil))

	syn := cfg.ResolveSynthetic(nil, ptr(25.0), ptr(uint64(3)))
	assert.Equal(t, 100.0, syn.Mean)
	assert.Equal(t, 25.0, syn.Volatility)
	assert.Equal(t, uint64(3), syn.Seed)

	out, err := cfg.ResolveOutput("JSON")
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, out)

	_, err = cfg.ResolveOutput("csv")
	require.Error(t, err)
}

func TestResolveKeepsNonPositiveOverrides(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: eepeerr\n"))
	require.NoError(t, err)

	p := cfg.Params()
	p.Synthetic = cfg.ResolveSynthetic(nil, ptr(-5.0), nil)
	assert.Equal(t, -5.0, p.Synthetic.Volatility)
	require.ErrorContains(t, p.Validate(), "synthetic.volatility")

	p = cfg.Params()
	p.Runs = cfg.ResolveRuns(ptr(-3))
	assert.Equal(t, -3, p.Runs)
	require.ErrorContains(t, p.Validate(), "method1.runs")

	p = cfg.Params()
	p.Scenarios = cfg.ResolveScenarios(ptr(0))
	require.ErrorContains(t, p.Validate(), "method2.scenarios")

	syn := cfg.ResolveSynthetic(nil, nil, ptr(uint64(0)))
	assert.Zero(t, syn.Seed)
}

func TestSyntheticValidateRejectsNaN(t *testing.T) {
	require.Error(t, SyntheticConfig{Mean: math.NaN(), Volatility: 10}.Validate())
	require.Error(t, SyntheticConfig{Mean: 100, Volatility: math.NaN()}.Validate())
	require.NoError(t, SyntheticConfig{Mean: 100, Volatility: 10}.Validate())
}

func TestLoadRejectsNaNFromEnv(t *testing.T) {
	t.Setenv("EEPEERR_SYNTHETIC_MEAN", "NaN")
	_, err := Load(writeConfig(t, "app:\n  name: eepeerr\n"))
	require.ErrorContains(t, err, "synthetic.mean")
}

func TestLoadDecodesOutputFormat(t *testing.T) {
	cfg, err := Load(writeConfig(t, "export:\n  output: JSON\n"))
	require.NoError(t, err)
	assert.Equal(t, OutputJSON, cfg.Export.Output)

	_, err = Load(writeConfig(t, "export:\n  output: xml\n"))
	require.ErrorContains(t, err, "export.output")
}

func TestParamsValidate(t *testing.T) {
	cfg, err := Load(writeConfig(t, "app:\n  name: eepeerr\n"))
	require.NoError(t, err)

	p := cfg.Params()
	require.NoError(t, p.Validate())

	p.Runs = 1001
	require.Error(t, p.Validate())

	p = cfg.Params()
	p.MaxScenarios = 999
	require.Error(t, p.Validate())
}
