package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"eepe-mcerror/internal/estimator"
	"eepe-mcerror/internal/logging"
)

// Presentation bounds for the interactive parameters.
const (
	MinMean, MaxMean             = 1.0, 500.0
	MinVolatility, MaxVolatility = 1.0, 100.0
	MinRuns, MaxRuns             = 2, 1000
	MinScenarios, MaxScenarios   = 100, 100000
	MinSweepRuns, MaxSweepRuns   = 20, 5000
	MinSweepScen, MaxSweepScen   = 1000, 1000000
)

// Config materialises application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Logging   logging.Config  `mapstructure:"logging"`
	Synthetic SyntheticConfig `mapstructure:"synthetic"`
	Method1   Method1Config   `mapstructure:"method1"`
	Method2   Method2Config   `mapstructure:"method2"`
	Estimator EstimatorConfig `mapstructure:"estimator"`
	Export    ExportConfig    `mapstructure:"export"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// SyntheticConfig parameterises the synthetic data generators.
type SyntheticConfig struct {
	Mean       float64 `mapstructure:"mean"`
	Volatility float64 `mapstructure:"volatility"`
	Seed       uint64  `mapstructure:"seed"`
}

// Method1Config covers the repeated-run estimator.
type Method1Config struct {
	Runs    int `mapstructure:"runs"`
	MaxRuns int `mapstructure:"max_runs"`
}

// Method2Config covers the single-run scenario estimator.
type Method2Config struct {
	Scenarios    int `mapstructure:"scenarios"`
	MaxScenarios int `mapstructure:"max_scenarios"`
}

// EstimatorConfig selects estimator behaviour.
type EstimatorConfig struct {
	PhiQuantile   float64 `mapstructure:"phi_quantile"`
	ConvAdjPolicy string  `mapstructure:"conv_adj_policy"`
	QuantileMode  string  `mapstructure:"quantile_mode"`
}

// ExportConfig sets chart and file output behaviour.
type ExportConfig struct {
	ChartWidth  int    `mapstructure:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height"`
	Output      Output `mapstructure:"output"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("EEPEERR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "eepeerr")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("synthetic.mean", 100.0)
	v.SetDefault("synthetic.volatility", 10.0)
	v.SetDefault("synthetic.seed", 0)

	v.SetDefault("method1.runs", 50)
	v.SetDefault("method1.max_runs", 1000)

	v.SetDefault("method2.scenarios", 10000)
	v.SetDefault("method2.max_scenarios", 100000)

	v.SetDefault("estimator.phi_quantile", 1.96)
	v.SetDefault("estimator.conv_adj_policy", "strict")
	v.SetDefault("estimator.quantile_mode", "pinned")

	v.SetDefault("export.chart_width", 1280)
	v.SetDefault("export.chart_height", 720)
	v.SetDefault("export.output", "table")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.TextUnmarshallerHookFunc()
	}
}

// Validate performs basic sanity checks on the configuration values.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if _, err := c.EstimatorOptions(); err != nil {
		return fmt.Errorf("estimator: %w", err)
	}
	if c.Export.ChartWidth <= 0 || c.Export.ChartHeight <= 0 {
		return fmt.Errorf("export.chart_width and export.chart_height must be greater than zero")
	}
	if _, err := ParseOutput(string(c.Export.Output)); err != nil {
		return err
	}
	return nil
}

// Params are the parameters of one invocation after CLI overrides.
type Params struct {
	Synthetic    SyntheticConfig
	Runs         int
	MaxRuns      int
	Scenarios    int
	MaxScenarios int
}

// Params returns the configured parameters without overrides.
func (c *Config) Params() Params {
	return Params{
		Synthetic:    c.Synthetic,
		Runs:         c.Method1.Runs,
		MaxRuns:      c.Method1.MaxRuns,
		Scenarios:    c.Method2.Scenarios,
		MaxScenarios: c.Method2.MaxScenarios,
	}
}

// Validate checks every parameter against its presentation bounds.
func (p Params) Validate() error {
	if err := p.Synthetic.Validate(); err != nil {
		return err
	}
	if err := checkIntRange("method1.runs", p.Runs, MinRuns, MaxRuns); err != nil {
		return err
	}
	if err := checkIntRange("method1.max_runs", p.MaxRuns, MinSweepRuns, MaxSweepRuns); err != nil {
		return err
	}
	if err := checkIntRange("method2.scenarios", p.Scenarios, MinScenarios, MaxScenarios); err != nil {
		return err
	}
	return checkIntRange("method2.max_scenarios", p.MaxScenarios, MinSweepScen, MaxSweepScen)
}

// Validate checks the synthetic data parameters against their bounds.
func (s SyntheticConfig) Validate() error {
	if math.IsNaN(s.Mean) || s.Mean < MinMean || s.Mean > MaxMean {
		return fmt.Errorf("synthetic.mean must be within [%g, %g], got %g", MinMean, MaxMean, s.Mean)
	}
	if math.IsNaN(s.Volatility) || s.Volatility < MinVolatility || s.Volatility > MaxVolatility {
		return fmt.Errorf("synthetic.volatility must be within [%g, %g], got %g", MinVolatility, MaxVolatility, s.Volatility)
	}
	return nil
}

func checkIntRange(key string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be within [%d, %d], got %d", key, lo, hi, v)
	}
	return nil
}

// EstimatorOptions converts the estimator section into estimator options.
func (c *Config) EstimatorOptions() (estimator.Options, error) {
	policy, err := estimator.ParsePolicy(c.Estimator.ConvAdjPolicy)
	if err != nil {
		return estimator.Options{}, err
	}
	mode, err := estimator.ParseQuantileMode(c.Estimator.QuantileMode)
	if err != nil {
		return estimator.Options{}, err
	}
	opts := estimator.Options{
		PhiQuantile: c.Estimator.PhiQuantile,
		Policy:      policy,
		Quantiles:   mode,
	}
	if err := opts.Validate(); err != nil {
		return estimator.Options{}, err
	}
	return opts, nil
}

// ResolveRuns returns either the CLI override or the configured run count.
// A nil override means the flag was not given.
func (c *Config) ResolveRuns(override *int) int {
	if override != nil {
		return *override
	}
	return c.Method1.Runs
}

// ResolveMaxRuns returns either the CLI override or the configured sweep limit.
func (c *Config) ResolveMaxRuns(override *int) int {
	if override != nil {
		return *override
	}
	return c.Method1.MaxRuns
}

// ResolveScenarios returns either the CLI override or the configured scenario count.
func (c *Config) ResolveScenarios(override *int) int {
	if override != nil {
		return *override
	}
	return c.Method2.Scenarios
}

// ResolveMaxScenarios returns either the CLI override or the configured sweep limit.
func (c *Config) ResolveMaxScenarios(override *int) int {
	if override != nil {
		return *override
	}
	return c.Method2.MaxScenarios
}

// ResolveSynthetic applies the given CLI overrides to the synthetic section.
// Overrides are taken as-is so that Validate can reject them.
func (c *Config) ResolveSynthetic(mean, volatility *float64, seed *uint64) SyntheticConfig {
	out := c.Synthetic
	if mean != nil {
		out.Mean = *mean
	}
	if volatility != nil {
		out.Volatility = *volatility
	}
	if seed != nil {
		out.Seed = *seed
	}
	return out
}

// Output selects how reports are written to stdout.
type Output string

const (
	OutputTable Output = "table"
	OutputJSON  Output = "json"
	OutputYAML  Output = "yaml"
)

// ParseOutput validates an output format name.
func ParseOutput(v string) (Output, error) {
	switch Output(strings.ToLower(strings.TrimSpace(v))) {
	case "", OutputTable:
		return OutputTable, nil
	case OutputJSON:
		return OutputJSON, nil
	case OutputYAML:
		return OutputYAML, nil
	default:
		return "", fmt.Errorf("export.output must be one of table, json, yaml; got %q", v)
	}
}

// UnmarshalText lets the decoder reject unknown formats while loading.
func (o *Output) UnmarshalText(text []byte) error {
	parsed, err := ParseOutput(string(text))
	if err != nil {
		return err
	}
	*o = parsed
	return nil
}

// ResolveOutput returns either the CLI override or the configured format.
func (c *Config) ResolveOutput(override string) (Output, error) {
	if override != "" {
		return ParseOutput(override)
	}
	return ParseOutput(string(c.Export.Output))
}
