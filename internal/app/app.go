package app

import (
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"eepe-mcerror/internal/config"
	"eepe-mcerror/internal/estimator"
	"eepe-mcerror/internal/sampler"
	"eepe-mcerror/internal/sweep"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	RunID  uuid.UUID

	out io.Writer
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	runID := uuid.New()
	return &App{
		Config: cfg,
		Logger: logger.With().Str("component", "app").Str("run_id", runID.String()).Logger(),
		RunID:  runID,
		out:    os.Stdout,
	}
}

// SetOutput redirects report output, stdout by default.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

func (a *App) newSweeper(seed uint64) (*sweep.Sweeper, *sampler.Sampler, error) {
	opts, err := a.Config.EstimatorOptions()
	if err != nil {
		return nil, nil, err
	}
	est, err := estimator.New(opts)
	if err != nil {
		return nil, nil, err
	}

	gen := sampler.New(sampler.Options{Seed: seed}, a.Logger)
	return sweep.New(gen, est, a.Logger), gen, nil
}

// resolve applies CLI overrides on top of the configuration and validates
// the result against the presentation bounds.
func (a *App) resolve(common CommonOptions, runs, maxRuns, scenarios, maxScenarios *int) (config.Params, config.Output, error) {
	params := config.Params{
		Synthetic:    a.Config.ResolveSynthetic(common.Mean, common.Volatility, common.Seed),
		Runs:         a.Config.ResolveRuns(runs),
		MaxRuns:      a.Config.ResolveMaxRuns(maxRuns),
		Scenarios:    a.Config.ResolveScenarios(scenarios),
		MaxScenarios: a.Config.ResolveMaxScenarios(maxScenarios),
	}
	if err := params.Validate(); err != nil {
		return config.Params{}, "", err
	}

	output, err := a.Config.ResolveOutput(common.Output)
	if err != nil {
		return config.Params{}, "", err
	}
	return params, output, nil
}

// CommonOptions are shared by every estimation command. Nil overrides and
// an empty Output fall back to configuration.
type CommonOptions struct {
	Mean       *float64
	Volatility *float64
	Seed       *uint64
	CSVPath    string
	PNGDir     string
	Output     string
}

// Method1Options configure the method1 command.
type Method1Options struct {
	CommonOptions
	Runs    *int
	MaxRuns *int
}

// Method2Options configure the method2 command.
type Method2Options struct {
	CommonOptions
	Scenarios    *int
	MaxScenarios *int
}

// CompareOptions configure the compare command.
type CompareOptions struct {
	CommonOptions
	Runs      *int
	Scenarios *int
}

// ConvAdjOptions configure the convadj command.
type ConvAdjOptions struct {
	MaxRuns *int
	CSVPath string
	PNGDir  string
	Output  string
}

// Report is what every command prints, as a table or encoded.
type Report struct {
	RunID       string                 `json:"run_id" yaml:"run_id"`
	Command     string                 `json:"command" yaml:"command"`
	Seed        uint64                 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Mean        float64                `json:"mean,omitempty" yaml:"mean,omitempty"`
	Volatility  float64                `json:"volatility,omitempty" yaml:"volatility,omitempty"`
	PhiQuantile float64                `json:"phi_quantile" yaml:"phi_quantile"`
	Method1     *sweep.Method1Estimate `json:"method1,omitempty" yaml:"method1,omitempty"`
	Method2     *sweep.Method2Estimate `json:"method2,omitempty" yaml:"method2,omitempty"`
	Series      []sweep.Series         `json:"series,omitempty" yaml:"series,omitempty"`
}
