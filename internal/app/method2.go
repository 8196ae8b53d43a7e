package app

import (
	"context"
	"path/filepath"

	"eepe-mcerror/internal/sweep"
)

// Method2 estimates the single-run scenario error for the configured N and
// sweeps it over the scenario grid.
func (a *App) Method2(ctx context.Context, opts Method2Options) error {
	params, output, err := a.resolve(opts.CommonOptions, nil, nil, opts.Scenarios, opts.MaxScenarios)
	if err != nil {
		return err
	}
	syn := params.Synthetic

	sw, gen, err := a.newSweeper(syn.Seed)
	if err != nil {
		return err
	}

	single, err := sw.EstimateMethod2(params.Scenarios, syn.Mean, syn.Volatility)
	if err != nil {
		return err
	}
	if !single.Sufficient {
		a.Logger.Warn().Int("n", params.Scenarios).Msg("not enough data to calculate error for method 2; increase the number of scenarios")
	}

	grid := sweep.Method2Grid(params.MaxScenarios)
	errSeries, err := sw.Method2Errors(ctx, grid, syn.Mean, syn.Volatility)
	if err != nil {
		return err
	}

	a.Logger.Info().
		Int("n", params.Scenarios).
		Float64("error_m2", single.Result.Error).
		Int("sweep_points", len(grid)).
		Msg("method 2 complete")

	if opts.CSVPath != "" {
		if err := writeSeriesCSV(opts.CSVPath, "n", errSeries); err != nil {
			return err
		}
	}
	if opts.PNGDir != "" {
		if err := a.writeSeriesPNG(filepath.Join(opts.PNGDir, "method2_error.png"), errSeries); err != nil {
			return err
		}
	}

	return a.printReport(Report{
		RunID:       a.RunID.String(),
		Command:     "method2",
		Seed:        gen.Seed(),
		Mean:        syn.Mean,
		Volatility:  syn.Volatility,
		PhiQuantile: a.Config.Estimator.PhiQuantile,
		Method2:     &single,
		Series:      []sweep.Series{errSeries},
	}, output)
}
