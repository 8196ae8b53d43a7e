package app

import (
	"context"
	"path/filepath"

	"eepe-mcerror/internal/sweep"
)

// Method1 estimates the repeated-run error for the configured m and sweeps
// it over the run grid together with the convergence adjustment.
func (a *App) Method1(ctx context.Context, opts Method1Options) error {
	params, output, err := a.resolve(opts.CommonOptions, opts.Runs, opts.MaxRuns, nil, nil)
	if err != nil {
		return err
	}
	syn := params.Synthetic

	sw, gen, err := a.newSweeper(syn.Seed)
	if err != nil {
		return err
	}

	single, err := sw.EstimateMethod1(params.Runs, syn.Mean, syn.Volatility)
	if err != nil {
		return err
	}
	if !single.Sufficient {
		a.Logger.Warn().Int("m", params.Runs).Msg("not enough data to calculate error for method 1; increase the number of MC runs")
	}

	grid := sweep.Method1Grid(params.MaxRuns)
	errSeries, err := sw.Method1Errors(ctx, grid, syn.Mean, syn.Volatility)
	if err != nil {
		return err
	}
	convAdj, err := sw.ConvAdjCurve(grid)
	if err != nil {
		return err
	}

	a.Logger.Info().
		Int("m", params.Runs).
		Float64("error_m1", single.Result.Error).
		Int("sweep_points", len(grid)).
		Msg("method 1 complete")

	if opts.CSVPath != "" {
		if err := writeSeriesCSV(opts.CSVPath, "m", errSeries, convAdj); err != nil {
			return err
		}
	}
	if opts.PNGDir != "" {
		if err := a.writeSeriesPNG(filepath.Join(opts.PNGDir, "method1_error.png"), errSeries); err != nil {
			return err
		}
		if err := a.writeSeriesPNG(filepath.Join(opts.PNGDir, "method1_convadj.png"), convAdj); err != nil {
			return err
		}
	}

	return a.printReport(Report{
		RunID:       a.RunID.String(),
		Command:     "method1",
		Seed:        gen.Seed(),
		Mean:        syn.Mean,
		Volatility:  syn.Volatility,
		PhiQuantile: a.Config.Estimator.PhiQuantile,
		Method1:     &single,
		Series:      []sweep.Series{errSeries, convAdj},
	}, output)
}
