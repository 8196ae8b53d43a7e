package app

import (
	"context"
	"path/filepath"
)

// Compare computes both errors under one set of synthetic parameters.
func (a *App) Compare(ctx context.Context, opts CompareOptions) error {
	params, output, err := a.resolve(opts.CommonOptions, opts.Runs, nil, opts.Scenarios, nil)
	if err != nil {
		return err
	}
	syn := params.Synthetic

	sw, gen, err := a.newSweeper(syn.Seed)
	if err != nil {
		return err
	}

	cmp, err := sw.Compare(ctx, params.Runs, params.Scenarios, syn.Mean, syn.Volatility)
	if err != nil {
		return err
	}
	if !cmp.Method1.Sufficient {
		a.Logger.Warn().Int("m", params.Runs).Msg("not enough data for method 1 calculation in comparison")
	}
	if !cmp.Method2.Sufficient {
		a.Logger.Warn().Int("n", params.Scenarios).Msg("not enough data for method 2 calculation in comparison")
	}

	a.Logger.Info().
		Float64("error_m1", cmp.Method1.Result.Error).
		Float64("error_m2", cmp.Method2.Result.Error).
		Msg("comparison complete")

	if opts.CSVPath != "" {
		if err := writeComparisonCSV(opts.CSVPath, cmp); err != nil {
			return err
		}
	}
	if opts.PNGDir != "" {
		if err := a.writeComparisonPNG(filepath.Join(opts.PNGDir, "comparison.png"), cmp); err != nil {
			return err
		}
	}

	return a.printReport(Report{
		RunID:       a.RunID.String(),
		Command:     "compare",
		Seed:        gen.Seed(),
		Mean:        syn.Mean,
		Volatility:  syn.Volatility,
		PhiQuantile: a.Config.Estimator.PhiQuantile,
		Method1:     &cmp.Method1,
		Method2:     &cmp.Method2,
	}, output)
}
