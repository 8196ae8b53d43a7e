package app

import (
	"path/filepath"

	"eepe-mcerror/internal/sweep"
)

// ConvAdj tabulates the convergence adjustment factor over the run grid.
func (a *App) ConvAdj(opts ConvAdjOptions) error {
	params, output, err := a.resolve(CommonOptions{Output: opts.Output}, nil, opts.MaxRuns, nil, nil)
	if err != nil {
		return err
	}

	sw, _, err := a.newSweeper(params.Synthetic.Seed)
	if err != nil {
		return err
	}

	curve, err := sw.ConvAdjCurve(sweep.Method1Grid(params.MaxRuns))
	if err != nil {
		return err
	}

	if opts.CSVPath != "" {
		if err := writeSeriesCSV(opts.CSVPath, "m", curve); err != nil {
			return err
		}
	}
	if opts.PNGDir != "" {
		if err := a.writeSeriesPNG(filepath.Join(opts.PNGDir, "convadj.png"), curve); err != nil {
			return err
		}
	}

	return a.printReport(Report{
		RunID:       a.RunID.String(),
		Command:     "convadj",
		PhiQuantile: a.Config.Estimator.PhiQuantile,
		Series:      []sweep.Series{curve},
	}, output)
}
