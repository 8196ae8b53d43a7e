package app

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"eepe-mcerror/internal/config"
	"eepe-mcerror/internal/sweep"
)

func (a *App) printReport(report Report, output config.Output) error {
	switch output {
	case config.OutputJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case config.OutputYAML:
		enc := yaml.NewEncoder(a.out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	default:
		return a.printTable(report)
	}
}

func (a *App) printTable(report Report) error {
	writer := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(writer, "Run\t%s\n", report.RunID)
	fmt.Fprintf(writer, "Command\t%s\n", report.Command)
	if report.Command != "convadj" {
		fmt.Fprintf(writer, "Seed\t%d\n", report.Seed)
		fmt.Fprintf(writer, "Mean (μ)\t%s\n", formatFloat(report.Mean, 4))
		fmt.Fprintf(writer, "Volatility (σ)\t%s\n", formatFloat(report.Volatility, 4))
	}
	fmt.Fprintf(writer, "Φ⁻¹(0.975)\t%s\n", formatFloat(report.PhiQuantile, 4))

	if m1 := report.Method1; m1 != nil {
		fmt.Fprintf(writer, "error_m1(EEPE) for m=%d\t%s%s\n", m1.Result.Runs, formatFloat(m1.Result.Error, 4), insufficientNote(m1.Sufficient))
		if m1.Sufficient {
			fmt.Fprintf(writer, "  var_m1\t%s\n", formatFloat(m1.Result.Variance, 4))
			fmt.Fprintf(writer, "  convAdj(m)\t%s\n", formatFloat(m1.Result.ConvAdj, 4))
		}
	}
	if m2 := report.Method2; m2 != nil {
		fmt.Fprintf(writer, "error_m2(EEPE) for N=%d\t%s%s\n", m2.Result.Scenarios, formatFloat(m2.Result.Error, 4), insufficientNote(m2.Sufficient))
		if m2.Sufficient {
			fmt.Fprintf(writer, "  var_m2\t%s\n", formatFloat(m2.Result.Variance, 4))
		}
	}
	if err := writer.Flush(); err != nil {
		return err
	}

	for _, s := range report.Series {
		if err := a.printSeries(s, report.Command == "convadj"); err != nil {
			return err
		}
	}
	return nil
}

// printSeries prints a one-line summary of a series, or every point when
// full is set.
func (a *App) printSeries(s sweep.Series, full bool) error {
	fmt.Fprintf(a.out, "\n%s\n", s.Title)
	writer := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)

	if full {
		fmt.Fprintf(writer, "%s\t%s\n", s.XLabel, s.YLabel)
		for _, p := range s.Points {
			fmt.Fprintf(writer, "%s\t%s\n", strconv.FormatFloat(p.X, 'f', -1, 64), formatFloat(p.Y, 4))
		}
		return writer.Flush()
	}

	if s.Len() == 0 {
		fmt.Fprintln(writer, "no points")
		return writer.Flush()
	}
	first, last := s.Points[0], s.Points[s.Len()-1]
	lo, hi := minMax(s.YValues())
	fmt.Fprintln(writer, "Points\tFirst\tLast\tMin\tMax")
	fmt.Fprintf(writer, "%d\t%s @ %s\t%s @ %s\t%s\t%s\n",
		s.Len(),
		formatFloat(first.Y, 4), strconv.FormatFloat(first.X, 'f', -1, 64),
		formatFloat(last.Y, 4), strconv.FormatFloat(last.X, 'f', -1, 64),
		formatFloat(lo, 4),
		formatFloat(hi, 4),
	)
	return writer.Flush()
}

func insufficientNote(sufficient bool) string {
	if sufficient {
		return ""
	}
	return " (not enough data)"
}

// formatFloat renders v with a fixed number of decimals. Non-finite values,
// which decimal cannot represent, fall back to strconv.
func formatFloat(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strings.ToLower(strconv.FormatFloat(v, 'f', -1, 64))
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}
