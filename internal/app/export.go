package app

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"eepe-mcerror/internal/eepe"
	"eepe-mcerror/internal/sweep"
)

// writeSeriesCSV writes series sharing the same x coordinates as columns
// next to one x column.
func writeSeriesCSV(path, xHeader string, series ...sweep.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("%w: no series to export", eepe.ErrInvalidParameter)
	}
	base := series[0]
	for _, s := range series[1:] {
		if s.Len() != base.Len() {
			return fmt.Errorf("%w: series %q has %d points, %q has %d", eepe.ErrInvalidParameter, s.Name, s.Len(), base.Name, base.Len())
		}
		for i, p := range s.Points {
			if p.X != base.Points[i].X {
				return fmt.Errorf("%w: series %q and %q disagree at point %d", eepe.ErrInvalidParameter, s.Name, base.Name, i)
			}
		}
	}

	header := []string{xHeader}
	for _, s := range series {
		header = append(header, s.Name)
	}

	rows := make([][]string, 0, base.Len())
	for i, p := range base.Points {
		record := []string{strconv.FormatFloat(p.X, 'f', -1, 64)}
		for _, s := range series {
			record = append(record, formatFloat(s.Points[i].Y, 6))
		}
		rows = append(rows, record)
	}
	return writeCSV(path, header, rows)
}

func writeComparisonCSV(path string, cmp sweep.Comparison) error {
	rows := [][]string{
		{"Method 1", strconv.Itoa(cmp.Method1.Result.Runs), formatFloat(cmp.Method1.Result.Variance, 6), formatFloat(cmp.Method1.Result.Error, 6), strconv.FormatBool(cmp.Method1.Sufficient)},
		{"Method 2", strconv.Itoa(cmp.Method2.Result.Scenarios), formatFloat(cmp.Method2.Result.Variance, 6), formatFloat(cmp.Method2.Result.Error, 6), strconv.FormatBool(cmp.Method2.Sufficient)},
	}
	return writeCSV(path, []string{"method", "sample_size", "variance", "error", "sufficient"}, rows)
}

func writeCSV(path string, header []string, rows [][]string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return err
	}
	if err := writer.WriteAll(rows); err != nil {
		return err
	}
	return writer.Error()
}

func (a *App) writeSeriesPNG(path string, s sweep.Series) error {
	if s.Len() < 2 {
		return fmt.Errorf("%w: series %q needs at least two points to chart", eepe.ErrInvalidParameter, s.Name)
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	valueFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.3f")
	}
	countFormatter := func(v interface{}) string {
		return chart.FloatValueFormatterWithFormat(v, "%.0f")
	}

	ys := s.YValues()
	yAxis := chart.YAxis{
		Name:           s.YLabel,
		ValueFormatter: valueFormatter,
	}
	if lo, hi := minMax(ys); lo == hi {
		yAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	graph := chart.Chart{
		Title:  s.Title,
		Width:  a.Config.Export.ChartWidth,
		Height: a.Config.Export.ChartHeight,
		XAxis: chart.XAxis{
			Name:           s.XLabel,
			ValueFormatter: countFormatter,
		},
		YAxis: yAxis,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    s.Name,
				XValues: s.XValues(),
				YValues: ys,
			},
		},
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	a.Logger.Info().Str("path", path).Int("points", s.Len()).Msg("chart written")
	return nil
}

func (a *App) writeComparisonPNG(path string, cmp sweep.Comparison) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	labels := cmp.Labels()
	values := cmp.Errors()
	bars := make([]chart.Value, len(values))
	for i := range values {
		bars[i] = chart.Value{Label: labels[i], Value: values[i]}
	}

	_, hi := minMax(values)
	if hi <= 0 {
		hi = 1
	}

	graph := chart.BarChart{
		Title:    sweep.ComparisonTitle,
		Width:    a.Config.Export.ChartWidth,
		Height:   a.Config.Export.ChartHeight,
		BarWidth: 120,
		YAxis: chart.YAxis{
			Name: sweep.ComparisonYLabel,
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.3f")
			},
			Range: &chart.ContinuousRange{Min: 0, Max: hi * 1.1},
		},
		Bars: bars,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := graph.Render(chart.PNG, file); err != nil {
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	a.Logger.Info().Str("path", path).Msg("comparison chart written")
	return nil
}

func minMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
