package app

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"eepe-mcerror/internal/config"
	"eepe-mcerror/internal/eepe"
	"eepe-mcerror/internal/sweep"
)

func ptr[T any](v T) *T { return &v }

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "eepeerr", Environment: "test"},
		Synthetic: config.SyntheticConfig{Mean: 100, Volatility: 10, Seed: 42},
		Method1:   config.Method1Config{Runs: 50, MaxRuns: 100},
		Method2:   config.Method2Config{Scenarios: 1000, MaxScenarios: 2000},
		Estimator: config.EstimatorConfig{PhiQuantile: 1.96, ConvAdjPolicy: "strict", QuantileMode: "pinned"},
		Export:    config.ExportConfig{ChartWidth: 640, ChartHeight: 360, Output: "table"},
	}
}

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	var buf bytes.Buffer
	a := NewApp(cfg, zerolog.Nop())
	a.SetOutput(&buf)
	return a, &buf
}

func TestMethod1JSONReport(t *testing.T) {
	a, buf := newTestApp(t)

	err := a.Method1(context.Background(), Method1Options{CommonOptions: CommonOptions{Output: "json"}})
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "method1", report.Command)
	assert.Equal(t, a.RunID.String(), report.RunID)
	assert.Equal(t, uint64(42), report.Seed)
	require.NotNil(t, report.Method1)
	assert.True(t, report.Method1.Sufficient)
	assert.Equal(t, 50, report.Method1.Result.Runs)
	assert.InDelta(t, 2.009/math.Sqrt(50), report.Method1.Result.ConvAdj, 1e-12)

	require.Len(t, report.Series, 2)
	assert.Equal(t, sweep.Method1Title, report.Series[0].Title)
	assert.Equal(t, sweep.ConvAdjTitle, report.Series[1].Title)
	assert.Len(t, report.Series[0].Points, len(sweep.Method1Grid(100)))
}

func TestMethod1SameSeedSameError(t *testing.T) {
	first, buf1 := newTestApp(t)
	second, buf2 := newTestApp(t)

	opts := Method1Options{CommonOptions: CommonOptions{Output: "json", Seed: ptr(uint64(9))}, Runs: ptr(200)}
	require.NoError(t, first.Method1(context.Background(), opts))
	require.NoError(t, second.Method1(context.Background(), opts))

	var r1, r2 Report
	require.NoError(t, json.Unmarshal(buf1.Bytes(), &r1))
	require.NoError(t, json.Unmarshal(buf2.Bytes(), &r2))
	assert.Equal(t, r1.Method1.Result.Error, r2.Method1.Result.Error)
	assert.Equal(t, 200, r1.Method1.Result.Runs)
}

func TestMethod1RejectsOutOfRangeOverrides(t *testing.T) {
	a, _ := newTestApp(t)

	err := a.Method1(context.Background(), Method1Options{Runs: ptr(1001)})
	require.Error(t, err)

	err = a.Method1(context.Background(), Method1Options{CommonOptions: CommonOptions{Mean: ptr(501.0)}})
	require.Error(t, err)

	err = a.Method1(context.Background(), Method1Options{CommonOptions: CommonOptions{Output: "xml"}})
	require.Error(t, err)
}

func TestMethod1RejectsNonPositiveOverrides(t *testing.T) {
	a, buf := newTestApp(t)

	err := a.Method1(context.Background(), Method1Options{CommonOptions: CommonOptions{Volatility: ptr(-5.0)}})
	require.ErrorContains(t, err, "synthetic.volatility")

	err = a.Method1(context.Background(), Method1Options{Runs: ptr(-3)})
	require.ErrorContains(t, err, "method1.runs")

	err = a.Compare(context.Background(), CompareOptions{Scenarios: ptr(0)})
	require.ErrorContains(t, err, "method2.scenarios")

	assert.Zero(t, buf.Len())
}

func TestMethod2YAMLReport(t *testing.T) {
	a, buf := newTestApp(t)

	err := a.Method2(context.Background(), Method2Options{CommonOptions: CommonOptions{Output: "yaml"}})
	require.NoError(t, err)

	var report Report
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, "method2", report.Command)
	require.NotNil(t, report.Method2)
	assert.True(t, report.Method2.Sufficient)
	assert.Equal(t, 1000, report.Method2.Result.Scenarios)
	assert.Greater(t, report.Method2.Result.Error, 0.0)
	require.Len(t, report.Series, 1)
	assert.Len(t, report.Series[0].Points, len(sweep.Method2Grid(2000)))
}

func TestMethod2WritesCSVAndPNG(t *testing.T) {
	a, _ := newTestApp(t)
	dir := t.TempDir()

	err := a.Method2(context.Background(), Method2Options{
		CommonOptions: CommonOptions{CSVPath: filepath.Join(dir, "out", "m2.csv"), PNGDir: filepath.Join(dir, "charts")},
	})
	require.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "out", "m2.csv"))
	assert.Equal(t, []string{"n", "error_m2"}, records[0])
	assert.Len(t, records, len(sweep.Method2Grid(2000))+1)
	assert.Equal(t, "100", records[1][0])

	assertPNG(t, filepath.Join(dir, "charts", "method2_error.png"))
}

func TestCompareTableAndFiles(t *testing.T) {
	a, buf := newTestApp(t)
	dir := t.TempDir()

	err := a.Compare(context.Background(), CompareOptions{
		CommonOptions: CommonOptions{CSVPath: filepath.Join(dir, "cmp.csv"), PNGDir: dir},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "error_m1(EEPE) for m=50")
	assert.Contains(t, out, "error_m2(EEPE) for N=1000")
	assert.NotContains(t, out, "not enough data")

	records := readCSV(t, filepath.Join(dir, "cmp.csv"))
	require.Len(t, records, 3)
	assert.Equal(t, "Method 1", records[1][0])
	assert.Equal(t, "Method 2", records[2][0])

	assertPNG(t, filepath.Join(dir, "comparison.png"))
}

func TestConvAdjTable(t *testing.T) {
	a, buf := newTestApp(t)

	require.NoError(t, a.ConvAdj(ConvAdjOptions{MaxRuns: ptr(50)}))

	out := buf.String()
	assert.Contains(t, out, sweep.ConvAdjTitle)
	assert.Contains(t, out, sweep.ConvAdjYLabel)
	// m=2 uses the pinned quantile 12.706
	assert.Contains(t, out, "8.9845")
	assert.NotContains(t, out, "Seed")
}

func TestMethod1WritesBothCharts(t *testing.T) {
	a, _ := newTestApp(t)
	dir := t.TempDir()

	err := a.Method1(context.Background(), Method1Options{
		CommonOptions: CommonOptions{CSVPath: filepath.Join(dir, "m1.csv"), PNGDir: dir},
		MaxRuns:       ptr(40),
	})
	require.NoError(t, err)

	records := readCSV(t, filepath.Join(dir, "m1.csv"))
	assert.Equal(t, []string{"m", "error_m1", "conv_adj"}, records[0])
	assertPNG(t, filepath.Join(dir, "method1_error.png"))
	assertPNG(t, filepath.Join(dir, "method1_convadj.png"))
}

func TestWriteSeriesCSVRejectsMisalignedSeries(t *testing.T) {
	a, err := sweep.NewSeries("a", []float64{1, 2}, []float64{0.1, 0.2})
	require.NoError(t, err)
	b, err := sweep.NewSeries("b", []float64{1, 3}, []float64{0.1, 0.2})
	require.NoError(t, err)
	c, err := sweep.NewSeries("c", []float64{1}, []float64{0.1})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "x.csv")
	require.ErrorIs(t, writeSeriesCSV(path, "m", a, b), eepe.ErrInvalidParameter)
	require.ErrorIs(t, writeSeriesCSV(path, "m", a, c), eepe.ErrInvalidParameter)
	require.ErrorIs(t, writeSeriesCSV(path, "m"), eepe.ErrInvalidParameter)
}

func TestWriteSeriesPNGFlatAndShortSeries(t *testing.T) {
	a, _ := newTestApp(t)
	dir := t.TempDir()

	flat, err := sweep.NewSeries("flat", []float64{100, 200, 300}, []float64{0, 0, 0})
	require.NoError(t, err)
	require.NoError(t, a.writeSeriesPNG(filepath.Join(dir, "flat.png"), flat))
	assertPNG(t, filepath.Join(dir, "flat.png"))

	single, err := sweep.NewSeries("single", []float64{10}, []float64{0.5})
	require.NoError(t, err)
	require.ErrorIs(t, a.writeSeriesPNG(filepath.Join(dir, "single.png"), single), eepe.ErrInvalidParameter)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1.9600", formatFloat(1.96, 4))
	assert.Equal(t, "8.9845", formatFloat(12.706/math.Sqrt(2), 4))
	assert.Equal(t, "0.0000", formatFloat(0, 4))
	assert.Equal(t, "+inf", formatFloat(math.Inf(1), 4))
	assert.Equal(t, "nan", formatFloat(math.NaN(), 4))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return records
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "\x89PNG"), "%s is not a PNG", path)
}
