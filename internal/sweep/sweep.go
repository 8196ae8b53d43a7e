// Package sweep maps parameter sweeps through the sampler and estimator to
// (x, error) series ready for display. A point whose sample set is too small
// for an estimate is reported as 0.0 so a chart can still be drawn.
package sweep

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"eepe-mcerror/internal/eepe"
	"eepe-mcerror/internal/estimator"
	"eepe-mcerror/internal/sampler"
)

// Sweeper drives the sampler and estimator once per sweep point.
type Sweeper struct {
	generator sampler.Generator
	estimator *estimator.Estimator
	logger    zerolog.Logger
}

// New constructs a Sweeper.
func New(generator sampler.Generator, est *estimator.Estimator, logger zerolog.Logger) *Sweeper {
	return &Sweeper{
		generator: generator,
		estimator: est,
		logger:    logger.With().Str("component", "sweep").Logger(),
	}
}

// Method1Estimate is a single Method 1 estimate. Sufficient is false when
// the run set had at most one element and Result.Error was substituted by 0.
type Method1Estimate struct {
	Result     estimator.Method1Result `json:"result" yaml:"result"`
	Sufficient bool                    `json:"sufficient" yaml:"sufficient"`
}

// Method2Estimate is a single Method 2 estimate. Sufficient is false when
// the scenario set had at most one element and Result.Error is 0.
type Method2Estimate struct {
	Result     estimator.Method2Result `json:"result" yaml:"result"`
	Sufficient bool                    `json:"sufficient" yaml:"sufficient"`
}

// Comparison holds both estimates under one (mean, stdDev).
type Comparison struct {
	Method1 Method1Estimate `json:"method1" yaml:"method1"`
	Method2 Method2Estimate `json:"method2" yaml:"method2"`
}

// Labels returns the bar labels of the comparison chart.
func (c Comparison) Labels() []string {
	return []string{"Method 1", "Method 2"}
}

// Errors returns the two errors in label order.
func (c Comparison) Errors() []float64 {
	return []float64{c.Method1.Result.Error, c.Method2.Result.Error}
}

// EstimateMethod1 draws m EEPE run estimates and computes the Method 1 error.
func (s *Sweeper) EstimateMethod1(m int, mean, stdDev float64) (Method1Estimate, error) {
	runs, err := s.generator.EEPERuns(m, mean, stdDev)
	if err != nil {
		return Method1Estimate{}, fmt.Errorf("generate eepe runs: %w", err)
	}

	res, err := s.estimator.Method1(runs)
	if errors.Is(err, eepe.ErrInsufficientData) {
		s.logger.Debug().Int("m", m).Msg("not enough runs for method 1; reporting 0")
		return Method1Estimate{Result: estimator.Method1Result{Runs: len(runs)}}, nil
	}
	if err != nil {
		return Method1Estimate{}, err
	}
	return Method1Estimate{Result: res, Sufficient: true}, nil
}

// EstimateMethod2 draws n discounted exposures and computes the Method 2 error.
func (s *Sweeper) EstimateMethod2(n int, mean, stdDev float64) (Method2Estimate, error) {
	exposures, err := s.generator.DiscountedExposures(n, mean, stdDev)
	if err != nil {
		return Method2Estimate{}, fmt.Errorf("generate discounted exposures: %w", err)
	}

	if len(exposures) <= 1 {
		s.logger.Debug().Int("n", n).Msg("not enough scenarios for method 2; reporting 0")
		return Method2Estimate{Result: estimator.Method2Result{Scenarios: len(exposures)}}, nil
	}
	return Method2Estimate{Result: s.estimator.Method2(exposures), Sufficient: true}, nil
}

// Method1Errors sweeps the run count over grid.
func (s *Sweeper) Method1Errors(ctx context.Context, grid []int, mean, stdDev float64) (Series, error) {
	xs := make([]float64, 0, len(grid))
	ys := make([]float64, 0, len(grid))
	for _, m := range grid {
		if err := ctx.Err(); err != nil {
			return Series{}, err
		}
		est, err := s.EstimateMethod1(m, mean, stdDev)
		if err != nil {
			return Series{}, fmt.Errorf("method 1 sweep at m=%d: %w", m, err)
		}
		xs = append(xs, float64(m))
		ys = append(ys, est.Result.Error)
	}

	s.logger.Info().Int("points", len(xs)).Float64("mean", mean).Float64("std_dev", stdDev).Msg("method 1 sweep complete")
	series, err := NewSeries("error_m1", xs, ys)
	if err != nil {
		return Series{}, err
	}
	return series.WithLabels(Method1Title, Method1XLabel, Method1YLabel), nil
}

// ConvAdjCurve evaluates the convergence adjustment over grid, reporting 0
// for m <= 1.
func (s *Sweeper) ConvAdjCurve(grid []int) (Series, error) {
	xs := make([]float64, 0, len(grid))
	ys := make([]float64, 0, len(grid))
	for _, m := range grid {
		y := 0.0
		if m > 1 {
			v, err := s.estimator.ConvergenceAdjustment(m)
			if err != nil {
				return Series{}, fmt.Errorf("convergence adjustment at m=%d: %w", m, err)
			}
			y = v
		}
		xs = append(xs, float64(m))
		ys = append(ys, y)
	}

	series, err := NewSeries("conv_adj", xs, ys)
	if err != nil {
		return Series{}, err
	}
	return series.WithLabels(ConvAdjTitle, ConvAdjXLabel, ConvAdjYLabel), nil
}

// Method2Errors sweeps the scenario count over grid.
func (s *Sweeper) Method2Errors(ctx context.Context, grid []int, mean, stdDev float64) (Series, error) {
	xs := make([]float64, 0, len(grid))
	ys := make([]float64, 0, len(grid))
	for _, n := range grid {
		if err := ctx.Err(); err != nil {
			return Series{}, err
		}
		est, err := s.EstimateMethod2(n, mean, stdDev)
		if err != nil {
			return Series{}, fmt.Errorf("method 2 sweep at N=%d: %w", n, err)
		}
		xs = append(xs, float64(n))
		ys = append(ys, est.Result.Error)
	}

	s.logger.Info().Int("points", len(xs)).Float64("mean", mean).Float64("std_dev", stdDev).Msg("method 2 sweep complete")
	series, err := NewSeries("error_m2", xs, ys)
	if err != nil {
		return Series{}, err
	}
	return series.WithLabels(Method2Title, Method2XLabel, Method2YLabel), nil
}

// Compare computes the Method 1 error for m runs and the Method 2 error for
// n scenarios under the same (mean, stdDev).
func (s *Sweeper) Compare(ctx context.Context, m, n int, mean, stdDev float64) (Comparison, error) {
	if err := ctx.Err(); err != nil {
		return Comparison{}, err
	}
	m1, err := s.EstimateMethod1(m, mean, stdDev)
	if err != nil {
		return Comparison{}, err
	}
	m2, err := s.EstimateMethod2(n, mean, stdDev)
	if err != nil {
		return Comparison{}, err
	}
	return Comparison{Method1: m1, Method2: m2}, nil
}
