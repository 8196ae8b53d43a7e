// Package estimator implements the two Monte Carlo error estimators for EEPE.
//
// Method 1 works from m independent EEPE estimates:
//
//	error_m1 = sqrt(var_m1) * convAdj(m) * phi
//	convAdj(m) = t(m-1, 0.975) / sqrt(m)
//
// Method 2 works from N discounted positive exposures of a single run:
//
//	error_m2 = phi * sqrt(var_m2)
//
// Both variances divide by n. phi is the 97.5% standard normal quantile
// (1.96 by default) and is injected through Options.
package estimator

import (
	"fmt"
	"math"

	"eepe-mcerror/internal/eepe"
)

// Options configure an Estimator. The zero value is not valid; start from
// DefaultOptions.
type Options struct {
	PhiQuantile float64
	Policy      ConvAdjPolicy
	Quantiles   QuantileMode
}

// DefaultOptions returns phi = 1.96, the strict policy and pinned quantiles.
func DefaultOptions() Options {
	return Options{
		PhiQuantile: eepe.PhiInv0975,
		Policy:      PolicyStrict,
		Quantiles:   QuantilePinned,
	}
}

// Validate checks the option values.
func (o Options) Validate() error {
	if math.IsNaN(o.PhiQuantile) || math.IsInf(o.PhiQuantile, 0) || o.PhiQuantile <= 0 {
		return fmt.Errorf("%w: phi quantile must be a positive number (got %v)", eepe.ErrInvalidParameter, o.PhiQuantile)
	}
	if o.Policy != PolicyStrict && o.Policy != PolicySentinel {
		return fmt.Errorf("%w: unknown convergence adjustment policy %d", eepe.ErrInvalidParameter, int(o.Policy))
	}
	if o.Quantiles != QuantilePinned && o.Quantiles != QuantileExact {
		return fmt.Errorf("%w: unknown quantile mode %d", eepe.ErrInvalidParameter, int(o.Quantiles))
	}
	return nil
}

// Estimator applies the error formulas with a fixed set of options. It holds
// no mutable state.
type Estimator struct {
	opts Options
}

// New constructs an Estimator.
func New(opts Options) (*Estimator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Estimator{opts: opts}, nil
}

// Options returns the options the estimator was built with.
func (e *Estimator) Options() Options {
	return e.opts
}

// Phi returns the normal quantile multiplier.
func (e *Estimator) Phi() float64 {
	return e.opts.PhiQuantile
}

// ConvergenceAdjustment applies the configured policy and quantile mode.
func (e *Estimator) ConvergenceAdjustment(m int) (float64, error) {
	return convergenceAdjustment(m, e.opts.Policy, e.opts.Quantiles)
}

// Method1Result is the outcome of a Method 1 estimate.
type Method1Result struct {
	Runs     int     `json:"runs" yaml:"runs"`
	Variance float64 `json:"variance" yaml:"variance"`
	ConvAdj  float64 `json:"conv_adj" yaml:"conv_adj"`
	Error    float64 `json:"error" yaml:"error"`
}

// Method2Result is the outcome of a Method 2 estimate.
type Method2Result struct {
	Scenarios int     `json:"scenarios" yaml:"scenarios"`
	Variance  float64 `json:"variance" yaml:"variance"`
	Error     float64 `json:"error" yaml:"error"`
}

// Method1 estimates the Monte Carlo error from EEPE run estimates, taking
// m as the number of runs. Sets with at most one run return
// ErrInsufficientData.
func (e *Estimator) Method1(runs []float64) (Method1Result, error) {
	m := len(runs)
	if m <= 1 {
		return Method1Result{Runs: m}, fmt.Errorf("%w: method 1 needs at least 2 runs (got %d)", eepe.ErrInsufficientData, m)
	}

	convAdj, err := e.ConvergenceAdjustment(m)
	if err != nil {
		return Method1Result{Runs: m}, err
	}

	variance := VarianceM1(runs)
	return Method1Result{
		Runs:     m,
		Variance: variance,
		ConvAdj:  convAdj,
		Error:    ErrorM1(variance, convAdj, e.opts.PhiQuantile),
	}, nil
}

// Method2 estimates the Monte Carlo error from discounted exposures. Sets
// with at most one scenario have zero variance and therefore zero error.
func (e *Estimator) Method2(exposures []float64) Method2Result {
	variance := VarianceM2(exposures)
	return Method2Result{
		Scenarios: len(exposures),
		Variance:  variance,
		Error:     ErrorM2(variance, e.opts.PhiQuantile),
	}
}
