// Package eepe holds the constants and error taxonomy shared by the
// sampler, estimator and sweep packages.
package eepe

import "errors"

// PhiInv0975 is the 97.5th percentile of the standard normal distribution,
// the two-sided 95% confidence multiplier used by both error methods.
const PhiInv0975 = 1.96

var (
	// ErrInvalidParameter reports a caller or configuration error such as a
	// negative standard deviation or a run count below two.
	ErrInvalidParameter = errors.New("eepe: invalid parameter")

	// ErrInsufficientData reports a sample set with at most one element,
	// too small for a Method 1 error.
	ErrInsufficientData = errors.New("eepe: insufficient data")
)
