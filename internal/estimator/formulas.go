package estimator

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// VarianceM1 is the population variance (divide by n) of the EEPE run
// estimates. A single value has variance 0. The variance of an empty set is
// undefined and reported as NaN; callers check the size before calling.
func VarianceM1(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	return stat.PopVariance(values, nil)
}

// ErrorM1 is the Method 1 Monte Carlo error sqrt(variance) * convAdj * phi.
func ErrorM1(variance, convAdj, phi float64) float64 {
	return math.Sqrt(variance) * convAdj * phi
}

// VarianceM2 is the population variance (divide by n) of the discounted
// exposures. Sets with at most one value yield 0.
func VarianceM2(values []float64) float64 {
	if len(values) <= 1 {
		return 0.0
	}
	return stat.PopVariance(values, nil)
}

// ErrorM2 is the Method 2 Monte Carlo error phi * sqrt(variance).
func ErrorM2(variance, phi float64) float64 {
	return phi * math.Sqrt(variance)
}
