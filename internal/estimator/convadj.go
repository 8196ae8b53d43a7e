package estimator

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"eepe-mcerror/internal/eepe"
)

// pinnedT975 maps a run count m to the reference 97.5% Student-t quantile
// with m-1 degrees of freedom.
var pinnedT975 = map[int]float64{
	2:    12.706,
	50:   2.009,
	100:  1.984,
	1000: 1.962,
}

// QuantileMode selects how t quantiles outside the pinned table are obtained.
type QuantileMode int

const (
	// QuantilePinned approximates every unpinned quantile by the normal
	// quantile 1.96. This understates the quantile for small m.
	QuantilePinned QuantileMode = iota
	// QuantileExact computes unpinned quantiles from the Student-t distribution.
	QuantileExact
)

// ParseQuantileMode maps a config value to a QuantileMode.
func ParseQuantileMode(v string) (QuantileMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "pinned":
		return QuantilePinned, nil
	case "exact":
		return QuantileExact, nil
	default:
		return 0, fmt.Errorf("%w: unknown quantile mode %q", eepe.ErrInvalidParameter, v)
	}
}

func (q QuantileMode) String() string {
	switch q {
	case QuantilePinned:
		return "pinned"
	case QuantileExact:
		return "exact"
	default:
		return fmt.Sprintf("QuantileMode(%d)", int(q))
	}
}

// ConvAdjPolicy decides what the convergence adjustment does for m <= 1.
type ConvAdjPolicy int

const (
	// PolicyStrict rejects m <= 1 with ErrInvalidParameter.
	PolicyStrict ConvAdjPolicy = iota
	// PolicySentinel returns +Inf for m == 1 and 0 for m <= 0.
	PolicySentinel
)

// ParsePolicy maps a config value to a ConvAdjPolicy.
func ParsePolicy(v string) (ConvAdjPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "strict":
		return PolicyStrict, nil
	case "sentinel":
		return PolicySentinel, nil
	default:
		return 0, fmt.Errorf("%w: unknown convergence adjustment policy %q", eepe.ErrInvalidParameter, v)
	}
}

func (p ConvAdjPolicy) String() string {
	switch p {
	case PolicyStrict:
		return "strict"
	case PolicySentinel:
		return "sentinel"
	default:
		return fmt.Sprintf("ConvAdjPolicy(%d)", int(p))
	}
}

// TQuantile975 returns the 97.5% Student-t quantile used for m runs
// (m-1 degrees of freedom). Pinned values take precedence in every mode.
func TQuantile975(m int, mode QuantileMode) float64 {
	if q, ok := pinnedT975[m]; ok {
		return q
	}
	if mode == QuantileExact && m > 1 {
		return distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m - 1)}.Quantile(0.975)
	}
	return eepe.PhiInv0975
}

// ConvergenceAdjustment returns t(m-1, 0.975) / sqrt(m) using the pinned
// quantile table and the 1.96 approximation elsewhere. It fails with
// ErrInvalidParameter for m <= 1.
func ConvergenceAdjustment(m int) (float64, error) {
	return convergenceAdjustment(m, PolicyStrict, QuantilePinned)
}

func convergenceAdjustment(m int, policy ConvAdjPolicy, mode QuantileMode) (float64, error) {
	if m <= 1 {
		if policy == PolicySentinel {
			if m == 1 {
				return math.Inf(1), nil
			}
			return 0.0, nil
		}
		return 0, fmt.Errorf("%w: run count m must be greater than 1 (got %d)", eepe.ErrInvalidParameter, m)
	}
	return TQuantile975(m, mode) / math.Sqrt(float64(m)), nil
}
