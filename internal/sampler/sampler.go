package sampler

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat/distuv"

	"eepe-mcerror/internal/eepe"
)

// pcgStream is the fixed PCG increment; only the seed varies between runs.
const pcgStream = 0x9e3779b97f4a7c15

// Generator produces the synthetic sample sets fed to the estimators.
type Generator interface {
	// EEPERuns returns count independent EEPE estimates, one per Monte Carlo run.
	EEPERuns(count int, mean, stdDev float64) ([]float64, error)
	// DiscountedExposures returns count discounted positive exposures, one per scenario.
	DiscountedExposures(count int, mean, stdDev float64) ([]float64, error)
}

// Options parameterise the sampler.
type Options struct {
	// Seed fixes the random stream. Zero seeds from the wall clock.
	Seed uint64
}

// Sampler draws synthetic normal data from its own random source.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	src    rand.Source
	seed   uint64
	logger zerolog.Logger
}

// New constructs a sampler.
func New(opts Options, logger zerolog.Logger) *Sampler {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Sampler{
		src:    rand.NewPCG(seed, pcgStream),
		seed:   seed,
		logger: logger.With().Str("component", "sampler").Logger(),
	}
}

// Seed reports the seed the random stream was started from.
func (s *Sampler) Seed() uint64 {
	return s.seed
}

// EEPERuns draws count samples from Normal(mean, stdDev) in draw order.
func (s *Sampler) EEPERuns(count int, mean, stdDev float64) ([]float64, error) {
	out, err := s.normals(count, mean, stdDev)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int("count", count).Msg("drew eepe run samples")
	return out, nil
}

// DiscountedExposures draws count samples from Normal(mean, stdDev) and
// floors every negative value at zero.
func (s *Sampler) DiscountedExposures(count int, mean, stdDev float64) ([]float64, error) {
	out, err := s.normals(count, mean, stdDev)
	if err != nil {
		return nil, err
	}
	clamped := FloorAtZero(out)
	s.logger.Debug().Int("count", count).Int("clamped", clamped).Msg("drew discounted exposure samples")
	return out, nil
}

func (s *Sampler) normals(count int, mean, stdDev float64) ([]float64, error) {
	if err := Validate(count, stdDev); err != nil {
		return nil, err
	}

	out := make([]float64, count)
	dist := distuv.Normal{Mu: mean, Sigma: stdDev, Src: s.src}
	for i := range out {
		out[i] = dist.Rand()
	}
	return out, nil
}

// Validate checks generator inputs. The standard deviation is checked first.
func Validate(count int, stdDev float64) error {
	if math.IsNaN(stdDev) || stdDev < 0 {
		return fmt.Errorf("%w: standard deviation cannot be negative (got %v)", eepe.ErrInvalidParameter, stdDev)
	}
	if count < 0 {
		return fmt.Errorf("%w: sample count cannot be negative (got %d)", eepe.ErrInvalidParameter, count)
	}
	return nil
}

// FloorAtZero replaces every negative value in place with exactly zero and
// returns how many values were replaced.
func FloorAtZero(values []float64) int {
	replaced := 0
	for i, v := range values {
		if v < 0 {
			values[i] = 0
			replaced++
		}
	}
	return replaced
}

var _ Generator = (*Sampler)(nil)
