// Package resample draws bootstrap means from a timing buffer to show the
// sampling distribution of the mean approaching normality.
package resample

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

var ErrInvalidParameter = errors.New("invalid resample parameter")

// Resampler owns a random source that is independent of any sample
// generator used while collecting the buffer.
type Resampler struct {
	rng  *rand.Rand
	seed uint64
}

// New returns a Resampler seeded with seed. A zero seed is replaced by one
// derived from the clock; Seed reports the value actually used.
func New(seed uint64) *Resampler {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Resampler{
		rng:  rand.New(rand.NewPCG(seed, seed>>1|1)),
		seed: seed,
	}
}

func (r *Resampler) Seed() uint64 { return r.seed }

// Means draws k values with replacement from buf, averages them, and repeats
// that reps times. buf is only read. k may exceed len(buf).
func (r *Resampler) Means(buf []float64, k, reps int) ([]float64, error) {
	switch {
	case len(buf) == 0:
		return nil, fmt.Errorf("%w: empty buffer", ErrInvalidParameter)
	case k < 1:
		return nil, fmt.Errorf("%w: subsample size must be at least 1, got %d", ErrInvalidParameter, k)
	case reps < 1:
		return nil, fmt.Errorf("%w: repetitions must be at least 1, got %d", ErrInvalidParameter, reps)
	}

	means := make([]float64, reps)
	n := len(buf)
	for i := range means {
		var sum float64
		for j := 0; j < k; j++ {
			sum += buf[r.rng.IntN(n)]
		}
		means[i] = sum / float64(k)
	}
	return means, nil
}
