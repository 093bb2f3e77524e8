package runner

import (
	"fmt"
	"time"

	"github.com/signalnine/olsbench/internal/solver"
)

// Clock returns the current time. The trial runner reads it once before and
// once after each timed call.
type Clock func() time.Time

// TrialRunner times single invocations of a method.
type TrialRunner struct {
	now Clock
}

type Option func(*TrialRunner)

// WithClock replaces time.Now.
func WithClock(c Clock) Option {
	return func(r *TrialRunner) { r.now = c }
}

func NewTrialRunner(opts ...Option) *TrialRunner {
	r := &TrialRunner{now: time.Now}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Measure runs m once and returns the elapsed wall-clock time in seconds.
// Prepare, when m implements solver.Preparer, runs before the clock starts.
// Errors from m are returned as is; there are no retries.
func (r *TrialRunner) Measure(m solver.Method) (float64, error) {
	if p, ok := m.(solver.Preparer); ok {
		if err := p.Prepare(); err != nil {
			return 0, fmt.Errorf("preparing %s: %w", m.Name(), err)
		}
	}

	start := r.now()
	err := m.Run()
	elapsed := r.now().Sub(start)
	if err != nil {
		return 0, err
	}
	if elapsed < 0 {
		return 0, fmt.Errorf("%s: clock went backwards (%s)", m.Name(), elapsed)
	}
	return elapsed.Seconds(), nil
}
