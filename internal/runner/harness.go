// Package runner drives timed trials of the solver methods.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/signalnine/olsbench/internal/solver"
)

var (
	ErrInvalidConfig = errors.New("invalid harness configuration")
	ErrNotDone       = errors.New("harness has not completed")
)

type State int

const (
	StateCollecting State = iota
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Buffer holds one method's elapsed times in seconds, indexed by round.
type Buffer struct {
	Method  string    `json:"method"`
	Elapsed []float64 `json:"elapsed_s"`
}

type HarnessOpts struct {
	Trials int
	// Warmup rounds are run in full before round 0 and then discarded.
	Warmup int
	Runner *TrialRunner
	Logger *slog.Logger
}

// Harness runs every method once per round, in a fixed order, for Trials
// rounds. All work happens on the calling goroutine.
type Harness struct {
	methods []solver.Method
	trials  int
	warmup  int
	runner  *TrialRunner
	logger  *slog.Logger

	buffers []Buffer
	state   State
	err     error
}

func NewHarness(methods []solver.Method, opts HarnessOpts) (*Harness, error) {
	if len(methods) == 0 {
		return nil, fmt.Errorf("%w: no methods", ErrInvalidConfig)
	}
	if opts.Trials < 1 {
		return nil, fmt.Errorf("%w: trials must be at least 1, got %d", ErrInvalidConfig, opts.Trials)
	}
	if opts.Warmup < 0 {
		return nil, fmt.Errorf("%w: warmup must not be negative, got %d", ErrInvalidConfig, opts.Warmup)
	}

	seen := make(map[string]bool, len(methods))
	buffers := make([]Buffer, len(methods))
	for i, m := range methods {
		if seen[m.Name()] {
			return nil, fmt.Errorf("%w: duplicate method %q", ErrInvalidConfig, m.Name())
		}
		seen[m.Name()] = true
		buffers[i] = Buffer{Method: m.Name(), Elapsed: make([]float64, 0, opts.Trials)}
	}

	r := opts.Runner
	if r == nil {
		r = NewTrialRunner()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Harness{
		methods: methods,
		trials:  opts.Trials,
		warmup:  opts.Warmup,
		runner:  r,
		logger:  logger,
		buffers: buffers,
		state:   StateCollecting,
	}, nil
}

func (h *Harness) State() State { return h.state }

// Run collects all rounds. It stops at the first failing trial and returns
// that error; a harness that failed or finished cannot be run again.
func (h *Harness) Run(ctx context.Context) error {
	if h.state == StateDone {
		return errors.New("harness already completed")
	}
	if h.err != nil {
		return fmt.Errorf("harness previously failed: %w", h.err)
	}

	h.logger.InfoContext(ctx, "starting harness",
		slog.Int("methods", len(h.methods)),
		slog.Int("trials", h.trials),
		slog.Int("warmup", h.warmup),
	)

	for i := 0; i < h.warmup; i++ {
		if err := h.round(ctx, i, false); err != nil {
			h.err = fmt.Errorf("warmup round %d: %w", i, err)
			return h.err
		}
	}

	for i := 0; i < h.trials; i++ {
		if err := h.round(ctx, i, true); err != nil {
			h.err = fmt.Errorf("round %d: %w", i, err)
			return h.err
		}
	}

	h.state = StateDone
	h.logger.InfoContext(ctx, "harness finished", slog.Int("rounds", h.trials))
	return nil
}

func (h *Harness) round(ctx context.Context, i int, record bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for j, m := range h.methods {
		elapsed, err := h.runner.Measure(m)
		if err != nil {
			return fmt.Errorf("method %s: %w", m.Name(), err)
		}
		if record {
			h.buffers[j].Elapsed = append(h.buffers[j].Elapsed, elapsed)
		}
	}
	h.logger.DebugContext(ctx, "round complete",
		slog.Int("round", i),
		slog.Bool("warmup", !record),
	)
	return nil
}

// Buffers returns copies of the per-method buffers in method order.
func (h *Harness) Buffers() ([]Buffer, error) {
	if h.state != StateDone {
		return nil, ErrNotDone
	}
	out := make([]Buffer, len(h.buffers))
	for i, b := range h.buffers {
		out[i] = Buffer{Method: b.Method, Elapsed: append([]float64(nil), b.Elapsed...)}
	}
	return out, nil
}
