package runner_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signalnine/olsbench/internal/runner"
	"github.com/signalnine/olsbench/internal/solver"
	"github.com/signalnine/olsbench/internal/stats"
)

// roundMethod records the round counter it observed on each Run so the
// ordering across methods can be checked afterwards.
type roundMethod struct {
	name  string
	log   *[]event
	count int
}

type event struct {
	method string
	round  int
}

func (m *roundMethod) Name() string { return m.name }

func (m *roundMethod) Run() error {
	*m.log = append(*m.log, event{method: m.name, round: m.count})
	m.count++
	return nil
}

func TestHarnessInterleavesRounds(t *testing.T) {
	var log []event
	methods := []solver.Method{
		&roundMethod{name: "a", log: &log},
		&roundMethod{name: "b", log: &log},
		&roundMethod{name: "c", log: &log},
	}
	h, err := runner.NewHarness(methods, runner.HarnessOpts{Trials: 4})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	require.Len(t, log, 12)
	for i, ev := range log {
		assert.Equal(t, i/3, ev.round, "event %d", i)
		assert.Equal(t, methods[i%3].Name(), ev.method, "event %d", i)
	}
	// No method starts round i+1 before every method finished round i.
	maxRound := -1
	for _, ev := range log {
		assert.GreaterOrEqual(t, ev.round, maxRound)
		if ev.round > maxRound {
			maxRound = ev.round
		}
	}
}

func TestHarnessBufferLengths(t *testing.T) {
	methods := []solver.Method{&fakeMethod{name: "x"}, &fakeMethod{name: "y"}, &fakeMethod{name: "z"}}
	h, err := runner.NewHarness(methods, runner.HarnessOpts{
		Trials: 7,
		Runner: runner.NewTrialRunner(runner.WithClock(stepClock(time.Millisecond))),
	})
	require.NoError(t, err)

	_, err = h.Buffers()
	assert.ErrorIs(t, err, runner.ErrNotDone)
	assert.Equal(t, runner.StateCollecting, h.State())

	require.NoError(t, h.Run(context.Background()))
	assert.Equal(t, runner.StateDone, h.State())

	bufs, err := h.Buffers()
	require.NoError(t, err)
	require.Len(t, bufs, 3)
	for i, b := range bufs {
		assert.Equal(t, methods[i].Name(), b.Method)
		assert.Len(t, b.Elapsed, 7)
		for _, v := range b.Elapsed {
			assert.InDelta(t, 0.001, v, 1e-12)
		}
	}
}

func TestHarnessBuffersAreCopies(t *testing.T) {
	h, err := runner.NewHarness([]solver.Method{&fakeMethod{name: "x"}}, runner.HarnessOpts{Trials: 2})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	first, err := h.Buffers()
	require.NoError(t, err)
	first[0].Elapsed[0] = -1

	second, err := h.Buffers()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, second[0].Elapsed[0], 0.0)
}

func TestHarnessWarmupIsDiscarded(t *testing.T) {
	m := &fakeMethod{name: "w"}
	h, err := runner.NewHarness([]solver.Method{m}, runner.HarnessOpts{Trials: 3, Warmup: 2})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	assert.Equal(t, 5, m.runs)
	bufs, err := h.Buffers()
	require.NoError(t, err)
	assert.Len(t, bufs[0].Elapsed, 3)
}

func TestHarnessStopsOnFitFailure(t *testing.T) {
	boom := errors.New("singular")
	bad := &fakeMethod{name: "bad", err: boom}
	after := &fakeMethod{name: "after"}
	h, err := runner.NewHarness([]solver.Method{&fakeMethod{name: "ok"}, bad, after}, runner.HarnessOpts{Trials: 5})
	require.NoError(t, err)

	err = h.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, bad.runs)
	assert.Equal(t, 0, after.runs)
	assert.Equal(t, runner.StateCollecting, h.State())

	assert.Error(t, h.Run(context.Background()))
	_, err = h.Buffers()
	assert.ErrorIs(t, err, runner.ErrNotDone)
}

func TestHarnessRejectsSecondRun(t *testing.T) {
	h, err := runner.NewHarness([]solver.Method{&fakeMethod{name: "x"}}, runner.HarnessOpts{Trials: 1})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))
	assert.Error(t, h.Run(context.Background()))
}

func TestHarnessHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &fakeMethod{name: "x"}
	h, err := runner.NewHarness([]solver.Method{m}, runner.HarnessOpts{Trials: 3})
	require.NoError(t, err)

	assert.ErrorIs(t, h.Run(ctx), context.Canceled)
	assert.Equal(t, 0, m.runs)
}

func TestNewHarnessValidation(t *testing.T) {
	one := []solver.Method{&fakeMethod{name: "x"}}
	tests := []struct {
		name    string
		methods []solver.Method
		opts    runner.HarnessOpts
	}{
		{"no methods", nil, runner.HarnessOpts{Trials: 1}},
		{"zero trials", one, runner.HarnessOpts{Trials: 0}},
		{"negative warmup", one, runner.HarnessOpts{Trials: 1, Warmup: -1}},
		{"duplicate names", []solver.Method{&fakeMethod{name: "x"}, &fakeMethod{name: "x"}}, runner.HarnessOpts{Trials: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.NewHarness(tt.methods, tt.opts)
			assert.ErrorIs(t, err, runner.ErrInvalidConfig)
		})
	}
}

func TestHarnessEndToEnd(t *testing.T) {
	methods, err := solver.NewAll(solver.Names(), solver.Options{Rows: 200, Columns: 5, Seed: 2024})
	require.NoError(t, err)

	h, err := runner.NewHarness(methods, runner.HarnessOpts{Trials: 20})
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background()))

	bufs, err := h.Buffers()
	require.NoError(t, err)
	require.Len(t, bufs, 3)
	for _, b := range bufs {
		require.Len(t, b.Elapsed, 20)
		s, err := stats.Summarize(b.Elapsed)
		require.NoError(t, err, b.Method)
		assert.False(t, math.IsInf(s.Mean, 0) || math.IsNaN(s.Mean), b.Method)
		assert.Greater(t, s.Mean, 0.0, b.Method)
	}
}
