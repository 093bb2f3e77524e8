//go:build integration

package main

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/signalnine/olsbench/internal/config"
	"github.com/signalnine/olsbench/internal/resample"
	"github.com/signalnine/olsbench/internal/result"
	"github.com/signalnine/olsbench/internal/runner"
	"github.com/signalnine/olsbench/internal/solver"
	"github.com/signalnine/olsbench/internal/stats"
)

// TestFullPipeline runs a realistically sized benchmark, stores it, reads it
// back, and resamples one buffer.
func TestFullPipeline(t *testing.T) {
	cfg := config.Default()
	cfg.Trials = 200
	cfg.Warmup = 10
	cfg.Seed = 1
	cfg.ModelMode = string(solver.ModeBoth)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	methods, err := solver.NewAll(cfg.Methods, solver.Options{
		Rows:      cfg.Rows,
		Columns:   cfg.Columns,
		Seed:      cfg.Seed,
		ModelMode: solver.Mode(cfg.ModelMode),
	})
	if err != nil {
		t.Fatalf("methods: %v", err)
	}
	h, err := runner.NewHarness(methods, runner.HarnessOpts{Trials: cfg.Trials, Warmup: cfg.Warmup})
	if err != nil {
		t.Fatalf("harness: %v", err)
	}

	started := time.Now()
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	buffers, err := h.Buffers()
	if err != nil {
		t.Fatalf("buffers: %v", err)
	}

	run, err := result.NewRun(*cfg, started, time.Since(started), buffers)
	if err != nil {
		t.Fatalf("new run: %v", err)
	}
	runDir, err := result.CreateRunDir(t.TempDir())
	if err != nil {
		t.Fatalf("run dir: %v", err)
	}
	if err := result.WriteRun(runDir, run); err != nil {
		t.Fatalf("write: %v", err)
	}
	stored, err := result.ReadRun(runDir)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	for _, s := range stored.Summaries {
		if s.N != cfg.Trials {
			t.Errorf("%s: got %d trials, want %d", s.Method, s.N, cfg.Trials)
		}
		if !(s.Mean > 0) || math.IsInf(s.Mean, 0) {
			t.Errorf("%s: mean %v is not a finite positive number", s.Method, s.Mean)
		}
	}

	buf, ok := stored.Buffer(cfg.CLT.Method)
	if !ok {
		t.Fatalf("no buffer for %s", cfg.CLT.Method)
	}
	means, err := resample.New(7).Means(buf, cfg.CLT.SubsampleSize, cfg.CLT.Repetitions)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range buf {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	for _, m := range means {
		if m < lo || m > hi {
			t.Fatalf("mean %v outside buffer range [%v, %v]", m, lo, hi)
		}
	}
	if _, err := stats.Skewness(means); err != nil {
		t.Fatalf("skewness: %v", err)
	}
}
