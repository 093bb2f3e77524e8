package result_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/signalnine/olsbench/internal/config"
	"github.com/signalnine/olsbench/internal/result"
	"github.com/signalnine/olsbench/internal/runner"
)

func testBuffers() []runner.Buffer {
	return []runner.Buffer{
		{Method: "lstsq", Elapsed: []float64{0.10, 0.12, 0.08, 0.14, 0.11}},
		{Method: "direct", Elapsed: []float64{0.05, 0.06, 0.04, 0.05, 0.05}},
	}
}

func TestNewRun(t *testing.T) {
	cfg := config.Default()
	run, err := result.NewRun(*cfg, time.Now(), 3*time.Second, testBuffers())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if run.ID == "" {
		t.Error("expected a run id")
	}
	if run.DurationS != 3 {
		t.Errorf("duration: got %f, want 3", run.DurationS)
	}
	if len(run.Summaries) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(run.Summaries))
	}
	if got := run.Summaries[0].Mean; got < 0.11-1e-9 || got > 0.11+1e-9 {
		t.Errorf("lstsq mean: got %f, want 0.11", got)
	}
}

func TestNewRunEmptyBuffer(t *testing.T) {
	_, err := result.NewRun(*config.Default(), time.Now(), 0, []runner.Buffer{{Method: "direct"}})
	if err == nil {
		t.Error("expected error for empty buffer")
	}
}

func TestWriteAndReadRun(t *testing.T) {
	dir := t.TempDir()
	run, err := result.NewRun(*config.Default(), time.Now(), time.Second, testBuffers())
	if err != nil {
		t.Fatalf("NewRun: %v", err)
	}
	if err := result.WriteRun(dir, run); err != nil {
		t.Fatalf("WriteRun: %v", err)
	}
	got, err := result.ReadRun(dir)
	if err != nil {
		t.Fatalf("ReadRun: %v", err)
	}
	if got.ID != run.ID {
		t.Errorf("id: got %q, want %q", got.ID, run.ID)
	}
	if got.Config.Trials != run.Config.Trials {
		t.Errorf("trials: got %d, want %d", got.Config.Trials, run.Config.Trials)
	}
	buf, ok := got.Buffer("direct")
	if !ok || len(buf) != 5 {
		t.Fatalf("direct buffer: got %v (found=%v)", buf, ok)
	}
	if len(got.Summaries[1].Distribution) != 5 {
		t.Errorf("expected restored distribution, got %v", got.Summaries[1].Distribution)
	}
	if _, ok := got.Buffer("model"); ok {
		t.Error("unexpected model buffer")
	}
}

func TestReadRunMissing(t *testing.T) {
	if _, err := result.ReadRun(t.TempDir()); err == nil {
		t.Error("expected error for missing run.json")
	}
}

func TestCreateRunDir(t *testing.T) {
	base := t.TempDir()
	runDir, err := result.CreateRunDir(base)
	if err != nil {
		t.Fatalf("CreateRunDir: %v", err)
	}
	if _, err := os.Stat(runDir); os.IsNotExist(err) {
		t.Errorf("run directory not created: %s", runDir)
	}
	latest := filepath.Join(base, "latest")
	target, err := os.Readlink(latest)
	if err != nil {
		t.Fatalf("reading latest symlink: %v", err)
	}
	if target != runDir {
		t.Errorf("latest symlink: got %q, want %q", target, runDir)
	}
}
