package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/signalnine/olsbench/internal/config"
	"github.com/signalnine/olsbench/internal/runner"
	"github.com/signalnine/olsbench/internal/stats"
)

const runFile = "run.json"

func CreateRunDir(baseDir string) (string, error) {
	runsDir := filepath.Join(baseDir, "runs")
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05.000")
	runDir := filepath.Join(runsDir, stamp)
	runDir, err := filepath.Abs(runDir)
	if err != nil {
		return "", fmt.Errorf("resolving run dir: %w", err)
	}
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return "", fmt.Errorf("creating run dir: %w", err)
	}
	latest := filepath.Join(baseDir, "latest")
	os.Remove(latest)
	if err := os.Symlink(runDir, latest); err != nil {
		return "", fmt.Errorf("creating latest symlink: %w", err)
	}
	return runDir, nil
}

// NewRun summarizes the buffers of a finished harness into a Run.
func NewRun(cfg config.Config, started time.Time, elapsed time.Duration, buffers []runner.Buffer) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		StartedAt: started.UTC(),
		DurationS: elapsed.Seconds(),
		Config:    cfg,
		Buffers:   buffers,
		Summaries: make([]MethodSummary, 0, len(buffers)),
	}
	for _, b := range buffers {
		s, err := stats.Summarize(b.Elapsed)
		if err != nil {
			return nil, fmt.Errorf("summarizing %s: %w", b.Method, err)
		}
		run.Summaries = append(run.Summaries, MethodSummary{Method: b.Method, Summary: s})
	}
	return run, nil
}

func WriteRun(runDir string, run *Run) error {
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("creating run dir: %w", err)
	}
	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling run: %w", err)
	}
	return os.WriteFile(filepath.Join(runDir, runFile), data, 0o644)
}

// ReadRun loads run.json from runDir. Summary distributions are restored
// from the stored buffers.
func ReadRun(runDir string) (*Run, error) {
	data, err := os.ReadFile(filepath.Join(runDir, runFile))
	if err != nil {
		return nil, fmt.Errorf("reading run: %w", err)
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parsing run: %w", err)
	}
	for i := range run.Summaries {
		if buf, ok := run.Buffer(run.Summaries[i].Method); ok {
			run.Summaries[i].Distribution = append([]float64(nil), buf...)
		}
	}
	return &run, nil
}
