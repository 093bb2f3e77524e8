package result

import (
	"time"

	"github.com/signalnine/olsbench/internal/config"
	"github.com/signalnine/olsbench/internal/runner"
	"github.com/signalnine/olsbench/internal/stats"
)

// Run is everything persisted for one harness execution.
type Run struct {
	ID        string          `json:"id"`
	StartedAt time.Time       `json:"started_at"`
	DurationS float64         `json:"duration_s"`
	Config    config.Config   `json:"config"`
	Buffers   []runner.Buffer `json:"buffers"`
	Summaries []MethodSummary `json:"summaries"`
}

type MethodSummary struct {
	Method string `json:"method"`
	stats.Summary
}

// Buffer returns the raw timings recorded for method.
func (r *Run) Buffer(method string) ([]float64, bool) {
	for _, b := range r.Buffers {
		if b.Method == method {
			return b.Elapsed, true
		}
	}
	return nil, false
}
