package report

import (
	"fmt"
	"io"

	"github.com/signalnine/olsbench/internal/stats"
)

// ResampleReport describes one CLT demonstration over a stored buffer.
type ResampleReport struct {
	RunID         string      `json:"run_id"`
	Method        string      `json:"method"`
	SubsampleSize int         `json:"subsample_size"`
	Repetitions   int         `json:"repetitions"`
	Seed          uint64      `json:"seed"`
	Source        Moments     `json:"source"`
	Means         Moments     `json:"means"`
	Histogram     []stats.Bin `json:"histogram,omitempty"`
	Values        []float64   `json:"values,omitempty"`
}

type Moments struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean_s"`
	StdDev   float64 `json:"stddev_s"`
	Skewness float64 `json:"skewness"`
}

func NewMoments(values []float64) (Moments, error) {
	s, err := stats.Summarize(values)
	if err != nil {
		return Moments{}, err
	}
	return Moments{N: s.N, Mean: s.Mean, StdDev: s.StdDev, Skewness: s.Skewness}, nil
}

func WriteResample(rep *ResampleReport, format string, w io.Writer) error {
	if format == "json" {
		return writeJSON(rep, w)
	}
	fmt.Fprintf(w, "CLT resampling of %s (run %s): k=%d, repetitions=%d, seed=%d\n\n",
		rep.Method, rep.RunID, rep.SubsampleSize, rep.Repetitions, rep.Seed)
	fmt.Fprintf(w, "source: n=%d mean=%s stddev=%s skewness=%.3f\n",
		rep.Source.N, formatSeconds(rep.Source.Mean), formatSeconds(rep.Source.StdDev), rep.Source.Skewness)
	fmt.Fprintf(w, "means:  n=%d mean=%s stddev=%s skewness=%.3f\n",
		rep.Means.N, formatSeconds(rep.Means.Mean), formatSeconds(rep.Means.StdDev), rep.Means.Skewness)
	if len(rep.Histogram) > 0 {
		fmt.Fprintln(w)
		WriteHistogram(w, rep.Histogram)
	}
	return nil
}
