// Package stats reduces timing buffers to summary statistics.
package stats

import (
	"errors"
	"math"

	moremath "github.com/aclements/go-moremath/stats"
	"golang.org/x/perf/benchmath"
	"gonum.org/v1/gonum/stat"
)

var ErrEmptyAggregate = errors.New("cannot aggregate an empty buffer")

// Confidence is the level of the median confidence interval in Summary.
const Confidence = 0.95

type Summary struct {
	N        int     `json:"n"`
	Mean     float64 `json:"mean_s"`
	StdDev   float64 `json:"stddev_s"`
	Min      float64 `json:"min_s"`
	Max      float64 `json:"max_s"`
	Median   float64 `json:"median_s"`
	P95      float64 `json:"p95_s"`
	Skewness float64 `json:"skewness"`
	CILow    float64 `json:"ci_low_s"`
	CIHigh   float64 `json:"ci_high_s"`

	// Distribution is a copy of the summarized values in their original order.
	Distribution []float64 `json:"-"`
}

// Summarize computes descriptive statistics over values without modifying
// them. StdDev is 0 for fewer than two values and Skewness for fewer than
// three.
func Summarize(values []float64) (Summary, error) {
	if len(values) == 0 {
		return Summary{}, ErrEmptyAggregate
	}
	dist := append([]float64(nil), values...)

	s := Summary{
		N:            len(dist),
		Mean:         stat.Mean(dist, nil),
		Distribution: dist,
	}
	if s.N > 1 {
		s.StdDev = stat.StdDev(dist, nil)
	}
	s.Skewness = skew(dist)

	sorted := moremath.Sample{Xs: append([]float64(nil), dist...)}
	sorted.Sort()
	s.Min, s.Max = sorted.Bounds()
	s.Median = sorted.Quantile(0.5)
	s.P95 = sorted.Quantile(0.95)

	ci := benchmath.AssumeNothing.Summary(newSample(dist), Confidence)
	s.CILow = finiteOr(ci.Lo, s.Min)
	s.CIHigh = finiteOr(ci.Hi, s.Max)
	return s, nil
}

// Mean is the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyAggregate
	}
	return stat.Mean(values, nil), nil
}

// Skewness is the sample skewness of values. It is 0 when fewer than three
// values are given or all values are equal.
func Skewness(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyAggregate
	}
	return skew(values), nil
}

func skew(values []float64) float64 {
	if len(values) < 3 {
		return 0
	}
	return finiteOr(stat.Skew(values, nil), 0)
}

func newSample(values []float64) *benchmath.Sample {
	return benchmath.NewSample(append([]float64(nil), values...), &benchmath.DefaultThresholds)
}

func finiteOr(x, fallback float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}
