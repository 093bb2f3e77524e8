package stats

import (
	"fmt"

	moremath "github.com/aclements/go-moremath/stats"
	"golang.org/x/perf/benchmath"
)

// Comparison is a distribution-free comparison of two timing buffers.
type Comparison struct {
	Base   string  `json:"base"`
	Other  string  `json:"other"`
	P      float64 `json:"p"`
	Alpha  float64 `json:"alpha"`
	Delta  float64 `json:"delta"`
	Differ bool    `json:"differ"`
}

// Compare runs a Mann-Whitney U test between base and other. Delta is the
// relative change of the median of other over the median of base.
func Compare(baseName string, base []float64, otherName string, other []float64) (Comparison, error) {
	if len(base) == 0 || len(other) == 0 {
		return Comparison{}, fmt.Errorf("compare %s with %s: %w", baseName, otherName, ErrEmptyAggregate)
	}

	c := benchmath.AssumeNothing.Compare(newSample(base), newSample(other))

	baseSample := moremath.Sample{Xs: base}
	otherSample := moremath.Sample{Xs: other}
	baseMedian := baseSample.Quantile(0.5)
	otherMedian := otherSample.Quantile(0.5)
	var delta float64
	if baseMedian != 0 {
		delta = otherMedian/baseMedian - 1
	}

	return Comparison{
		Base:   baseName,
		Other:  otherName,
		P:      finiteOr(c.P, 1),
		Alpha:  c.Alpha,
		Delta:  delta,
		Differ: c.P < c.Alpha,
	}, nil
}
