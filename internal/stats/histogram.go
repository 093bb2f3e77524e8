package stats

import (
	"fmt"

	moremath "github.com/aclements/go-moremath/stats"
)

type Bin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// Histogram bins values into nbins equal-width bins spanning [min, max].
// The maximum value lands in the last bin.
func Histogram(values []float64, nbins int) ([]Bin, error) {
	if len(values) == 0 {
		return nil, ErrEmptyAggregate
	}
	if nbins < 1 {
		return nil, fmt.Errorf("histogram: need at least one bin, got %d", nbins)
	}

	lo, hi := moremath.Bounds(values)
	if hi == lo {
		// All values equal; give the single value a unit-width home.
		lo, hi = lo-0.5, hi+0.5
	}
	h := moremath.NewLinearHist(lo, hi, nbins)
	for _, v := range values {
		h.Add(v)
	}

	_, counts, over := h.Counts()
	bins := make([]Bin, nbins)
	for i := range bins {
		bins[i] = Bin{
			Lo:    h.BinToValue(float64(i)),
			Hi:    h.BinToValue(float64(i + 1)),
			Count: int(counts[i]),
		}
	}
	// LinearHist treats max as exclusive.
	bins[nbins-1].Count += int(over)
	return bins, nil
}
