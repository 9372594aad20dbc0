package layout

import (
	"math"
	"sort"
)

const (
	defaultYThreshold = 10.0
	minYThreshold     = 3.0
	maxYThreshold     = 15.0
)

// AdaptiveYThreshold computes the per-document vertical grouping tolerance.
// It takes the 25th percentile of the positive successive y-differences
// (tokens sorted by vertical center) and clamps it so it is never below 3 and
// never above min(mean token height * 0.5, 15). Dense small-font documents get
// a tighter tolerance than sparse headers without per-document tuning.
// Fewer than two tokens yields the fixed default of 10.
func AdaptiveYThreshold(tokens []Token) float64 {
	if len(tokens) < 2 {
		return defaultYThreshold
	}

	ys := make([]float64, len(tokens))
	for i, t := range tokens {
		ys[i] = t.Y
	}
	sort.Float64s(ys)

	var diffs []float64
	for i := 1; i < len(ys); i++ {
		if d := ys[i] - ys[i-1]; d > 0 {
			diffs = append(diffs, d)
		}
	}

	threshold := defaultYThreshold
	if len(diffs) > 0 {
		threshold = percentile(diffs, 25)
	}

	var heightSum float64
	for _, t := range tokens {
		heightSum += t.Height
	}
	meanHeight := heightSum / float64(len(tokens))

	upper := math.Min(meanHeight*0.5, maxYThreshold)
	return math.Max(minYThreshold, math.Min(threshold, upper))
}

// percentile returns the p-th percentile of values using linear interpolation
// between closest ranks. values must be non-empty; the input is not modified.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
