package series

import (
	"math"
	"sort"

	"gapscan/internal/model"
)

// Clean drops bars with non-finite values, orders the rest by timestamp and
// keeps the last bar seen for a duplicated timestamp.
func Clean(bars []model.Bar) []model.Bar {
	out := make([]model.Bar, 0, len(bars))
	for _, b := range bars {
		if !finite(b.Open, b.High, b.Low, b.Close, b.Volume) {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })

	n := 0
	for i := range out {
		if n > 0 && out[n-1].Timestamp == out[i].Timestamp {
			out[n-1] = out[i]
			continue
		}
		out[n] = out[i]
		n++
	}
	return out[:n]
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
