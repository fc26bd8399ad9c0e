package analysis

import (
	"math"

	"gapscan/internal/model"
	"gapscan/internal/series"
)

// Threshold ratios applied to the whole-series mean close.
const (
	minGapRatio         = 0.002
	priceToleranceRatio = 0.01
)

// MinGapSize is the smallest bar-to-bar distance counted as a gap.
// It is computed once from the whole series, not per window.
func MinGapSize(s *series.Series) float64 {
	return minGapRatio * s.MeanClose()
}

// DetectGaps scans consecutive bar pairs and returns gaps in index order.
// An up gap is checked first and wins if both conditions hold.
func DetectGaps(s *series.Series, minGap float64) []model.Gap {
	var gaps []model.Gap
	for i := 1; i < s.Len(); i++ {
		prev, cur := s.Bar(i-1), s.Bar(i)
		switch {
		case cur.Low-prev.High > minGap:
			gaps = append(gaps, model.Gap{
				Index:      i,
				Type:       model.GapUp,
				From:       prev.High,
				To:         cur.Low,
				PriceLevel: prev.High,
				RefPrice:   math.Min(prev.Open, prev.Close),
				Volume:     cur.Volume,
			})
		case prev.Low-cur.High > minGap:
			gaps = append(gaps, model.Gap{
				Index:      i,
				Type:       model.GapDown,
				From:       prev.Low,
				To:         cur.High,
				PriceLevel: prev.Low,
				RefPrice:   math.Max(prev.Open, prev.Close),
				Volume:     cur.Volume,
			})
		}
	}
	return gaps
}

// MarkFilled scans forward from each gap's own bar and flags it filled at the
// first bar that trades back through the gap origin. Each gap is scanned
// independently; a gap already filled is left as is.
func MarkFilled(s *series.Series, gaps []model.Gap) {
	for k := range gaps {
		g := &gaps[k]
		if g.Filled {
			continue
		}
		for j := g.Index; j < s.Len(); j++ {
			if fills(*g, s.Bar(j)) {
				g.Filled = true
				break
			}
		}
	}
}

func fills(g model.Gap, b model.Bar) bool {
	switch g.Type {
	case model.GapUp:
		return b.Low <= g.From
	case model.GapDown:
		return b.High >= g.From
	}
	return false
}
