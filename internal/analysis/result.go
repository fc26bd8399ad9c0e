package analysis

import (
	"fmt"

	"gapscan/internal/model"
	"gapscan/internal/series"
)

// ErrNoData is returned by Analyze for a nil or empty series.
var ErrNoData = series.ErrNoData

// Result holds one analysis pass over a series. It is read-only once returned.
type Result struct {
	series    *series.Series
	gaps      []model.Gap
	keyLevels []model.KeyLevel
	islands   []model.Island
}

// Analyze runs gaps, fill status, key levels and islands over s.
func Analyze(s *series.Series) (*Result, error) {
	if s.Len() == 0 {
		return nil, fmt.Errorf("analyze: %w", ErrNoData)
	}
	gaps := DetectGaps(s, MinGapSize(s))
	MarkFilled(s, gaps)
	return &Result{
		series:    s,
		gaps:      gaps,
		keyLevels: KeyLevels(s, gaps),
		islands:   DetectIslands(s, gaps),
	}, nil
}

func (r *Result) Series() *series.Series { return r.series }

// Gaps returns a copy of all gaps in index order.
func (r *Result) Gaps() []model.Gap { return append([]model.Gap(nil), r.gaps...) }

func (r *Result) KeyLevels() []model.KeyLevel {
	return append([]model.KeyLevel(nil), r.keyLevels...)
}

func (r *Result) Islands() []model.Island { return append([]model.Island(nil), r.islands...) }

// Last returns the final value of a series column (Close, SMA_20, ...).
func (r *Result) Last(column string) (float64, bool) {
	return r.series.Last(column)
}

// SurroundingKeyLevels returns the closest key level below the last close and
// the closest above it, lower first. A missing side is omitted and a level
// equal to the close belongs to neither side.
func (r *Result) SurroundingKeyLevels() []float64 {
	if len(r.keyLevels) == 0 {
		return nil
	}
	closePrice, ok := r.series.Last(series.ColClose)
	if !ok {
		return nil
	}
	var (
		lower, upper       float64
		hasLower, hasUpper bool
	)
	for _, kl := range r.keyLevels {
		switch {
		case kl.Price < closePrice && (!hasLower || kl.Price > lower):
			lower, hasLower = kl.Price, true
		case kl.Price > closePrice && (!hasUpper || kl.Price < upper):
			upper, hasUpper = kl.Price, true
		}
	}
	out := make([]float64, 0, 2)
	if hasLower {
		out = append(out, lower)
	}
	if hasUpper {
		out = append(out, upper)
	}
	return out
}

// Support and Resistance split SurroundingKeyLevels into its two sides.
func (r *Result) Support() (float64, bool) {
	return r.side(func(p, c float64) bool { return p < c })
}

func (r *Result) Resistance() (float64, bool) {
	return r.side(func(p, c float64) bool { return p > c })
}

func (r *Result) side(match func(price, close float64) bool) (float64, bool) {
	closePrice, ok := r.series.Last(series.ColClose)
	if !ok {
		return 0, false
	}
	for _, p := range r.SurroundingKeyLevels() {
		if match(p, closePrice) {
			return p, true
		}
	}
	return 0, false
}

// OpenGaps returns the gaps not yet filled, in index order.
func (r *Result) OpenGaps() []model.Gap {
	var open []model.Gap
	for _, g := range r.gaps {
		if !g.Filled {
			open = append(open, g)
		}
	}
	return open
}
