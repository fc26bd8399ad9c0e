package series

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/markcheno/go-talib"

	"gapscan/internal/model"
)

// ErrNoData is returned when a series has no bars to analyze.
var ErrNoData = errors.New("no data for requested analysis")

// DefaultSMAPeriods are the moving-average windows computed when none are given.
var DefaultSMAPeriods = []int{1, 20, 94}

// Column names accepted by Last.
const (
	ColOpen   = "Open"
	ColHigh   = "High"
	ColLow    = "Low"
	ColClose  = "Close"
	ColVolume = "Volume"

	smaPrefix = "SMA_"
)

// SMAColumn returns the column name of the SMA with the given window, e.g. SMA_20.
func SMAColumn(window int) string {
	return smaPrefix + strconv.Itoa(window)
}

// Series is an immutable OHLCV snapshot for one instrument plus its SMA columns.
// The bar index is the position in the series.
type Series struct {
	bars []model.Bar
	sma  map[int][]float64 // NaN where the window is not yet satisfied
}

// New builds a Series from bars already sorted by time.
// Returns ErrNoData when bars is empty.
func New(bars []model.Bar, periods ...int) (*Series, error) {
	if len(bars) == 0 {
		return nil, ErrNoData
	}
	if len(periods) == 0 {
		periods = DefaultSMAPeriods
	}
	s := &Series{
		bars: append([]model.Bar(nil), bars...),
		sma:  make(map[int][]float64, len(periods)),
	}
	closes := s.Closes()
	for _, p := range periods {
		if p <= 0 {
			continue
		}
		s.sma[p] = smaColumn(closes, p)
	}
	return s, nil
}

// smaColumn runs talib.Sma and blanks the warmup positions talib leaves at zero.
func smaColumn(closes []float64, window int) []float64 {
	out := make([]float64, len(closes))
	if len(closes) < window {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	copy(out, talib.Sma(closes, window))
	for i := 0; i < window-1; i++ {
		out[i] = math.NaN()
	}
	return out
}

// Len returns the number of bars.
func (s *Series) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bars)
}

// Bar returns the bar at index i.
func (s *Series) Bar(i int) model.Bar { return s.bars[i] }

// Bars returns a copy of all bars.
func (s *Series) Bars() []model.Bar { return append([]model.Bar(nil), s.bars...) }

func (s *Series) column(f func(model.Bar) float64) []float64 {
	out := make([]float64, len(s.bars))
	for i, b := range s.bars {
		out[i] = f(b)
	}
	return out
}

// Closes returns the Close column.
func (s *Series) Closes() []float64 { return s.column(func(b model.Bar) float64 { return b.Close }) }

// MeanClose is the arithmetic mean of Close over the whole series.
func (s *Series) MeanClose() float64 {
	if s.Len() == 0 {
		return 0
	}
	var sum float64
	for _, b := range s.bars {
		sum += b.Close
	}
	return sum / float64(len(s.bars))
}

// HighestHigh returns the max High over [from, to). ok is false for an empty range.
func (s *Series) HighestHigh(from, to int) (v float64, ok bool) {
	from, to = s.clamp(from, to)
	for i := from; i < to; i++ {
		if !ok || s.bars[i].High > v {
			v, ok = s.bars[i].High, true
		}
	}
	return v, ok
}

// LowestLow returns the min Low over [from, to). ok is false for an empty range.
func (s *Series) LowestLow(from, to int) (v float64, ok bool) {
	from, to = s.clamp(from, to)
	for i := from; i < to; i++ {
		if !ok || s.bars[i].Low < v {
			v, ok = s.bars[i].Low, true
		}
	}
	return v, ok
}

func (s *Series) clamp(from, to int) (int, int) {
	if from < 0 {
		from = 0
	}
	if to > len(s.bars) {
		to = len(s.bars)
	}
	return from, to
}

// Periods returns the configured SMA windows in ascending order.
func (s *Series) Periods() []int {
	out := make([]int, 0, len(s.sma))
	for p := range s.sma {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// SMA returns the moving average with the given window at index i.
// ok is false when the window is not configured or not yet satisfied at i.
func (s *Series) SMA(window, i int) (float64, bool) {
	col, found := s.sma[window]
	if !found || i < 0 || i >= len(col) || math.IsNaN(col[i]) {
		return 0, false
	}
	return col[i], true
}

// At returns the value of column at index i. Columns are Open, High, Low,
// Close, Volume and SMA_<window>.
func (s *Series) At(column string, i int) (float64, bool) {
	if i < 0 || i >= s.Len() {
		return 0, false
	}
	b := s.bars[i]
	switch column {
	case ColOpen:
		return b.Open, true
	case ColHigh:
		return b.High, true
	case ColLow:
		return b.Low, true
	case ColClose:
		return b.Close, true
	case ColVolume:
		return b.Volume, true
	}
	if w, ok := parseSMAColumn(column); ok {
		return s.SMA(w, i)
	}
	return 0, false
}

// Last returns the final value of column, or false when the column does not
// exist, the series is empty or the value is undefined.
func (s *Series) Last(column string) (float64, bool) {
	return s.At(column, s.Len()-1)
}

func parseSMAColumn(column string) (int, bool) {
	if !strings.HasPrefix(column, smaPrefix) {
		return 0, false
	}
	w, err := strconv.Atoi(strings.TrimPrefix(column, smaPrefix))
	if err != nil {
		return 0, false
	}
	return w, true
}
