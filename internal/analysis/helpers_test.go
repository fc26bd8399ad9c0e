package analysis

import (
	"testing"

	"gapscan/internal/model"
	"gapscan/internal/series"
)

// flat builds a bar opening and closing at c with a 0.1 wick each side.
func flat(c float64) model.Bar {
	return model.Bar{Open: c, High: c + 0.1, Low: c - 0.1, Close: c, Volume: 1000}
}

func flats(cs ...float64) []model.Bar {
	bars := make([]model.Bar, len(cs))
	for i, c := range cs {
		bars[i] = flat(c)
		bars[i].Timestamp = int64(i) * 60_000
	}
	return bars
}

func repeat(c float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func mustSeries(t testing.TB, bars []model.Bar, periods ...int) *series.Series {
	t.Helper()
	s, err := series.New(bars, periods...)
	if err != nil {
		t.Fatalf("series.New: %v", err)
	}
	return s
}

func approx(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

// islandFixture: up gap at 5, down gap at 9 (island), down gap at 15 left open.
func islandFixture() []model.Bar {
	var cs []float64
	cs = append(cs, repeat(100, 5)...)
	cs = append(cs, repeat(103, 4)...)
	cs = append(cs, repeat(100, 6)...)
	cs = append(cs, repeat(97, 5)...)
	return flats(cs...)
}
