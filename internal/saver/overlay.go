package saver

import (
	"gapscan/internal/analysis"
	"gapscan/internal/model"
)

// BarRow is one bar with its position in the series.
type BarRow struct {
	Index     int     `json:"index" parquet:"index"`
	Timestamp int64   `json:"t" parquet:"t"`
	Open      float64 `json:"o" parquet:"o"`
	High      float64 `json:"h" parquet:"h"`
	Low       float64 `json:"l" parquet:"l"`
	Close     float64 `json:"c" parquet:"c"`
	Volume    float64 `json:"v" parquet:"v"`
}

// SMARow is one defined moving-average value; warmup positions have no row.
type SMARow struct {
	Index  int     `json:"index" parquet:"index"`
	Window int     `json:"window" parquet:"window"`
	Value  float64 `json:"value" parquet:"value"`
}

// Overlay is everything a chart renderer needs for one instrument.
type Overlay struct {
	Ticker    string           `json:"ticker"`
	Bars      []BarRow         `json:"bars"`
	SMA       []SMARow         `json:"sma"`
	Gaps      []model.Gap      `json:"gaps"`
	KeyLevels []model.KeyLevel `json:"key_levels"`
	Islands   []model.Island   `json:"islands"`
}

// NewOverlay flattens an analysis result into exportable tables.
func NewOverlay(ticker string, res *analysis.Result) Overlay {
	s := res.Series()
	o := Overlay{
		Ticker:    ticker,
		Bars:      make([]BarRow, s.Len()),
		Gaps:      res.Gaps(),
		KeyLevels: res.KeyLevels(),
		Islands:   res.Islands(),
	}
	for i := 0; i < s.Len(); i++ {
		b := s.Bar(i)
		o.Bars[i] = BarRow{Index: i, Timestamp: b.Timestamp, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
	}
	for _, w := range s.Periods() {
		for i := 0; i < s.Len(); i++ {
			if v, ok := s.SMA(w, i); ok {
				o.SMA = append(o.SMA, SMARow{Index: i, Window: w, Value: v})
			}
		}
	}
	return o
}
