package loader

import (
	"github.com/parquet-go/parquet-go"

	"gapscan/internal/model"
)

// packetBar mirrors the Parquet schema the crawler writes (integer volume,
// optional vw and n), so packets decode without column conversion.
type packetBar struct {
	Timestamp    int64   `parquet:"t"`
	Open         float64 `parquet:"o"`
	High         float64 `parquet:"h"`
	Low          float64 `parquet:"l"`
	Close        float64 `parquet:"c"`
	Volume       int64   `parquet:"v"`
	VWAP         float64 `parquet:"vw,optional"`
	Transactions int64   `parquet:"n,optional"`
}

func (p packetBar) toBar() model.Bar {
	return model.Bar{
		Timestamp: p.Timestamp,
		Open:      p.Open,
		High:      p.High,
		Low:       p.Low,
		Close:     p.Close,
		Volume:    float64(p.Volume),
	}
}

// ParquetLoader reads Parquet packets.
type ParquetLoader struct{}

func (ParquetLoader) Extension() string { return "parquet" }

func (ParquetLoader) Load(path string) ([]model.Bar, error) {
	rows, err := parquet.ReadFile[packetBar](path)
	if err != nil {
		return nil, err
	}
	bars := make([]model.Bar, len(rows))
	for i, r := range rows {
		bars[i] = r.toBar()
	}
	return bars, nil
}
