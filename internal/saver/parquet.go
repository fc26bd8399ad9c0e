package saver

import (
	"github.com/parquet-go/parquet-go"
)

// ParquetSaver writes one Parquet file per overlay table. Empty tables are skipped.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(o Overlay, dir string) ([]string, error) {
	var paths []string
	write := func(table string, fn func(string) error) error {
		p := tablePath(dir, o.Ticker, table, "parquet")
		if err := fn(p); err != nil {
			return err
		}
		paths = append(paths, p)
		return nil
	}
	steps := []struct {
		table string
		n     int
		fn    func(string) error
	}{
		{"bars", len(o.Bars), func(p string) error { return parquet.WriteFile(p, o.Bars) }},
		{"sma", len(o.SMA), func(p string) error { return parquet.WriteFile(p, o.SMA) }},
		{"gaps", len(o.Gaps), func(p string) error { return parquet.WriteFile(p, o.Gaps) }},
		{"levels", len(o.KeyLevels), func(p string) error { return parquet.WriteFile(p, o.KeyLevels) }},
		{"islands", len(o.Islands), func(p string) error { return parquet.WriteFile(p, o.Islands) }},
	}
	for _, s := range steps {
		if s.n == 0 {
			continue
		}
		if err := write(s.table, s.fn); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
