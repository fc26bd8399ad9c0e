package saver

import (
	"encoding/csv"
	"os"
	"strconv"
)

// CSVSaver writes one CSV file per overlay table.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(o Overlay, dir string) ([]string, error) {
	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{"bars", []string{"index", "t", "o", "h", "l", "c", "v"}, barRecords(o.Bars)},
		{"sma", []string{"index", "window", "value"}, smaRecords(o.SMA)},
		{"gaps", []string{"index", "gap_type", "gap_from", "gap_to", "price_level", "ref_price", "volume", "filled"}, gapRecords(o)},
		{"levels", []string{"price", "start_index", "gap_count"}, levelRecords(o)},
		{"islands", []string{"high", "low", "start_index", "end_index"}, islandRecords(o)},
	}
	var paths []string
	for _, t := range tables {
		p := tablePath(dir, o.Ticker, t.name, "csv")
		if err := writeCSV(p, t.header, t.rows); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func barRecords(bars []BarRow) [][]string {
	out := make([][]string, len(bars))
	for i, b := range bars {
		out[i] = []string{
			strconv.Itoa(b.Index),
			strconv.FormatInt(b.Timestamp, 10),
			floatStr(b.Open), floatStr(b.High), floatStr(b.Low), floatStr(b.Close), floatStr(b.Volume),
		}
	}
	return out
}

func smaRecords(rows []SMARow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{strconv.Itoa(r.Index), strconv.Itoa(r.Window), floatStr(r.Value)}
	}
	return out
}

func gapRecords(o Overlay) [][]string {
	out := make([][]string, len(o.Gaps))
	for i, g := range o.Gaps {
		out[i] = []string{
			strconv.Itoa(g.Index), string(g.Type),
			floatStr(g.From), floatStr(g.To), floatStr(g.PriceLevel), floatStr(g.RefPrice), floatStr(g.Volume),
			strconv.FormatBool(g.Filled),
		}
	}
	return out
}

func levelRecords(o Overlay) [][]string {
	out := make([][]string, len(o.KeyLevels))
	for i, kl := range o.KeyLevels {
		out[i] = []string{floatStr(kl.Price), strconv.Itoa(kl.StartIndex), strconv.Itoa(kl.GapCount)}
	}
	return out
}

func islandRecords(o Overlay) [][]string {
	out := make([][]string, len(o.Islands))
	for i, isl := range o.Islands {
		out[i] = []string{floatStr(isl.High), floatStr(isl.Low), strconv.Itoa(isl.StartIndex), strconv.Itoa(isl.EndIndex)}
	}
	return out
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
