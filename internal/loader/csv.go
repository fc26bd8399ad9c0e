package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gapscan/internal/model"
)

// CSVLoader reads packets with header t,o,h,l,c,v. Extra columns (vw, n) are ignored.
type CSVLoader struct{}

func (CSVLoader) Extension() string { return "csv" }

var csvColumns = []string{"t", "o", "h", "l", "c", "v"}

func (CSVLoader) Load(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if _, ok := pos[c]; !ok {
			return nil, fmt.Errorf("%s: missing column %q", path, c)
		}
	}

	var bars []model.Bar
	for line := 2; ; line++ {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		b, err := parseCSVBar(rec, pos)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}

func parseCSVBar(rec []string, pos map[string]int) (model.Bar, error) {
	field := func(name string) (string, error) {
		i := pos[name]
		if i >= len(rec) {
			return "", fmt.Errorf("missing field %q", name)
		}
		return strings.TrimSpace(rec[i]), nil
	}
	var b model.Bar
	ts, err := field("t")
	if err != nil {
		return b, err
	}
	if b.Timestamp, err = strconv.ParseInt(ts, 10, 64); err != nil {
		return b, fmt.Errorf("parse t: %w", err)
	}
	for _, f := range []struct {
		name string
		dst  *float64
	}{
		{"o", &b.Open}, {"h", &b.High}, {"l", &b.Low}, {"c", &b.Close}, {"v", &b.Volume},
	} {
		s, err := field(f.name)
		if err != nil {
			return b, err
		}
		if *f.dst, err = strconv.ParseFloat(s, 64); err != nil {
			return b, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	return b, nil
}
