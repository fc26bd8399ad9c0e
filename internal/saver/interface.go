package saver

import (
	"path/filepath"
	"strings"
)

// OverlaySaver writes an Overlay for the rendering side.
// High-level (app) injects the implementation; scan only depends on this interface.
type OverlaySaver interface {
	// Save writes o under dir and returns the files written.
	Save(o Overlay, dir string) ([]string, error)
	Extension() string
}

// NewOverlaySaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewOverlaySaver(format string) OverlaySaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// tablePath returns {dir}/{ticker}_{table}.{ext}.
func tablePath(dir, ticker, table, ext string) string {
	return filepath.Join(dir, strings.ToLower(ticker)+"_"+table+"."+ext)
}
