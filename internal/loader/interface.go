package loader

import (
	"path/filepath"
	"strings"

	"gapscan/internal/model"
)

// BarLoader reads one packet file of bars written by the acquisition crawler.
// High-level code (app) picks the implementation; provider only depends on this interface.
type BarLoader interface {
	Load(path string) ([]model.Bar, error)
	Extension() string
}

// NewBarLoader creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewBarLoader(format string) BarLoader {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVLoader{}
	case "parquet":
		return ParquetLoader{}
	case "json":
		return JSONLoader{}
	default:
		return nil
	}
}

// ForPath picks a loader from the file extension.
func ForPath(path string) BarLoader {
	return NewBarLoader(strings.TrimPrefix(filepath.Ext(path), "."))
}
