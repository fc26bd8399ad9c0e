package tickers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// defaultPaths are tried in order when no tickers file is configured.
var defaultPaths = []string{
	"indices/combined.txt",
	"indices/tickers.json",
	"indices/sp500.txt",
}

// Parse splits a comma or newline separated list, upper-cases, drops blanks,
// '#' comments and duplicates, keeping first-seen order.
func Parse(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '\n' || r == '\r' })
	var list []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.HasPrefix(f, "#") {
			continue
		}
		list = append(list, f)
	}
	return unique(list)
}

// LoadFromFile reads a list of tickers from a file.
// Supported formats:
//   - .txt  : one ticker per line, '#' lines are treated as comments
//   - .json : JSON array of strings
func LoadFromFile(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file %s: %w", path, err)
	}

	var list []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(content, &list); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		list = unique(list)
	case ".txt":
		list = Parse(string(content))
	default:
		return nil, fmt.Errorf("unsupported ticker file extension %q (use .txt or .json)", filepath.Ext(path))
	}

	slog.Info("loaded tickers from file", "count", len(list), "path", path)
	return list, nil
}

// LoadFromFileOrIndices loads path when it exists, otherwise the first
// default indices file found.
func LoadFromFileOrIndices(path string) ([]string, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return LoadFromFile(path)
		}
		slog.Info("file not found, trying indices", "path", path)
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			slog.Info("found indices file", "path", p)
			return LoadFromFile(p)
		}
	}
	return nil, fmt.Errorf("no tickers: set TICKERS or TICKERS_FILE, or provide %s", defaultPaths[0])
}

func unique(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, t := range list {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" && !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}
