package provider

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gapscan/internal/loader"
	"gapscan/internal/model"
	"gapscan/internal/series"
)

// LogFunc emits a log line. When set, used instead of the default logger (fan-in logger).
type LogFunc func(msg string, args ...any)

// FileProvider reads bar packets saved by the acquisition crawler under
// {Dir}/{TICKER}/{ticker}_{from}_to_{to}.{ext} (or one file per day).
type FileProvider struct {
	Dir     string
	Loader  loader.BarLoader
	LogFunc LogFunc
}

// NewFileProvider creates a FileProvider for dir reading packets with l.
func NewFileProvider(dir string, l loader.BarLoader) (*FileProvider, error) {
	if l == nil {
		return nil, fmt.Errorf("file provider: nil loader")
	}
	return &FileProvider{Dir: dir, Loader: l}, nil
}

// GetName returns provider name
func (p *FileProvider) GetName() string {
	return "File(" + p.Loader.Extension() + ")"
}

// Close releases nothing; packets are opened per call.
func (p *FileProvider) Close() error {
	return nil
}

// SetLogFunc sets fan-in logger.
func (p *FileProvider) SetLogFunc(fn LogFunc) {
	p.LogFunc = fn
}

func (p *FileProvider) logf(msg string, args ...any) {
	if p.LogFunc != nil {
		p.LogFunc(msg, args...)
	}
}

// Packets lists the packet files of ticker in name order. Files in the
// provider's own format are preferred; a ticker dir holding none of them
// falls back to packets of any other format a loader exists for.
func (p *FileProvider) Packets(ticker string) ([]string, error) {
	tickerDir := filepath.Join(p.Dir, strings.ToUpper(ticker))
	entries, err := os.ReadDir(tickerDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", tickerDir, series.ErrNoData)
		}
		return nil, err
	}
	var own, other []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(tickerDir, e.Name())
		switch {
		case p.owns(path):
			own = append(own, path)
		case loader.ForPath(path) != nil:
			other = append(other, path)
		}
	}
	paths := own
	if len(paths) == 0 {
		paths = other
	}
	sort.Strings(paths)
	return paths, nil
}

func (p *FileProvider) owns(path string) bool {
	return strings.EqualFold(filepath.Ext(path), "."+p.Loader.Extension())
}

func (p *FileProvider) loaderFor(path string) loader.BarLoader {
	if p.owns(path) {
		return p.Loader
	}
	return loader.ForPath(path)
}

// LoadBars merges every packet of ticker into one cleaned, time-ordered series.
func (p *FileProvider) LoadBars(ticker string) ([]model.Bar, error) {
	paths, err := p.Packets(ticker)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no packets for %s: %w", ticker, series.ErrNoData)
	}
	var all []model.Bar
	for _, path := range paths {
		bars, err := p.loaderFor(path).Load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		p.logf("packet loaded", "ticker", ticker, "path", path, "bars", len(bars))
		all = append(all, bars...)
	}
	cleaned := series.Clean(all)
	if dropped := len(all) - len(cleaned); dropped > 0 {
		p.logf("bars dropped", "ticker", ticker, "dropped", dropped)
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%s: %w", ticker, series.ErrNoData)
	}
	return cleaned, nil
}
