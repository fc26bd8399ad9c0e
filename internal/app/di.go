package app

import (
	"fmt"

	"gapscan/internal/loader"
	"gapscan/internal/provider"
	"gapscan/internal/saver"
)

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	cfg := LoadConfig()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ProvideBarLoader creates the BarLoader for DATA_FORMAT (for Wire).
func ProvideBarLoader(cfg *Config) (loader.BarLoader, error) {
	l := loader.NewBarLoader(cfg.DataFormat)
	if l == nil {
		return nil, fmt.Errorf("unsupported DATA_FORMAT %q (use: csv, parquet, json)", cfg.DataFormat)
	}
	return l, nil
}

// ProvideFileProvider creates the packet-reading DataProvider (for Wire).
// Caller must call Close() when shutting down.
func ProvideFileProvider(cfg *Config, l loader.BarLoader) (*provider.FileProvider, error) {
	return provider.NewFileProvider(cfg.DataDir, l)
}

// ProvideOverlaySaver creates the export saver for EXPORT_FORMAT (for Wire).
// Returns nil without error when export is disabled.
func ProvideOverlaySaver(cfg *Config) (saver.OverlaySaver, error) {
	if cfg.ExportFormat == "none" || cfg.ExportFormat == "" {
		return nil, nil
	}
	s := saver.NewOverlaySaver(cfg.ExportFormat)
	if s == nil {
		return nil, fmt.Errorf("unsupported EXPORT_FORMAT %q (use: csv, parquet, json, none)", cfg.ExportFormat)
	}
	return s, nil
}
