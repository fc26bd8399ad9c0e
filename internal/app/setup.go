package app

import (
	"log/slog"
	"time"

	"gapscan/internal/report"
	"gapscan/internal/saver"
	"gapscan/internal/scan"
	"gapscan/internal/tickers"
)

// LoadTickers returns TICKERS when set, otherwise reads TICKERS_FILE or the indices files.
func LoadTickers(cfg *Config) ([]string, error) {
	if len(cfg.Tickers) > 0 {
		slog.Info("tickers from env", "count", len(cfg.Tickers))
		return cfg.Tickers, nil
	}
	slog.Info("reading tickers from file")
	return tickers.LoadFromFileOrIndices(cfg.TickersFile)
}

// ScanOptions builds scan options from config.
func ScanOptions(cfg *Config, s saver.OverlaySaver) scan.Options {
	return scan.Options{
		Periods: cfg.Periods(),
		Report: report.Options{
			FastSMA:      cfg.FastSMA,
			SlowSMA:      cfg.SlowSMA,
			CrossFastSMA: cfg.CrossFastSMA,
			CrossSlowSMA: cfg.CrossSlowSMA,
			Location:     cfg.Location(),
		},
		Saver:     s,
		OutDir:    cfg.OutDir,
		Workers:   cfg.Workers,
		Heartbeat: 30 * time.Second,
		LogLevel:  cfg.LogLevel,
		LogFormat: cfg.LogFormat,
	}
}
