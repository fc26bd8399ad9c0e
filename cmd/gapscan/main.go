package main

import (
	"fmt"
	"log/slog"
	"os"

	"gapscan/internal/app"
	"gapscan/internal/slogx"
)

func init() {
	slog.SetDefault(slogx.NewDefault("info", "text"))
}

func main() {
	a, err := InitializeApp()
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}
	defer a.DP.Close()

	cfg := a.Config
	slog.SetDefault(slogx.NewDefault(cfg.LogLevel, cfg.LogFormat))
	slog.Info("using data provider", "provider", a.DP.GetName(), "dir", cfg.DataDir)

	tickers, err := app.LoadTickers(cfg)
	if err != nil {
		slog.Error("failed to get tickers", "error", err)
		os.Exit(1)
	}
	slog.Info("got tickers", "count", len(tickers))

	if a.Saver != nil {
		if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
			slog.Error("failed to create out dir", "error", err)
			os.Exit(1)
		}
		slog.Info("export dir", "dir", cfg.OutDir, "format", a.Saver.Extension())
	}
	slog.Info("sma periods", "periods", cfg.Periods(), "fast", cfg.FastSMA, "slow", cfg.SlowSMA,
		"cross", fmt.Sprintf("%d/%d", cfg.CrossFastSMA, cfg.CrossSlowSMA), "workers", cfg.Workers)

	app.RunFlow(cfg, a.DP, a.Saver, tickers)
}
