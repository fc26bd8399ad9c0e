package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gapscan/internal/provider"
	"gapscan/internal/saver"
	"gapscan/internal/scan"
)

// RunFlow scans tickers once, or every cfg.RunEvery until SIGINT/SIGTERM:
// trigger → run → done → wait → trigger.
func RunFlow(cfg *Config, dp provider.DataProvider, s saver.OverlaySaver, tickers []string) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := ScanOptions(cfg, s)
	opts.Out = os.Stdout

	for {
		sum := scan.RunOnce(ctx, dp, tickers, opts)
		slog.Info("scan done", "success", len(sum.Success), "failed", len(sum.Failed))
		if cfg.RunEvery <= 0 || ctx.Err() != nil {
			return
		}
		next := time.Now().Add(cfg.RunEvery)
		slog.Info("timer waiting", "every", cfg.RunEvery, "until", next.Format("2006-01-02 15:04"))
		timer := time.NewTimer(cfg.RunEvery)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			slog.Info("received signal, stopping", "next_run", next.Format("2006-01-02 15:04"))
			return
		}
	}
}
