package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

func runLogWriter(w io.Writer, lines <-chan string) {
	for s := range lines {
		fmt.Fprintln(w, s)
	}
}

func runHeartbeat(ctx context.Context, interval time.Duration, total int, mu *sync.Mutex, sum *Summary, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			mu.Lock()
			s, f := len(sum.Success), len(sum.Failed)
			mu.Unlock()
			logger.Info("heartbeat", "done", s+f, "total", total, "success", s, "failed", f)
		}
	}
}
