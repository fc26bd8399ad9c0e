package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"gapscan/internal/analysis"
	"gapscan/internal/provider"
	"gapscan/internal/report"
	"gapscan/internal/saver"
	"gapscan/internal/series"
	"gapscan/internal/slogx"
)

// Options configures one scan run.
type Options struct {
	Periods   []int
	Report    report.Options // Ticker is filled per job
	Saver     saver.OverlaySaver
	OutDir    string
	Workers   int
	Out       io.Writer // receives one report message per instrument
	Heartbeat time.Duration
	LogLevel  string
	LogFormat string
}

// JobResult is sent by workers for fan-in
type JobResult struct {
	Ok        bool
	Ticker    string
	Reason    string
	Bars      int
	Gaps      int
	OpenGaps  int
	KeyLevels int
	Islands   int
	Message   string
	Files     []string
}

// AnalyzeTicker loads, analyzes, reports and optionally exports one instrument.
// Each call builds its own series; nothing is shared between tickers.
func AnalyzeTicker(dp provider.DataProvider, ticker string, opts Options) (JobResult, error) {
	r := JobResult{Ticker: ticker}
	bars, err := dp.LoadBars(ticker)
	if err != nil {
		return r, fmt.Errorf("load: %w", err)
	}
	s, err := series.New(bars, opts.Periods...)
	if err != nil {
		return r, err
	}
	res, err := analysis.Analyze(s)
	if err != nil {
		return r, err
	}
	ro := opts.Report
	ro.Ticker = ticker
	rep, err := report.Build(res, ro)
	if err != nil {
		return r, err
	}
	r.Bars = s.Len()
	r.Gaps = len(res.Gaps())
	r.OpenGaps = len(res.OpenGaps())
	r.KeyLevels = len(res.KeyLevels())
	r.Islands = len(res.Islands())
	r.Message = rep.String()

	if opts.Saver != nil {
		dir := filepath.Join(opts.OutDir, ticker)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return r, fmt.Errorf("export: %w", err)
		}
		files, err := opts.Saver.Save(saver.NewOverlay(ticker, res), dir)
		if err != nil {
			return r, fmt.Errorf("export: %w", err)
		}
		r.Files = files
	}
	r.Ok = true
	return r, nil
}

// Summary is the outcome of RunParallel.
type Summary struct {
	Success []string
	Failed  []FailedEntry
}

// RunParallel analyzes tickers with opts.Workers workers. Once ctx is cancelled the
// remaining tickers are recorded as failed without being loaded.
func RunParallel(ctx context.Context, dp provider.DataProvider, tickers []string, opts Options) Summary {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	logs := make(chan string, 2048)
	logger, lw := slogx.NewChanLogger(logs, opts.LogLevel, opts.LogFormat)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		runLogWriter(os.Stderr, logs)
	}()

	type logSetter interface{ SetLogFunc(provider.LogFunc) }
	if ls, ok := dp.(logSetter); ok {
		ls.SetLogFunc(func(msg string, args ...any) { logger.Debug(msg, args...) })
		defer ls.SetLogFunc(nil)
	}
	defer func() {
		close(logs)
		logWg.Wait()
		if n := lw.Dropped(); n > 0 {
			slog.Warn("scan log lines dropped", "count", n)
		}
	}()

	pending := make(chan string, len(tickers))
	for _, t := range tickers {
		pending <- t
	}
	close(pending)

	hbCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan JobResult, len(tickers))
	var mu sync.Mutex
	var sum Summary
	var resWg sync.WaitGroup
	resWg.Add(1)
	go func() {
		defer resWg.Done()
		runResultCollector(results, out, &mu, &sum)
	}()

	var hbWg sync.WaitGroup
	if opts.Heartbeat > 0 {
		hbWg.Add(1)
		go func() {
			defer hbWg.Done()
			runHeartbeat(hbCtx, opts.Heartbeat, len(tickers), &mu, &sum, logger)
		}()
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for ticker := range pending {
				if err := ctx.Err(); err != nil {
					results <- JobResult{Ticker: ticker, Reason: "not started: " + err.Error()}
					continue
				}
				start := time.Now()
				r, err := AnalyzeTicker(dp, ticker, opts)
				if err != nil {
					r.Ok = false
					r.Reason = err.Error()
					logger.Error("scan fail", "ticker", ticker, "reason", r.Reason)
				} else {
					logger.Info("scan ok", "ticker", ticker, "bars", r.Bars, "gaps", r.Gaps,
						"open_gaps", r.OpenGaps, "key_levels", r.KeyLevels, "islands", r.Islands,
						"files", len(r.Files), "took", time.Since(start))
				}
				results <- r
			}
		}()
	}
	wg.Wait()
	close(results)
	resWg.Wait()
	cancel()
	hbWg.Wait()

	logger.Info("summary", "success", len(sum.Success), "failed", len(sum.Failed), "total", len(tickers))
	logFailed(logger, sum.Failed)
	return sum
}

// RunOnce runs RunParallel and writes the run report to opts.OutDir.
func RunOnce(ctx context.Context, dp provider.DataProvider, tickers []string, opts Options) Summary {
	if len(tickers) == 0 {
		slog.Info("no tickers to scan, skip")
		return Summary{}
	}
	slog.Info("tickers to scan", "count", len(tickers), "workers", opts.Workers)
	sum := RunParallel(ctx, dp, tickers, opts)
	if err := writeRunReport(opts.OutDir, sum.Success, sum.Failed); err != nil {
		slog.Warn("could not write run report", "error", err)
	} else {
		slog.Info("run report saved", "success", len(sum.Success), "failed", len(sum.Failed))
	}
	return sum
}

func runResultCollector(results <-chan JobResult, out io.Writer, mu *sync.Mutex, sum *Summary) {
	for r := range results {
		if r.Ok {
			fmt.Fprintln(out, r.Message)
			fmt.Fprintln(out)
		}
		mu.Lock()
		if r.Ok {
			if !slices.Contains(sum.Success, r.Ticker) {
				sum.Success = append(sum.Success, r.Ticker)
			}
		} else {
			sum.Failed = append(sum.Failed, FailedEntry{Ticker: r.Ticker, Reason: r.Reason})
		}
		mu.Unlock()
	}
}
