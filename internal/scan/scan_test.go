package scan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"gapscan/internal/model"
	"gapscan/internal/provider"
	"gapscan/internal/report"
	"gapscan/internal/saver"
	"gapscan/internal/series"
)

// memProvider serves fixed bars per ticker.
type memProvider struct {
	mu    sync.Mutex
	bars  map[string][]model.Bar
	calls int
	logFn provider.LogFunc
}

func (m *memProvider) GetName() string { return "mem" }
func (m *memProvider) Close() error    { return nil }

func (m *memProvider) SetLogFunc(fn provider.LogFunc) { m.logFn = fn }

func (m *memProvider) LoadBars(ticker string) ([]model.Bar, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	bars, ok := m.bars[ticker]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ticker, series.ErrNoData)
	}
	return bars, nil
}

func islandBars() []model.Bar {
	var bars []model.Bar
	for i, c := range []float64{100, 100, 103, 103, 100, 100, 100} {
		bars = append(bars, model.Bar{Timestamp: int64(i), Open: c, High: c + 0.1, Low: c - 0.1, Close: c, Volume: 5})
	}
	return bars
}

func testOptions(t *testing.T, out *bytes.Buffer) Options {
	return Options{
		Periods: []int{1, 3},
		Report: report.Options{
			FastSMA: 1,
			SlowSMA: 3,
			Now:     time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC),
		},
		Saver:     saver.JSONSaver{},
		OutDir:    t.TempDir(),
		Workers:   2,
		Out:       out,
		Heartbeat: time.Millisecond,
		LogLevel:  "error",
	}
}

func TestAnalyzeTicker(t *testing.T) {
	var out bytes.Buffer
	opts := testOptions(t, &out)
	dp := &memProvider{bars: map[string][]model.Bar{"SPY": islandBars()}}

	r, err := AnalyzeTicker(dp, "SPY", opts)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Ok || r.Bars != 7 || r.Gaps != 2 || r.Islands != 1 || r.OpenGaps != 1 {
		t.Fatalf("result = %+v", r)
	}
	if !strings.HasPrefix(r.Message, "SPY 02-01-2026 15:04") {
		t.Fatalf("message = %q", r.Message)
	}
	if len(r.Files) != 1 {
		t.Fatalf("files = %v", r.Files)
	}
	if _, err := os.Stat(filepath.Join(opts.OutDir, "SPY", "spy_overlay.json")); err != nil {
		t.Fatalf("overlay not written: %v", err)
	}
}

func TestAnalyzeTickerNoData(t *testing.T) {
	dp := &memProvider{}
	_, err := AnalyzeTicker(dp, "QQQ", Options{})
	if !errors.Is(err, series.ErrNoData) {
		t.Fatalf("want ErrNoData, got %v", err)
	}
}

func TestRunOnce(t *testing.T) {
	var out bytes.Buffer
	opts := testOptions(t, &out)
	dp := &memProvider{bars: map[string][]model.Bar{
		"SPY": islandBars(),
		"QQQ": islandBars(),
	}}

	sum := RunOnce(context.Background(), dp, []string{"SPY", "QQQ", "IWM"}, opts)
	if len(sum.Success) != 2 || len(sum.Failed) != 1 || sum.Failed[0].Ticker != "IWM" {
		t.Fatalf("summary = %+v", sum)
	}
	if got := strings.Count(out.String(), "Cross: "); got != 2 {
		t.Fatalf("want 2 report messages, got %d:\n%s", got, out.String())
	}
	if dp.logFn != nil {
		t.Fatalf("log func should be reset after the run")
	}

	data, err := os.ReadFile(filepath.Join(opts.OutDir, ".lastrun.failed.json"))
	if err != nil {
		t.Fatal(err)
	}
	var failed []FailedEntry
	if err := json.Unmarshal(data, &failed); err != nil {
		t.Fatal(err)
	}
	if len(failed) != 1 || !strings.Contains(failed[0].Reason, "no data") {
		t.Fatalf("failed report = %+v", failed)
	}
}

func TestRunOnceCancelledRecordsEveryTicker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tickers := []string{"SPY", "QQQ", "IWM"}
	for run := 0; run < 20; run++ {
		dp := &memProvider{bars: map[string][]model.Bar{"SPY": islandBars(), "QQQ": islandBars()}}
		var out bytes.Buffer
		opts := testOptions(t, &out)
		sum := RunOnce(ctx, dp, tickers, opts)
		if n := len(sum.Success) + len(sum.Failed); n != len(tickers) {
			t.Fatalf("run %d: recorded %d of %d tickers: %+v", run, n, len(tickers), sum)
		}
		if len(sum.Success) != 0 || dp.calls != 0 {
			t.Fatalf("run %d: cancelled run loaded %d tickers", run, dp.calls)
		}
		for _, f := range sum.Failed {
			if !strings.Contains(f.Reason, context.Canceled.Error()) {
				t.Fatalf("run %d: reason %q", run, f.Reason)
			}
		}
		data, err := os.ReadFile(filepath.Join(opts.OutDir, ".lastrun.failed.json"))
		if err != nil {
			t.Fatalf("run %d: %v", run, err)
		}
		var failed []FailedEntry
		if err := json.Unmarshal(data, &failed); err != nil {
			t.Fatal(err)
		}
		if len(failed) != len(tickers) {
			t.Fatalf("run %d: failed report = %+v", run, failed)
		}
	}
}

func TestGroupFailed(t *testing.T) {
	reasons, tickers := groupFailed([]FailedEntry{
		{Ticker: "SPY", Reason: "not started: context canceled"},
		{Ticker: "IWM", Reason: "load: no data"},
		{Ticker: "QQQ", Reason: "not started: context canceled"},
	})
	if len(reasons) != 2 || reasons[0] != "not started: context canceled" {
		t.Fatalf("reasons = %v", reasons)
	}
	if got := tickers[reasons[0]]; len(got) != 2 || got[0] != "SPY" || got[1] != "QQQ" {
		t.Fatalf("tickers = %v", got)
	}
	if r, _ := groupFailed(nil); len(r) != 0 {
		t.Fatalf("empty input gave %v", r)
	}
}
