package scan

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FailedEntry records why one ticker could not be analyzed.
type FailedEntry struct {
	Ticker string `json:"ticker"`
	Reason string `json:"reason"`
}

func writeRunReport(outDir string, successList []string, failedList []FailedEntry) error {
	if len(successList) == 0 && len(failedList) == 0 {
		return nil
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	if len(successList) > 0 {
		p := filepath.Join(outDir, ".lastrun.success.json")
		if err := writeJSON(p, successList); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "tickers", len(successList))
	}
	if len(failedList) > 0 {
		p := filepath.Join(outDir, ".lastrun.failed.json")
		if err := writeJSON(p, failedList); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// groupFailed groups failed tickers by reason, reasons in first-seen order.
func groupFailed(failed []FailedEntry) (reasons []string, tickers map[string][]string) {
	tickers = make(map[string][]string)
	for _, f := range failed {
		if _, ok := tickers[f.Reason]; !ok {
			reasons = append(reasons, f.Reason)
		}
		tickers[f.Reason] = append(tickers[f.Reason], f.Ticker)
	}
	return reasons, tickers
}

func logFailed(logger *slog.Logger, failed []FailedEntry) {
	reasons, tickers := groupFailed(failed)
	for _, r := range reasons {
		logger.Warn("summary failed", "reason", r, "count", len(tickers[r]), "tickers", strings.Join(tickers[r], ","))
	}
}
