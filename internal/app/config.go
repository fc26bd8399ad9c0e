package app

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"gapscan/internal/series"
	"gapscan/internal/tickers"
)

// Config holds application configuration from env
type Config struct {
	DataDir      string
	DataFormat   string
	Tickers      []string
	TickersFile  string
	SMAPeriods   []int
	FastSMA      int
	SlowSMA      int
	CrossFastSMA int
	CrossSlowSMA int
	OutDir       string
	ExportFormat string // csv | json | parquet | none
	ReportTZ     string
	Workers      int
	RunEvery     time.Duration // 0 = run once
	LogLevel     string        // debug | info | warn | error
	LogFormat    string        // text | json
}

// LoadConfig reads .env files (if present) and then the environment.
// Variables already set in the environment win over .env values.
func LoadConfig() *Config {
	for _, f := range []string{".env", ".env.local"} {
		if err := godotenv.Load(f); err == nil {
			slog.Debug("loaded env file", "path", f)
		}
	}
	cfg := &Config{
		DataDir:      getEnv("DATA_DIR", "data"),
		TickersFile:  os.Getenv("TICKERS_FILE"),
		Tickers:      tickers.Parse(os.Getenv("TICKERS")),
		OutDir:       getEnv("OUT_DIR", "out"),
		ExportFormat: strings.ToLower(getEnv("EXPORT_FORMAT", "json")),
		ReportTZ:     getEnv("REPORT_TZ", "America/New_York"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "text"),
		FastSMA:      getEnvInt("REPORT_FAST_SMA", 20, 1, 10000),
		SlowSMA:      getEnvInt("REPORT_SLOW_SMA", 94, 1, 10000),
		CrossFastSMA: getEnvInt("CROSS_FAST_SMA", 6, 1, 10000),
		CrossSlowSMA: getEnvInt("CROSS_SLOW_SMA", 50, 1, 10000),
		Workers:      getEnvInt("WORKERS", 4, 1, 256),
	}
	cfg.DataFormat = getDataFormat()
	cfg.SMAPeriods = parsePeriods(os.Getenv("SMA_PERIODS"))
	if v := os.Getenv("RUN_EVERY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			cfg.RunEvery = d
		} else {
			slog.Warn("invalid RUN_EVERY, running once", "value", v)
		}
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def, min, max int) int {
	if s := os.Getenv(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= min && v <= max {
			return v
		}
	}
	return def
}

func getDataFormat() string {
	if v := os.Getenv("DATA_FORMAT"); v != "" {
		return strings.ToLower(v)
	}
	switch os.Getenv("PROFILE") {
	case "dev", "development":
		return "csv"
	default:
		return "parquet"
	}
}

// parsePeriods parses "1,20,94"; invalid entries are skipped, empty input gives the defaults.
func parsePeriods(s string) []int {
	var out []int
	for _, f := range strings.Split(s, ",") {
		if v, err := strconv.Atoi(strings.TrimSpace(f)); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return append([]int(nil), series.DefaultSMAPeriods...)
	}
	return out
}

// Periods returns SMAPeriods plus the report and cross SMAs, sorted and deduplicated.
func (c *Config) Periods() []int {
	seen := make(map[int]bool)
	var out []int
	for _, p := range append(append([]int(nil), c.SMAPeriods...), c.FastSMA, c.SlowSMA, c.CrossFastSMA, c.CrossSlowSMA) {
		if p > 0 && !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Ints(out)
	return out
}

// Location resolves ReportTZ, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTZ)
	if err != nil {
		slog.Warn("unknown REPORT_TZ, using UTC", "tz", c.ReportTZ, "error", err)
		return time.UTC
	}
	return loc
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.FastSMA == c.SlowSMA {
		return fmt.Errorf("REPORT_FAST_SMA and REPORT_SLOW_SMA must differ (both %d)", c.FastSMA)
	}
	if c.CrossFastSMA == c.CrossSlowSMA {
		return fmt.Errorf("CROSS_FAST_SMA and CROSS_SLOW_SMA must differ (both %d)", c.CrossFastSMA)
	}
	return nil
}
