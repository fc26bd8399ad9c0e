package slogx

import (
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
		"info+2":  slog.LevelInfo + 2,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}

func TestChanLogger(t *testing.T) {
	ch := make(chan string, 4)
	logger, _ := NewChanLogger(ch, "info", "json")
	logger.Debug("hidden")
	logger.Info("scan ok", "ticker", "SPY")
	select {
	case line := <-ch:
		if !strings.Contains(line, `"msg":"scan ok"`) || !strings.Contains(line, `"ticker":"SPY"`) {
			t.Fatalf("unexpected line %q", line)
		}
	default:
		t.Fatal("no line sent")
	}
	if len(ch) != 0 {
		t.Fatalf("debug line should be filtered, %d left", len(ch))
	}
}

func TestChanWriterDropsWhenFull(t *testing.T) {
	ch := make(chan string, 1)
	w := &ChanWriter{Ch: ch}
	w.Write([]byte("a\nb\npart"))
	if len(ch) != 1 || <-ch != "a" {
		t.Fatal("first line should be kept, second dropped")
	}
	if w.Dropped() != 1 {
		t.Fatalf("dropped = %d want 1", w.Dropped())
	}
	w.Write([]byte("ial\n"))
	if got := <-ch; got != "partial" {
		t.Fatalf("joined line = %q", got)
	}
}
