package slogx

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// ChanWriter splits handler output into lines and sends each line to Ch.
// A line that does not fit in Ch is dropped and counted; workers never block on logging.
// Writes must be serialized, which slog handlers already do.
type ChanWriter struct {
	Ch      chan<- string
	partial []byte
	dropped atomic.Int64
}

func (w *ChanWriter) Write(p []byte) (int, error) {
	rest := append(w.partial, p...)
	for {
		line, tail, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			break
		}
		select {
		case w.Ch <- string(line):
		default:
			w.dropped.Add(1)
		}
		rest = tail
	}
	w.partial = append(w.partial[:0], rest...)
	return len(p), nil
}

// Dropped returns how many lines were discarded because Ch was full.
func (w *ChanWriter) Dropped() int64 { return w.dropped.Load() }

// NewChanLogger returns a logger whose lines go to ch, and the writer behind it.
func NewChanLogger(ch chan<- string, level, format string) (*slog.Logger, *ChanWriter) {
	w := &ChanWriter{Ch: ch}
	return slog.New(NewHandler(w, level, format)), w
}

// ParseLevel accepts slog level names ("debug", "WARN", "info+2") plus "warning".
// Anything else is info.
func ParseLevel(s string) slog.Level {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return slog.LevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewHandler returns a JSON handler for format "json", a text handler otherwise.
func NewHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// NewDefault creates a logger writing to stderr with the given level and format.
func NewDefault(level, format string) *slog.Logger {
	return slog.New(NewHandler(os.Stderr, level, format))
}
