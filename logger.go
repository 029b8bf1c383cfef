package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// nopHandler discards everything. The TUI owns stdout/stderr, so logging is
// off unless a file sink is configured.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogger routes logging to path through tea.LogToFile so the standard
// log package and slog share one file. The returned closer must be closed
// on exit. An empty path yields a silent logger.
func openLogger(path, level string) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return newNopLogger(), io.NopCloser(nil), nil
	}
	f, err := tea.LogToFile(path, "pixl")
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: parseLogLevel(level)})
	return slog.New(handler).With("pid", os.Getpid()), f, nil
}
