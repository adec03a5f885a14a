// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// LogParams is an embeddable struct adding --log-level to a command's
// parameter struct.
type LogParams struct {
	LogLevel string `json:"-" flag:"log-level" default:"info" desc:"diagnostic log level (debug, info, warn, error)"`
}

// Logger returns a command logger writing to w at the selected level.
func (p *LogParams) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(p.LogLevel)
	if err != nil {
		return nil, err
	}
	return NewCommandLogger(w, level), nil
}

// ParseLevel parses a log level name. The empty string is info.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if name == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: want debug, info, warn or error", name)
	}
	return level, nil
}

// NewCommandLogger creates a structured logger for command diagnostics.
// When w is a terminal, uses slog.TextHandler for human-readable
// output. When w is piped or redirected (CI job logs, scripts), uses
// slog.JSONHandler for machine-parseable output.
//
// Matrix documents go to stdout; everything written through this
// logger goes to w, normally stderr, so the two never interleave.
func NewCommandLogger(w io.Writer, level slog.Level) *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: level}
	if IsTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler)
}

// IsTerminal reports whether w is a terminal file descriptor.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
