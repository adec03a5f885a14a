// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if err != nil {
			t.Errorf("ParseLevel(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", test.input, got, test.want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil || !strings.Contains(err.Error(), "invalid --log-level") {
		t.Errorf("ParseLevel(verbose) error = %v", err)
	}
}

func TestNewCommandLogger_NonTerminalWritesJSON(t *testing.T) {
	var buffer bytes.Buffer
	logger := NewCommandLogger(&buffer, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("matrix exceeds size limit", "size", 300)

	lines := strings.Split(strings.TrimSpace(buffer.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1:\n%s", len(lines), buffer.String())
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, lines[0])
	}
	if record["msg"] != "matrix exceeds size limit" || record["size"] != float64(300) {
		t.Errorf("record = %v", record)
	}
}

func TestLogParams_Logger(t *testing.T) {
	params := LogParams{LogLevel: "error"}
	var buffer bytes.Buffer
	logger, err := params.Logger(&buffer)
	if err != nil {
		t.Fatalf("Logger: %v", err)
	}
	logger.Warn("dropped")
	if buffer.Len() != 0 {
		t.Errorf("warn logged at error level: %s", buffer.String())
	}

	if _, err := (&LogParams{LogLevel: "loud"}).Logger(&buffer); err == nil {
		t.Error("Logger with invalid level should fail")
	}
}

func TestEmitJSON(t *testing.T) {
	var buffer bytes.Buffer
	output := JSONOutput{}
	done, err := output.EmitJSON(&buffer, []string(nil))
	if done || err != nil || buffer.Len() != 0 {
		t.Errorf("EmitJSON without --json = (%v, %v), wrote %q", done, err, buffer.String())
	}

	output.OutputJSON = true
	done, err = output.EmitJSON(&buffer, []string(nil))
	if !done || err != nil {
		t.Fatalf("EmitJSON = (%v, %v)", done, err)
	}
	if strings.TrimSpace(buffer.String()) != "[]" {
		t.Errorf("nil slice encoded as %q, want []", buffer.String())
	}
}
