// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range tests {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNew_WriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	defer closeLog()

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info record written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=value") {
		t.Errorf("warn record missing: %q", out)
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, closeLog, err := New(Options{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)
	defer closeLog()

	logger.Info("hello")
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "termfolio.log")
	logger, closeLog, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	logger.Debug("to file")
	require.NoError(t, closeLog())
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestNew_NoSinksDiscards(t *testing.T) {
	logger, closeLog, err := New(Options{})
	require.NoError(t, err)
	defer closeLog()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Error("logger with no sinks should not be enabled at any level")
	}
	logger.Error("nowhere")
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("theme.name-1"); got != "THEME_NAME_1" {
		t.Errorf("toJournalKey = %q, want THEME_NAME_1", got)
	}
}
