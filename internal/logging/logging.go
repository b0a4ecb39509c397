// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the slog.Logger used across termfolio.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options selects the sinks and verbosity of a logger.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string

	// Format is "text" (default) or "json".
	Format string

	// File, when set, receives log records. Parent directories are created.
	File string

	// Writer receives log records when File is empty. Nil discards.
	Writer io.Writer

	// Journal adds a systemd journal sink when the process runs as a
	// systemd service.
	Journal bool
}

// level is shared by every logger built here so SetLevel applies globally.
var level = new(slog.LevelVar)

// ParseLevel converts a level name into a slog.Level.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
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

// SetLevel changes the level of every logger created by New.
func SetLevel(name string) {
	level.Set(ParseLevel(name))
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// New builds a logger from opts. The returned close function releases the
// log file, if any, and is safe to call more than once.
func New(opts Options) (*slog.Logger, func() error, error) {
	level.Set(ParseLevel(opts.Level))

	var handlers []slog.Handler
	closer := func() error { return nil }

	out := opts.Writer
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err != nil {
			return nil, closer, err
		}
		out = f
		closed := false
		closer = func() error {
			if closed {
				return nil
			}
			closed = true
			return f.Close()
		}
	}
	if out != nil {
		handlers = append(handlers, newWriterHandler(out, opts.Format))
	}

	if opts.Journal && isSystemdService() {
		jh, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			if len(handlers) > 0 {
				r := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
				r.AddAttrs(slog.String("error", err.Error()))
				_ = handlers[0].Handle(context.Background(), r)
			}
		} else {
			handlers = append(handlers, jh)
		}
	}

	if len(handlers) == 0 {
		return slog.New(slog.DiscardHandler), closer, nil
	}
	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

func newWriterHandler(w io.Writer, format string) slog.Handler {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Value = slog.StringValue(a.Value.Time().Format(time.DateTime))
			}
			return a
		},
	}
	if strings.EqualFold(format, "json") {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func openLogFile(name string) (*os.File, error) {
	if strings.HasPrefix(name, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
		name = filepath.Join(home, name[2:])
	}
	if err := os.MkdirAll(filepath.Dir(name), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// =============================================================================
// SYSTEMD
// =============================================================================

func isSystemdService() bool {
	content, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return false
	}
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		parts := strings.SplitN(line, ":", 3)
		if len(parts) == 3 && strings.HasSuffix(path.Dir(parts[2]), ".service") {
			return true
		}
		if len(parts) == 3 && strings.HasSuffix(parts[2], ".service") {
			return true
		}
	}
	return false
}

// toJournalKey maps attribute keys onto the journal's A-Z0-9_ field syntax.
func toJournalKey(s string) string {
	s = strings.ToUpper(s)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, s)
}
