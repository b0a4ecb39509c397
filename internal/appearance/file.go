// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package appearance reports the operating system's light/dark preference.
package appearance

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long File waits after the last write before
// re-reading the preference file.
const DefaultDebounce = 100 * time.Millisecond

// =============================================================================
// FILE SOURCE
// =============================================================================

// File reads the preference from a file containing "dark" or "light".
// A missing or unreadable file reports the fallback value.
type File struct {
	path     string
	fallback bool
	debounce time.Duration
	logger   *slog.Logger
}

// NewFile returns a File source for path.
func NewFile(path string, fallback bool, logger *slog.Logger) *File {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &File{path: path, fallback: fallback, debounce: DefaultDebounce, logger: logger}
}

// Path returns the watched file.
func (f *File) Path() string {
	return f.path
}

// Dark implements Source.
func (f *File) Dark(context.Context) bool {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return f.fallback
	}
	dark, err := Parse(string(data))
	if err != nil {
		f.logger.Warn("invalid appearance file", "path", f.path, "error", err)
		return f.fallback
	}
	return dark
}

// Write stores the preference in the file, creating parent directories.
func (f *File) Write(dark bool) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("failed to create appearance directory: %w", err)
	}
	return os.WriteFile(f.path, []byte(Format(dark)+"\n"), 0644)
}

// Watch implements Source. The parent directory is watched so the file may
// be created, replaced or removed.
func (f *File) Watch(ctx context.Context, fn func(bool)) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to create appearance directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	last := f.Dark(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		name := filepath.Clean(f.path)

		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(f.debounce)
				} else {
					timer.Reset(f.debounce)
				}
				fire = timer.C

			case <-fire:
				fire = nil
				dark := f.Dark(ctx)
				if dark != last {
					last = dark
					f.logger.Debug("appearance file changed", "scheme", Format(dark))
					fn(dark)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				f.logger.Warn("appearance watcher error", "error", err)
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}, nil
}
