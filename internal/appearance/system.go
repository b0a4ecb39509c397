// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package appearance reports the operating system's light/dark preference.
package appearance

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// DefaultPollInterval is used when NewSystem is given a non-positive interval.
const DefaultPollInterval = 5 * time.Second

// queryTimeout bounds a single desktop query.
const queryTimeout = 2 * time.Second

// =============================================================================
// SYSTEM SOURCE
// =============================================================================

// System polls the desktop color-scheme setting.
type System struct {
	interval time.Duration
	logger   *slog.Logger

	// query returns (dark, true) when the desktop answered.
	query func(ctx context.Context) (dark bool, ok bool)

	// fallback is used when query has no answer. It never touches the
	// terminal: the background is queried once in NewSystem, before a UI
	// takes over stdin.
	fallback func() bool
}

// terminalBackground asks the terminal for its background color.
var terminalBackground = func() bool {
	return termenv.NewOutput(os.Stdout, termenv.WithColorCache(true)).HasDarkBackground()
}

// NewSystem returns a System source polling every interval. It must be
// called before anything else reads from the terminal.
func NewSystem(interval time.Duration, logger *slog.Logger) *System {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	dark := terminalBackground()
	return &System{
		interval: interval,
		logger:   logger,
		query:    queryDesktop,
		fallback: func() bool { return dark },
	}
}

// Dark implements Source.
func (s *System) Dark(ctx context.Context) bool {
	qctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if dark, ok := s.query(qctx); ok {
		return dark
	}
	return s.fallback()
}

// Watch implements Source by polling.
func (s *System) Watch(ctx context.Context, fn func(bool)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)
	last := s.Dark(ctx)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dark := s.Dark(ctx)
				if ctx.Err() != nil {
					return
				}
				if dark != last {
					last = dark
					s.logger.Debug("system color scheme changed", "scheme", Format(dark))
					fn(dark)
				}
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}, nil
}
