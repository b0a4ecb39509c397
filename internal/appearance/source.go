// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package appearance reports the operating system's light/dark preference.
package appearance

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// =============================================================================
// SOURCE
// =============================================================================

// Source reports the preferred color scheme.
type Source interface {
	// Dark reports whether the preferred color scheme is dark.
	Dark(ctx context.Context) bool

	// Watch calls fn with the new preference whenever it changes, until ctx
	// is cancelled or stop is called. stop waits for the listener to exit.
	Watch(ctx context.Context, fn func(dark bool)) (stop func(), err error)
}

// Scheme names accepted by Parse and written by Format.
const (
	SchemeDark  = "dark"
	SchemeLight = "light"
)

// Parse converts "dark" or "light" (case-insensitive, surrounding space
// ignored) into a preference.
func Parse(s string) (dark bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SchemeDark:
		return true, nil
	case SchemeLight:
		return false, nil
	default:
		return false, fmt.Errorf("unknown color scheme %q", s)
	}
}

// Format returns "dark" or "light".
func Format(dark bool) string {
	if dark {
		return SchemeDark
	}
	return SchemeLight
}

// =============================================================================
// FIXED SOURCE
// =============================================================================

// Fixed is a Source whose value is set programmatically.
type Fixed struct {
	mu      sync.Mutex
	dark    bool
	nextID  int
	watches map[int]func(bool)
}

// NewFixed returns a Fixed source reporting dark.
func NewFixed(dark bool) *Fixed {
	return &Fixed{dark: dark, watches: make(map[int]func(bool))}
}

// Dark implements Source.
func (f *Fixed) Dark(context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dark
}

// Set changes the preference. Watchers are called synchronously, and only
// when the value changes.
func (f *Fixed) Set(dark bool) {
	f.mu.Lock()
	if f.dark == dark {
		f.mu.Unlock()
		return
	}
	f.dark = dark
	fns := make([]func(bool), 0, len(f.watches))
	for id := 0; id < f.nextID; id++ {
		if fn, ok := f.watches[id]; ok {
			fns = append(fns, fn)
		}
	}
	f.mu.Unlock()

	for _, fn := range fns {
		fn(dark)
	}
}

// Watch implements Source.
func (f *Fixed) Watch(ctx context.Context, fn func(bool)) (func(), error) {
	f.mu.Lock()
	if f.watches == nil {
		f.watches = make(map[int]func(bool))
	}
	id := f.nextID
	f.nextID++
	f.watches[id] = fn
	f.mu.Unlock()

	remove := func() {
		f.mu.Lock()
		delete(f.watches, id)
		f.mu.Unlock()
	}

	done := make(chan struct{})
	stopCh := make(chan struct{})
	go func() {
		defer close(done)
		select {
		case <-ctx.Done():
		case <-stopCh:
		}
		remove()
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(stopCh) })
		<-done
	}, nil
}
