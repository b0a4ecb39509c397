// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable, origin-scoped preference storage.
package storage

import (
	"context"
	"errors"
	"sync"
)

// Preference keys.
const (
	// KeyColorScheme holds the JSON-encoded active theme.
	KeyColorScheme = "colorscheme"
	// KeyAutoTheme holds the JSON-encoded auto-theme flag.
	KeyAutoTheme = "autoTheme"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("storage: store is closed")

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// =============================================================================
// MEMORY STORE
// =============================================================================

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns a Memory pre-populated with seed.
func NewMemory(seed map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(seed))}
	for k, v := range seed {
		m.values[k] = v
	}
	return m
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements KV.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}
