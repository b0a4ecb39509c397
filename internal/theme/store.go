// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme provides the color theme catalog and the theme store.
package theme

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/jeranaias/termfolio/internal/appearance"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// STATE
// =============================================================================

// State is the observable value of a Store.
type State struct {
	Theme Theme
	Auto  bool
}

// Mode returns "auto" or "manual".
func (s State) Mode() string {
	if s.Auto {
		return "auto"
	}
	return "manual"
}

// =============================================================================
// STORE
// =============================================================================

// Store owns the active theme and the auto flag, keeps them in sync with an
// appearance source while in auto mode, and persists every change.
type Store struct {
	catalog *Catalog
	kv      storage.KV
	source  appearance.Source
	logger  *slog.Logger

	state *util.Observable[State]

	// mu serializes transitions so persistence and notification order match.
	mu sync.Mutex

	ctx       context.Context
	cancel    context.CancelFunc
	stop      func()
	listening bool
	closed    bool
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the logger used for persistence failures.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a store in the default state {dark, auto}. Call Load to
// rehydrate persisted preferences and start the listener.
func NewStore(catalog *Catalog, kv storage.KV, source appearance.Source, opts ...StoreOption) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		catalog: catalog,
		kv:      kv,
		source:  source,
		logger:  slog.New(slog.DiscardHandler),
		state:   util.NewObservable(State{Theme: catalog.Resolve(DarkName), Auto: true}),
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the store resolves names against.
func (s *Store) Catalog() *Catalog {
	return s.catalog
}

// Current returns the active theme.
func (s *Store) Current() Theme {
	return s.state.Get().Theme
}

// Auto reports whether auto mode is enabled.
func (s *Store) Auto() bool {
	return s.state.Get().Auto
}

// State returns the active theme and auto flag.
func (s *Store) State() State {
	return s.state.Get()
}

// Subscribe registers fn for every state change. fn runs on the goroutine
// that caused the change and must not call back into the store's setters.
func (s *Store) Subscribe(fn func(State)) (cancel func()) {
	return s.state.Subscribe(fn)
}

// Load rehydrates the state from the preference store. Absent or malformed
// values fall back to {dark, auto}. In auto mode the appearance listener is
// started and the theme is derived from the current preference. Nothing is
// written unless a stored value needs correcting, so a visitor who never
// changes a preference leaves no rows behind.
func (s *Store) Load(ctx context.Context) State {
	stored := make(map[string]string, 2)

	auto := true
	if raw, ok := s.read(ctx, storage.KeyAutoTheme); ok {
		stored[storage.KeyAutoTheme] = raw
		var v bool
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			auto = v
		} else {
			s.logger.Debug("ignoring malformed preference", "key", storage.KeyAutoTheme)
		}
	}

	t := s.catalog.Resolve(DarkName)
	if raw, ok := s.read(ctx, storage.KeyColorScheme); ok {
		stored[storage.KeyColorScheme] = raw
		var persisted Theme
		if err := json.Unmarshal([]byte(raw), &persisted); err == nil {
			t = s.catalog.Resolve(persisted.Name)
		} else {
			s.logger.Debug("ignoring malformed preference", "key", storage.KeyColorScheme)
		}
	}

	next := State{Theme: t, Auto: false}
	if auto {
		s.listen()
		next = State{Theme: s.fromPreference(ctx), Auto: true}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, raw := range encode(next) {
		if old, ok := stored[key]; ok && old != raw {
			s.write(ctx, key, raw)
		}
	}
	s.state.Set(next)
	return next
}

// SetManual leaves auto mode and activates the named theme, or the first
// catalog entry when the name is unknown.
func (s *Store) SetManual(ctx context.Context, name string) State {
	return s.commit(ctx, State{Theme: s.catalog.Resolve(name), Auto: false})
}

// EnableAuto enters auto mode, starts the listener if it is not running and
// applies the current appearance preference.
func (s *Store) EnableAuto(ctx context.Context) State {
	s.listen()
	return s.commit(ctx, State{Theme: s.fromPreference(ctx), Auto: true})
}

// Close stops the appearance listener. The store keeps answering reads.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	stop := s.stop
	s.mu.Unlock()

	s.cancel()
	if stop != nil {
		stop()
	}
	return nil
}

// listen subscribes to the appearance source once per store lifetime.
func (s *Store) listen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listening || s.closed || s.source == nil {
		return
	}

	stop, err := s.source.Watch(s.ctx, s.onPreference)
	if err != nil {
		s.logger.Warn("appearance listener unavailable", "error", err)
		return
	}
	s.listening = true
	s.stop = stop
}

// onPreference handles an appearance change. It is inert in manual mode.
func (s *Store) onPreference(dark bool) {
	if !s.Auto() {
		return
	}
	name := LightName
	if dark {
		name = DarkName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the lock: SetManual may have won the race.
	if !s.state.Get().Auto {
		return
	}
	s.commitLocked(s.ctx, State{Theme: s.catalog.Resolve(name), Auto: true})
}

func (s *Store) fromPreference(ctx context.Context) Theme {
	if s.source == nil || s.source.Dark(ctx) {
		return s.catalog.Resolve(DarkName)
	}
	return s.catalog.Resolve(LightName)
}

func (s *Store) commit(ctx context.Context, next State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, next)
}

// commitLocked persists next and notifies subscribers. Persistence failures
// are logged; the in-memory state still changes.
func (s *Store) commitLocked(ctx context.Context, next State) State {
	for key, raw := range encode(next) {
		s.write(ctx, key, raw)
	}
	s.state.Set(next)
	return next
}

// encode returns the persisted form of st keyed by preference name.
func encode(st State) map[string]string {
	out := make(map[string]string, 2)
	if raw, err := json.Marshal(st.Theme); err == nil {
		out[storage.KeyColorScheme] = string(raw)
	}
	if raw, err := json.Marshal(st.Auto); err == nil {
		out[storage.KeyAutoTheme] = string(raw)
	}
	return out
}

func (s *Store) read(ctx context.Context, key string) (string, bool) {
	if s.kv == nil {
		return "", false
	}
	v, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("failed to read preference", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

func (s *Store) write(ctx context.Context, key, value string) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Set(ctx, key, value); err != nil {
		s.logger.Warn("failed to persist preference", "key", key, "error", err)
	}
}
