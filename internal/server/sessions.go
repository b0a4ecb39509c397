// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the termfolio shell to web browsers.
package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/appearance"
	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/effects"
)

// ============================================================================
// BROWSER SESSIONS
// ============================================================================

// OriginPrefix prefixes the preference origin of a browser session.
const OriginPrefix = "browser-"

// browserSession is one browser tab group sharing a cookie.
type browserSession struct {
	id      string
	session *app.Session
	pref    *appearance.Fixed
	actions *effects.Recorder

	// mu serializes lines so each response carries only its own actions.
	mu       sync.Mutex
	lastSeen time.Time
}

// exec runs line and returns the result with the actions it triggered.
func (b *browserSession) exec(ctx context.Context, line string) (commands.Result, []effects.Action) {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := b.session.Run(ctx, line)
	return res, b.actions.Drain()
}

// sessionManager maps cookie ids to live sessions and expires idle ones.
// Preferences survive expiry because they are stored per origin.
type sessionManager struct {
	app    *app.App
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time

	mu    sync.Mutex
	items map[string]*browserSession
}

func newSessionManager(a *app.App, ttl time.Duration, logger *slog.Logger) *sessionManager {
	return &sessionManager{
		app:    a,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
		items:  make(map[string]*browserSession),
	}
}

// validID reports whether id looks like an id we issued.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// get returns the session for id, creating it when id is empty, malformed
// or expired. dark seeds the appearance of a new session. A new session
// keeps a well-formed id so its stored preferences are found again.
func (m *sessionManager) get(ctx context.Context, id string, dark bool) (*browserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if b, ok := m.items[id]; ok {
		b.lastSeen = now
		return b, nil
	}

	if !validID(id) {
		id = uuid.NewString()
	}

	pref := appearance.NewFixed(dark)
	rec := &effects.Recorder{}
	s, err := m.app.NewSession(ctx, app.SessionOptions{
		Origin:     OriginPrefix + id,
		Appearance: pref,
		Launcher:   rec,
	})
	if err != nil {
		return nil, err
	}

	b := &browserSession{id: id, session: s, pref: pref, actions: rec, lastSeen: now}
	m.items[id] = b
	m.logger.Debug("browser session started", "sessions", len(m.items))
	return b, nil
}

// sweep closes sessions idle longer than the TTL and returns how many.
func (m *sessionManager) sweep() int {
	m.mu.Lock()
	cutoff := m.now().Add(-m.ttl)
	var expired []*browserSession
	for id, b := range m.items {
		if b.lastSeen.Before(cutoff) {
			expired = append(expired, b)
			delete(m.items, id)
		}
	}
	m.mu.Unlock()

	for _, b := range expired {
		b.session.Close()
	}
	if len(expired) > 0 {
		m.logger.Debug("browser sessions expired", "count", len(expired))
	}
	return len(expired)
}

// len returns the number of live sessions.
func (m *sessionManager) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// closeAll closes every session.
func (m *sessionManager) closeAll() {
	m.mu.Lock()
	items := m.items
	m.items = make(map[string]*browserSession)
	m.mu.Unlock()

	for _, b := range items {
		b.session.Close()
	}
}
