// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable, origin-scoped preference storage.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS prefs (
	origin     TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL,
	PRIMARY KEY (origin, key)
);
`

// =============================================================================
// PREF STORE
// =============================================================================

// PrefStore persists preferences for any number of origins in SQLite.
type PrefStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	now    func() time.Time
}

// OpenPrefStore opens (creating if needed) the database at path.
// ":memory:" opens a private in-memory database.
func OpenPrefStore(ctx context.Context, path string) (*PrefStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:"
	// databases from splitting across connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PrefStore{db: db, now: time.Now}, nil
}

// Origin returns a KV view scoped to origin.
func (s *PrefStore) Origin(origin string) KV {
	return &originKV{store: s, origin: origin}
}

// Origins lists every origin that has stored preferences.
func (s *PrefStore) Origins(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT origin FROM prefs ORDER BY origin")
	if err != nil {
		return nil, fmt.Errorf("list origins: %w", err)
	}
	defer rows.Close()

	var origins []string
	for rows.Next() {
		var o string
		if err := rows.Scan(&o); err != nil {
			return nil, fmt.Errorf("scan origin: %w", err)
		}
		origins = append(origins, o)
	}
	return origins, rows.Err()
}

// Forget deletes every preference stored for origin.
func (s *PrefStore) Forget(ctx context.Context, origin string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM prefs WHERE origin = ?", origin); err != nil {
		return fmt.Errorf("forget origin %s: %w", origin, err)
	}
	return nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *PrefStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

func (s *PrefStore) get(ctx context.Context, origin, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}

	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM prefs WHERE origin = ? AND key = ?", origin, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %s/%s: %w", origin, key, err)
	}
	return value, true, nil
}

func (s *PrefStore) set(ctx context.Context, origin, key, value string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prefs (origin, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(origin, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		origin, key, value, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", origin, key, err)
	}
	return nil
}

type originKV struct {
	store  *PrefStore
	origin string
}

func (o *originKV) Get(ctx context.Context, key string) (string, bool, error) {
	return o.store.get(ctx, o.origin, key)
}

func (o *originKV) Set(ctx context.Context, key, value string) error {
	return o.store.set(ctx, o.origin, key, value)
}
