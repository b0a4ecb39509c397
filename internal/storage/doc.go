// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable, origin-scoped preference storage.
//
// Preferences are small string values (JSON documents in practice) keyed by
// name and partitioned by origin: the terminal UI uses one origin, and every
// browser client served by `termfolio serve` uses its own.
//
// # Key Types
//
//   - KV: get/set interface consumed by the theme store
//   - PrefStore: SQLite-backed store shared by all origins
//   - Memory: map-backed KV for tests
//
// # Usage
//
//	store, err := storage.OpenPrefStore(ctx, "~/.termfolio/prefs.db")
//	defer store.Close()
//
//	kv := store.Origin("terminal")
//	_ = kv.Set(ctx, storage.KeyAutoTheme, "false")
//	v, ok, err := kv.Get(ctx, storage.KeyColorScheme)
//
// # Storage Location
//
// The database lives at storage.db_path, ~/.termfolio/prefs.db by default.
package storage
