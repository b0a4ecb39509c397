// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires termfolio together.
//
// App owns the long-lived resources: configuration, logger, preference
// database, theme catalog, content, command registry and the appearance
// source. Each shell gets a Session holding its own theme store, history and
// command context. The terminal UI and the REPL use one session; the HTTP
// server creates one per browser.
//
// Close tears down every session (stopping their appearance listeners) and
// then the database.
package app
