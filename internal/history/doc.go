// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the in-memory scrollback of executed commands.
//
// Entries are appended in arrival order and never modified; the only other
// mutation is Clear, which empties the sequence. History is not persisted.
package history
