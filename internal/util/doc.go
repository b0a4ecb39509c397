// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across termfolio packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateRunes, TruncateWidth: UTF-8 and column safe truncation
//   - PadRight: column-aware padding for aligned listings
//   - WrapLines: hard wrap that keeps existing line breaks
//
// State:
//   - Observable: a value with subscribe/set, used for theme and history state
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//
// # Usage
//
//	current := util.NewObservable(theme)
//	cancel := current.Subscribe(func(t Theme) { redraw(t) })
//	defer cancel()
//	current.Set(next)
package util
