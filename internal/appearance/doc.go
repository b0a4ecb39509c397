// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package appearance reports the operating system's light/dark preference.
//
// A Source answers "is the preferred color scheme dark?" and notifies a
// callback when the answer changes. Three implementations are provided:
//
//   - System: queries the desktop (macOS defaults, GNOME gsettings) on an
//     interval, falling back to the terminal background reported by termenv
//   - File: reads a preference file containing "dark" or "light" and
//     watches it with fsnotify
//   - Fixed: an in-memory value changed with Set, used by the HTTP server
//     (the browser reports prefers-color-scheme) and by tests
//
// Watch registers the callback before returning, so a change made right
// after Watch returns is never missed.
package appearance
