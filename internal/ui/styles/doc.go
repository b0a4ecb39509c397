// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
//
// Styles are derived from the active color theme rather than fixed
// constants: when the theme store changes, the TUI calls New again with the
// new palette and re-renders.
//
// # Key Types
//
//   - Palette: semantic colors (prompt, accent, muted...) picked from a theme
//   - Styles: every lipgloss.Style the TUI renders with
//   - SpinnerConfig: animation frames for the pending-command spinner
//
// # Color Profile
//
// New takes a termenv.Profile. termenv.Ascii disables color entirely and is
// used for --no-color and NO_COLOR.
//
// # Usage
//
//	s := styles.New(store.Current(), termenv.ColorProfile())
//	fmt.Println(s.PromptUser.Render("guest") + s.PromptHost.Render("@host"))
package styles
