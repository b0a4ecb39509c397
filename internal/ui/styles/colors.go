// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/theme"
)

// =============================================================================
// PALETTE
// =============================================================================

// Palette maps a terminal theme onto the roles the TUI draws with.
type Palette struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Cursor     lipgloss.Color

	// Prompt colors
	User lipgloss.Color
	Host lipgloss.Color
	Path lipgloss.Color

	// Semantic colors
	Accent  lipgloss.Color
	Muted   lipgloss.Color
	Error   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
}

// PaletteFrom picks palette roles from t. Empty theme colors fall back to
// the foreground.
func PaletteFrom(t theme.Theme) Palette {
	fg := or(t.Foreground, "#d0d0d0")
	pick := func(v string) lipgloss.Color { return lipgloss.Color(or(v, fg)) }

	return Palette{
		Foreground: lipgloss.Color(fg),
		Background: pick(t.Background),
		Cursor:     pick(t.CursorColor),
		User:       pick(t.Yellow),
		Host:       pick(t.Green),
		Path:       pick(t.Blue),
		Accent:     pick(t.Cyan),
		Muted:      pick(t.BrightBlack),
		Error:      pick(t.Red),
		Success:    pick(t.Green),
		Warning:    pick(t.Yellow),
	}
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
