// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the full-screen shell of termfolio.
package terminal

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/termfolio/internal/theme"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// ThemeChangedMsg reports a new theme store state.
type ThemeChangedMsg struct {
	State theme.State
}

// clockMsg refreshes the status bar clock.
type clockMsg time.Time

// copiedMsg reports the outcome of Ctrl+Y.
type copiedMsg struct {
	err error
}

// flashExpiredMsg clears a status bar flash. Seq guards against clearing a
// newer flash.
type flashExpiredMsg struct {
	seq int
}

func tickClock() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func expireFlash(seq int) tea.Cmd {
	return tea.Tick(styles.FlashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}
