// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces of the termfolio TUI.
package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/theme"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// ClockLayout is the time format shown on the right of the status bar.
const ClockLayout = "15:04"

// StatusBar shows the theme state and key hints below the prompt.
type StatusBar struct {
	width  int
	styles *styles.Styles

	themeName string
	mode      string
	now       time.Time
	flash     string
	hints     bool
}

// Shortcut is a key hint shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the hints shown when the bar is wide enough.
var DefaultShortcuts = []Shortcut{
	{Key: "Tab", Desc: "complete"},
	{Key: "Up/Down", Desc: "history"},
	{Key: "Ctrl+Y", Desc: "copy"},
	{Key: "Ctrl+C", Desc: "quit"},
}

// NewStatusBar creates a status bar rendering with s.
func NewStatusBar(s *styles.Styles) *StatusBar {
	return &StatusBar{styles: s, hints: true}
}

// SetStyles swaps the styles after a theme change.
func (b *StatusBar) SetStyles(s *styles.Styles) { b.styles = s }

// SetWidth sets the rendered width.
func (b *StatusBar) SetWidth(width int) { b.width = width }

// SetState records the active theme and mode.
func (b *StatusBar) SetState(st theme.State) {
	b.themeName = st.Theme.Name
	b.mode = st.Mode()
}

// SetTime sets the clock value.
func (b *StatusBar) SetTime(t time.Time) { b.now = t }

// SetFlash shows a transient message in place of the key hints. An empty
// string clears it.
func (b *StatusBar) SetFlash(msg string) { b.flash = msg }

// Flash returns the transient message, if any.
func (b *StatusBar) Flash() string { return b.flash }

// SetShowHints toggles the key hints.
func (b *StatusBar) SetShowHints(show bool) { b.hints = show }

// View renders the status bar.
func (b *StatusBar) View() string {
	s := b.styles

	modeStyle := s.ModeManual
	if b.mode == "auto" {
		modeStyle = s.ModeAuto
	}
	left := s.StatusKey.Render("theme ") + s.StatusValue.Render(b.themeName) +
		" " + modeStyle.Render("["+b.mode+"]")

	right := ""
	if !b.now.IsZero() {
		right = s.StatusValue.Render(b.now.Format(ClockLayout))
	}

	middle := ""
	switch {
	case b.flash != "":
		middle = s.Flash.Render(b.flash)
	case b.hints:
		parts := make([]string, 0, len(DefaultShortcuts))
		for _, sc := range DefaultShortcuts {
			parts = append(parts, s.ShortcutKey.Render(sc.Key)+" "+s.ShortcutDesc.Render(sc.Desc))
		}
		middle = strings.Join(parts, s.Muted.Render("  "))
	}

	// Inner width excludes the bar's horizontal padding.
	inner := b.width - 2
	if inner <= 0 {
		return s.StatusBar.Render(left + "  " + right)
	}

	used := lipgloss.Width(left) + lipgloss.Width(right)
	if middle != "" && used+lipgloss.Width(middle)+4 > inner {
		middle = ""
	}

	var out string
	if middle == "" {
		gap := max(1, inner-used)
		out = left + strings.Repeat(" ", gap) + right
	} else {
		free := inner - used - lipgloss.Width(middle)
		lgap := max(2, free/2)
		rgap := max(2, free-lgap)
		out = left + strings.Repeat(" ", lgap) + middle + strings.Repeat(" ", rgap) + right
	}

	return s.StatusBar.MaxWidth(b.width).Render(out)
}
