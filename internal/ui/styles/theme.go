// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/termfolio/internal/theme"
)

// Styles holds all the styled components for the application.
type Styles struct {
	// Theme is the palette these styles were built from.
	Theme   theme.Theme
	Palette Palette

	// Terminal capabilities
	ColorProfile termenv.Profile

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App    lipgloss.Style
	Output lipgloss.Style

	// ==========================================================================
	// PROMPT STYLES
	// ==========================================================================

	PromptUser  lipgloss.Style
	PromptHost  lipgloss.Style
	PromptPath  lipgloss.Style
	InputText   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style

	// ==========================================================================
	// OUTPUT STYLES
	// ==========================================================================

	NotFound lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusValue  lipgloss.Style
	ModeAuto     lipgloss.Style
	ModeManual   lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// ==========================================================================
	// BANNER STYLES
	// ==========================================================================

	BannerArt  lipgloss.Style
	BannerHint lipgloss.Style

	// ==========================================================================
	// COMPLETION STYLES
	// ==========================================================================

	CompletionItem     lipgloss.Style
	CompletionSelected lipgloss.Style
	CompletionDesc     lipgloss.Style

	// ==========================================================================
	// SPINNER STYLES
	// ==========================================================================

	Spinner lipgloss.Style

	// Flash is shown briefly in the status bar (e.g. "copied").
	Flash lipgloss.Style
}

// New builds styles for t rendered with profile.
func New(t theme.Theme, profile termenv.Profile) *Styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	r.SetHasDarkBackground(t.IsDark())

	p := PaletteFrom(t)
	s := &Styles{Theme: t, Palette: p, ColorProfile: profile}

	s.App = r.NewStyle().Foreground(p.Foreground)
	s.Output = r.NewStyle().Foreground(p.Foreground)

	s.PromptUser = r.NewStyle().Foreground(p.User).Bold(true)
	s.PromptHost = r.NewStyle().Foreground(p.Host)
	s.PromptPath = r.NewStyle().Foreground(p.Path)
	s.InputText = r.NewStyle().Foreground(p.Foreground)
	s.Cursor = r.NewStyle().Foreground(p.Cursor)
	s.Placeholder = r.NewStyle().Foreground(p.Muted).Italic(true)

	s.NotFound = r.NewStyle().Foreground(p.Error)
	s.Muted = r.NewStyle().Foreground(p.Muted)
	s.Accent = r.NewStyle().Foreground(p.Accent).Bold(true)

	s.StatusBar = r.NewStyle().Foreground(p.Muted).Padding(0, 1)
	s.StatusKey = r.NewStyle().Foreground(p.Muted)
	s.StatusValue = r.NewStyle().Foreground(p.Foreground)
	s.ModeAuto = r.NewStyle().Foreground(p.Success).Bold(true)
	s.ModeManual = r.NewStyle().Foreground(p.Warning).Bold(true)
	s.ShortcutKey = r.NewStyle().Foreground(p.Accent)
	s.ShortcutDesc = r.NewStyle().Foreground(p.Muted)

	s.BannerArt = r.NewStyle().Foreground(p.Accent)
	s.BannerHint = r.NewStyle().Foreground(p.Muted)

	s.CompletionItem = r.NewStyle().Foreground(p.Foreground).Padding(0, 1)
	s.CompletionSelected = r.NewStyle().Foreground(p.Background).Background(p.Accent).Padding(0, 1)
	s.CompletionDesc = r.NewStyle().Foreground(p.Muted)

	s.Spinner = r.NewStyle().Foreground(p.Accent)
	s.Flash = r.NewStyle().Foreground(p.Success)

	return s
}

// Prompt renders "user@host:~$".
func (s *Styles) Prompt(user, host string) string {
	return s.PromptUser.Render(user) +
		s.Muted.Render("@") +
		s.PromptHost.Render(host) +
		s.Muted.Render(":") +
		s.PromptPath.Render("~") +
		s.Muted.Render("$")
}

// Profile returns termenv.Ascii when noColor is set and the detected
// profile otherwise.
func Profile(noColor bool) termenv.Profile {
	if noColor {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}
