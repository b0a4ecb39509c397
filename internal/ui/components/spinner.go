// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces of the termfolio TUI.
package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is shown in place of the prompt while a command runs.
type Spinner struct {
	spinner   spinner.Model
	styles    *styles.Styles
	message   string
	startTime time.Time
	isActive  bool
}

// NewSpinner creates an inactive spinner.
func NewSpinner(s *styles.Styles) Spinner {
	sp := spinner.New()
	sp.Spinner = styles.LineSpinner.Spinner()
	return Spinner{spinner: sp, styles: s}
}

// SetStyles swaps the styles after a theme change.
func (s *Spinner) SetStyles(st *styles.Styles) { s.styles = st }

// Start activates the spinner for message and returns its first tick.
func (s *Spinner) Start(message string) tea.Cmd {
	s.isActive = true
	s.message = message
	s.startTime = time.Now()
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.isActive
}

// Elapsed returns the duration since the spinner started.
func (s *Spinner) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	return time.Since(s.startTime)
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Update advances the animation. Ticks are dropped while inactive so the
// tick loop stops.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.isActive {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner.
func (s Spinner) View() string {
	if !s.isActive {
		return ""
	}
	out := s.styles.Spinner.Render(s.spinner.View())
	if s.message != "" {
		out += " " + s.styles.Muted.Render(s.message)
	}
	return out
}
