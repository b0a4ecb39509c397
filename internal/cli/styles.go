// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

func init() {
	applyColorProfile()
}

// applyColorProfile keeps lipgloss in step with ColorsEnabled so piped
// output stays plain.
func applyColorProfile() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// Styles for CLI messages outside the shell itself.
var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	LabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(12)
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
)
