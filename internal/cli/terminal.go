// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// TERMINAL DETECTION
// =============================================================================

const (
	// DefaultTerminalWidth is used when stdout is not a terminal.
	DefaultTerminalWidth = 80

	// MinTerminalWidth keeps markdown wrapping readable in narrow windows.
	MinTerminalWidth = 40
)

// IsTTY reports whether stdin is a terminal.
func IsTTY() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// IsStdoutTTY reports whether stdout is a terminal.
func IsStdoutTTY() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// GetTerminalWidth returns the width of stdout, or DefaultTerminalWidth.
func GetTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return max(width, MinTerminalWidth)
}

var (
	colorsMu       sync.Mutex
	colorsOverride *bool
)

// ColorsEnabled reports whether output should carry ANSI styling.
// NO_COLOR and TERM=dumb disable it, FORCE_COLOR enables it, and otherwise
// it follows whether stdout is a terminal.
func ColorsEnabled() bool {
	colorsMu.Lock()
	defer colorsMu.Unlock()
	if colorsOverride != nil {
		return *colorsOverride
	}
	switch {
	case os.Getenv("NO_COLOR") != "", os.Getenv("TERM") == "dumb":
		return false
	case os.Getenv("FORCE_COLOR") != "":
		return true
	default:
		return IsStdoutTTY()
	}
}

// ForceColorsEnabled overrides detection, as --no-color does.
func ForceColorsEnabled(enabled bool) {
	colorsMu.Lock()
	colorsOverride = &enabled
	colorsMu.Unlock()
	applyColorProfile()
}

// GetColorProfile returns the termenv profile matching ColorsEnabled.
func GetColorProfile() termenv.Profile {
	return styles.Profile(!ColorsEnabled())
}
