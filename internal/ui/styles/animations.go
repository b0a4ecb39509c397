// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the termfolio TUI.
package styles

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// =============================================================================
// SPINNER ANIMATIONS
// =============================================================================

// SpinnerConfig holds the configuration for a spinner animation.
type SpinnerConfig struct {
	Frames []string
	FPS    int
}

// LineSpinner - Simple line rotation
var LineSpinner = SpinnerConfig{
	Frames: []string{"|", "/", "-", "\\"},
	FPS:    10,
}

// DotsSpinner - Classic three-dot animation
var DotsSpinner = SpinnerConfig{
	Frames: []string{".  ", ".. ", "...", " ..", "  .", "   "},
	FPS:    6,
}

// Duration returns the duration for each frame.
func (s SpinnerConfig) Duration() time.Duration {
	if s.FPS <= 0 {
		return time.Second
	}
	return time.Second / time.Duration(s.FPS)
}

// Spinner converts the config into a bubbles spinner definition.
func (s SpinnerConfig) Spinner() spinner.Spinner {
	return spinner.Spinner{Frames: s.Frames, FPS: s.Duration()}
}

// =============================================================================
// TIMING
// =============================================================================

// CursorBlinkRate is the rate at which the prompt cursor blinks.
var CursorBlinkRate = 530 * time.Millisecond

// FlashDuration is how long a status bar flash stays visible.
var FlashDuration = 1500 * time.Millisecond
