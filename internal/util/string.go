// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across termfolio packages.
package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TruncateRunes truncates s to at most maxRunes characters, appending "..."
// when something was cut and there is room for it.
func TruncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= 3 {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-3]) + "..."
}

// StringWidth returns the number of terminal columns s occupies.
// East Asian wide characters count as two.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth cuts s to fit within maxWidth columns, ending with "..."
// when truncated.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

// PadRight pads s with spaces up to width columns. Strings already wider
// than width are returned unchanged.
func PadRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// WrapLines hard-wraps every line of text at width columns.
// Existing newlines are preserved.
func WrapLines(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if runewidth.StringWidth(line) > width {
			lines[i] = runewidth.Wrap(line, width)
		}
	}
	return strings.Join(lines, "\n")
}
