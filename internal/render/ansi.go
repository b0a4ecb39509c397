// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns command output into terminal text.
package render

import (
	"regexp"
	"strconv"
	"strings"
)

// Color is one of the eight basic ANSI foreground colors.
type Color int

const (
	Red Color = iota + 31
	Green
	Yellow
	Blue
	Magenta
	Cyan
)

const (
	esc   = "\x1b["
	reset = "\x1b[0m"
)

// Colorize wraps text in a foreground color.
func Colorize(text string, c Color) string {
	return esc + strconv.Itoa(int(c)) + "m" + text + reset
}

// Bold wraps text in bold.
func Bold(text string) string { return esc + "1m" + text + esc + "22m" }

// Italic wraps text in italic.
func Italic(text string) string { return esc + "3m" + text + esc + "23m" }

// Underline wraps text in underline.
func Underline(text string) string { return esc + "4m" + text + esc + "24m" }

// Strikethrough wraps text in strikethrough.
func Strikethrough(text string) string { return esc + "9m" + text + esc + "29m" }

// Inverse swaps foreground and background for text.
func Inverse(text string) string { return esc + "7m" + text + esc + "27m" }

// Hyperlink returns an OSC 8 hyperlink. An empty text shows the URL.
func Hyperlink(url, text string) string {
	if text == "" {
		text = url
	}
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]|\x1b\]8;;[^\x1b]*\x1b\\`)

// Strip removes the escape sequences written by this package and by
// glamour/chroma.
func Strip(s string) string {
	if !strings.ContainsRune(s, '\x1b') {
		return s
	}
	return ansiPattern.ReplaceAllString(s, "")
}
