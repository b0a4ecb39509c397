// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult is a tokenized command line.
type ParseResult struct {
	// Name is the first token, empty for blank input.
	Name string

	// Args are the remaining tokens.
	Args []string

	// Raw is the NFC-normalized input with surrounding space trimmed.
	Raw string
}

// Empty reports whether the line had no tokens.
func (p ParseResult) Empty() bool {
	return p.Name == ""
}

// =============================================================================
// PARSER
// =============================================================================

// Parse normalizes line to NFC and splits it into tokens. The name is the
// first whitespace-delimited word taken as typed; quotes group only the
// arguments.
func Parse(line string) ParseResult {
	raw := strings.TrimSpace(norm.NFC.String(line))
	result := ParseResult{Raw: raw}
	if raw == "" {
		return result
	}

	result.Name = ExtractCommandName(raw)
	if args := splitCommandLine(raw[len(result.Name):]); len(args) > 0 {
		result.Args = args
	}
	return result
}

// splitCommandLine splits a command line into tokens on whitespace.
// Single and double quotes group words and are removed; inside quotes a
// backslash escapes a quote or another backslash. An unterminated quote
// runs to the end of the line.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote, quoted bool

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		char := runes[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			quoted = true

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			quoted = true

		case char == '\\' && i+1 < len(runes) && (inDoubleQuote || inSingleQuote):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(char)
			}

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 || quoted {
				tokens = append(tokens, current.String())
				current.Reset()
				quoted = false
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 || quoted {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// ExtractCommandName returns the first whitespace-delimited word of input.
func ExtractCommandName(input string) string {
	input = strings.TrimSpace(input)
	end := strings.IndexFunc(input, unicode.IsSpace)
	if end == -1 {
		return input
	}
	return input[:end]
}

// GetPartialCommand returns the command name being typed, or "" once a
// space follows it.
func GetPartialCommand(input string) string {
	input = strings.TrimLeftFunc(input, unicode.IsSpace)
	if strings.IndexFunc(input, unicode.IsSpace) != -1 {
		return ""
	}
	return input
}
