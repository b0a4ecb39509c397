// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser splits command arguments into flags and positionals.
// It handles:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (no value needed)
//   - Positional arguments: arguments without flags
type ArgParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// NewArgParser creates a new argument parser from raw arguments.
//
// Example:
//
//	args := NewArgParser([]string{"--addr", ":8080", "--open"})
//	args.Flag("addr")     // ":8080"
//	args.BoolFlag("open") // true
func NewArgParser(raw []string) *ArgParser {
	p := &ArgParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	for i := 0; i < len(raw); i++ {
		arg := raw[i]
		if arg == "--" {
			p.positional = append(p.positional, raw[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			p.positional = append(p.positional, arg)
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if n, v, ok := strings.Cut(name, "="); ok {
			if v == "true" || v == "false" {
				p.boolFlags[n] = v == "true"
			} else {
				p.flags[n] = v
			}
			continue
		}

		if i+1 < len(raw) && !strings.HasPrefix(raw[i+1], "-") {
			p.flags[name] = raw[i+1]
			i++
		} else {
			p.boolFlags[name] = true
		}
	}
	return p
}

// Flag returns the value of a string flag, or "" if unset.
func (p *ArgParser) Flag(name string) string {
	return p.flags[name]
}

// FlagOrDefault returns the flag value or def when unset.
func (p *ArgParser) FlagOrDefault(name, def string) string {
	if v, ok := p.flags[name]; ok {
		return v
	}
	return def
}

// BoolFlag reports whether a boolean flag was given.
func (p *ArgParser) BoolFlag(name string) bool {
	return p.boolFlags[name]
}

// Positional returns the positional argument at index, or "".
func (p *ArgParser) Positional(index int) string {
	if index < 0 || index >= len(p.positional) {
		return ""
	}
	return p.positional[index]
}

// Positionals returns every positional argument.
func (p *ArgParser) Positionals() []string {
	return p.positional
}
