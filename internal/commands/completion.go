// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import (
	"sort"
	"strings"

	"github.com/jeranaias/termfolio/internal/content"
)

// =============================================================================
// COMPLETION
// =============================================================================

// Completion is one candidate for Tab completion.
type Completion struct {
	// Value is the full input line after accepting the candidate.
	Value string

	// Display is the word shown in a candidate list.
	Display string

	// Description explains the candidate.
	Description string
}

// Completions returns the candidates for line, sorted by Display. While the
// first word is being typed, command names are completed; after `cat ` file
// names, and after `theme ` theme names. Matching is case-sensitive, like
// dispatch.
func (r *Registry) Completions(env *Context, line string) []Completion {
	trimmed := strings.TrimLeft(line, " \t")

	if partial := GetPartialCommand(trimmed); partial != "" || trimmed == "" {
		return r.completeCommands(partial)
	}

	parts := splitCommandLine(trimmed)
	if len(parts) == 0 {
		return nil
	}
	cmd := r.Get(parts[0])
	if cmd == nil {
		return nil
	}

	// Only the first argument is completed.
	endsWithSpace := strings.HasSuffix(trimmed, " ")
	var partial string
	switch {
	case len(parts) == 1 && endsWithSpace:
		partial = ""
	case len(parts) == 2 && !endsWithSpace:
		partial = parts[1]
	default:
		return nil
	}

	var values []string
	switch cmd.ID {
	case IDCat:
		values = content.Listing
	case IDTheme:
		if env != nil && env.Theme != nil {
			values = env.Theme.Catalog().Names()
		}
	default:
		return nil
	}

	var out []Completion
	for _, v := range values {
		if strings.HasPrefix(v, partial) {
			out = append(out, Completion{Value: cmd.Name + " " + v, Display: v})
		}
	}
	sortCompletions(out)
	return out
}

// Complete returns the full-line values of Completions.
func (r *Registry) Complete(env *Context, line string) []string {
	comps := r.Completions(env, line)
	out := make([]string, len(comps))
	for i, c := range comps {
		out[i] = c.Value
	}
	return out
}

func (r *Registry) completeCommands(partial string) []Completion {
	var out []Completion
	for _, cmd := range r.sorted {
		if strings.HasPrefix(cmd.Name, partial) {
			out = append(out, Completion{Value: cmd.Name, Display: cmd.Name, Description: cmd.Description})
		}
	}
	return out
}

func sortCompletions(c []Completion) {
	sort.Slice(c, func(i, j int) bool { return c[i].Display < c[j].Display })
}

// CommonPrefix returns the longest prefix shared by every value. The
// prefix always ends on a rune boundary.
func CommonPrefix(values []string) string {
	if len(values) == 0 {
		return ""
	}
	prefix := []rune(values[0])
	for _, v := range values[1:] {
		n := 0
		for _, r := range v {
			if n == len(prefix) || prefix[n] != r {
				break
			}
			n++
		}
		prefix = prefix[:n]
	}
	return string(prefix)
}
