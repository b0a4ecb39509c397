// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/termfolio/internal/history"
)

// =============================================================================
// RESULT
// =============================================================================

// Result is the outcome of running one line.
type Result struct {
	// Input is the line as typed.
	Input string

	// ID is the command that ran, IDNone for blank or unknown input.
	ID ID

	// Output is the text shown for the line.
	Output string

	// Found is false when the command name was not recognized.
	Found bool
}

// Cleared reports whether the line cleared the history.
func (r Result) Cleared() bool {
	return r.ID == IDClear
}

// Quit reports whether the line asked the shell to exit.
func (r Result) Quit() bool {
	return r.ID == IDExit
}

// ResultMsg carries the Result of DispatchAsync to the bubbletea program.
type ResultMsg struct {
	Result
}

// NotFound formats the unknown-command message.
func NotFound(name string) string {
	return "command not found: " + name
}

// =============================================================================
// DISPATCH
// =============================================================================

// Dispatch runs line and returns its output. Blank input yields "".
// It does not touch the history.
func (r *Registry) Dispatch(ctx context.Context, env *Context, line string) string {
	return r.dispatch(ctx, env, line).Output
}

func (r *Registry) dispatch(ctx context.Context, env *Context, line string) Result {
	parsed := Parse(line)
	res := Result{Input: line}

	if parsed.Empty() {
		res.Found = true
		return res
	}

	cmd := r.Get(parsed.Name)
	if cmd == nil {
		res.Output = NotFound(ExtractCommandName(line))
		return res
	}

	res.ID = cmd.ID
	res.Found = true
	res.Output = cmd.Handler(ctx, env, parsed.Args)
	return res
}

// Run dispatches line and records it in the history. `clear` is not
// recorded, so the history is empty after it runs.
func (r *Registry) Run(ctx context.Context, env *Context, line string) Result {
	res := r.dispatch(ctx, env, line)
	if !res.Cleared() {
		env.History.Record(history.Entry{Input: line, Output: res.Output, Unknown: !res.Found})
	}
	return res
}

// DispatchAsync runs line off the bubbletea event loop and delivers a
// ResultMsg once the handler has returned and the history is updated.
func (r *Registry) DispatchAsync(ctx context.Context, env *Context, line string) tea.Cmd {
	return func() tea.Msg {
		return ResultMsg{Result: r.Run(ctx, env, line)}
	}
}
