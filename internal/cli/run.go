// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/samber/lo"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/commands"
)

const runUsage = "termfolio run <command> [args...]"

// =============================================================================
// RUN COMMAND
// =============================================================================

// HandleRun executes one line and writes its output. The exit code is
// ExitCommandNotFound when the command is unknown.
func HandleRun(ctx context.Context, args Args, w io.Writer) (int, error) {
	line := JoinLine(args.Raw)
	if line == "" {
		return ExitUsageError, ErrMissingArgument("command", runUsage)
	}

	env, err := Setup(ctx, args, SinkStderr, app.Options{})
	if err != nil {
		return ExitGeneralError, err
	}
	defer env.Close()

	styled := !env.Config.UI.NoColor && ColorsEnabled()
	session, err := env.App.NewSession(ctx, app.SessionOptions{
		Styled:    styled,
		WrapWidth: GetTerminalWidth(),
	})
	if err != nil {
		return ExitGeneralError, err
	}
	defer session.Close()

	res := session.Run(ctx, line)
	writeResult(w, res, styled)

	if !res.Found {
		return ExitCommandNotFound, nil
	}
	return ExitSuccess, nil
}

// writeResult prints a command's output the way a shell would.
func writeResult(w io.Writer, res commands.Result, styled bool) {
	if res.Cleared() {
		if styled {
			fmt.Fprint(w, clearScreen)
		}
		return
	}
	if res.Output == "" {
		return
	}
	out := res.Output
	if styled && !res.Found {
		out = ErrorStyle.Render(out)
	}
	fmt.Fprintln(w, out)
}

// clearScreen homes the cursor and erases the display.
const clearScreen = "\x1b[H\x1b[2J"

// JoinLine rebuilds a shell line from argv so the command parser sees the
// same name and arguments. The name is kept as typed; arguments that are
// empty or hold whitespace, quotes or backslashes are double-quoted.
func JoinLine(argv []string) string {
	if len(argv) == 0 {
		return ""
	}
	words := append([]string{argv[0]}, lo.Map(argv[1:], func(a string, _ int) string {
		return quoteWord(a)
	})...)
	return strings.TrimSpace(strings.Join(words, " "))
}

var wordEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quoteWord(a string) string {
	if a != "" && !strings.ContainsAny(a, `"'\`) && strings.IndexFunc(a, unicode.IsSpace) == -1 {
		return a
	}
	return `"` + wordEscaper.Replace(a) + `"`
}
