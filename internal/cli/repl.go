// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/config"
)

// =============================================================================
// LINE READER
// =============================================================================

// LineReader reads edited input lines.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	Close() error
}

// LinerReader is a LineReader backed by liner, with persistent history and
// Tab completion.
type LinerReader struct {
	line        *liner.State
	historyFile string
}

// NewLinerReader creates a LinerReader whose history lives in historyFile.
// complete returns full replacement lines for a partial line.
func NewLinerReader(historyFile string, complete func(string) []string) *LinerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	if complete != nil {
		line.SetCompleter(complete)
	}

	r := &LinerReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *LinerReader) loadHistory() {
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line.
func (r *LinerReader) Prompt(prompt string) (string, error) {
	return r.line.Prompt(prompt)
}

// AppendHistory records line for Up/Down recall.
func (r *LinerReader) AppendHistory(line string) {
	r.line.AppendHistory(line)
}

// Close saves history with owner-only permissions and restores the terminal.
func (r *LinerReader) Close() error {
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0o700); err == nil {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	return r.line.Close()
}

// historyPath returns the REPL history file.
func historyPath() string {
	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "repl_history")
}

// =============================================================================
// REPL COMMAND
// =============================================================================

// HandleRepl runs the line-mode shell on the controlling terminal.
func HandleRepl(ctx context.Context, args Args) error {
	env, err := Setup(ctx, args, SinkStderr, app.Options{})
	if err != nil {
		return err
	}
	defer env.Close()

	styled := !env.Config.UI.NoColor && ColorsEnabled()
	session, err := env.App.NewSession(ctx, app.SessionOptions{
		Styled:    styled,
		WrapWidth: GetTerminalWidth(),
	})
	if err != nil {
		return err
	}
	defer session.Close()

	reader := NewLinerReader(historyPath(), session.Complete)
	defer reader.Close()

	return Repl(ctx, session, reader, os.Stdout, ReplOptions{
		Styled:     styled,
		ShowBanner: env.Config.UI.ShowBanner,
	})
}

// ReplOptions configures Repl.
type ReplOptions struct {
	Styled     bool
	ShowBanner bool
}

// Repl reads lines from r, runs them in session and writes results to w
// until exit, end of input, Ctrl+C or ctx is done.
func Repl(ctx context.Context, session *app.Session, r LineReader, w io.Writer, opts ReplOptions) error {
	if opts.ShowBanner {
		writeResult(w, session.Run(ctx, "banner"), opts.Styled)
	}

	prompt := session.Env.Prompt() + " "
	for {
		if ctx.Err() != nil {
			return nil
		}

		input, err := r.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(w)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		if strings.TrimSpace(input) != "" {
			r.AppendHistory(input)
		}

		res := session.Run(ctx, input)
		writeResult(w, res, opts.Styled)
		if res.Quit() {
			return nil
		}
	}
}
