// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/ui/terminal"
)

// HandleTUI runs the full-screen shell. Without a terminal it falls back to
// the line-mode shell.
func HandleTUI(ctx context.Context, args Args) error {
	if !IsTTY() || !IsStdoutTTY() {
		return HandleRepl(ctx, args)
	}

	env, err := Setup(ctx, args, SinkFile, app.Options{})
	if err != nil {
		return err
	}
	defer env.Close()

	ui := env.Config.UI
	session, err := env.App.NewSession(ctx, app.SessionOptions{
		Styled:    !ui.NoColor,
		WrapWidth: GetTerminalWidth(),
	})
	if err != nil {
		return err
	}
	defer session.Close()

	return terminal.Run(ctx, session, terminal.Options{
		Version:       Version,
		Profile:       styles.Profile(ui.NoColor),
		MaxRecall:     ui.MaxRecall,
		ShowBanner:    ui.ShowBanner,
		ShowStatusBar: ui.ShowStatusBar,
	})
}
