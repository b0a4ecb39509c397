// termfolio - a portfolio you explore from a shell prompt.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/termfolio/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	// SIGINT reaches the TUI and REPL as key presses; this covers serve and
	// non-interactive runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, cmd, args)
	stop()

	os.Exit(code)
}
