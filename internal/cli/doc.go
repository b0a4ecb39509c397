// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
//
// # Key Types
//
//   - Command: enumeration of the top-level commands
//   - Args: parsed global flags plus command-specific values
//   - Env: configuration, logger and application shared by the commands
//
// # Commands
//
//   - (none), tui: full-screen shell
//   - run <line...>: run one line and print its output
//   - repl: line-mode shell with history and Tab completion
//   - serve [--addr host:port]: browser mode
//   - config [show|path|keys|get|set]: configuration
//   - prefs [list|forget <origin>|forget --browsers]: stored preferences
//   - version, help
//
// Global flags: --config <path>, --log-level <level>, --no-color.
//
// # Usage
//
//	cmd, args := cli.Parse()
//	os.Exit(cli.Execute(ctx, cmd, args))
package cli
