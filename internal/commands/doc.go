// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
//
// The command set is closed: every command has an ID, and NewRegistry
// panics if any ID lacks a handler. There is no registration after
// construction.
//
// # Key Types
//
//   - ID: enumeration of command identifiers
//   - Command: name, description and handler for one ID
//   - Registry: immutable lookup table, Dispatch and Run
//   - Context: the state handlers read and mutate (theme, history, effects)
//   - ResultMsg: bubbletea message carrying the result of DispatchAsync
//
// # Dispatch
//
// A line is normalized to NFC and split on whitespace, with single and
// double quotes grouping words. The first token is looked up by exact,
// case-sensitive match; unknown names produce "command not found: <name>".
// Handlers never fail: bad arguments produce a descriptive line of output.
//
// # Usage
//
//	reg := commands.NewRegistry()
//	env := commands.NewContext(commands.ContextOptions{...})
//
//	out := reg.Dispatch(ctx, env, `echo "a" "b c"`) // "a b c"
//	res := reg.Run(ctx, env, "whoami")               // also appends history
//
// Tab completion:
//
//	reg.Complete(env, "ab") // ["about"]
package commands
