// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the slog.Logger used across termfolio.
//
// Records fan out to every configured sink: a text or JSON handler on a
// writer (a log file while the TUI owns the terminal, stderr otherwise) and,
// when the process runs as a systemd unit, the systemd journal.
//
// # Usage
//
//	logger, closeLog, err := logging.New(logging.Options{
//	    Level:   "info",
//	    File:    "~/.termfolio/termfolio.log",
//	    Journal: true,
//	})
//	defer closeLog()
package logging
