// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/server"
	"github.com/jeranaias/termfolio/internal/storage"
)

const prefsUsage = "termfolio prefs [list|forget <origin>|forget --browsers]"

// =============================================================================
// PREFS COMMAND
// =============================================================================

// HandlePrefs lists or deletes the preferences stored per origin.
func HandlePrefs(ctx context.Context, args Args, w io.Writer) error {
	cfg, _, err := LoadConfig(args)
	if err != nil {
		return err
	}

	store, err := storage.OpenPrefStore(ctx, config.ExpandHome(cfg.Storage.DBPath))
	if err != nil {
		return NewCommandError("prefs", "open", "cannot open preference database", err)
	}
	defer store.Close()

	switch args.Subcommand {
	case "", "list":
		origins, err := store.Origins(ctx)
		if err != nil {
			return NewCommandError("prefs", "list", "cannot read origins", err)
		}
		for _, o := range origins {
			fmt.Fprintln(w, o)
		}
		return nil

	case "forget":
		return forgetOrigins(ctx, store, args, w)

	default:
		return &UsageError{
			Reason: fmt.Sprintf("unknown prefs subcommand: %s", args.Subcommand),
			Usage:  prefsUsage,
		}
	}
}

// forgetOrigins deletes one origin, or every browser origin with --browsers.
func forgetOrigins(ctx context.Context, store *storage.PrefStore, args Args, w io.Writer) error {
	if args.Origin == "" {
		return ErrMissingArgument("origin", prefsUsage)
	}

	targets := []string{args.Origin}
	if args.Origin == "--browsers" {
		origins, err := store.Origins(ctx)
		if err != nil {
			return NewCommandError("prefs", "forget", "cannot read origins", err)
		}
		targets = lo.Filter(origins, func(o string, _ int) bool {
			return strings.HasPrefix(o, server.OriginPrefix)
		})
	}

	for _, o := range targets {
		if err := store.Forget(ctx, o); err != nil {
			return NewCommandError("prefs", "forget", o, err)
		}
	}
	fmt.Fprintf(w, "forgot %d origin(s)\n", len(targets))
	return nil
}
