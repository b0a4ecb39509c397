// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/server"
)

// HandleServe serves the shell over HTTP until ctx is cancelled.
func HandleServe(ctx context.Context, args Args) error {
	env, err := Setup(ctx, args, SinkStderr, app.Options{})
	if err != nil {
		return err
	}
	defer env.Close()

	opts := server.OptionsFrom(env.Config.Server, env.Logger)
	if args.Addr != "" {
		opts.Addr = args.Addr
	}

	env.Logger.Info("serving", "addr", opts.Addr, "version", Version)
	return server.New(env.App, opts).ListenAndServe(ctx)
}
