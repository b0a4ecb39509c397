// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import (
	"log/slog"
	"os"
	"time"

	"github.com/jeranaias/termfolio/internal/content"
	"github.com/jeranaias/termfolio/internal/effects"
	"github.com/jeranaias/termfolio/internal/history"
	"github.com/jeranaias/termfolio/internal/render"
	"github.com/jeranaias/termfolio/internal/theme"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Context is everything a handler may read or change. One Context exists
// per shell session; the Registry is shared.
type Context struct {
	// Content is the portfolio data.
	Content *content.Content

	// Theme is the session's theme store.
	Theme *theme.Store

	// History is the session's scrollback.
	History *history.History

	// Effects performs external actions (open URL, mail, download).
	Effects effects.Launcher

	// Renderer formats markdown, JSON and styled spans.
	Renderer render.Renderer

	// Hostname is shown by `hostname` and in the prompt.
	Hostname string

	// User is shown by `whoami` and in the prompt.
	User string

	// Version is shown by `banner`.
	Version string

	// Now returns the current time for `date`.
	Now func() time.Time

	// Logger receives diagnostics. It never sees command output.
	Logger *slog.Logger
}

// ContextOptions configures NewContext. Zero fields get defaults.
type ContextOptions struct {
	Content  *content.Content
	Theme    *theme.Store
	History  *history.History
	Effects  effects.Launcher
	Renderer render.Renderer
	Hostname string
	User     string
	Version  string
	Now      func() time.Time
	Logger   *slog.Logger
}

// DefaultUser is the login shown when none is configured.
const DefaultUser = "guest"

// NewContext builds a Context, filling defaults for missing options:
// embedded content, a fresh history, the OS hostname, plain rendering and
// a launcher that discards actions. Theme must be provided.
func NewContext(opts ContextOptions) *Context {
	env := &Context{
		Content:  opts.Content,
		Theme:    opts.Theme,
		History:  opts.History,
		Effects:  opts.Effects,
		Renderer: opts.Renderer,
		Hostname: opts.Hostname,
		User:     opts.User,
		Version:  opts.Version,
		Now:      opts.Now,
		Logger:   opts.Logger,
	}

	if env.Content == nil {
		env.Content = content.Default()
	}
	if env.History == nil {
		env.History = history.New()
	}
	if env.Effects == nil {
		env.Effects = effects.Discard{}
	}
	if env.Renderer == nil {
		env.Renderer = render.Plain{}
	}
	if env.Hostname == "" {
		if h, err := os.Hostname(); err == nil {
			env.Hostname = h
		} else {
			env.Hostname = "localhost"
		}
	}
	if env.User == "" {
		env.User = DefaultUser
	}
	if env.Version == "" {
		env.Version = "dev"
	}
	if env.Now == nil {
		env.Now = time.Now
	}
	if env.Logger == nil {
		env.Logger = slog.New(slog.DiscardHandler)
	}
	return env
}

// Prompt returns the shell prompt, e.g. "guest@host:~$".
func (c *Context) Prompt() string {
	return c.User + "@" + c.Hostname + ":~$"
}
