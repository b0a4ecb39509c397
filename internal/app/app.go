// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app wires termfolio together.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jeranaias/termfolio/internal/appearance"
	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/content"
	"github.com/jeranaias/termfolio/internal/effects"
	"github.com/jeranaias/termfolio/internal/history"
	"github.com/jeranaias/termfolio/internal/render"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/theme"
)

// =============================================================================
// APP
// =============================================================================

// Options configures New.
type Options struct {
	// Logger receives diagnostics. Nil discards.
	Logger *slog.Logger

	// Version is shown by `banner`.
	Version string

	// Appearance overrides the source selected by the config.
	Appearance appearance.Source

	// Launcher overrides the system launcher.
	Launcher effects.Launcher
}

// App is the application context.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Version    string
	Prefs      *storage.PrefStore
	Catalog    *theme.Catalog
	Content    *content.Content
	Registry   *commands.Registry
	Appearance appearance.Source
	Launcher   effects.Launcher

	mu       sync.Mutex
	sessions map[*Session]struct{}
	closed   bool
}

// New opens the preference database and loads themes and content.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	catalog, err := theme.LoadCatalog(config.ExpandHome(cfg.Content.ThemesDir), logger)
	if err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}

	c, err := content.Load(config.ExpandHome(cfg.Content.Dir))
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	source := opts.Appearance
	if source == nil {
		source, err = NewAppearance(cfg.Appearance, logger)
		if err != nil {
			return nil, err
		}
	}

	launcher := opts.Launcher
	if launcher == nil {
		launcher = effects.NewSystem(logger)
	}

	prefs, err := storage.OpenPrefStore(ctx, config.ExpandHome(cfg.Storage.DBPath))
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	logger.Debug("application ready",
		"db", cfg.Storage.DBPath,
		"themes", catalog.Len(),
		"appearance", cfg.Appearance.Source,
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Version:    opts.Version,
		Prefs:      prefs,
		Catalog:    catalog,
		Content:    c,
		Registry:   commands.NewRegistry(),
		Appearance: source,
		Launcher:   launcher,
		sessions:   make(map[*Session]struct{}),
	}, nil
}

// NewAppearance builds the appearance source named by cfg.Source.
func NewAppearance(cfg config.AppearanceConfig, logger *slog.Logger) (appearance.Source, error) {
	switch cfg.Source {
	case "", "system":
		return appearance.NewSystem(time.Duration(cfg.PollIntervalSecs)*time.Second, logger), nil
	case "file":
		fallback, err := appearance.Parse(cfg.Fixed)
		if err != nil {
			fallback = true
		}
		return appearance.NewFile(config.ExpandHome(cfg.File), fallback, logger), nil
	case "fixed":
		dark, err := appearance.Parse(cfg.Fixed)
		if err != nil {
			return nil, fmt.Errorf("appearance.fixed: %w", err)
		}
		return appearance.NewFixed(dark), nil
	default:
		return nil, fmt.Errorf("unknown appearance source %q", cfg.Source)
	}
}

// Close closes every open session and the preference database.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	sessions := make([]*Session, 0, len(a.sessions))
	for s := range a.sessions {
		sessions = append(sessions, s)
	}
	a.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
	return a.Prefs.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// SessionOptions configures NewSession.
type SessionOptions struct {
	// Origin scopes persisted preferences. Empty uses storage.origin.
	Origin string

	// Appearance overrides the app's appearance source.
	Appearance appearance.Source

	// Launcher overrides the app's launcher.
	Launcher effects.Launcher

	// Styled selects the glamour/chroma renderer instead of plain text.
	Styled bool

	// WrapWidth is the markdown wrap width for styled output.
	WrapWidth int
}

// Session is one shell: a theme store, a history and a command context.
type Session struct {
	Origin  string
	Theme   *theme.Store
	History *history.History
	Env     *commands.Context

	app      *App
	registry *commands.Registry
	once     sync.Once
}

// NewSession creates a session and loads its persisted theme preferences.
func (a *App) NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil, storage.ErrClosed
	}
	a.mu.Unlock()

	origin := opts.Origin
	if origin == "" {
		origin = a.Config.Storage.Origin
	}
	source := opts.Appearance
	if source == nil {
		source = a.Appearance
	}
	launcher := opts.Launcher
	if launcher == nil {
		launcher = a.Launcher
	}

	store := theme.NewStore(a.Catalog, a.Prefs.Origin(origin), source,
		theme.WithLogger(a.Logger.With("origin", origin)))
	store.Load(ctx)

	var renderer render.Renderer = render.Plain{}
	if opts.Styled {
		renderer = render.NewTerminal(store.Current, opts.WrapWidth)
	}

	hist := history.New()
	env := commands.NewContext(commands.ContextOptions{
		Content:  a.Content,
		Theme:    store,
		History:  hist,
		Effects:  launcher,
		Renderer: renderer,
		Hostname: a.Config.Profile.Hostname,
		User:     a.Config.Profile.User,
		Version:  a.Version,
		Logger:   a.Logger,
	})

	s := &Session{
		Origin:   origin,
		Theme:    store,
		History:  hist,
		Env:      env,
		app:      a,
		registry: a.Registry,
	}

	a.mu.Lock()
	a.sessions[s] = struct{}{}
	a.mu.Unlock()
	return s, nil
}

// Run executes line in the session and records it in the history.
func (s *Session) Run(ctx context.Context, line string) commands.Result {
	return s.registry.Run(ctx, s.Env, line)
}

// Complete returns Tab-completion candidates for line.
func (s *Session) Complete(line string) []string {
	return s.registry.Complete(s.Env, line)
}

// Registry returns the shared command registry.
func (s *Session) Registry() *commands.Registry {
	return s.registry
}

// Close stops the session's appearance listener and detaches it from the
// app. It is safe to call more than once.
func (s *Session) Close() error {
	s.once.Do(func() {
		s.Theme.Close()
		s.app.mu.Lock()
		delete(s.app.sessions, s)
		s.app.mu.Unlock()
	})
	return nil
}
