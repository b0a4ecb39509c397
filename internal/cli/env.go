// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/logging"
)

// =============================================================================
// ENVIRONMENT
// =============================================================================

// Sink selects where logs go while a command runs.
type Sink int

const (
	// SinkStderr writes logs to stderr.
	SinkStderr Sink = iota
	// SinkFile writes logs to logging.file; used while the TUI owns the screen.
	SinkFile
)

// Env is the state shared by the commands that open the application.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
	App    *app.App

	closeLog func() error
}

// LoadConfig loads the configuration named by args, or the default one.
func LoadConfig(args Args) (*config.Config, string, error) {
	path := args.ConfigPath
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return nil, "", &ConfigError{Err: err}
		}
		cfg, err := config.Load()
		if err != nil {
			return nil, p, &ConfigError{Path: p, Err: err}
		}
		return applyArgs(cfg, args), p, nil
	}

	path = config.ExpandHome(path)
	if !fileExists(path) {
		// A named file that does not exist yet is created by `config set`.
		cfg := config.Default()
		cfg.ApplyEnvOverrides()
		cfg.SetDefaults()
		return applyArgs(cfg, args), path, nil
	}
	cfg, err := config.LoadFromPath(path)
	if err != nil {
		return nil, path, &ConfigError{Path: path, Err: err}
	}
	return applyArgs(cfg, args), path, nil
}

func applyArgs(cfg *config.Config, args Args) *config.Config {
	if args.LogLevel != "" {
		cfg.Logging.Level = args.LogLevel
	}
	if args.NoColor {
		cfg.UI.NoColor = true
	}
	return cfg
}

// Setup loads the configuration, builds the logger and opens the app.
func Setup(ctx context.Context, args Args, sink Sink, opts app.Options) (*Env, error) {
	cfg, _, err := LoadConfig(args)
	if err != nil {
		return nil, err
	}

	logOpts := logging.Options{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Journal: cfg.Logging.Journal,
	}
	switch sink {
	case SinkFile:
		logOpts.File = config.ExpandHome(cfg.Logging.File)
	default:
		logOpts.Writer = stderr
	}

	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return nil, NewCommandError("logging", "open", "cannot open log file", err)
	}

	opts.Logger = logger
	if opts.Version == "" {
		opts.Version = Version
	}
	a, err := app.New(ctx, cfg, opts)
	if err != nil {
		_ = closeLog()
		return nil, err
	}

	return &Env{Config: cfg, Logger: logger, App: a, closeLog: closeLog}, nil
}

// Close releases the app and the log sink.
func (e *Env) Close() error {
	err := e.App.Close()
	if cerr := e.closeLog(); err == nil {
		err = cerr
	}
	return err
}

// stderr is where SinkStderr logs go; tests replace it.
var stderr io.Writer = os.Stderr
