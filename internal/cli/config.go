// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/jeranaias/termfolio/internal/config"
)

// =============================================================================
// CONFIG STYLES
// =============================================================================

var (
	configKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Width(32)

	configValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	configPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

const configSetUsage = "termfolio config set <key> <value>"

// =============================================================================
// CONFIG COMMAND HANDLER
// =============================================================================

// HandleConfig handles the "config" command with various subcommands.
func HandleConfig(args Args, w io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(args, w)
	case "path":
		return handleConfigPath(args, w)
	case "keys":
		return handleConfigKeys(w)
	case "get":
		return handleConfigGet(args, w)
	case "set":
		return handleConfigSet(args, w)
	default:
		return &UsageError{
			Reason: fmt.Sprintf("unknown config subcommand: %s", args.Subcommand),
			Usage:  "termfolio config [show|path|keys|get|set]",
		}
	}
}

// handleConfigShow prints the effective configuration as TOML.
func handleConfigShow(args Args, w io.Writer) error {
	cfg, path, err := LoadConfig(args)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# %s\n", configPathStyle.Render(path))
	fmt.Fprint(w, cfg.String())
	return nil
}

func handleConfigPath(args Args, w io.Writer) error {
	_, path, err := LoadConfig(args)
	if err != nil && path == "" {
		return err
	}
	fmt.Fprintln(w, path)
	return nil
}

func handleConfigKeys(w io.Writer) error {
	for _, k := range config.GetAllKeys() {
		fmt.Fprintln(w, k)
	}
	return nil
}

func handleConfigGet(args Args, w io.Writer) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", "termfolio config get <key>")
	}
	cfg, _, err := LoadConfig(args)
	if err != nil {
		return err
	}
	v, err := cfg.Get(args.ConfigKey)
	if err != nil {
		return &UsageError{Reason: err.Error(), Usage: "termfolio config keys"}
	}
	fmt.Fprintln(w, v)
	return nil
}

// handleConfigSet changes one value, validates the result and saves it.
// Environment overrides are not written back.
func handleConfigSet(args Args, w io.Writer) error {
	if args.ConfigKey == "" {
		return ErrMissingArgument("key", configSetUsage)
	}
	if args.ConfigVal == "" {
		return ErrMissingArgument("value", configSetUsage)
	}
	if !lo.Contains(config.GetAllKeys(), strings.ToLower(args.ConfigKey)) {
		return &UsageError{
			Reason: fmt.Sprintf("unknown key: %s", args.ConfigKey),
			Usage:  "termfolio config keys",
		}
	}

	path := config.ExpandHome(args.ConfigPath)
	if path == "" {
		p, err := config.ConfigPathTOML()
		if err != nil {
			return &ConfigError{Err: err}
		}
		path = p
	}

	cfg, err := loadFileOnly(path)
	if err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	if err := cfg.Set(args.ConfigKey, args.ConfigVal); err != nil {
		return &UsageError{Reason: err.Error(), Usage: configSetUsage}
	}
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	save := config.SaveTOML
	if strings.HasSuffix(path, ".json") {
		save = config.SaveJSON
	}
	if err := save(cfg, path); err != nil {
		return NewCommandError("config", "set", "cannot save", err)
	}

	fmt.Fprintf(w, "%s%s\n", configKeyStyle.Render(args.ConfigKey), configValueStyle.Render(args.ConfigVal))
	return nil
}

// loadFileOnly reads path over the defaults without environment overrides.
func loadFileOnly(path string) (*config.Config, error) {
	cfg := config.Default()
	if !fileExists(path) {
		return cfg, nil
	}
	var err error
	if strings.HasSuffix(path, ".json") {
		err = config.LoadJSON(cfg, path)
	} else {
		err = config.LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	return cfg, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
