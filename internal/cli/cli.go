// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the entry points of termfolio.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdRun
	CmdRepl
	CmdServe
	CmdConfig
	CmdPrefs
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdRun:
		return "run"
	case CmdRepl:
		return "repl"
	case CmdServe:
		return "serve"
	case CmdConfig:
		return "config"
	case CmdPrefs:
		return "prefs"
	case CmdVersion:
		return "version"
	case CmdHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	LogLevel   string
	NoColor    bool

	// Command-specific
	Addr       string
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	Origin     string

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `termfolio - a portfolio you explore from a shell prompt

Usage:
  termfolio                      Start the full-screen shell (default)
  termfolio run <line...>        Run one line and print its output
  termfolio repl                 Line-mode shell with history and completion
  termfolio serve [--addr A]     Serve the shell to web browsers
  termfolio config [subcommand]  Configuration
  termfolio prefs [subcommand]   Stored theme preferences
  termfolio version              Show version information
  termfolio help                 Show this help

Config subcommands:
  show                           Print the effective configuration
  path                           Print the configuration file path
  keys                           List settable keys
  get <key>                      Print one value
  set <key> <value>              Change one value and save

Prefs subcommands:
  list                           List origins with stored preferences
  forget <origin>                Delete one origin's preferences
  forget --browsers              Delete every browser session's preferences

Global flags:
  --config <path>                Use this configuration file
  --log-level <level>            debug, info, warn or error
  --no-color                     Disable colors (also NO_COLOR=1)

Examples:
  termfolio run help
  termfolio run cat skills.json
  termfolio serve --addr :8080
  termfolio config set profile.hostname portfolio

Version: %s
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", TitleStyle.Render("termfolio"), Version)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Git commit:"), GitCommit)
	fmt.Fprintf(w, "  %s %s\n", LabelStyle.Render("Build date:"), BuildDate)
	fmt.Fprintf(w, "  %s %s/%s %s\n", LabelStyle.Render("Platform:"), runtime.GOOS, runtime.GOARCH, runtime.Version())
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses command-line arguments and returns the command and args.
func ParseArgs(argv []string) (Command, Args) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		return CmdTUI, args
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	args.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, args

	case "run", "exec":
		return CmdRun, args

	case "repl", "shell":
		return CmdRepl, args

	case "serve", "server":
		p := NewArgParser(remaining)
		args.Addr = p.Flag("addr")
		return CmdServe, args

	case "config":
		parseConfigArgs(&args, remaining)
		return CmdConfig, args

	case "prefs":
		if len(remaining) > 0 {
			args.Subcommand = strings.ToLower(remaining[0])
		}
		if len(remaining) > 1 {
			args.Origin = remaining[1]
		}
		return CmdPrefs, args

	case "version", "--version", "-V":
		return CmdVersion, args

	case "help", "--help", "-h":
		return CmdHelp, args

	default:
		// Anything else is treated as a line for `run`.
		args.Raw = append([]string{cmd}, remaining...)
		return CmdRun, args
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
// Flags after the command name that are not global are left in place.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		name, value, hasValue := strings.Cut(arg, "=")

		switch name {
		case "--no-color":
			args.NoColor = true
		case "--config", "-c":
			if hasValue {
				args.ConfigPath = value
			} else if i+1 < len(argv) {
				i++
				args.ConfigPath = argv[i]
			}
		case "--log-level":
			if hasValue {
				args.LogLevel = value
			} else if i+1 < len(argv) {
				i++
				args.LogLevel = argv[i]
			}
		default:
			remaining = append(remaining, arg)
		}
	}

	if os.Getenv("NO_COLOR") != "" {
		args.NoColor = true
	}
	return remaining, args
}

// parseConfigArgs parses config subcommand arguments.
func parseConfigArgs(args *Args, remaining []string) {
	if len(remaining) == 0 {
		args.Subcommand = "show"
		return
	}
	args.Subcommand = strings.ToLower(remaining[0])
	if len(remaining) > 1 {
		args.ConfigKey = remaining[1]
	}
	if len(remaining) > 2 {
		args.ConfigVal = strings.Join(remaining[2:], " ")
	}
}

// =============================================================================
// EXECUTION
// =============================================================================

// Execute runs cmd and returns the process exit code. Errors are written to
// stderr.
func Execute(ctx context.Context, cmd Command, args Args) int {
	if args.NoColor {
		ForceColorsEnabled(false)
	}

	var err error
	code := ExitSuccess

	switch cmd {
	case CmdHelp:
		PrintUsage(os.Stdout)
		return ExitSuccess
	case CmdVersion:
		PrintVersion(os.Stdout)
		return ExitSuccess
	case CmdConfig:
		err = HandleConfig(args, os.Stdout)
	case CmdPrefs:
		err = HandlePrefs(ctx, args, os.Stdout)
	case CmdRun:
		code, err = HandleRun(ctx, args, os.Stdout)
	case CmdRepl:
		err = HandleRepl(ctx, args)
	case CmdServe:
		err = HandleServe(ctx, args)
	default:
		err = HandleTUI(ctx, args)
	}

	if err != nil {
		DisplayError(os.Stderr, err)
		return GetExitCode(err)
	}
	return code
}
