// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/peterh/liner"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/appearance"
	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/effects"
	"github.com/jeranaias/termfolio/internal/storage"
)

// =============================================================================
// PARSING
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		check   func(t *testing.T, a Args)
	}{
		{"empty is tui", nil, CmdTUI, nil},
		{"tui", []string{"tui"}, CmdTUI, nil},
		{"run", []string{"run", "cat", "README.md"}, CmdRun, func(t *testing.T, a Args) {
			if got := strings.Join(a.Raw, " "); got != "cat README.md" {
				t.Errorf("Raw = %q", got)
			}
		}},
		{"unknown word runs", []string{"whoami"}, CmdRun, func(t *testing.T, a Args) {
			if len(a.Raw) != 1 || a.Raw[0] != "whoami" {
				t.Errorf("Raw = %v", a.Raw)
			}
		}},
		{"repl", []string{"repl"}, CmdRepl, nil},
		{"serve addr", []string{"serve", "--addr", ":9000"}, CmdServe, func(t *testing.T, a Args) {
			if a.Addr != ":9000" {
				t.Errorf("Addr = %q, want :9000", a.Addr)
			}
		}},
		{"serve addr equals", []string{"serve", "--addr=:9001"}, CmdServe, func(t *testing.T, a Args) {
			if a.Addr != ":9001" {
				t.Errorf("Addr = %q, want :9001", a.Addr)
			}
		}},
		{"config default show", []string{"config"}, CmdConfig, func(t *testing.T, a Args) {
			if a.Subcommand != "show" {
				t.Errorf("Subcommand = %q", a.Subcommand)
			}
		}},
		{"config set joins value", []string{"config", "set", "profile.user", "sam", "doe"}, CmdConfig, func(t *testing.T, a Args) {
			if a.Subcommand != "set" || a.ConfigKey != "profile.user" || a.ConfigVal != "sam doe" {
				t.Errorf("got %q %q %q", a.Subcommand, a.ConfigKey, a.ConfigVal)
			}
		}},
		{"prefs forget", []string{"prefs", "forget", "browser-x"}, CmdPrefs, func(t *testing.T, a Args) {
			if a.Subcommand != "forget" || a.Origin != "browser-x" {
				t.Errorf("got %q %q", a.Subcommand, a.Origin)
			}
		}},
		{"version", []string{"--version"}, CmdVersion, nil},
		{"help", []string{"-h"}, CmdHelp, nil},
		{"global flags anywhere", []string{"run", "--config", "/tmp/x.toml", "help", "--log-level=debug", "--no-color"}, CmdRun, func(t *testing.T, a Args) {
			if a.ConfigPath != "/tmp/x.toml" || a.LogLevel != "debug" || !a.NoColor {
				t.Errorf("globals = %+v", a)
			}
			if strings.Join(a.Raw, " ") != "help" {
				t.Errorf("Raw = %v", a.Raw)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.argv)
			if cmd != tt.wantCmd {
				t.Fatalf("ParseArgs(%v) = %v, want %v", tt.argv, cmd, tt.wantCmd)
			}
			if tt.check != nil {
				tt.check(t, args)
			}
		})
	}
}

func TestArgParser(t *testing.T) {
	p := NewArgParser([]string{"pos0", "--addr", ":1", "--open", "-v", "--mode=x", "--", "--raw"})

	if p.Flag("addr") != ":1" {
		t.Errorf("Flag(addr) = %q", p.Flag("addr"))
	}
	if p.Flag("mode") != "x" {
		t.Errorf("Flag(mode) = %q", p.Flag("mode"))
	}
	if !p.BoolFlag("open") || !p.BoolFlag("v") {
		t.Error("bool flags not set")
	}
	if p.FlagOrDefault("missing", "d") != "d" {
		t.Error("FlagOrDefault should fall back")
	}
	if got := p.Positionals(); len(got) != 2 || got[0] != "pos0" || got[1] != "--raw" {
		t.Errorf("Positionals() = %v", got)
	}
	if p.Positional(5) != "" {
		t.Error("out of range positional should be empty")
	}
}

func TestJoinLine(t *testing.T) {
	tests := []struct {
		argv []string
		want string
	}{
		{nil, ""},
		{[]string{"whoami"}, "whoami"},
		{[]string{"echo", "hello world"}, `echo "hello world"`},
		{[]string{"echo", `say "hi"`}, `echo "say \"hi\""`},
		{[]string{"echo", ""}, `echo ""`},
		{[]string{"echo", "it's"}, `echo "it's"`},
		{[]string{"echo", `a\b`}, `echo "a\\b"`},
	}
	for _, tt := range tests {
		if got := JoinLine(tt.argv); got != tt.want {
			t.Errorf("JoinLine(%q) = %q, want %q", tt.argv, got, tt.want)
		}
	}
}

func TestJoinLineParsesBack(t *testing.T) {
	tests := [][]string{
		{"whoami"},
		{"echo", "it's"},
		{"echo", `a\b`},
		{"echo", `trailing\`},
		{"echo", `"`, `'`, `\`},
		{"echo", `say "hi"`, "it's mine"},
		{"echo", "", "x"},
		{"echo", "tab\there", "new\nline"},
		{"cat", "résumé.md"},
		{"echo", `'quoted'`, `"double"`},
	}
	for _, argv := range tests {
		line := JoinLine(argv)
		p := commands.Parse(line)
		got := append([]string{p.Name}, p.Args...)
		if !slices.Equal(got, argv) {
			t.Errorf("Parse(JoinLine(%q)) = %q (line %q)", argv, got, line)
		}
	}
}

func TestCommandString(t *testing.T) {
	for cmd, want := range map[Command]string{CmdTUI: "tui", CmdServe: "serve", Command(99): "unknown"} {
		if got := cmd.String(); got != want {
			t.Errorf("Command(%d).String() = %q, want %q", cmd, got, want)
		}
	}
}

// =============================================================================
// ERRORS
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"usage", ErrMissingArgument("key", "x"), ExitUsageError},
		{"config", &ConfigError{Path: "p", Err: errors.New("bad")}, ExitConfigError},
		{"wrapped config", NewCommandError("a", "b", "c", &ConfigError{Err: errors.New("bad")}), ExitConfigError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		if got := GetExitCode(tt.err); got != tt.want {
			t.Errorf("GetExitCode(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestDisplayError(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("DisplayError wrote %q", buf.String())
	}
	buf.Reset()
	DisplayError(&buf, nil)
	if buf.Len() != 0 {
		t.Error("DisplayError(nil) should write nothing")
	}
}

// =============================================================================
// CONFIG
// =============================================================================

func TestHandleConfigSetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	var out bytes.Buffer

	err := HandleConfig(Args{ConfigPath: path, Subcommand: "set", ConfigKey: "server.rate_burst", ConfigVal: "50"}, &out)
	require.NoError(t, err)

	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	if cfg.Server.RateBurst != 50 {
		t.Errorf("RateBurst = %d, want 50", cfg.Server.RateBurst)
	}

	out.Reset()
	require.NoError(t, HandleConfig(Args{ConfigPath: path, Subcommand: "get", ConfigKey: "server.rate_burst"}, &out))
	if strings.TrimSpace(out.String()) != "50" {
		t.Errorf("get = %q, want 50", out.String())
	}
}

func TestHandleConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	tests := []struct {
		name string
		args Args
		code int
	}{
		{"unknown subcommand", Args{Subcommand: "nuke"}, ExitUsageError},
		{"set without key", Args{Subcommand: "set"}, ExitUsageError},
		{"set without value", Args{Subcommand: "set", ConfigKey: "ui.max_recall"}, ExitUsageError},
		{"unknown key", Args{Subcommand: "set", ConfigKey: "ui.nope", ConfigVal: "1"}, ExitUsageError},
		{"bad type", Args{Subcommand: "set", ConfigKey: "ui.max_recall", ConfigVal: "lots"}, ExitUsageError},
		{"fails validation", Args{Subcommand: "set", ConfigKey: "appearance.source", ConfigVal: "crystal-ball"}, ExitConfigError},
		{"get unknown", Args{Subcommand: "get", ConfigKey: "ui.nope"}, ExitUsageError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.args.ConfigPath = path
			err := HandleConfig(tt.args, io.Discard)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := GetExitCode(err); got != tt.code {
				t.Errorf("exit code = %d, want %d (%v)", got, tt.code, err)
			}
		})
	}
}

func TestHandleConfigShowAndKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	var out bytes.Buffer
	require.NoError(t, HandleConfig(Args{ConfigPath: path, Subcommand: "show"}, &out))
	if !strings.Contains(out.String(), "[server]") {
		t.Errorf("show output missing [server]:\n%s", out.String())
	}

	out.Reset()
	require.NoError(t, HandleConfig(Args{Subcommand: "keys"}, &out))
	if !strings.Contains(out.String(), "profile.hostname\n") {
		t.Errorf("keys output missing profile.hostname:\n%s", out.String())
	}

	out.Reset()
	require.NoError(t, HandleConfig(Args{ConfigPath: path, Subcommand: "path"}, &out))
	if strings.TrimSpace(out.String()) != path {
		t.Errorf("path = %q, want %q", out.String(), path)
	}
}

// =============================================================================
// RUN
// =============================================================================

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "prefs.db")
	cfg.Appearance.Source = "fixed"
	cfg.Profile.Hostname = "example.test"
	cfg.Logging.Journal = false
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, config.SaveTOML(cfg, path))
	return path
}

func TestHandleRun(t *testing.T) {
	ForceColorsEnabled(false)
	stderr = io.Discard
	path := writeTestConfig(t)

	tests := []struct {
		raw      []string
		wantCode int
		want     string
	}{
		{[]string{"whoami"}, ExitSuccess, "guest\n"},
		{[]string{"hostname"}, ExitSuccess, "example.test\n"},
		{[]string{"echo", "hello world"}, ExitSuccess, "hello world\n"},
		{[]string{"nope"}, ExitCommandNotFound, "command not found: nope\n"},
		{[]string{"clear"}, ExitSuccess, ""},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		code, err := HandleRun(context.Background(), Args{ConfigPath: path, Raw: tt.raw}, &out)
		require.NoError(t, err)
		if code != tt.wantCode {
			t.Errorf("run %v: code = %d, want %d", tt.raw, code, tt.wantCode)
		}
		if out.String() != tt.want {
			t.Errorf("run %v: output = %q, want %q", tt.raw, out.String(), tt.want)
		}
	}
}

func TestHandleRunMissingCommand(t *testing.T) {
	code, err := HandleRun(context.Background(), Args{}, io.Discard)
	if err == nil || code != ExitUsageError {
		t.Errorf("HandleRun() = %d, %v; want usage error", code, err)
	}
}

// =============================================================================
// PREFS
// =============================================================================

func TestHandlePrefs(t *testing.T) {
	ctx := context.Background()
	path := writeTestConfig(t)

	store, err := storage.OpenPrefStore(ctx, filepath.Join(filepath.Dir(path), "prefs.db"))
	require.NoError(t, err)
	for _, origin := range []string{"terminal", "browser-a", "browser-b"} {
		require.NoError(t, store.Origin(origin).Set(ctx, storage.KeyAutoTheme, "false"))
	}
	require.NoError(t, store.Close())

	list := func() string {
		var out bytes.Buffer
		require.NoError(t, HandlePrefs(ctx, Args{ConfigPath: path, Subcommand: "list"}, &out))
		return out.String()
	}

	if got := list(); got != "browser-a\nbrowser-b\nterminal\n" {
		t.Errorf("prefs list = %q", got)
	}

	var out bytes.Buffer
	require.NoError(t, HandlePrefs(ctx, Args{ConfigPath: path, Subcommand: "forget", Origin: "--browsers"}, &out))
	if out.String() != "forgot 2 origin(s)\n" {
		t.Errorf("forget --browsers = %q", out.String())
	}
	if got := list(); got != "terminal\n" {
		t.Errorf("prefs list after forget = %q, want terminal only", got)
	}

	require.NoError(t, HandlePrefs(ctx, Args{ConfigPath: path, Subcommand: "forget", Origin: "terminal"}, io.Discard))
	if got := list(); got != "" {
		t.Errorf("prefs list after forgetting terminal = %q, want empty", got)
	}

	err = HandlePrefs(ctx, Args{ConfigPath: path, Subcommand: "forget"}, io.Discard)
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("forget without origin = %v, want usage error", err)
	}
}

// =============================================================================
// REPL
// =============================================================================

type scriptReader struct {
	lines   []string
	prompts []string
	history []string
	end     error
}

func (r *scriptReader) Prompt(p string) (string, error) {
	r.prompts = append(r.prompts, p)
	if len(r.lines) == 0 {
		return "", r.end
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) AppendHistory(line string) { r.history = append(r.history, line) }
func (r *scriptReader) Close() error             { return nil }

func newSession(t *testing.T) *app.Session {
	t.Helper()
	ctx := context.Background()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "prefs.db")
	cfg.Profile.Hostname = "example.test"

	a, err := app.New(ctx, cfg, app.Options{
		Version:    "1.0.0",
		Appearance: appearance.NewFixed(true),
		Launcher:   &effects.Recorder{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	s, err := a.NewSession(ctx, app.SessionOptions{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestReplRunsUntilExit(t *testing.T) {
	s := newSession(t)
	r := &scriptReader{lines: []string{"whoami", "  ", "exit", "hostname"}, end: io.EOF}
	var out bytes.Buffer

	require.NoError(t, Repl(context.Background(), s, r, &out, ReplOptions{}))

	got := out.String()
	if !strings.Contains(got, "guest\n") {
		t.Errorf("missing whoami output:\n%s", got)
	}
	if !strings.Contains(got, "Please close the tab to exit.") {
		t.Errorf("missing exit message:\n%s", got)
	}
	if strings.Contains(got, "example.test") {
		t.Errorf("ran a line after exit:\n%s", got)
	}
	if len(r.history) != 2 {
		t.Errorf("history = %q, want whoami and exit", r.history)
	}
	if r.prompts[0] != "guest@example.test:~$ " {
		t.Errorf("prompt = %q", r.prompts[0])
	}
	if s.History.Len() != 3 {
		t.Errorf("session history = %d entries, want 3", s.History.Len())
	}
}

func TestReplStopsOnAbortAndEOF(t *testing.T) {
	for _, end := range []error{io.EOF, liner.ErrPromptAborted} {
		s := newSession(t)
		r := &scriptReader{end: end}
		if err := Repl(context.Background(), s, r, io.Discard, ReplOptions{}); err != nil {
			t.Errorf("Repl with %v = %v, want nil", end, err)
		}
	}

	s := newSession(t)
	r := &scriptReader{end: errors.New("tty gone")}
	if err := Repl(context.Background(), s, r, io.Discard, ReplOptions{}); err == nil {
		t.Error("Repl should surface read errors")
	}
}

func TestReplBanner(t *testing.T) {
	s := newSession(t)
	r := &scriptReader{end: io.EOF}
	var out bytes.Buffer

	require.NoError(t, Repl(context.Background(), s, r, &out, ReplOptions{ShowBanner: true}))
	if !strings.Contains(out.String(), "Type 'help' to see list of available commands.") {
		t.Errorf("banner missing:\n%s", out.String())
	}
}
