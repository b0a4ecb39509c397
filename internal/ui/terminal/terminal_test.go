// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/appearance"
	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/effects"
	"github.com/jeranaias/termfolio/internal/theme"
)

type harness struct {
	session *app.Session
	pref    *appearance.Fixed
	copied  []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, app.SessionOptions{})
}

func newHarnessWith(t *testing.T, sessionOpts app.SessionOptions) *harness {
	t.Helper()
	ctx := context.Background()

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "prefs.db")
	cfg.Profile.Hostname = "example.test"
	cfg.Content.ThemesDir = ""

	h := &harness{pref: appearance.NewFixed(true)}
	a, err := app.New(ctx, cfg, app.Options{
		Version:    "1.0.0",
		Appearance: h.pref,
		Launcher:   &effects.Recorder{},
	})
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	h.session, err = a.NewSession(ctx, sessionOpts)
	require.NoError(t, err)
	return h
}

func (h *harness) model(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Profile = termenv.Ascii
	opts.Version = "1.0.0"
	opts.Clipboard = func(s string) error {
		h.copied = append(h.copied, s)
		return nil
	}
	opts.Now = func() time.Time { return time.Date(2025, 3, 4, 10, 15, 0, 0, time.UTC) }

	m := New(h.session, opts)
	return update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(t *testing.T, m Model, k tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(Model), cmd
}

// runLine types line, submits it and delivers the dispatch result.
func runLine(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m = typeText(t, m, line)
	m, cmd := press(t, m, tea.KeyEnter)
	if !m.Pending() {
		t.Fatalf("after Enter on %q the model should be pending", line)
	}
	if m.Input() != "" {
		t.Errorf("Input() = %q after submit, want empty", m.Input())
	}

	res, ok := findResult(cmd)
	if !ok {
		t.Fatalf("Enter on %q did not produce a ResultMsg", line)
	}
	next, cmd := m.Update(res)
	return next.(Model), cmd
}

func findResult(cmd tea.Cmd) (commands.ResultMsg, bool) {
	if cmd == nil {
		return commands.ResultMsg{}, false
	}
	switch msg := cmd().(type) {
	case commands.ResultMsg:
		return msg, true
	case tea.BatchMsg:
		for _, c := range msg {
			if res, ok := findResult(c); ok {
				return res, true
			}
		}
	}
	return commands.ResultMsg{}, false
}

func TestBannerShownOnStart(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{ShowBanner: true})

	if h.session.History.Len() != 1 {
		t.Fatalf("history has %d entries, want the banner", h.session.History.Len())
	}
	if view := m.View(); !strings.Contains(view, commands.BannerHint) {
		t.Errorf("View() missing banner hint:\n%s", view)
	}
}

func TestRunCommand(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{})

	m, _ = runLine(t, m, "whoami")
	if m.Pending() {
		t.Error("model still pending after ResultMsg")
	}
	view := m.View()
	if !strings.Contains(view, "guest@example.test:~$ whoami") {
		t.Errorf("View() missing echoed input:\n%s", view)
	}
	if h.session.History.Len() != 1 {
		t.Errorf("history has %d entries, want 1", h.session.History.Len())
	}

	m, _ = runLine(t, m, "frobnicate")
	if view := m.View(); !strings.Contains(view, "command not found: frobnicate") {
		t.Errorf("View() missing not-found output:\n%s", view)
	}
}

func TestStyledSessionKeepsRendererOutput(t *testing.T) {
	h := newHarnessWith(t, app.SessionOptions{Styled: true, WrapWidth: 80})
	m := h.model(t, Options{})

	m, _ = runLine(t, m, "cat skills.json")
	last, _ := h.session.History.Last()
	if !strings.Contains(last.Output, "\x1b[") {
		t.Fatalf("cat skills.json was not highlighted: %q", last.Output)
	}
	if view := m.View(); !strings.Contains(view, last.Output) {
		t.Error("highlighted output was restyled instead of shown verbatim")
	}

	m, _ = runLine(t, m, "about")
	if last, _ := h.session.History.Last(); strings.Contains(last.Output, "**Sam**") {
		t.Errorf("about shows raw markdown: %q", last.Output)
	}
}

func TestNotFoundStyleFollowsEntry(t *testing.T) {
	h := newHarness(t)
	m := New(h.session, Options{Profile: termenv.TrueColor})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m, _ = runLine(t, m, "echo command not found: x")
	if last, _ := h.session.History.Last(); last.Unknown {
		t.Error("echo output was recorded as an unknown command")
	}
	m, _ = runLine(t, m, "frob")
	if last, _ := h.session.History.Last(); !last.Unknown {
		t.Error("frob was not recorded as an unknown command")
	}

	const text = "command not found: x"
	if got, want := m.renderOutput(text, false), renderLines(m.styles.Output, text); got != want {
		t.Errorf("known output rendered %q, want %q", got, want)
	}
	if got, want := m.renderOutput(text, true), renderLines(m.styles.NotFound, text); got != want {
		t.Errorf("unknown output rendered %q, want %q", got, want)
	}
	if m.renderOutput(text, false) == m.renderOutput(text, true) {
		t.Error("known and unknown output look the same")
	}
}

func TestClearCommand(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{ShowBanner: true})

	m, _ = runLine(t, m, "clear")
	if h.session.History.Len() != 0 {
		t.Errorf("history has %d entries after clear, want 0", h.session.History.Len())
	}
	if strings.Contains(m.View(), commands.BannerHint) {
		t.Error("banner still visible after clear")
	}
}

func TestCtrlLClears(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{ShowBanner: true})

	m, _ = press(t, m, tea.KeyCtrlL)
	if h.session.History.Len() != 0 {
		t.Errorf("history has %d entries after Ctrl+L, want 0", h.session.History.Len())
	}
}

func TestExitQuits(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{})

	m, cmd := runLine(t, m, "exit")
	if !m.Quitting() {
		t.Error("exit should quit the program")
	}
	if cmd == nil {
		t.Fatal("exit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("exit should return tea.Quit")
	}
	if last, _ := h.session.History.Last(); last.Output != "Please close the tab to exit." {
		t.Errorf("exit output = %q", last.Output)
	}
}

func TestKeysIgnoredWhilePending(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{})

	m = typeText(t, m, "whoami")
	m, _ = press(t, m, tea.KeyEnter)
	m = typeText(t, m, "date")
	if m.Input() != "" {
		t.Errorf("Input() = %q while pending, want typing ignored", m.Input())
	}
	if _, cmd := press(t, m, tea.KeyEnter); cmd != nil {
		t.Error("Enter while pending should not dispatch")
	}
}

func TestTabCompletion(t *testing.T) {
	tests := []struct {
		name  string
		typed string
		tabs  int
		want  string
	}{
		{"unique command", "who", 1, "whoami"},
		{"two letter prefix", "hi", 1, "history"},
		{"shared prefix extends", "d", 1, "da"},
		{"ambiguous lists first", "e", 1, "e"},
		{"second tab picks first", "e", 2, "echo"},
		{"third tab cycles", "e", 3, "education"},
		{"cat file", "cat READ", 1, "cat README.md"},
		{"theme name", "theme dra", 1, "theme dracula"},
		{"no candidates", "zzz", 1, "zzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			m := typeText(t, h.model(t, Options{}), tt.typed)
			for i := 0; i < tt.tabs; i++ {
				m, _ = press(t, m, tea.KeyTab)
			}
			if got := m.Input(); got != tt.want {
				t.Errorf("after %d Tab(s) on %q: Input() = %q, want %q", tt.tabs, tt.typed, got, tt.want)
			}
		})
	}
}

func TestTabShowsCandidates(t *testing.T) {
	h := newHarness(t)
	m := typeText(t, h.model(t, Options{}), "e")
	m, _ = press(t, m, tea.KeyTab)

	view := m.View()
	for _, name := range []string{"echo", "education", "email", "exit", "experience"} {
		if !strings.Contains(view, name) {
			t.Errorf("View() missing candidate %q", name)
		}
	}

	m, _ = press(t, m, tea.KeyEsc)
	if strings.Contains(m.View(), "experience") {
		t.Error("Esc should dismiss the candidate list")
	}
}

func TestRecall(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{})
	m, _ = runLine(t, m, "whoami")
	m, _ = runLine(t, m, "hostname")

	m = typeText(t, m, "dra")
	steps := []struct {
		key  tea.KeyType
		want string
	}{
		{tea.KeyUp, "hostname"},
		{tea.KeyUp, "whoami"},
		{tea.KeyUp, "whoami"},
		{tea.KeyDown, "hostname"},
		{tea.KeyDown, "dra"},
		{tea.KeyDown, "dra"},
	}
	for i, s := range steps {
		m, _ = press(t, m, s.key)
		if got := m.Input(); got != s.want {
			t.Errorf("step %d: Input() = %q, want %q", i, got, s.want)
		}
	}
}

func TestRecallLimit(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{MaxRecall: 1})
	m, _ = runLine(t, m, "whoami")
	m, _ = runLine(t, m, "hostname")

	m, _ = press(t, m, tea.KeyUp)
	m, _ = press(t, m, tea.KeyUp)
	if got := m.Input(); got != "hostname" {
		t.Errorf("Input() = %q, want recall capped at the last input", got)
	}
}

func TestCopyLastOutput(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{ShowStatusBar: true})

	if _, cmd := press(t, m, tea.KeyCtrlY); cmd != nil {
		t.Error("Ctrl+Y with empty history should do nothing")
	}

	m, _ = runLine(t, m, "echo hello world")
	m, cmd := press(t, m, tea.KeyCtrlY)
	require.NotNil(t, cmd)
	m = update(t, m, cmd())

	if len(h.copied) != 1 || h.copied[0] != "hello world" {
		t.Errorf("copied = %q, want [hello world]", h.copied)
	}
	if !strings.Contains(m.View(), "copied") {
		t.Error("status bar should flash after copying")
	}
}

func TestThemeChangeRestyles(t *testing.T) {
	h := newHarness(t)
	m := h.model(t, Options{ShowStatusBar: true})

	if !strings.Contains(m.View(), "theme dark") {
		t.Fatalf("initial status bar should show the dark theme:\n%s", m.View())
	}

	h.pref.Set(false)
	st := h.session.Theme.State()
	if st.Theme.Name != theme.LightName {
		t.Fatalf("store theme = %q after OS switch, want light", st.Theme.Name)
	}

	m = update(t, m, ThemeChangedMsg{State: st})
	if m.styles.Theme.Name != theme.LightName {
		t.Errorf("styles theme = %q, want light", m.styles.Theme.Name)
	}
	if !strings.Contains(m.View(), "theme light") {
		t.Errorf("status bar should show the light theme:\n%s", m.View())
	}
}

func TestViewBeforeResize(t *testing.T) {
	h := newHarness(t)
	m := New(h.session, Options{Profile: termenv.Ascii})
	if got := m.View(); got != "Loading..." {
		t.Errorf("View() before WindowSizeMsg = %q", got)
	}
}
