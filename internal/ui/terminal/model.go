// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the full-screen shell of termfolio.
package terminal

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/ui/components"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// DefaultMaxRecall bounds Up/Down recall when Options.MaxRecall is zero.
const DefaultMaxRecall = 100

// Options configures a Model.
type Options struct {
	// Context is passed to command handlers.
	Context context.Context

	// Version is shown in the banner.
	Version string

	// Profile is the color profile. termenv.Ascii disables color.
	Profile termenv.Profile

	// MaxRecall bounds how many previous inputs Up/Down walks through.
	MaxRecall int

	ShowBanner    bool
	ShowStatusBar bool

	// Clipboard writes the Ctrl+Y payload. Nil uses the system clipboard.
	Clipboard func(string) error

	// Now is the clock. Nil uses time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the shell.
type Model struct {
	ctx     context.Context
	session *app.Session
	keys    KeyMap

	// Styling
	profile termenv.Profile
	styles  *styles.Styles

	// Components
	viewport viewport.Model
	input    textinput.Model
	spinner  components.Spinner
	status   *components.StatusBar
	banner   *components.Banner
	popup    *components.CompletionPopup

	// Recall state: recallIdx == len(recall) means the draft is shown.
	recall    []string
	recallIdx int
	draft     string
	maxRecall int

	pending       bool
	cycling       bool
	quitting      bool
	showStatusBar bool
	flashSeq      int

	width  int
	height int

	copy func(string) error
	now  func() time.Time
}

// New creates a Model for session. When ShowBanner is set and the history
// is empty, the banner is added as the first entry.
func New(session *app.Session, opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	maxRecall := opts.MaxRecall
	if maxRecall <= 0 {
		maxRecall = DefaultMaxRecall
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	st := styles.New(session.Theme.Current(), opts.Profile)

	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "help"
	in.Focus()

	m := Model{
		ctx:           ctx,
		session:       session,
		keys:          DefaultKeyMap(),
		profile:       opts.Profile,
		styles:        st,
		viewport:      viewport.New(0, 0),
		input:         in,
		spinner:       components.NewSpinner(st),
		status:        components.NewStatusBar(st),
		banner:        components.NewBanner(opts.Version, st),
		popup:         components.NewCompletionPopup(st),
		maxRecall:     maxRecall,
		showStatusBar: opts.ShowStatusBar,
		copy:          copyFn,
		now:           now,
	}
	m.applyStyles()
	m.status.SetState(session.Theme.State())
	m.status.SetTime(now())

	if opts.ShowBanner && session.History.Len() == 0 {
		session.History.Append("banner", commands.Banner(opts.Version))
	}
	m.resetRecall()
	return m
}

// Init starts the cursor blink and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickClock())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		m.refresh(true)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case commands.ResultMsg:
		return m.handleResult(msg.Result)

	case ThemeChangedMsg:
		m.styles = styles.New(msg.State.Theme, m.profile)
		m.applyStyles()
		m.status.SetState(msg.State)
		m.refresh(false)
		return m, nil

	case clockMsg:
		m.status.SetTime(time.Time(msg))
		return m, nil

	case copiedMsg:
		text := "copied"
		if msg.err != nil {
			text = "copy failed: " + msg.err.Error()
		}
		return m.flash(text)

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.status.SetFlash("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	if cmd != nil {
		return m, cmd
	}
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyLast()
	}

	// A running command owns the prompt.
	if m.pending {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.Complete):
		m.complete(false)
		return m, nil

	case key.Matches(msg, m.keys.CompletePrev):
		m.complete(true)
		return m, nil

	case key.Matches(msg, m.keys.RecallPrev):
		m.recallStep(-1)
		return m, nil

	case key.Matches(msg, m.keys.RecallNext):
		m.recallStep(1)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.session.History.Clear()
		m.resetRecall()
		m.refresh(true)
		return m, nil

	case key.Matches(msg, m.keys.Dismiss):
		m.closePopup()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.closePopup()
		m.recallIdx = len(m.recall)
	}
	return m, cmd
}

// submit echoes the line and dispatches it off the event loop.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.closePopup()
	m.input.SetValue("")
	m.draft = ""
	m.pending = true

	label := commands.ExtractCommandName(line)
	cmds := []tea.Cmd{
		m.spinner.Start(label),
		m.session.Registry().DispatchAsync(m.ctx, m.session.Env, line),
	}
	m.refreshPending(line)
	return m, tea.Batch(cmds...)
}

func (m Model) handleResult(res commands.Result) (tea.Model, tea.Cmd) {
	m.pending = false
	m.spinner.Stop()
	m.resetRecall()
	m.refresh(true)

	if res.Quit() {
		m.quitting = true
		return m, tea.Quit
	}
	return m, textinput.Blink
}

// complete applies Tab completion to the input. An ambiguous prefix is
// extended to the candidates' common prefix; once it cannot grow, repeated
// presses cycle through the candidates.
func (m *Model) complete(reverse bool) {
	if m.popup.HasCompletions() {
		switch {
		case !m.cycling:
			m.cycling = true
		case reverse:
			m.popup.Prev()
		default:
			m.popup.Next()
		}
		if c := m.popup.SelectedCompletion(); c != nil {
			m.setInput(c.Value)
		}
		return
	}

	line := m.input.Value()
	comps := m.session.Registry().Completions(m.session.Env, line)
	switch len(comps) {
	case 0:
		return
	case 1:
		m.setInput(comps[0].Value)
		return
	}

	values := make([]string, len(comps))
	for i, c := range comps {
		values[i] = c.Value
	}
	if prefix := commands.CommonPrefix(values); len(prefix) > len(line) {
		m.setInput(prefix)
		return
	}

	// This press only lists; the next one starts cycling.
	m.popup.SetCompletions(comps)
	m.layout()
}

func (m *Model) closePopup() {
	m.cycling = false
	if m.popup.HasCompletions() {
		m.popup.Clear()
		m.layout()
	}
}

func (m *Model) setInput(v string) {
	m.input.SetValue(v)
	m.input.CursorEnd()
}

// =============================================================================
// RECALL
// =============================================================================

func (m *Model) resetRecall() {
	inputs := m.session.History.Inputs()
	if len(inputs) > m.maxRecall {
		inputs = inputs[len(inputs)-m.maxRecall:]
	}
	m.recall = inputs
	m.recallIdx = len(inputs)
}

func (m *Model) recallStep(delta int) {
	next := m.recallIdx + delta
	if next < 0 || next > len(m.recall) {
		return
	}
	if m.recallIdx == len(m.recall) {
		m.draft = m.input.Value()
	}
	m.recallIdx = next
	if next == len(m.recall) {
		m.setInput(m.draft)
	} else {
		m.setInput(m.recall[next])
	}
}

// =============================================================================
// CLIPBOARD AND FLASH
// =============================================================================

func (m Model) copyLast() tea.Cmd {
	last, ok := m.session.History.Last()
	if !ok {
		return nil
	}
	text := last.Output
	write := m.copy
	return func() tea.Msg {
		return copiedMsg{err: write(text)}
	}
}

func (m Model) flash(text string) (tea.Model, tea.Cmd) {
	m.flashSeq++
	m.status.SetFlash(text)
	return m, expireFlash(m.flashSeq)
}

// =============================================================================
// LAYOUT
// =============================================================================

// layout sizes the viewport to the space left by the prompt, popup and
// status bar.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	chrome := 1 // prompt line
	if m.showStatusBar {
		chrome++
	}
	if v := m.popup.View(); v != "" {
		chrome += countLines(v)
	}
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-chrome)
	m.status.SetWidth(m.width)
	m.popup.SetWidth(m.width)
	m.input.Width = max(1, m.width-len(m.promptText())-2)
}

func (m *Model) applyStyles() {
	m.input.TextStyle = m.styles.InputText
	m.input.PlaceholderStyle = m.styles.Placeholder
	m.input.Cursor.Style = m.styles.Cursor
	m.spinner.SetStyles(m.styles)
	m.status.SetStyles(m.styles)
	m.banner.SetStyles(m.styles)
	m.popup.SetStyles(m.styles)
}

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// Pending reports whether a command is running.
func (m Model) Pending() bool {
	return m.pending
}

// Input returns the current prompt contents.
func (m Model) Input() string {
	return m.input.Value()
}
