// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the full-screen shell of termfolio.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/history"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the scrollback, the optional completion list, the prompt and
// the status bar, top to bottom.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	parts := []string{m.viewport.View()}
	if popup := m.popup.View(); popup != "" {
		parts = append(parts, popup)
	}
	parts = append(parts, m.promptView())
	if m.showStatusBar {
		parts = append(parts, m.status.View())
	}
	return strings.Join(parts, "\n")
}

func (m Model) promptView() string {
	if m.pending {
		return m.spinner.View()
	}
	return m.styledPrompt() + " " + m.input.View()
}

func (m Model) styledPrompt() string {
	return m.styles.Prompt(m.session.Env.User, m.session.Env.Hostname)
}

func (m Model) promptText() string {
	return m.session.Env.Prompt()
}

// =============================================================================
// SCROLLBACK
// =============================================================================

// refresh rebuilds the scrollback from the history.
func (m *Model) refresh(gotoBottom bool) {
	m.setScrollback(m.scrollback(), gotoBottom)
}

// refreshPending shows line echoed below the history while it runs.
func (m *Model) refreshPending(line string) {
	sb := m.scrollback()
	if sb != "" {
		sb += "\n"
	}
	m.setScrollback(sb+m.echo(line), true)
}

func (m *Model) setScrollback(content string, gotoBottom bool) {
	m.viewport.SetContent(content)
	if gotoBottom {
		m.viewport.GotoBottom()
	}
}

func (m *Model) scrollback() string {
	entries := m.session.History.Entries()
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, m.renderEntry(e))
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderEntry(e history.Entry) string {
	out := m.echo(e.Input)
	if e.Output != "" {
		out += "\n" + m.renderOutput(e.Output, e.Unknown)
	}
	return out
}

func (m *Model) echo(line string) string {
	return m.styledPrompt() + " " + m.styles.InputText.Render(line)
}

// renderOutput styles one command output. Text that already carries escape
// sequences was styled by the renderer and is kept verbatim.
func (m *Model) renderOutput(out string, unknown bool) string {
	if styled := m.banner.Style(out); styled != out {
		return styled
	}
	if strings.Contains(out, "\x1b[") {
		return out
	}

	style := m.styles.Output
	if unknown {
		style = m.styles.NotFound
	}
	return renderLines(style, util.WrapLines(out, m.viewport.Width))
}

// renderLines styles each line separately so lipgloss does not pad short
// lines to the block width.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func countLines(s string) int {
	return strings.Count(s, "\n") + 1
}
