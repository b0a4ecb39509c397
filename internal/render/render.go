// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns command output into terminal text.
package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromaStyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/theme"
)

// Renderer formats command output.
type Renderer interface {
	// Markdown renders markdown source.
	Markdown(src string) string

	// JSON pretty-prints and highlights a JSON document. Invalid JSON is
	// returned unchanged.
	JSON(src []byte) string

	// Heading, Muted and Link style short spans of text.
	Heading(s string) string
	Muted(s string) string
	Link(url, text string) string
}

// DefaultWordWrap is the markdown wrap width when none is configured.
const DefaultWordWrap = 80

// =============================================================================
// PLAIN
// =============================================================================

// Plain renders without escape sequences.
type Plain struct{}

// Markdown returns src trimmed of trailing whitespace.
func (Plain) Markdown(src string) string { return strings.TrimRight(src, "\n ") }

// JSON returns src indented with two spaces.
func (Plain) JSON(src []byte) string { return indentJSON(src) }

func (Plain) Heading(s string) string { return s }
func (Plain) Muted(s string) string { return s }
func (Plain) Link(_, text string) string { return text }

// =============================================================================
// TERMINAL
// =============================================================================

// Terminal renders with glamour and chroma, following the active theme.
type Terminal struct {
	current func() theme.Theme
	width   int

	mu       sync.Mutex
	glamours map[string]*glamour.TermRenderer
}

// NewTerminal returns a renderer that asks current for the active theme on
// every call. width is the markdown wrap width.
func NewTerminal(current func() theme.Theme, width int) *Terminal {
	if width <= 0 {
		width = DefaultWordWrap
	}
	return &Terminal{
		current:  current,
		width:    width,
		glamours: make(map[string]*glamour.TermRenderer),
	}
}

func (r *Terminal) dark() bool {
	if r.current == nil {
		return true
	}
	return r.current().IsDark()
}

// markdownStyle names the glamour standard style for the active theme.
func (r *Terminal) markdownStyle() string {
	if r.dark() {
		return "dark"
	}
	return "light"
}

// codeStyle names the chroma style for the active theme.
func (r *Terminal) codeStyle() string {
	if r.dark() {
		return "monokai"
	}
	return "github"
}

// Markdown implements Renderer. It falls back to plain text if glamour fails.
func (r *Terminal) Markdown(src string) string {
	style := r.markdownStyle()

	// TermRenderer reuses an internal buffer, so renders are serialized.
	r.mu.Lock()
	defer r.mu.Unlock()

	tr, err := r.glamour(style)
	if err != nil {
		return Plain{}.Markdown(src)
	}
	out, err := tr.Render(src)
	if err != nil {
		return Plain{}.Markdown(src)
	}
	return strings.TrimRight(out, "\n ")
}

// glamour must be called with mu held.
func (r *Terminal) glamour(style string) (*glamour.TermRenderer, error) {
	if tr, ok := r.glamours[style]; ok {
		return tr, nil
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(r.width),
	)
	if err != nil {
		return nil, err
	}
	r.glamours[style] = tr
	return tr, nil
}

// JSON implements Renderer.
func (r *Terminal) JSON(src []byte) string {
	return Highlight(indentJSON(src), "json", r.codeStyle())
}

// Heading implements Renderer.
func (r *Terminal) Heading(s string) string {
	style := lipgloss.NewStyle().Bold(true)
	if r.current != nil {
		style = style.Foreground(lipgloss.Color(r.current().Blue))
	}
	return style.Render(s)
}

// Muted implements Renderer.
func (r *Terminal) Muted(s string) string {
	style := lipgloss.NewStyle().Faint(true)
	if r.current != nil {
		style = style.Foreground(lipgloss.Color(r.current().BrightBlack))
	}
	return style.Render(s)
}

// Link implements Renderer.
func (r *Terminal) Link(url, text string) string {
	return Hyperlink(url, text)
}

// =============================================================================
// HIGHLIGHTING
// =============================================================================

// Highlight applies chroma syntax highlighting for language using the named
// style. The input is returned unchanged when highlighting fails.
func Highlight(code, language, style string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	s := chromaStyles.Get(style)
	if s == nil {
		s = chromaStyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf strings.Builder
	if err := formatter.Format(&buf, s, iterator); err != nil {
		return code
	}
	return buf.String()
}

func indentJSON(src []byte) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(src), "", "  "); err != nil {
		return strings.TrimRight(string(src), "\n ")
	}
	return buf.String()
}
