// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strings"
	"testing"

	"github.com/jeranaias/termfolio/internal/theme"
)

// =============================================================================
// ANSI TESTS
// =============================================================================

func TestANSIHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"red", Colorize("x", Red), "\x1b[31mx\x1b[0m"},
		{"cyan", Colorize("x", Cyan), "\x1b[36mx\x1b[0m"},
		{"bold", Bold("x"), "\x1b[1mx\x1b[22m"},
		{"italic", Italic("x"), "\x1b[3mx\x1b[23m"},
		{"underline", Underline("x"), "\x1b[4mx\x1b[24m"},
		{"strikethrough", Strikethrough("x"), "\x1b[9mx\x1b[29m"},
		{"inverse", Inverse("x"), "\x1b[7mx\x1b[27m"},
		{"hyperlink", Hyperlink("https://a.b", "a"), "\x1b]8;;https://a.b\x1b\\a\x1b]8;;\x1b\\"},
		{"hyperlink default text", Hyperlink("https://a.b", ""), "\x1b]8;;https://a.b\x1b\\https://a.b\x1b]8;;\x1b\\"},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s = %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestStrip(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{Bold(Colorize("hi", Green)), "hi"},
		{Hyperlink("https://x.y", "link"), "link"},
		{"\x1b[38;5;197mkey\x1b[0m: 1", "key: 1"},
	}

	for _, tc := range tests {
		if got := Strip(tc.input); got != tc.want {
			t.Errorf("Strip(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

// =============================================================================
// PLAIN TESTS
// =============================================================================

func TestPlainJSON(t *testing.T) {
	got := Plain{}.JSON([]byte(`{"a":[1,2]}` + "\n"))
	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}"
	if got != want {
		t.Errorf("JSON() = %q, want %q", got, want)
	}

	if got := (Plain{}).JSON([]byte("not json\n")); got != "not json" {
		t.Errorf("JSON(invalid) = %q, want input unchanged", got)
	}
}

func TestPlainMarkdown(t *testing.T) {
	if got := (Plain{}).Markdown("# Title\n\n"); got != "# Title" {
		t.Errorf("Markdown() = %q", got)
	}
}

// =============================================================================
// TERMINAL TESTS
// =============================================================================

func TestTerminalFollowsTheme(t *testing.T) {
	catalog := theme.Builtin()
	active := catalog.Resolve(theme.DarkName)
	r := NewTerminal(func() theme.Theme { return active }, 60)

	if r.markdownStyle() != "dark" || r.codeStyle() != "monokai" {
		t.Errorf("dark theme styles = %s/%s", r.markdownStyle(), r.codeStyle())
	}

	active = catalog.Resolve(theme.LightName)
	if r.markdownStyle() != "light" || r.codeStyle() != "github" {
		t.Errorf("light theme styles = %s/%s", r.markdownStyle(), r.codeStyle())
	}
}

func TestTerminalMarkdownKeepsText(t *testing.T) {
	r := NewTerminal(nil, 0)

	out := Strip(r.Markdown("# Hello\n\nSome **bold** words."))
	for _, want := range []string{"Hello", "bold", "words"} {
		if !strings.Contains(out, want) {
			t.Errorf("Markdown() output %q is missing %q", out, want)
		}
	}
}

func TestTerminalJSONKeepsText(t *testing.T) {
	r := NewTerminal(nil, 0)

	out := Strip(r.JSON([]byte(`{"name":"dark"}`)))
	if !strings.Contains(out, `"name": "dark"`) {
		t.Errorf("JSON() output %q is not indented JSON", out)
	}
}

func TestHighlightUnknownStyle(t *testing.T) {
	out := Strip(Highlight(`{"a":1}`, "json", "no-such-style"))
	if out != `{"a":1}` {
		t.Errorf("Highlight() = %q", out)
	}
}
