// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package theme provides the color theme catalog and the theme store.
package theme

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Well-known theme names used by auto mode and the light/dark commands.
const (
	DarkName  = "dark"
	LightName = "light"
)

// ErrNotFound is returned when a theme name is not in the catalog.
var ErrNotFound = errors.New("theme not found")

//go:embed themes.json
var builtinJSON []byte

// =============================================================================
// THEME
// =============================================================================

// Theme is a named terminal palette. Colors are #rrggbb strings.
type Theme struct {
	Name         string `json:"name" toml:"name"`
	Black        string `json:"black" toml:"black"`
	Red          string `json:"red" toml:"red"`
	Green        string `json:"green" toml:"green"`
	Yellow       string `json:"yellow" toml:"yellow"`
	Blue         string `json:"blue" toml:"blue"`
	Purple       string `json:"purple" toml:"purple"`
	Cyan         string `json:"cyan" toml:"cyan"`
	White        string `json:"white" toml:"white"`
	BrightBlack  string `json:"brightBlack" toml:"bright_black"`
	BrightRed    string `json:"brightRed" toml:"bright_red"`
	BrightGreen  string `json:"brightGreen" toml:"bright_green"`
	BrightYellow string `json:"brightYellow" toml:"bright_yellow"`
	BrightBlue   string `json:"brightBlue" toml:"bright_blue"`
	BrightPurple string `json:"brightPurple" toml:"bright_purple"`
	BrightCyan   string `json:"brightCyan" toml:"bright_cyan"`
	BrightWhite  string `json:"brightWhite" toml:"bright_white"`
	Foreground   string `json:"foreground" toml:"foreground"`
	Background   string `json:"background" toml:"background"`
	CursorColor  string `json:"cursorColor" toml:"cursor_color"`
}

// IsDark reports whether the background is dark (relative luminance below
// one half). Unparseable backgrounds count as dark.
func (t Theme) IsDark() bool {
	r, g, b, err := parseHex(t.Background)
	if err != nil {
		return true
	}
	lum := 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
	return lum < 128
}

// Validate checks that the theme has a name and that every color it sets is
// a #rrggbb value.
func (t Theme) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("theme has no name")
	}
	for field, value := range t.colors() {
		if value == "" {
			continue
		}
		if _, _, _, err := parseHex(value); err != nil {
			return fmt.Errorf("theme %s: %s: %w", t.Name, field, err)
		}
	}
	return nil
}

func (t Theme) colors() map[string]string {
	return map[string]string{
		"black": t.Black, "red": t.Red, "green": t.Green, "yellow": t.Yellow,
		"blue": t.Blue, "purple": t.Purple, "cyan": t.Cyan, "white": t.White,
		"bright_black": t.BrightBlack, "bright_red": t.BrightRed,
		"bright_green": t.BrightGreen, "bright_yellow": t.BrightYellow,
		"bright_blue": t.BrightBlue, "bright_purple": t.BrightPurple,
		"bright_cyan": t.BrightCyan, "bright_white": t.BrightWhite,
		"foreground": t.Foreground, "background": t.Background,
		"cursor_color": t.CursorColor,
	}
}

func parseHex(s string) (r, g, b uint8, err error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q, must be #RRGGBB", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog is an ordered, non-empty list of themes with unique names.
type Catalog struct {
	themes []Theme
}

// NewCatalog builds a catalog. Later themes replace earlier ones with the
// same name, keeping the earlier position.
func NewCatalog(themes ...Theme) (*Catalog, error) {
	c := &Catalog{}
	for _, t := range themes {
		if err := t.Validate(); err != nil {
			return nil, err
		}
		c.put(t)
	}
	if len(c.themes) == 0 {
		return nil, errors.New("theme catalog is empty")
	}
	return c, nil
}

// Builtin returns the embedded catalog.
func Builtin() *Catalog {
	var themes []Theme
	if err := json.Unmarshal(builtinJSON, &themes); err != nil {
		panic(fmt.Sprintf("theme: embedded themes.json is invalid: %v", err))
	}
	c, err := NewCatalog(themes...)
	if err != nil {
		panic(fmt.Sprintf("theme: embedded themes.json is invalid: %v", err))
	}
	return c
}

// With returns a copy of c extended by themes.
func (c *Catalog) With(themes ...Theme) (*Catalog, error) {
	return NewCatalog(append(c.All(), themes...)...)
}

func (c *Catalog) put(t Theme) {
	if _, i, ok := lo.FindIndexOf(c.themes, func(x Theme) bool { return x.Name == t.Name }); ok {
		c.themes[i] = t
		return
	}
	c.themes = append(c.themes, t)
}

// Find returns the theme with the given name (exact match).
func (c *Catalog) Find(name string) (Theme, bool) {
	return lo.Find(c.themes, func(t Theme) bool { return t.Name == name })
}

// Lookup returns the named theme or an error wrapping ErrNotFound.
func (c *Catalog) Lookup(name string) (Theme, error) {
	t, ok := c.Find(name)
	if !ok {
		return Theme{}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return t, nil
}

// Resolve returns the named theme, or the first catalog entry when the name
// is unknown.
func (c *Catalog) Resolve(name string) Theme {
	if t, ok := c.Find(name); ok {
		return t
	}
	return c.themes[0]
}

// First returns the first catalog entry.
func (c *Catalog) First() Theme {
	return c.themes[0]
}

// All returns a copy of the catalog in order.
func (c *Catalog) All() []Theme {
	out := make([]Theme, len(c.themes))
	copy(out, c.themes)
	return out
}

// Names returns theme names in catalog order.
func (c *Catalog) Names() []string {
	return lo.Map(c.themes, func(t Theme, _ int) string { return t.Name })
}

// Len returns the number of themes.
func (c *Catalog) Len() int {
	return len(c.themes)
}
