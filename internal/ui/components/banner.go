// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces of the termfolio TUI.
package components

import (
	"strings"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// BANNER COMPONENT
// =============================================================================

// Banner renders the welcome art with the art and hint styled separately.
type Banner struct {
	version string
	styles  *styles.Styles
}

// NewBanner creates a banner for version.
func NewBanner(version string, s *styles.Styles) *Banner {
	return &Banner{version: version, styles: s}
}

// SetStyles swaps the styles after a theme change.
func (b *Banner) SetStyles(s *styles.Styles) { b.styles = s }

// View renders the banner.
func (b *Banner) View() string {
	return b.Style(commands.Banner(b.version))
}

// Style colors text produced by the banner command. Text without the
// trailing hint is returned unchanged.
func (b *Banner) Style(text string) string {
	art, ok := strings.CutSuffix(text, "\n\n"+commands.BannerHint)
	if !ok {
		return text
	}
	lines := strings.Split(art, "\n")
	for i, l := range lines {
		lines[i] = b.styles.BannerArt.Render(l)
	}
	return strings.Join(lines, "\n") + "\n\n" + b.styles.BannerHint.Render(commands.BannerHint)
}
