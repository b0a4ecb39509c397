// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable UI pieces of the termfolio TUI.
package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/commands"
	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// COMPLETION POPUP COMPONENT
// =============================================================================

// CompletionPopup lists candidates when Tab cannot complete uniquely.
type CompletionPopup struct {
	completions []commands.Completion
	selected    int
	maxVisible  int
	width       int
	styles      *styles.Styles
}

// NewCompletionPopup creates a new completion popup.
func NewCompletionPopup(s *styles.Styles) *CompletionPopup {
	return &CompletionPopup{
		maxVisible: 8,
		width:      50,
		styles:     s,
	}
}

// SetStyles swaps the styles after a theme change.
func (c *CompletionPopup) SetStyles(s *styles.Styles) { c.styles = s }

// SetCompletions sets the completions to display and resets the selection.
func (c *CompletionPopup) SetCompletions(completions []commands.Completion) {
	c.completions = completions
	c.selected = 0
}

// Completions returns the current completions.
func (c *CompletionPopup) Completions() []commands.Completion {
	return c.completions
}

// Selected returns the selected index.
func (c *CompletionPopup) Selected() int {
	return c.selected
}

// Next selects the next completion.
func (c *CompletionPopup) Next() {
	if len(c.completions) == 0 {
		return
	}
	c.selected = (c.selected + 1) % len(c.completions)
}

// Prev selects the previous completion.
func (c *CompletionPopup) Prev() {
	if len(c.completions) == 0 {
		return
	}
	c.selected--
	if c.selected < 0 {
		c.selected = len(c.completions) - 1
	}
}

// SelectedCompletion returns the currently selected completion, or nil.
func (c *CompletionPopup) SelectedCompletion() *commands.Completion {
	if c.selected < 0 || c.selected >= len(c.completions) {
		return nil
	}
	return &c.completions[c.selected]
}

// HasCompletions returns true if there are completions to show.
func (c *CompletionPopup) HasCompletions() bool {
	return len(c.completions) > 0
}

// Clear clears all completions.
func (c *CompletionPopup) Clear() {
	c.completions = nil
	c.selected = 0
}

// SetWidth sets the popup width.
func (c *CompletionPopup) SetWidth(width int) {
	c.width = width
}

// SetMaxVisible sets the maximum number of visible completions.
func (c *CompletionPopup) SetMaxVisible(n int) {
	if n > 0 {
		c.maxVisible = n
	}
}

// View renders the completion popup.
func (c *CompletionPopup) View() string {
	if len(c.completions) == 0 {
		return ""
	}

	// Scrolling window centered on the selection
	start, end := 0, len(c.completions)
	if len(c.completions) > c.maxVisible {
		start = max(0, c.selected-c.maxVisible/2)
		end = start + c.maxVisible
		if end > len(c.completions) {
			end = len(c.completions)
			start = max(0, end-c.maxVisible)
		}
	}

	items := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		items = append(items, c.renderItem(c.completions[i], i == c.selected))
	}
	if hidden := len(c.completions) - (end - start); hidden > 0 {
		items = append(items, c.styles.Muted.Render("  ..."+strconv.Itoa(hidden)+" more"))
	}
	return strings.Join(items, "\n")
}

// renderItem renders a single completion row.
func (c *CompletionPopup) renderItem(comp commands.Completion, isSelected bool) string {
	const valueWidth = 16

	value := comp.Display
	if value == "" {
		value = comp.Value
	}
	value = util.TruncateWidth(value, valueWidth)

	descWidth := max(0, c.width-valueWidth-4)
	desc := util.TruncateWidth(comp.Description, descWidth)

	itemStyle := c.styles.CompletionItem
	indicator := " "
	if isSelected {
		itemStyle = c.styles.CompletionSelected
		indicator = ">"
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		c.styles.Accent.Render(indicator),
		itemStyle.Width(valueWidth+2).Render(value),
		" ",
		c.styles.CompletionDesc.Render(desc),
	)
}

// ViewCompact renders a single-line summary of the candidates.
func (c *CompletionPopup) ViewCompact() string {
	switch len(c.completions) {
	case 0:
		return ""
	case 1:
		return c.styles.Placeholder.Render("Tab: complete \"" + c.completions[0].Display + "\"")
	default:
		return c.styles.Placeholder.Render("Tab: " + strconv.Itoa(len(c.completions)) + " completions")
	}
}
