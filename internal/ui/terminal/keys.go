// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the full-screen shell of termfolio.
package terminal

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines the keyboard bindings of the shell.
type KeyMap struct {
	Submit       key.Binding
	Complete     key.Binding
	CompletePrev key.Binding
	RecallPrev   key.Binding
	RecallNext   key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Clear        key.Binding
	Copy         key.Binding
	Dismiss      key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "run"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete"),
		),
		CompletePrev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous candidate"),
		),
		RecallPrev: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("Up", "previous input"),
		),
		RecallNext: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("Down", "next input"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("C-l", "clear"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy last output"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "dismiss completions"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("C-c", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in compact help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.RecallPrev, k.Copy, k.Quit}
}
