// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/samber/lo"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Handler runs a command. It never fails: problems are reported in the
// returned text.
type Handler func(ctx context.Context, env *Context, args []string) string

// Command is one entry in the registry.
type Command struct {
	// ID is the command's identifier.
	ID ID

	// Name is what the user types (ID.String()).
	Name string

	// Description is shown by help and completion.
	Description string

	// Usage shows argument syntax (e.g., "cat <file>").
	Usage string

	// Handler produces the command's output.
	Handler Handler
}

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry maps names to commands. It is immutable after NewRegistry.
type Registry struct {
	byID   [idCount]*Command
	byName map[string]*Command
	sorted []*Command
}

// NewRegistry builds the registry from the closed set of IDs. It panics if
// an ID has no command or two commands share an ID.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Command, idCount)}

	for _, cmd := range r.builtins() {
		if !cmd.ID.Valid() {
			panic(fmt.Sprintf("commands: invalid id %d", cmd.ID))
		}
		if r.byID[cmd.ID] != nil {
			panic(fmt.Sprintf("commands: duplicate command %s", cmd.ID))
		}
		cmd.Name = cmd.ID.String()
		r.byID[cmd.ID] = cmd
		r.byName[cmd.Name] = cmd
	}

	for _, id := range AllIDs() {
		if r.byID[id] == nil {
			panic(fmt.Sprintf("commands: no handler for %s", id))
		}
	}

	r.sorted = lo.Values(r.byName)
	sort.Slice(r.sorted, func(i, j int) bool { return r.sorted[i].Name < r.sorted[j].Name })
	return r
}

// Get returns the command with exactly this name, or nil.
func (r *Registry) Get(name string) *Command {
	return r.byName[name]
}

// ByID returns the command for id, or nil for IDNone.
func (r *Registry) ByID(id ID) *Command {
	if !id.Valid() {
		return nil
	}
	return r.byID[id]
}

// All returns every command sorted by name.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Names returns every command name, sorted.
func (r *Registry) Names() []string {
	return lo.Map(r.sorted, func(c *Command, _ int) string { return c.Name })
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) builtins() []*Command {
	return []*Command{
		// Portfolio
		{ID: IDAbout, Description: "About me", Handler: handleAbout},
		{ID: IDExperience, Description: "Work experience", Handler: handleExperience},
		{ID: IDEducation, Description: "Education", Handler: handleEducation},
		{ID: IDSkills, Description: "Skills by category", Handler: handleSkills},
		{ID: IDContact, Description: "Contact details and links", Handler: handleContact},
		{ID: IDEmail, Description: "Send me an email", Handler: handleEmail},
		{ID: IDCv, Description: "Download my CV", Handler: handleCV},

		// Shell
		{ID: IDHelp, Description: "List available commands", Handler: r.handleHelp},
		{ID: IDBanner, Description: "Show the welcome banner", Handler: handleBanner},
		{ID: IDHostname, Description: "Print the host name", Handler: handleHostname},
		{ID: IDWhoami, Description: "Print the current user", Handler: handleWhoami},
		{ID: IDDate, Description: "Print the current date and time", Handler: handleDate},
		{ID: IDEcho, Description: "Print the arguments", Usage: "echo [text...]", Handler: handleEcho},
		{ID: IDSudo, Description: "Run a command as root", Usage: "sudo <command>", Handler: handleSudo},
		{ID: IDClear, Description: "Clear the terminal", Handler: handleClear},
		{ID: IDHistory, Description: "List previous commands", Handler: handleHistory},
		{ID: IDExit, Description: "Exit the shell", Handler: handleExit},

		// Theme
		{ID: IDLight, Description: "Switch to the light theme", Handler: handleLight},
		{ID: IDDark, Description: "Switch to the dark theme", Handler: handleDark},
		{ID: IDAutoTheme, Description: "Follow the system light/dark preference", Handler: handleAutoTheme},
		{ID: IDTheme, Description: "List themes or switch theme", Usage: "theme [name]", Handler: handleTheme},

		// Files
		{ID: IDLs, Description: "List files", Handler: handleLs},
		{ID: IDCat, Description: "Print a file", Usage: "cat <file>", Handler: handleCat},
	}
}
