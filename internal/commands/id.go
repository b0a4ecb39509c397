// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

// ID identifies a command. The zero value is IDNone, used for empty input
// and unknown commands.
type ID int

const (
	IDNone ID = iota
	IDAbout
	IDAutoTheme
	IDBanner
	IDCat
	IDClear
	IDContact
	IDCv
	IDDark
	IDDate
	IDEcho
	IDEducation
	IDEmail
	IDExit
	IDExperience
	IDHelp
	IDHistory
	IDHostname
	IDLight
	IDLs
	IDSkills
	IDSudo
	IDTheme
	IDWhoami

	idCount
)

var idNames = [idCount]string{
	IDNone:       "",
	IDAbout:      "about",
	IDAutoTheme:  "auto-theme",
	IDBanner:     "banner",
	IDCat:        "cat",
	IDClear:      "clear",
	IDContact:    "contact",
	IDCv:         "cv",
	IDDark:       "dark",
	IDDate:       "date",
	IDEcho:       "echo",
	IDEducation:  "education",
	IDEmail:      "email",
	IDExit:       "exit",
	IDExperience: "experience",
	IDHelp:       "help",
	IDHistory:    "history",
	IDHostname:   "hostname",
	IDLight:      "light",
	IDLs:         "ls",
	IDSkills:     "skills",
	IDSudo:       "sudo",
	IDTheme:      "theme",
	IDWhoami:     "whoami",
}

// String returns the command name.
func (id ID) String() string {
	if id < 0 || id >= idCount {
		return ""
	}
	return idNames[id]
}

// Valid reports whether id names a command.
func (id ID) Valid() bool {
	return id > IDNone && id < idCount
}

// AllIDs returns every command ID in declaration order.
func AllIDs() []ID {
	ids := make([]ID, 0, idCount-1)
	for id := IDNone + 1; id < idCount; id++ {
		ids = append(ids, id)
	}
	return ids
}
