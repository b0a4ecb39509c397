// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history keeps the in-memory scrollback of executed commands.
package history

import (
	"time"

	"github.com/google/uuid"

	"github.com/jeranaias/termfolio/internal/util"
)

// Entry is one executed command line and its output.
type Entry struct {
	ID     uuid.UUID `json:"id"`
	Input  string    `json:"input"`
	Output string    `json:"output"`
	At     time.Time `json:"at"`

	// Unknown marks a line whose command name was not recognized.
	Unknown bool `json:"unknown,omitempty"`
}

// History is an append-only sequence of entries.
type History struct {
	entries *util.Observable[[]Entry]
	now     func() time.Time
}

// New returns an empty history.
func New() *History {
	return &History{
		entries: util.NewObservable[[]Entry](nil),
		now:     time.Now,
	}
}

// Append records input and output and returns the new entry.
func (h *History) Append(input, output string) Entry {
	return h.Record(Entry{Input: input, Output: output})
}

// Record appends e with a fresh ID and timestamp and returns it.
func (h *History) Record(e Entry) Entry {
	e.ID = uuid.New()
	e.At = h.now()
	h.entries.Update(func(cur []Entry) []Entry {
		next := make([]Entry, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, e)
	})
	return e
}

// Entries returns a copy of all entries in order.
func (h *History) Entries() []Entry {
	cur := h.entries.Get()
	out := make([]Entry, len(cur))
	copy(out, cur)
	return out
}

// Inputs returns the input of every entry in order.
func (h *History) Inputs() []string {
	cur := h.entries.Get()
	out := make([]string, len(cur))
	for i, e := range cur {
		out[i] = e.Input
	}
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries.Get())
}

// Last returns the most recent entry.
func (h *History) Last() (Entry, bool) {
	cur := h.entries.Get()
	if len(cur) == 0 {
		return Entry{}, false
	}
	return cur[len(cur)-1], true
}

// Clear removes every entry.
func (h *History) Clear() {
	h.entries.Set(nil)
}

// Subscribe registers fn for every change. fn receives the full sequence,
// which it must not modify.
func (h *History) Subscribe(fn func([]Entry)) (cancel func()) {
	return h.entries.Subscribe(fn)
}
