// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestComplete(t *testing.T) {
	te := newTestEnv(t)

	tests := []struct {
		input string
		want  []string
	}{
		{"ab", []string{"about"}},
		{"e", []string{"echo", "education", "email", "exit", "experience"}},
		{"  hist", []string{"history"}},
		{"Help", nil},
		{"zzz", nil},
		{"cat ", []string{"cat README.md", "cat cv.pdf", "cat education.json", "cat experience.json", "cat skills.json"}},
		{"cat e", []string{"cat education.json", "cat experience.json"}},
		{"cat README.md ", nil},
		{"theme li", []string{"theme light"}},
		{"echo ", nil},
		{"nope ", nil},
	}

	for _, tc := range tests {
		got := te.reg.Complete(te.env, tc.input)
		if strings.Join(got, ",") != strings.Join(tc.want, ",") {
			t.Errorf("Complete(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestCompleteEmptyListsAll(t *testing.T) {
	te := newTestEnv(t)

	got := te.reg.Complete(te.env, "")
	if len(got) != len(AllIDs()) {
		t.Errorf("Complete(\"\") returned %d candidates, want %d", len(got), len(AllIDs()))
	}
}

func TestCompletionsCarryDescriptions(t *testing.T) {
	te := newTestEnv(t)

	comps := te.reg.Completions(te.env, "sk")
	if len(comps) != 1 || comps[0].Description == "" {
		t.Errorf("Completions(sk) = %+v", comps)
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		values []string
		want   string
	}{
		{nil, ""},
		{[]string{"about"}, "about"},
		{[]string{"education", "email"}, "e"},
		{[]string{"cat education.json", "cat experience.json"}, "cat e"},
		{[]string{"dark", "date"}, "da"},
		{[]string{"a", "b"}, ""},
		{[]string{"café", "cafè"}, "caf"},
		{[]string{"naïve", "naïf"}, "naï"},
		{[]string{"日本語", "日本人"}, "日本"},
		{[]string{"é", "è"}, ""},
	}

	for _, tc := range tests {
		got := CommonPrefix(tc.values)
		if got != tc.want {
			t.Errorf("CommonPrefix(%v) = %q, want %q", tc.values, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("CommonPrefix(%v) = %q is not valid UTF-8", tc.values, got)
		}
	}
}
