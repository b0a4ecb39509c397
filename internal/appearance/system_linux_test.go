// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build linux
// +build linux

package appearance

import "testing"

func TestParseGSettings(t *testing.T) {
	tests := []struct {
		input  string
		dark   bool
		wantOK bool
	}{
		{"'prefer-dark'\n", true, true},
		{"'prefer-light'\n", false, true},
		{"'default'", false, true},
		{"", false, false},
		{"No such key", false, false},
	}

	for _, tc := range tests {
		dark, ok := parseGSettings(tc.input)
		if dark != tc.dark || ok != tc.wantOK {
			t.Errorf("parseGSettings(%q) = (%v, %v), want (%v, %v)", tc.input, dark, ok, tc.dark, tc.wantOK)
		}
	}
}
