// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build darwin
// +build darwin

// Package appearance reports the operating system's light/dark preference.
package appearance

import (
	"context"
	"os/exec"
	"strings"
)

// queryDesktop reads AppleInterfaceStyle. The key only exists in dark mode,
// so a failed read with a clean exit status means light.
func queryDesktop(ctx context.Context) (bool, bool) {
	out, err := exec.CommandContext(ctx, "defaults", "read", "-g", "AppleInterfaceStyle").Output()
	if err != nil {
		if _, isExit := err.(*exec.ExitError); isExit {
			return false, true
		}
		return false, false
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "dark"), true
}
