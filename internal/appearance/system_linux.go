// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build linux
// +build linux

// Package appearance reports the operating system's light/dark preference.
package appearance

import (
	"context"
	"os/exec"
	"strings"
)

// queryDesktop asks GNOME (and desktops that honor its settings) for the
// color-scheme key: 'prefer-dark', 'prefer-light' or 'default'.
func queryDesktop(ctx context.Context) (bool, bool) {
	if _, err := exec.LookPath("gsettings"); err != nil {
		return false, false
	}
	out, err := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme").Output()
	if err != nil {
		return false, false
	}
	return parseGSettings(string(out))
}

func parseGSettings(out string) (bool, bool) {
	switch strings.Trim(strings.TrimSpace(out), "'") {
	case "prefer-dark":
		return true, true
	case "prefer-light", "default":
		return false, true
	default:
		return false, false
	}
}
