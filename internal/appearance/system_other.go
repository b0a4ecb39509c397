// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !darwin && !linux
// +build !darwin,!linux

// Package appearance reports the operating system's light/dark preference.
package appearance

import "context"

// queryDesktop has no desktop query on this platform; the terminal
// background is used instead.
func queryDesktop(context.Context) (bool, bool) {
	return false, false
}
