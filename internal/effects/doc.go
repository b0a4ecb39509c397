// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package effects performs the external actions some commands trigger:
// opening a URL, opening the mail client and downloading the CV.
//
// Launch is fire-and-forget. Failures are logged, never returned to the
// command, whose output does not depend on the action succeeding.
package effects
