// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns command output into terminal text.
//
// Terminal renders markdown with glamour and JSON with chroma, choosing the
// dark or light variants from the active theme. Plain returns text as-is and
// is used for piped output, the HTTP server and tests.
//
// The ANSI helpers (Colorize, Bold, Hyperlink...) write raw escape
// sequences and do not consult the terminal's color profile.
package render
