// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package terminal provides the full-screen shell of termfolio.

The Model is a bubbletea program composed of a viewport holding the
scrollback, a textinput prompt and a status bar. Lines are dispatched off the
event loop with Registry.DispatchAsync; the prompt shows a spinner until the
ResultMsg arrives.

# Keys

	Enter        run the line
	Tab          complete (cycles when ambiguous)
	Up/Down      recall previous input
	PgUp/PgDn    scroll the scrollback
	Ctrl+L       clear the scrollback
	Ctrl+Y       copy the last output to the clipboard
	Ctrl+C       quit

# Theme Changes

Run subscribes to the session's theme store and forwards every change as a
ThemeChangedMsg, so an OS appearance flip restyles the screen while it is
idle.
*/
package terminal
