// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI pieces of the termfolio TUI.

Each component is a small value with setters and a View method. Components
never own application state: the terminal model pushes the current theme,
mode and completions into them before rendering.

# Components

StatusBar (statusbar.go) - Bottom bar with theme name, auto/manual mode,
clock and key hints.

Banner (banner.go) - Welcome art shown at startup and by the banner command.

CompletionPopup (completion.go) - Candidate list shown when Tab is ambiguous.

Spinner (spinner.go) - Indicator shown while a command is pending.

All components render through a *styles.Styles, so a theme change is a
matter of calling SetStyles on each one.
*/
package components
