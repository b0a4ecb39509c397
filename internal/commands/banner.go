// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import "strings"

// bannerArt is drawn in the "ANSI Shadow" figlet font.
var bannerArt = []string{
	"██████╗  ██████╗ ██████╗ ████████╗███████╗ ██████╗ ██╗     ██╗ ██████╗ ",
	"██╔══██╗██╔═══██╗██╔══██╗╚══██╔══╝██╔════╝██╔═══██╗██║     ██║██╔═══██╗",
	"██████╔╝██║   ██║██████╔╝   ██║   █████╗  ██║   ██║██║     ██║██║   ██║",
	"██╔═══╝ ██║   ██║██╔══██╗   ██║   ██╔══╝  ██║   ██║██║     ██║██║   ██║",
	"██║     ╚██████╔╝██║  ██║   ██║   ██║     ╚██████╔╝███████╗██║╚██████╔╝",
	"╚═╝      ╚═════╝ ╚═╝  ╚═╝   ╚═╝   ╚═╝      ╚═════╝ ╚══════╝╚═╝ ╚═════╝ ",
}

// BannerHint is the last line of the banner.
const BannerHint = "Type 'help' to see list of available commands."

// Banner returns the welcome banner for version.
func Banner(version string) string {
	lines := make([]string, len(bannerArt))
	copy(lines, bannerArt)
	lines[len(lines)-1] += "v" + version
	return strings.Join(lines, "\n") + "\n\n" + BannerHint
}
