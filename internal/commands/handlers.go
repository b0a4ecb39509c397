// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the shell's command registry and dispatcher.
package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/termfolio/internal/content"
	"github.com/jeranaias/termfolio/internal/effects"
	"github.com/jeranaias/termfolio/internal/theme"
	"github.com/jeranaias/termfolio/internal/util"
)

// DateLayout is the format printed by `date`.
const DateLayout = "Mon Jan 2 15:04:05 MST 2006"

// =============================================================================
// SHELL HANDLERS
// =============================================================================

func (r *Registry) handleHelp(_ context.Context, _ *Context, _ []string) string {
	width := 0
	for _, cmd := range r.sorted {
		if w := util.StringWidth(cmd.Name); w > width {
			width = w
		}
	}

	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, cmd := range r.sorted {
		sb.WriteString("\n  ")
		sb.WriteString(util.PadRight(cmd.Name, width+2))
		sb.WriteString(cmd.Description)
	}
	return sb.String()
}

func handleBanner(_ context.Context, env *Context, _ []string) string {
	return Banner(env.Version)
}

func handleHostname(_ context.Context, env *Context, _ []string) string {
	return env.Hostname
}

func handleWhoami(_ context.Context, env *Context, _ []string) string {
	return env.User
}

func handleDate(_ context.Context, env *Context, _ []string) string {
	return env.Now().Format(DateLayout)
}

func handleEcho(_ context.Context, _ *Context, args []string) string {
	return strings.Join(args, " ")
}

func handleSudo(ctx context.Context, env *Context, args []string) string {
	env.Effects.Launch(ctx, effects.Action{Kind: effects.OpenURL, Target: env.Content.Profile.SudoURL})
	target := ""
	if len(args) > 0 {
		target = args[0]
	}
	return fmt.Sprintf("Permission denied: unable to run the command '%s' as root.", target)
}

func handleClear(_ context.Context, env *Context, _ []string) string {
	env.History.Clear()
	return ""
}

func handleHistory(_ context.Context, env *Context, _ []string) string {
	inputs := env.History.Inputs()
	if len(inputs) == 0 {
		return ""
	}
	width := len(fmt.Sprint(len(inputs)))
	lines := make([]string, len(inputs))
	for i, in := range inputs {
		lines[i] = fmt.Sprintf("%*d  %s", width+2, i+1, in)
	}
	return strings.Join(lines, "\n")
}

func handleExit(_ context.Context, _ *Context, _ []string) string {
	return "Please close the tab to exit."
}

// =============================================================================
// THEME HANDLERS
// =============================================================================

func handleLight(ctx context.Context, env *Context, _ []string) string {
	env.Theme.SetManual(ctx, theme.LightName)
	return "Theme set to light"
}

func handleDark(ctx context.Context, env *Context, _ []string) string {
	env.Theme.SetManual(ctx, theme.DarkName)
	return "Theme set to dark"
}

func handleAutoTheme(ctx context.Context, env *Context, _ []string) string {
	st := env.Theme.EnableAuto(ctx)
	return fmt.Sprintf("Theme set to auto (%s)", st.Theme.Name)
}

func handleTheme(ctx context.Context, env *Context, args []string) string {
	catalog := env.Theme.Catalog()

	if len(args) == 0 {
		st := env.Theme.State()
		lines := make([]string, 0, catalog.Len()+1)
		for _, name := range catalog.Names() {
			marker := "  "
			if name == st.Theme.Name {
				marker = "* "
			}
			lines = append(lines, marker+name)
		}
		lines = append(lines, "mode: "+st.Mode())
		return strings.Join(lines, "\n")
	}

	name := args[0]
	if _, err := catalog.Lookup(name); err != nil {
		if errors.Is(err, theme.ErrNotFound) {
			return fmt.Sprintf("theme: %s: not found", name)
		}
		return "theme: " + err.Error()
	}
	st := env.Theme.SetManual(ctx, name)
	return "Theme set to " + st.Theme.Name
}

// =============================================================================
// PORTFOLIO HANDLERS
// =============================================================================

func handleAbout(_ context.Context, env *Context, _ []string) string {
	return env.Renderer.Markdown(env.Content.Profile.About)
}

func handleExperience(_ context.Context, env *Context, _ []string) string {
	return content.FormatExperience(env.Content.Experience, env.Renderer)
}

func handleEducation(_ context.Context, env *Context, _ []string) string {
	return content.FormatEducation(env.Content.Education, env.Renderer)
}

func handleSkills(_ context.Context, env *Context, _ []string) string {
	return content.FormatSkills(env.Content.Skills, env.Renderer)
}

func handleContact(_ context.Context, env *Context, _ []string) string {
	return content.FormatContact(env.Content.Profile, env.Renderer)
}

func handleEmail(ctx context.Context, env *Context, _ []string) string {
	target := "mailto:" + env.Content.Profile.Email
	env.Effects.Launch(ctx, effects.Action{Kind: effects.Mail, Target: target})
	return "Opening " + target + "..."
}

func handleCV(ctx context.Context, env *Context, _ []string) string {
	env.Effects.Launch(ctx, effects.Action{Kind: effects.Download, Target: env.Content.Profile.CVURL})
	return "Opening CV..."
}

// =============================================================================
// FILE HANDLERS
// =============================================================================

func handleLs(_ context.Context, _ *Context, _ []string) string {
	return strings.Join(content.Listing, " ")
}

func handleCat(ctx context.Context, env *Context, args []string) string {
	if len(args) == 0 {
		return "cat: missing file operand"
	}

	name := args[0]
	switch name {
	case content.FileCV:
		return handleCV(ctx, env, nil)
	case content.FileReadme:
		return env.Renderer.Markdown(env.Content.Readme)
	}

	if !content.Listed(name) {
		return fmt.Sprintf("cat: %s: No such file or directory", name)
	}
	data, ok := env.Content.File(name)
	if !ok {
		return fmt.Sprintf("cat: %s: No such file or directory", name)
	}
	return env.Renderer.JSON(data)
}
