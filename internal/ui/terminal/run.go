// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package terminal provides the full-screen shell of termfolio.
package terminal

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/theme"
)

// Run starts the full-screen shell for session and blocks until it exits
// or ctx is cancelled.
func Run(ctx context.Context, session *app.Session, opts Options) error {
	if opts.Context == nil {
		opts.Context = ctx
	}
	m := New(session, opts)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	cancel := session.Theme.Subscribe(func(st theme.State) {
		p.Send(ThemeChangedMsg{State: st})
	})
	defer cancel()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal: %w", err)
	}
	return nil
}
