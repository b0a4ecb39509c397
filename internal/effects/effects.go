// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package effects performs the external actions some commands trigger.
package effects

import (
	"context"
	"log/slog"
	"os/exec"
	"runtime"
	"sync"
)

// =============================================================================
// ACTIONS
// =============================================================================

// Kind is the type of an external action.
type Kind string

const (
	OpenURL  Kind = "open"
	Mail     Kind = "mail"
	Download Kind = "download"
)

// Action is an external side effect.
type Action struct {
	Kind   Kind   `json:"kind"`
	Target string `json:"target"`
}

// Launcher performs actions.
type Launcher interface {
	Launch(ctx context.Context, a Action)
}

// =============================================================================
// SYSTEM LAUNCHER
// =============================================================================

// System hands actions to the desktop's URL opener.
type System struct {
	logger *slog.Logger

	// command builds the opener invocation for a target.
	command func(ctx context.Context, target string) *exec.Cmd
}

// NewSystem returns a launcher for the current platform.
func NewSystem(logger *slog.Logger) *System {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &System{logger: logger, command: openerCommand}
}

func openerCommand(ctx context.Context, target string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.CommandContext(ctx, "open", target)
	case "windows":
		return exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", target)
	default:
		return exec.CommandContext(ctx, "xdg-open", target)
	}
}

// Launch starts the opener and returns without waiting for it. The opener
// is reaped in the background. ctx only bounds process start.
func (s *System) Launch(ctx context.Context, a Action) {
	if a.Target == "" {
		return
	}
	cmd := s.command(context.WithoutCancel(ctx), a.Target)
	if err := cmd.Start(); err != nil {
		s.logger.Warn("failed to launch action", "kind", a.Kind, "target", a.Target, "error", err)
		return
	}
	s.logger.Debug("launched action", "kind", a.Kind, "target", a.Target)
	go func() {
		if err := cmd.Wait(); err != nil {
			s.logger.Debug("opener exited with error", "kind", a.Kind, "error", err)
		}
	}()
}

// =============================================================================
// RECORDER
// =============================================================================

// Recorder collects actions instead of performing them. The HTTP server
// uses one per request to forward actions to the browser.
type Recorder struct {
	mu      sync.Mutex
	actions []Action
}

// Launch implements Launcher.
func (r *Recorder) Launch(_ context.Context, a Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
}

// Actions returns a copy of the recorded actions.
func (r *Recorder) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Drain returns the recorded actions and forgets them.
func (r *Recorder) Drain() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.actions
	r.actions = nil
	return out
}

// Discard ignores every action.
type Discard struct{}

// Launch implements Launcher.
func (Discard) Launch(context.Context, Action) {}
