// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"context"
	"os/exec"
	"testing"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	ctx := context.Background()

	r.Launch(ctx, Action{Kind: OpenURL, Target: "https://example.com"})
	r.Launch(ctx, Action{Kind: Mail, Target: "mailto:a@b.c"})

	got := r.Actions()
	if len(got) != 2 || got[0].Kind != OpenURL || got[1].Target != "mailto:a@b.c" {
		t.Errorf("Actions() = %+v", got)
	}

	drained := r.Drain()
	if len(drained) != 2 || len(r.Actions()) != 0 {
		t.Errorf("Drain() = %+v, remaining %+v", drained, r.Actions())
	}
}

func TestSystemLaunchUsesOpener(t *testing.T) {
	var targets []string
	s := NewSystem(nil)
	s.command = func(ctx context.Context, target string) *exec.Cmd {
		targets = append(targets, target)
		return exec.CommandContext(ctx, "true")
	}

	s.Launch(context.Background(), Action{Kind: Download, Target: "https://example.com/cv.pdf"})
	s.Launch(context.Background(), Action{Kind: OpenURL, Target: ""})

	if len(targets) != 1 || targets[0] != "https://example.com/cv.pdf" {
		t.Errorf("opener targets = %v", targets)
	}
}

func TestSystemLaunchMissingOpener(t *testing.T) {
	s := NewSystem(nil)
	s.command = func(ctx context.Context, target string) *exec.Cmd {
		return exec.CommandContext(ctx, "/nonexistent/opener", target)
	}

	// Must not panic or block.
	s.Launch(context.Background(), Action{Kind: OpenURL, Target: "https://example.com"})
}
