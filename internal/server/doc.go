// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the termfolio shell to web browsers.
//
// Every browser gets its own app.Session, keyed by a cookie. The session's
// appearance source is fed by the page (prefers-color-scheme), and external
// actions such as opening a URL are returned to the page instead of being
// launched on the host.
//
// # Endpoints
//
//   - GET  /                - The terminal page
//   - GET  /static/...      - Page assets
//   - POST /api/exec        - Run a line: {line} -> {output, theme, auto, actions, cleared}
//   - GET  /api/complete    - Tab completion: ?line= -> {completions}
//   - POST /api/appearance  - Report the browser color scheme: {dark}
//   - GET  /api/theme       - Current theme state
//   - GET  /health          - Health check
//
// # Middleware
//
//   - Panic recovery
//   - Security headers (X-Content-Type-Options, X-Frame-Options, CSP...)
//   - Request logging through slog
//   - Per-IP rate limiting (golang.org/x/time/rate)
//
// # Usage
//
//	srv := server.New(a, server.OptionsFrom(cfg.Server, logger))
//	if err := srv.ListenAndServe(ctx); err != nil {
//		return err
//	}
package server
