// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the termfolio shell to web browsers.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/jeranaias/termfolio/internal/app"
	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/effects"
	"github.com/jeranaias/termfolio/internal/theme"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// CookieName holds the browser session id.
	CookieName = "termfolio_session"

	// cookieMaxAge keeps the id, and so the stored theme choice, for a year.
	cookieMaxAge = 365 * 24 * time.Hour

	// maxBodyBytes bounds JSON request bodies.
	maxBodyBytes = 16 << 10

	// maxLineBytes bounds one input line.
	maxLineBytes = 4 << 10
)

//go:embed static
var staticFiles embed.FS

var indexTemplate = template.Must(template.ParseFS(staticFiles, "static/index.html"))

// ============================================================================
// OPTIONS
// ============================================================================

// Options configures a Server.
type Options struct {
	Addr            string
	RateLimit       float64
	RateBurst       int
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// OptionsFrom converts the [server] config section.
func OptionsFrom(cfg config.ServerConfig, logger *slog.Logger) Options {
	return Options{
		Addr:            cfg.Addr,
		RateLimit:       cfg.RateLimit,
		RateBurst:       cfg.RateBurst,
		SessionTTL:      time.Duration(cfg.SessionTTLMinutes) * time.Minute,
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeoutSecs) * time.Second,
		Logger:          logger,
	}
}

// ============================================================================
// SERVER
// ============================================================================

// Server is the HTTP front end of the shell.
type Server struct {
	app      *app.App
	opts     Options
	logger   *slog.Logger
	router   *http.ServeMux
	handler  http.Handler
	limiter  *RateLimiter
	sessions *sessionManager
	started  time.Time
}

// New creates a Server for a. Zero options take defaults from config.Default.
func New(a *app.App, opts Options) *Server {
	d := OptionsFrom(config.Default().Server, opts.Logger)
	if opts.Addr == "" {
		opts.Addr = d.Addr
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = d.RateLimit
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = d.RateBurst
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = d.SessionTTL
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = d.ShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = a.Logger
	}

	s := &Server{
		app:      a,
		opts:     opts,
		logger:   opts.Logger.With("component", "server"),
		router:   http.NewServeMux(),
		limiter:  NewRateLimiter(opts.RateLimit, opts.RateBurst),
		sessions: newSessionManager(a, opts.SessionTTL, opts.Logger),
		started:  time.Now(),
	}
	s.setupRoutes()

	s.handler = Chain(
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger),
		RateLimitMiddleware(s.limiter, s.logger),
	)(s.router)
	return s
}

// Handler returns the router wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ============================================================================
// ROUTES
// ============================================================================

func (s *Server) setupRoutes() {
	assets, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	s.router.HandleFunc("GET /{$}", s.handleIndex)
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(assets)))

	s.router.HandleFunc("POST /api/exec", s.handleExec)
	s.router.HandleFunc("GET /api/complete", s.handleComplete)
	s.router.HandleFunc("POST /api/appearance", s.handleAppearance)
	s.router.HandleFunc("GET /api/theme", s.handleTheme)

	s.router.HandleFunc("GET /health", s.handleHealth)
}

// ============================================================================
// API TYPES
// ============================================================================

// ExecRequest is the body of POST /api/exec.
type ExecRequest struct {
	Line string `json:"line"`
}

// ThemeResponse describes the session's theme state.
type ThemeResponse struct {
	Theme theme.Theme `json:"theme"`
	Auto  bool        `json:"auto"`
}

// ExecResponse is the reply to POST /api/exec.
type ExecResponse struct {
	Output string `json:"output"`
	ThemeResponse
	Actions []effects.Action `json:"actions"`
	Cleared bool             `json:"cleared"`
	Found   bool             `json:"found"`
}

// AppearanceRequest is the body of POST /api/appearance.
type AppearanceRequest struct {
	Dark bool `json:"dark"`
}

// CompleteResponse is the reply to GET /api/complete.
type CompleteResponse struct {
	Completions []string `json:"completions"`
}

// HealthResponse is the reply to GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
	Uptime   string `json:"uptime"`
}

// ============================================================================
// HANDLERS
// ============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Create the session up front so the first command is not slowed down.
	b, err := s.session(w, r)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = indexTemplate.Execute(w, struct{ User, Host string }{
		User: b.session.Env.User,
		Host: b.session.Env.Hostname,
	})
	if err != nil {
		s.logger.Error("render index", "error", err)
	}
}

func (s *Server) handleExec(w http.ResponseWriter, r *http.Request) {
	var req ExecRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Line) > maxLineBytes {
		s.writeError(w, http.StatusRequestEntityTooLarge, "line too long")
		return
	}

	b, err := s.session(w, r)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return
	}

	res, actions := b.exec(r.Context(), req.Line)
	if actions == nil {
		actions = []effects.Action{}
	}
	s.writeJSON(w, http.StatusOK, ExecResponse{
		Output:        res.Output,
		ThemeResponse: themeState(b),
		Actions:       actions,
		Cleared:       res.Cleared(),
		Found:         res.Found,
	})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	b, err := s.session(w, r)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return
	}
	comps := b.session.Complete(r.URL.Query().Get("line"))
	if comps == nil {
		comps = []string{}
	}
	s.writeJSON(w, http.StatusOK, CompleteResponse{Completions: comps})
}

func (s *Server) handleAppearance(w http.ResponseWriter, r *http.Request) {
	var req AppearanceRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, err := s.session(w, r)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return
	}
	// The store follows synchronously when it is in auto mode.
	b.pref.Set(req.Dark)
	s.writeJSON(w, http.StatusOK, themeState(b))
}

func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	b, err := s.session(w, r)
	if err != nil {
		s.writeError(w, http.StatusServiceUnavailable, "session unavailable")
		return
	}
	s.writeJSON(w, http.StatusOK, themeState(b))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  s.app.Version,
		Sessions: s.sessions.len(),
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}

// ============================================================================
// SESSION LOOKUP
// ============================================================================

// session returns the caller's session, issuing a cookie for new ones.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*browserSession, error) {
	var id string
	if c, err := r.Cookie(CookieName); err == nil {
		id = c.Value
	}

	b, err := s.sessions.get(r.Context(), id, prefersDark(r))
	if err != nil {
		s.logger.Error("create session", "error", err)
		return nil, err
	}
	if b.id != id {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    b.id,
			Path:     "/",
			MaxAge:   int(cookieMaxAge / time.Second),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Secure:   r.TLS != nil,
		})
	}
	return b, nil
}

// prefersDark reads the Sec-CH-Prefers-Color-Scheme client hint. Browsers
// that do not send it get dark until the page reports its preference.
func prefersDark(r *http.Request) bool {
	return !strings.EqualFold(strings.Trim(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), `" `), "light")
}

func themeState(b *browserSession) ThemeResponse {
	st := b.session.Theme.State()
	return ThemeResponse{Theme: st.Theme, Auto: st.Auto}
}

// ============================================================================
// SERVER LIFECYCLE
// ============================================================================

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled. Idle sessions and rate limiter
// entries are swept while it runs.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	s.logger.Info("server started", "addr", ln.Addr().String(), "version", s.app.Version)

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go s.janitor(janitorCtx)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		s.sessions.closeAll()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.sessions.closeAll()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// janitor expires idle sessions and forgets idle rate limiter entries.
func (s *Server) janitor(ctx context.Context) {
	interval := max(s.opts.SessionTTL/2, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sessions.sweep()
			s.limiter.Prune(s.opts.SessionTTL)
		}
	}
}

// ============================================================================
// HELPERS
// ============================================================================

// decode reads a bounded JSON body into v.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    status,
		},
	})
}
