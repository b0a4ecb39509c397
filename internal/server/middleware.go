// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server serves the termfolio shell to web browsers.
package server

import (
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ============================================================================
// Rate Limiter
// ============================================================================

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	limit rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows perSecond sustained requests per IP with the given
// burst.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(perSecond),
		burst:    burst,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Allow reports whether a request from ip may proceed.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	now := rl.now()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	return v.limiter.AllowN(now, 1)
}

// Prune forgets IPs not seen for idle. It returns how many were removed.
func (rl *RateLimiter) Prune(idle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-idle)
	n := 0
	for ip, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, ip)
			n++
		}
	}
	return n
}

// Len returns the number of tracked IPs.
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// RateLimitMiddleware returns HTTP middleware that enforces rate limiting.
//
// Returns 429 Too Many Requests if the rate limit is exceeded.
func RateLimitMiddleware(limiter *RateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := GetClientIP(r)

			w.Header().Set("X-RateLimit-Limit", strconv.FormatFloat(float64(limiter.limit), 'f', -1, 64))
			w.Header().Set("X-RateLimit-Burst", strconv.Itoa(limiter.burst))

			if !limiter.Allow(clientIP) {
				w.Header().Set("Retry-After", "1")
				logger.Warn("rate limit exceeded", "ip", clientIP, "path", r.URL.Path)
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ============================================================================
// Request Logging Middleware
// ============================================================================

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// newResponseWriter creates a wrapped response writer.
func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// WriteHeader captures the status code before writing it.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware returns HTTP middleware that logs every request at
// debug level and server errors at error level. Request bodies are never
// logged.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := newResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			level := slog.LevelDebug
			if wrapped.statusCode >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrapped.statusCode,
				"duration", time.Since(start),
			)
		})
	}
}

// ============================================================================
// Security Headers Middleware
// ============================================================================

// SecurityHeadersMiddleware sets:
//
//   - X-Content-Type-Options: nosniff
//   - X-Frame-Options: DENY
//   - Content-Security-Policy: default-src 'self'
//   - Referrer-Policy: strict-origin-when-cross-origin
//   - Cache-Control: no-store on API responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Content-Security-Policy", "default-src 'self'")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if strings.HasPrefix(r.URL.Path, "/api/") {
				h.Set("Cache-Control", "no-store")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ============================================================================
// Recovery Middleware
// ============================================================================

// RecoveryMiddleware returns HTTP middleware that turns a handler panic into
// a 500 response and logs the stack.
func RecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"method", r.Method,
						"path", r.URL.Path,
						"error", err,
						"stack", string(debug.Stack()),
					)
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// ============================================================================
// Middleware Chain Helper
// ============================================================================

// Chain composes multiple middleware functions into a single middleware.
// Middlewares are applied in the order provided.
func Chain(middlewares ...func(http.Handler) http.Handler) func(http.Handler) http.Handler {
	return func(final http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			final = middlewares[i](final)
		}
		return final
	}
}

// ============================================================================
// IP Extraction Helper
// ============================================================================

// trustedProxies are the networks allowed to set X-Forwarded-For and
// X-Real-IP.
var trustedProxies = []string{
	"127.0.0.1/32",
	"::1/128",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"fc00::/7",
}

var parseTrustedProxies = sync.OnceValue(func() []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(trustedProxies))
	for _, cidr := range trustedProxies {
		if _, ipNet, err := net.ParseCIDR(cidr); err == nil {
			nets = append(nets, ipNet)
		}
	}
	return nets
})

// isTrustedProxy checks if the given IP address is in the trusted proxy list.
func isTrustedProxy(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}
	for _, cidr := range parseTrustedProxies() {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}

// forwardedHops returns every X-Forwarded-For entry in order, across
// repeated headers.
func forwardedHops(r *http.Request) []string {
	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		for _, hop := range strings.Split(v, ",") {
			if hop = strings.TrimSpace(hop); hop != "" {
				hops = append(hops, hop)
			}
		}
	}
	return hops
}

// getRemoteIP extracts the IP address from r.RemoteAddr.
func getRemoteIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// GetClientIP returns the client address of r. Forwarded headers are only
// honored when the connection comes from a trusted proxy. X-Forwarded-For is
// read from the right: the first hop that is not a trusted proxy is the
// client, since anything left of it was supplied by that client.
func GetClientIP(r *http.Request) string {
	connIP := getRemoteIP(r.RemoteAddr)
	if !isTrustedProxy(connIP) {
		return connIP
	}

	if hops := forwardedHops(r); hops != nil {
		for i := len(hops) - 1; i >= 0; i-- {
			ip := hops[i]
			if net.ParseIP(ip) == nil {
				return connIP
			}
			if i == 0 || !isTrustedProxy(ip) {
				return ip
			}
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); net.ParseIP(xri) != nil {
		return xri
	}

	return connIP
}
