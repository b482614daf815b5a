package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/csrf"
	"golang.org/x/time/rate"
)

// RateLimitConfig holds per-IP token bucket settings.
type RateLimitConfig struct {
	Rate            float64       // sustained requests per second
	Burst           int           // requests allowed in a burst
	CleanupInterval time.Duration // how often idle visitors are dropped
	MaxAge          time.Duration // idle time before a visitor is dropped
}

// DefaultRateLimitConfig allows 10 req/s per IP with a burst of 20.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Rate:            10,
		Burst:           20,
		CleanupInterval: time.Minute,
		MaxAge:          5 * time.Minute,
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter provides a per-IP token bucket rate limiter.
type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	cfg      RateLimitConfig
	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a rate limiter and starts its cleanup goroutine.
// PRE: cfg.Rate > 0 and cfg.Burst > 0
// POST: Returns a running limiter; call Stop to end the cleanup goroutine
func NewRateLimiter(cfg RateLimitConfig) *RateLimiter {
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 5 * time.Minute
	}
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		cfg:      cfg,
		done:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow checks if a request from the given IP is allowed.
// PRE: ip is non-empty
// POST: Returns true if within rate limit, false if exceeded
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.cfg.Rate), rl.cfg.Burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	rl.mu.Unlock()

	if !v.limiter.Allow() {
		slog.Warn("rate_limit_exceeded", "ip", ip)
		return false
	}
	return true
}

// Stop ends the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.done) })
}

// Stopped reports whether Stop has been called.
func (rl *RateLimiter) Stopped() bool {
	select {
	case <-rl.done:
		return true
	default:
		return false
	}
}

// visitorCount returns the number of tracked IPs.
func (rl *RateLimiter) visitorCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.done:
			return
		case <-ticker.C:
			rl.evictIdle(time.Now())
		}
	}
}

// evictIdle drops visitors not seen since now - MaxAge.
func (rl *RateLimiter) evictIdle(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.cfg.MaxAge {
			delete(rl.visitors, ip)
		}
	}
}

// clientIP strips the port from RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit returns middleware that limits requests per IP.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ContentSecurityPolicy is sent on every response. 'wasm-unsafe-eval' lets the
// training page instantiate the pace calculator module; no inline script is allowed.
const ContentSecurityPolicy = "default-src 'self'; script-src 'self' 'wasm-unsafe-eval'; style-src 'self'; img-src 'self' data:; connect-src 'self'; form-action 'self'; frame-ancestors 'none'"

// SecurityHeaders adds OWASP recommended headers.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", ContentSecurityPolicy)
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// CSRFConfig controls the gorilla/csrf protection.
type CSRFConfig struct {
	AuthKey        []byte   // 32-byte secret
	Secure         bool     // HTTPS-only cookie and strict Referer checks
	TrustedOrigins []string // host[:port] values allowed to post forms
}

// CSRF returns middleware that protects form posts against CSRF attacks.
// When Secure is false, requests are marked plaintext so local HTTP works.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	protect := csrf.Protect(
		cfg.AuthKey,
		csrf.Secure(cfg.Secure),
		csrf.Path("/"),
		csrf.TrustedOrigins(cfg.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.Secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("csrf_rejected", "path", r.URL.Path, "reason", reason)
	http.Error(w, "Forbidden - invalid or missing form token", http.StatusForbidden)
}

// Chain applies middlewares in order (outer to inner).
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
