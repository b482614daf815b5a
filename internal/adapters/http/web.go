package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"net/url"
	"os"

	"clubsite/internal/adapters/email"
	"clubsite/internal/adapters/http/middleware"
	"clubsite/internal/adapters/http/perf"
	contactStore "clubsite/internal/adapters/storage/contact"
	"clubsite/internal/config"
)

// Stores holds all storage dependencies.
type Stores struct {
	ContactStore contactStore.Store
}

// loadCSRFKey reads the CSRF secret from CLUB_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("CLUB_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("CLUB_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if isProduction() {
		log.Fatal("CLUB_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set CLUB_CSRF_KEY for production.")
	return key
}

func isProduction() bool {
	return os.Getenv("CLUB_ENV") == "production"
}

// trustedOrigins allows form posts from the configured site host plus local development hosts.
func trustedOrigins(baseURL string) []string {
	origins := []string{"localhost:8080", "127.0.0.1:8080"}
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		origins = append(origins, u.Host)
	}
	return origins
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global site metadata (set by NewMux)
var site = config.Default()

// RateLimit controls the per-IP rate limit. Tests can increase this.
var RateLimit = middleware.DefaultRateLimitConfig()

// Active rate limiter (replaced by NewMux, stopped by Close)
var limiter *middleware.RateLimiter

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender = email.NewNoopSender()

// Sender address for relayed mail
var emailFromAddress string

// Close stops the background work started by NewMux. Safe to call more than once.
func Close() {
	if limiter != nil {
		limiter.Stop()
	}
}

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the site.
func NewMux(s *Stores, siteCfg config.Site, collector *perf.Collector) http.Handler {
	stores = s
	site = siteCfg
	perfCollector = collector

	mux := http.NewServeMux()
	registerRoutes(mux)
	if collector != nil {
		mux.Handle("GET /metrics", collector.Handler())
	}

	Close()
	limiter = middleware.NewRateLimiter(RateLimit)

	// Outer to inner: Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(middleware.CSRFConfig{
			AuthKey:        loadCSRFKey(),
			Secure:         isProduction(),
			TrustedOrigins: trustedOrigins(site.BaseURL),
		}),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, mux),
	)
}
