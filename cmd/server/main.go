package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	emailPkg "clubsite/internal/adapters/email"
	web "clubsite/internal/adapters/http"
	"clubsite/internal/adapters/http/perf"
	"clubsite/internal/adapters/storage"
	contactStore "clubsite/internal/adapters/storage/contact"
	"clubsite/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configureLogging()

	site, err := config.LoadSite(os.Getenv("CLUB_SITE_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load site config: %v", err)
	}

	// Initialize database with WAL mode and busy timeout
	dbPath := envOrDefault("CLUB_DB_PATH", "clubsite.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector()
	timedDB := storage.NewTimedDB(db, collector)

	stores := &web.Stores{
		ContactStore: contactStore.NewSQLiteStore(timedDB),
	}

	emailFrom := envOrDefault("CLUB_MAIL_FROM", site.Title+" <noreply@"+hostOf(site.Email)+">")
	sender, kind := newEmailSender(emailFrom)
	web.SetEmailSender(sender, emailFrom)
	if kind == "noop" && os.Getenv("CLUB_ENV") == "production" {
		slog.Warn("email_disabled", "reason", "neither CLUB_RESEND_KEY nor CLUB_SMTP_HOST is set")
	}
	slog.Info("email_sender_configured", "kind", kind, "to", site.Email)

	addr := envOrDefault("CLUB_ADDR", ":8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           web.NewMux(stores, site, collector),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("%s %s starting on %s (env=%s, schema=%d)", site.Title, version, addr, envOrDefault("CLUB_ENV", "development"), storage.LatestSchemaVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_failed", "error", err.Error())
	}
	web.Close()
	slog.Info("server_stopped")
}

// newEmailSender picks the transport: Resend API key, then SMTP relay, then noop.
func newEmailSender(from string) (emailPkg.Sender, string) {
	if key := os.Getenv("CLUB_RESEND_KEY"); key != "" {
		return emailPkg.NewResendSender(key, from), "resend"
	}
	if host := os.Getenv("CLUB_SMTP_HOST"); host != "" {
		port, err := strconv.Atoi(envOrDefault("CLUB_SMTP_PORT", "587"))
		if err != nil {
			log.Fatalf("CLUB_SMTP_PORT must be a number: %v", err)
		}
		return emailPkg.NewSMTPSender(emailPkg.SMTPConfig{
			Host:     host,
			Port:     port,
			User:     os.Getenv("CLUB_SMTP_USER"),
			Password: os.Getenv("CLUB_SMTP_PASSWORD"),
			From:     from,
		}), "smtp"
	}
	return emailPkg.NewNoopSender(), "noop"
}

// configureLogging switches slog to JSON in production and honours CLUB_LOG_LEVEL=debug.
func configureLogging() {
	level := slog.LevelInfo
	if os.Getenv("CLUB_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if os.Getenv("CLUB_ENV") == "production" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// hostOf returns the domain part of an email address.
func hostOf(address string) string {
	if i := strings.LastIndex(address, "@"); i >= 0 {
		return address[i+1:]
	}
	return "localhost"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
