package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gistworks/skim/api"
	"github.com/gistworks/skim/cache"
	"github.com/gistworks/skim/cleaner"
	"github.com/gistworks/skim/config"
	"github.com/gistworks/skim/models"
	"github.com/gistworks/skim/scraper"
	"github.com/gistworks/skim/store"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)
	slog.Info("skim starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	// ── 3. Initialise pipeline ──────────────────────────────────────
	cl := cleaner.New()
	sc := scraper.New(cl, &models.ScrapingOptions{
		Timeout:   cfg.Scraper.DefaultTimeout,
		Retries:   cfg.Scraper.DefaultRetries,
		UserAgent: cfg.Scraper.UserAgent,
	})
	cc := cache.New(cfg.Cache.MaxEntries)

	// ── 4. Initialise sinks ─────────────────────────────────────────
	sinks, cleanup, err := buildSinks(cfg.Store)
	if err != nil {
		slog.Error("failed to initialise storage", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// ── 5. Setup router & start HTTP server ─────────────────────────
	startTime := time.Now()
	router := api.NewRouter(sc, cfg, cc, sinks, startTime)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 6. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight requests 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("skim stopped")
}

// buildSinks assembles the configured persistence sinks. With nothing
// configured, results are kept in memory so the pipeline shape stays the
// same in development.
func buildSinks(cfg config.StoreConfig) ([]store.Sink, func(), error) {
	var sinks []store.Sink
	cleanup := func() {}

	if cfg.SQLitePath != "" {
		sq, err := store.NewSQLiteSink(cfg.SQLitePath)
		if err != nil {
			return nil, cleanup, err
		}
		sinks = append(sinks, sq)
		cleanup = func() { _ = sq.Close() }
		slog.Info("sqlite sink enabled", "path", cfg.SQLitePath)
	}
	if cfg.WebhookURL != "" {
		sinks = append(sinks, store.NewWebhookSink(cfg.WebhookURL, cfg.WebhookSecret))
		slog.Info("webhook sink enabled", "endpoint", cfg.WebhookURL)
	}
	if len(sinks) == 0 {
		sinks = append(sinks, store.NewMemorySink())
	}
	return sinks, cleanup, nil
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
