package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/pool-tournament/internal/config"
	"github.com/mauv0809/pool-tournament/internal/database"
	"github.com/mauv0809/pool-tournament/internal/generator"
	server "github.com/mauv0809/pool-tournament/internal/http"
	"github.com/mauv0809/pool-tournament/internal/metrics"
	"github.com/mauv0809/pool-tournament/internal/notifier"
	"github.com/mauv0809/pool-tournament/internal/notifier/slack"
	"github.com/mauv0809/pool-tournament/internal/pubsub"
	"github.com/mauv0809/pool-tournament/internal/storage"
	"github.com/mauv0809/pool-tournament/internal/tracker"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	ctx := context.Background()
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	store := storage.New(db)

	var gen generator.Generator
	if cfg.Gemini.APIKey != "" {
		gen, err = generator.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			log.Fatalf("Failed to initialize Gemini: %s", err)
		}
		log.Info("Using Gemini schedule generator", "model", cfg.Gemini.Model)
	} else {
		gen = generator.NewRoundRobin()
		log.Warn("GEMINI_API_KEY not set, using local round-robin generator")
	}

	var n notifier.Notifier
	if cfg.SlackEnabled() {
		n = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack is not configured, tournament announcements are disabled")
	}

	var events pubsub.PubSubClient
	if cfg.ProjectID != "" {
		events, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer events.Close()
	}

	t := tracker.New(store, gen, metricsSvc, n, events)
	if err := t.Restore(); err != nil {
		log.Fatalf("Failed to restore tournament: %s", err)
	}

	s := server.NewServer(t, metricsSvc, metricsHandler, n, events)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
		// Let pending generations commit before the database closes.
		t.WaitIdle()
	}

	log.Info("Server process shutting down")
}
