package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/league-hub/internal/config"
	"github.com/mauv0809/league-hub/internal/database"
	server "github.com/mauv0809/league-hub/internal/http"
	"github.com/mauv0809/league-hub/internal/identity"
	"github.com/mauv0809/league-hub/internal/league"
	"github.com/mauv0809/league-hub/internal/metrics"
	"github.com/mauv0809/league-hub/internal/notifier"
	"github.com/mauv0809/league-hub/internal/notifier/email"
	"github.com/mauv0809/league-hub/internal/notifier/slack"
	"github.com/mauv0809/league-hub/internal/processor"
	"github.com/mauv0809/league-hub/internal/pubsub"
	"github.com/mauv0809/league-hub/internal/registration"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
		db.Close()
	}()

	clock := clockwork.NewRealClock()
	leagueStore := league.New(db, clock)
	registrationStore := registration.New(db, clock)
	profileStore := identity.NewProfileStore(db, clock)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	authClient := identity.NewGoTrueClient(cfg.Auth.URL, cfg.Auth.APIKey)
	verifier := identity.NewVerifier(cfg.Auth.JWTSecret, authClient, clock)
	resolver := identity.NewResolver(authClient)

	var notifiers notifier.Fanout
	if cfg.Email.ResendAPIKey != "" {
		notifiers = append(notifiers, email.NewNotifier(cfg.Email.ResendAPIKey, cfg.Email.From, metricsSvc))
	} else {
		log.Warn("RESEND_API_KEY not set, captain emails are disabled")
	}
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		notifiers = append(notifiers, slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc))
	}

	var pubsubClient pubsub.PubSubClient
	if cfg.ProjectID != "" {
		pubsubClient, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
		defer pubsubClient.Close()
	} else {
		log.Info("GCP_PROJECT not set, delivering notifications in process")
	}

	proc := processor.New(
		registrationStore,
		leagueStore,
		profileStore,
		resolver,
		notifiers,
		metricsSvc,
		pubsubClient,
		cfg.RegistrationFee,
	)

	s := server.NewServer(server.Deps{
		DB:             db,
		Leagues:        leagueStore,
		Registrations:  registrationStore,
		Profiles:       profileStore,
		Verifier:       verifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Processor:      proc,
		PubSub:         pubsubClient,
		Clock:          clock,
	}, cfg)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
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
	}

	// Let detached notification deliveries finish before the database closes.
	proc.Wait()
	log.Info("Server process shutting down")
}
