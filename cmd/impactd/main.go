package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/impact-sim-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/impact-sim-service/internal/adapter/kafka"
	"github.com/couchcryptid/impact-sim-service/internal/adapter/ws"
	"github.com/couchcryptid/impact-sim-service/internal/auth"
	"github.com/couchcryptid/impact-sim-service/internal/config"
	"github.com/couchcryptid/impact-sim-service/internal/observability"
	"github.com/couchcryptid/impact-sim-service/internal/simulation"
	"github.com/couchcryptid/impact-sim-service/internal/user"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	feed := ws.NewHub(metrics.FeedSubscribers, logger)
	opts := []simulation.Option{
		simulation.WithTrajectoryOffset(cfg.ApplyTrajectoryOffset),
		simulation.WithPublisher("feed", feed),
	}

	// Kafka publishing is feature-flagged via KAFKA_ENABLED / KAFKA_BROKERS.
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		opts = append(opts, simulation.WithPublisher("kafka", writer))
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	svc := simulation.New(logger, metrics, opts...)
	ready := httpadapter.AllReady{svc}

	var store user.Store
	if cfg.DatabaseURL != "" {
		pg, err := user.NewPgStore(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect user store", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		store = pg
		ready = append(ready, pg)
		logger.Info("postgres user store enabled")
	} else {
		store = user.NewMemoryStore()
		logger.Info("in-memory user store enabled")
	}

	deps := httpadapter.Deps{
		Simulator: svc,
		Feed:      feed,
	}

	// Login and session routes stay disabled until AUTH_TOKEN_SECRET is set.
	var issuer user.TokenIssuer
	if cfg.AuthTokenSecret != "" {
		tokens, err := auth.NewTokenService(cfg.AuthTokenSecret, cfg.AuthTokenTTL, clockwork.NewRealClock())
		if err != nil {
			logger.Error("failed to create token service", "error", err)
			os.Exit(1)
		}
		issuer = tokens
		deps.Tokens = tokens
	} else {
		logger.Warn("AUTH_TOKEN_SECRET not set, login disabled")
	}
	registry := user.NewRegistry(store, issuer, logger)
	registry.OnSignup(metrics.UsersRegistered.Inc)

	deps.Ready = ready
	deps.Accounts = registry

	srv := httpadapter.NewServer(cfg.HTTPAddr, deps, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := feed.Close(); err != nil {
		logger.Error("feed close error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
