package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/medportal/portal-api/internal/repository/postgres"
	"github.com/medportal/portal-api/pkg/logger"
	messagingredis "github.com/medportal/portal-api/pkg/messaging/redis"
	"github.com/medportal/portal-api/pkg/metrics"
	"github.com/medportal/portal-api/pkg/worker"
)

// Spec is the worker's environment configuration, loaded with the
// WORKER_ prefix.
type Spec struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	RedisURL      string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	MetricsPort   int           `envconfig:"METRICS_PORT" default:"9090"`
	BatchSize     int           `envconfig:"BATCH_SIZE" default:"100"`
	PollInterval  time.Duration `envconfig:"POLL_INTERVAL" default:"5s"`
	RetryAttempts int           `envconfig:"RETRY_ATTEMPTS" default:"3"`
	RetryDelay    time.Duration `envconfig:"RETRY_DELAY" default:"1s"`
}

func main() {
	var spec Spec
	if err := envconfig.Process("worker", &spec); err != nil {
		log.Fatal().Err(err).Msg("failed to load worker configuration")
	}

	db, err := sqlx.Connect("postgres", spec.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	zl := log.Logger
	broker, err := messagingredis.NewBroker(messagingredis.Config{
		URL:          spec.RedisURL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &zl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	registry := prometheus.NewRegistry()
	workerMetrics := metrics.NewMetrics("portal_worker", registry)

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(postgres.NewBaseRepository(db)),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     spec.BatchSize,
			PollInterval:  spec.PollInterval,
			RetryAttempts: spec.RetryAttempts,
			RetryDelay:    spec.RetryDelay,
		},
		logger.NewLogger(nil),
		workerMetrics,
	)

	ctx, cancel := context.WithCancel(context.Background())
	go processor.Start(ctx)

	metricsSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", spec.MetricsPort),
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown failed")
	}
}
