package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/randevuhq/randevu-api/internal/config"
	"github.com/randevuhq/randevu-api/internal/repository/postgres"
	"github.com/randevuhq/randevu-api/pkg/logger"
	"github.com/randevuhq/randevu-api/pkg/messaging/redis"
	"github.com/randevuhq/randevu-api/pkg/metrics"
	"github.com/randevuhq/randevu-api/pkg/worker"
)

// Standalone outbox worker for deployments that publish events out of
// process. The API binary runs only the cleanup loop; this one drains
// the outbox to Redis.
func main() {
	zlog, err := zap.NewProduction()
	if err != nil {
		os.Exit(1)
	}
	defer zlog.Sync()

	cfg, err := config.LoadConfig()
	if err != nil {
		zlog.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &log.Logger)
	if err != nil {
		zlog.Fatal("failed to create redis broker", zap.Error(err))
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  cfg.Outbox.PollInterval,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    cfg.Outbox.RetryDelay,
		},
		logger.NewLogger(nil),
		metrics.NewMetrics("randevu", "worker"),
	)

	setupHealthCheck(zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		zlog.Info("shutting down")
		cancel()
	}()

	processor.Start(ctx)
}

func setupHealthCheck(zlog *zap.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(":8081", mux); err != nil {
			zlog.Error("health check server failed", zap.Error(err))
			os.Exit(1)
		}
	}()
}
