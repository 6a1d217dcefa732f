package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caresync/hms-api/internal/config"
	"github.com/caresync/hms-api/internal/repository/postgres"
	outboxsvc "github.com/caresync/hms-api/internal/service/outbox"
	"github.com/caresync/hms-api/pkg/logger"
	redisbroker "github.com/caresync/hms-api/pkg/messaging/redis"
	"github.com/caresync/hms-api/pkg/metrics"
)

// The worker drains the outbox table to the Redis broker. It shares
// the database with the API but runs as its own process so broker
// outages never slow a request.
func main() {
	configPath := flag.String("config", "", "directory containing config.yaml")
	batchSize := flag.Int("batch-size", 100, "outbox rows per poll")
	interval := flag.Duration("interval", 5*time.Second, "poll interval")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		Pretty:     cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redisbroker.NewBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, log.Zerolog())
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	m := metrics.New("hms_worker", prometheus.NewRegistry())

	processor := outboxsvc.NewProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		m,
		log,
		*batchSize,
		*interval,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("outbox worker started", "batch_size", *batchSize, "interval", interval.String())
	if err := processor.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err, "worker stopped")
	}
	log.Info("outbox worker stopped")
}
