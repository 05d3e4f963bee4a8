package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"referralbridge/internal/app"
	"referralbridge/internal/config"
	"referralbridge/internal/consumer"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns the worker's failure after the deferred cleanup has closed
// the consumer and the application.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize application")
	}
	defer application.Close()

	kafkaConsumer, err := consumer.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic, cfg.Kafka.PollTimeout)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create kafka consumer")
	}
	defer kafkaConsumer.Close()

	worker := consumer.NewOrderWorker(kafkaConsumer, application.Services.Ingest, logger, cfg.Kafka.PollTimeout, cfg.Kafka.BatchSize)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Error("Order worker stopped with error")
		return err
	}
	return nil
}
