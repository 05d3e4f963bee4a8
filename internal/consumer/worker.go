package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"referralbridge/internal/models"
	"referralbridge/internal/services"
	"referralbridge/internal/validators"
	"referralbridge/pkg/logger"
)

type Consumer interface {
	Poll(ctx context.Context, max int) ([]Message, error)
	Commit(ctx context.Context, msgs ...Message) error
}

// ErrHandlerFailed stops the worker when a message keeps failing. The
// message and everything after it stay uncommitted so the consumer group
// redelivers them after a restart.
var ErrHandlerFailed = errors.New("order message handling failed")

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 500 * time.Millisecond
)

// OrderWorker feeds order messages from the topic into the ingest service,
// one message at a time. Undecodable or invalid messages are logged and
// committed. Other failures are retried and, when retries run out, stop the
// worker without committing the failed message.
type OrderWorker struct {
	consumer     Consumer
	ingest       services.IngestService
	logger       *logger.Logger
	interval     time.Duration
	batchSize    int
	maxAttempts  int
	retryBackoff time.Duration
}

func NewOrderWorker(consumer Consumer, ingest services.IngestService, log *logger.Logger, interval time.Duration, batchSize int) *OrderWorker {
	if interval <= 0 {
		interval = time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	return &OrderWorker{
		consumer:     consumer,
		ingest:       ingest,
		logger:       log.WithField("component", "order_worker"),
		interval:     interval,
		batchSize:    batchSize,
		maxAttempts:  defaultMaxAttempts,
		retryBackoff: defaultRetryBackoff,
	}
}

func (w *OrderWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Order worker started")
	for {
		err := w.processOnce(ctx)
		if errors.Is(err, ErrHandlerFailed) {
			w.logger.WithError(err).Error("Order worker stopping, failed message left uncommitted")
			return err
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			w.logger.WithError(err).Error("Order worker iteration failed")
		}
		select {
		case <-ctx.Done():
			w.logger.Info("Order worker stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *OrderWorker) processOnce(ctx context.Context) error {
	msgs, err := w.consumer.Poll(ctx, w.batchSize)
	for i, msg := range msgs {
		if handleErr := w.handleWithRetry(ctx, msg); handleErr != nil {
			if i > 0 {
				if commitErr := w.consumer.Commit(ctx, msgs[:i]...); commitErr != nil {
					w.logger.WithError(commitErr).Error("Failed to commit handled order messages")
				}
			}
			if errors.Is(handleErr, context.Canceled) || errors.Is(handleErr, context.DeadlineExceeded) {
				return handleErr
			}
			return fmt.Errorf("%w: key %s: %v", ErrHandlerFailed, msg.Key, handleErr)
		}
	}
	if len(msgs) > 0 {
		if commitErr := w.consumer.Commit(ctx, msgs...); commitErr != nil {
			return commitErr
		}
	}
	return err
}

func (w *OrderWorker) handleWithRetry(ctx context.Context, msg Message) error {
	backoff := w.retryBackoff
	var err error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		if err = w.handle(ctx, msg); err == nil {
			return nil
		}
		if attempt == w.maxAttempts {
			break
		}

		w.logger.WithField("key", string(msg.Key)).WithField("attempt", attempt).WithError(err).
			Warn("Retrying order message")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

// handle returns an error only for failures worth retrying. Messages that can
// never succeed are logged and dropped.
func (w *OrderWorker) handle(ctx context.Context, msg Message) error {
	log := w.logger.WithField("key", string(msg.Key))

	var message models.OrderMessage
	if err := json.Unmarshal(msg.Payload, &message); err != nil {
		log.WithError(err).Warn("Dropping undecodable order message")
		return nil
	}

	if errs := validators.ValidateOrderMessage(&message); len(errs) > 0 {
		log.WithField("type", message.Type).WithError(errs).Warn("Dropping invalid order message")
		return nil
	}

	err := w.ingest.Handle(ctx, &message)
	if errors.Is(err, services.ErrInvalidOrderMessage) {
		log.WithField("type", message.Type).WithError(err).Warn("Dropping rejected order message")
		return nil
	}
	if err != nil {
		log.WithField("type", message.Type).WithError(err).Error("Failed to handle order message")
		return err
	}

	log.WithField("type", message.Type).Debug("Order message handled")
	return nil
}
