package services

import (
	"context"
	"time"

	"referralbridge/internal/models"
	"referralbridge/pkg/logger"
	"referralbridge/pkg/publisher"
)

const (
	EventReferralCreated         = "referral.created"
	EventReferralStatusRequested = "referral.status_requested"
)

// notifier publishes referral lifecycle events. Publish failures are logged
// and never reach the caller.
type notifier struct {
	publisher publisher.Publisher
	logger    *logger.Logger
}

func newNotifier(p publisher.Publisher, log *logger.Logger) *notifier {
	if p == nil {
		p = publisher.NopPublisher{}
	}
	return &notifier{publisher: p, logger: log}
}

func (n *notifier) referralCreated(ctx context.Context, referral *models.Referral) {
	n.publish(ctx, &publisher.Event{
		Type: EventReferralCreated,
		Key:  referral.Reference,
		Attributes: map[string]string{
			"context":      referral.Context,
			"affiliate_id": referral.AffiliateID,
		},
		Payload:    referral,
		OccurredAt: time.Now(),
	})
}

func (n *notifier) statusRequested(ctx context.Context, orderID, referralContext string, status models.ReferralStatus, updated bool) {
	n.publish(ctx, &publisher.Event{
		Type: EventReferralStatusRequested,
		Key:  orderID,
		Attributes: map[string]string{
			"context": referralContext,
			"status":  string(status),
		},
		Payload: map[string]interface{}{
			"reference": orderID,
			"context":   referralContext,
			"status":    status,
			"updated":   updated,
		},
		OccurredAt: time.Now(),
	})
}

func (n *notifier) publish(ctx context.Context, event *publisher.Event) {
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.logger.WithError(err).
			WithField("event_type", event.Type).
			WithField("key", event.Key).
			Warn("Failed to publish referral event")
	}
}
