package services

import (
	"context"

	"referralbridge/internal/events"
)

var rejectOn = []events.OrderEvent{
	events.CompletedToRefunded,
	events.OnHoldToRefunded,
	events.ProcessingToRefunded,
	events.ProcessingToCancelled,
	events.CompletedToCancelled,
}

// RegisterReferralHandlers subscribes the originator and the lifecycle
// controller to the order events they react to.
func RegisterReferralHandlers(d *events.Dispatcher, referrals ReferralService, lifecycle LifecycleService) {
	d.Register(events.OrderCreated, func(ctx context.Context, env events.Envelope) error {
		referrals.AddPendingReferral(ctx, env.OrderID, env.Tracking)
		return nil
	})

	complete := func(ctx context.Context, env events.Envelope) error {
		return lifecycle.Complete(ctx, env.OrderID)
	}
	d.Register(events.StatusCompleted, complete)
	d.Register(events.StatusProcessing, complete)

	reject := func(ctx context.Context, env events.Envelope) error {
		return lifecycle.Reject(ctx, env.OrderID)
	}
	for _, event := range rejectOn {
		d.Register(event, reject)
	}
}
