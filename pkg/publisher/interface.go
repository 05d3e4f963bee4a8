package publisher

import (
	"context"
	"time"
)

// Publisher fans referral lifecycle events out to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
}

type Event struct {
	Type       string            `json:"type"`
	Key        string            `json:"key"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Payload    interface{}       `json:"payload"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event *Event) error { return nil }
