package publisher

import (
	"context"
	"fmt"
)

type channelPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// RedisPublisher sends events over Redis pub/sub, one channel per deployment.
type RedisPublisher struct {
	client  channelPublisher
	channel string
}

func NewRedisPublisher(client channelPublisher, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) Publish(ctx context.Context, event *Event) error {
	if err := p.client.Publish(ctx, p.channel, event); err != nil {
		return fmt.Errorf("failed to publish to redis channel %s: %w", p.channel, err)
	}
	return nil
}
