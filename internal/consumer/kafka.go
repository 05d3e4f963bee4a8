package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type Message struct {
	Topic   string
	Key     []byte
	Payload []byte

	raw kafka.Message
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaConsumer reads order messages from one topic inside a consumer group.
// Offsets are committed explicitly once a batch has been handled.
type KafkaConsumer struct {
	reader      messageReader
	pollTimeout time.Duration
}

func NewKafkaConsumer(brokers []string, groupID, topic string, pollTimeout time.Duration) (*KafkaConsumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka consumer requires at least one broker")
	}
	if groupID == "" {
		return nil, fmt.Errorf("kafka consumer requires group id")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka consumer requires a topic")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  500 * time.Millisecond,
	})
	return newKafkaConsumer(reader, pollTimeout), nil
}

func newKafkaConsumer(reader messageReader, pollTimeout time.Duration) *KafkaConsumer {
	if pollTimeout <= 0 {
		pollTimeout = 250 * time.Millisecond
	}
	return &KafkaConsumer{reader: reader, pollTimeout: pollTimeout}
}

// Poll returns up to max messages, stopping early when none arrives within
// the poll timeout.
func (c *KafkaConsumer) Poll(ctx context.Context, max int) ([]Message, error) {
	if max <= 0 {
		max = 1
	}
	out := make([]Message, 0, max)
	for i := 0; i < max; i++ {
		readCtx, cancel := context.WithTimeout(ctx, c.pollTimeout)
		msg, err := c.reader.FetchMessage(readCtx)
		cancel()
		if err != nil {
			switch {
			case ctx.Err() != nil:
				return out, ctx.Err()
			case errors.Is(err, context.DeadlineExceeded):
				return out, nil
			default:
				return out, err
			}
		}
		out = append(out, Message{
			Topic:   msg.Topic,
			Key:     msg.Key,
			Payload: msg.Value,
			raw:     msg,
		})
	}
	return out, nil
}

func (c *KafkaConsumer) Commit(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}
	raw := make([]kafka.Message, len(msgs))
	for i, msg := range msgs {
		raw[i] = msg.raw
	}
	return c.reader.CommitMessages(ctx, raw...)
}

func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
