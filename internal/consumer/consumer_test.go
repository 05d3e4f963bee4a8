package consumer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"referralbridge/internal/models"
	"referralbridge/internal/services"
	"referralbridge/pkg/logger"
)

type fakeReader struct {
	queue     []kafka.Message
	committed []kafka.Message
	fetchErr  error
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if r.fetchErr != nil {
		return kafka.Message{}, r.fetchErr
	}
	if len(r.queue) == 0 {
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

func (r *fakeReader) Close() error { return nil }

type mockIngest struct{ mock.Mock }

func (m *mockIngest) OrderCreated(ctx context.Context, payload *models.OrderCreatedPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockIngest) StatusChanged(ctx context.Context, payload *models.OrderStatusPayload) error {
	return m.Called(ctx, payload).Error(0)
}

func (m *mockIngest) Handle(ctx context.Context, message *models.OrderMessage) error {
	return m.Called(ctx, message).Error(0)
}

func TestPollStopsAtTimeout(t *testing.T) {
	reader := &fakeReader{queue: []kafka.Message{
		{Topic: "orders", Key: []byte("1"), Value: []byte("a")},
		{Topic: "orders", Key: []byte("2"), Value: []byte("b")},
	}}
	c := newKafkaConsumer(reader, 10*time.Millisecond)

	msgs, err := c.Poll(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, []byte("b"), msgs[1].Payload)
	assert.Equal(t, []byte("1"), msgs[0].Key)
}

func TestPollReturnsReaderError(t *testing.T) {
	c := newKafkaConsumer(&fakeReader{fetchErr: errors.New("broker gone")}, 10*time.Millisecond)

	_, err := c.Poll(context.Background(), 5)

	assert.EqualError(t, err, "broker gone")
}

func TestPollHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newKafkaConsumer(&fakeReader{}, time.Second)

	msgs, err := c.Poll(ctx, 5)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, msgs)
}

func TestNewKafkaConsumerRequiresSettings(t *testing.T) {
	_, err := NewKafkaConsumer(nil, "g", "t", 0)
	assert.Error(t, err)
	_, err = NewKafkaConsumer([]string{"k:9092"}, "", "t", 0)
	assert.Error(t, err)
	_, err = NewKafkaConsumer([]string{"k:9092"}, "g", "", 0)
	assert.Error(t, err)
}

func workerBatch() []kafka.Message {
	return []kafka.Message{
		{Key: []byte("1042"), Value: []byte(`{"type":"order.created","created":{"order":{"id":"1042","total":50}}}`)},
		{Key: []byte("1042"), Value: []byte(`not json`)},
		{Key: []byte("1042"), Value: []byte(`{"type":"order.status_changed","status":{"order_id":"1042","from":"processing","to":"completed"}}`)},
		{Key: []byte("1043"), Value: []byte(`{"type":"order.status_changed"}`)},
		{Key: []byte("1044"), Value: []byte(`{"type":"order.status_changed","status":{"order_id":"1044","from":"completed","to":"refunded"}}`)},
	}
}

func statusFor(orderID string) interface{} {
	return mock.MatchedBy(func(m *models.OrderMessage) bool {
		return m.Type == models.OrderMessageStatusChanged && m.Status.OrderID == orderID
	})
}

func newTestWorker(reader *fakeReader, ingest *mockIngest) *OrderWorker {
	w := NewOrderWorker(newKafkaConsumer(reader, 10*time.Millisecond), ingest, logger.NewNop(), time.Millisecond, 10)
	w.retryBackoff = time.Millisecond
	return w
}

func TestWorkerCommitsHandledAndDroppedMessages(t *testing.T) {
	reader := &fakeReader{queue: workerBatch()}
	ingest := &mockIngest{}
	ingest.On("Handle", mock.Anything, mock.MatchedBy(func(m *models.OrderMessage) bool {
		return m.Type == models.OrderMessageCreated && m.Created.Order.ID == "1042"
	})).Return(nil).Once()
	ingest.On("Handle", mock.Anything, statusFor("1042")).Return(nil).Once()
	ingest.On("Handle", mock.Anything, statusFor("1044")).Return(nil).Once()

	require.NoError(t, newTestWorker(reader, ingest).processOnce(context.Background()))

	ingest.AssertExpectations(t)
	ingest.AssertNumberOfCalls(t, "Handle", 3)
	assert.Len(t, reader.committed, 5)
}

func TestWorkerRetriesTransientFailure(t *testing.T) {
	reader := &fakeReader{queue: workerBatch()}
	ingest := &mockIngest{}
	ingest.On("Handle", mock.Anything, statusFor("1044")).Return(errors.New("update failed")).Once()
	ingest.On("Handle", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, newTestWorker(reader, ingest).processOnce(context.Background()))

	ingest.AssertNumberOfCalls(t, "Handle", 4)
	assert.Len(t, reader.committed, 5)
}

func TestWorkerLeavesFailedMessageUncommitted(t *testing.T) {
	batch := append(workerBatch(), kafka.Message{
		Key:   []byte("1045"),
		Value: []byte(`{"type":"order.status_changed","status":{"order_id":"1045","from":"pending","to":"processing"}}`),
	})
	reader := &fakeReader{queue: batch}
	ingest := &mockIngest{}
	ingest.On("Handle", mock.Anything, statusFor("1044")).Return(errors.New("update failed"))
	ingest.On("Handle", mock.Anything, mock.Anything).Return(nil)

	err := newTestWorker(reader, ingest).processOnce(context.Background())

	assert.ErrorIs(t, err, ErrHandlerFailed)
	assert.Contains(t, err.Error(), "1044")
	ingest.AssertNumberOfCalls(t, "Handle", 2+defaultMaxAttempts)
	ingest.AssertNotCalled(t, "Handle", mock.Anything, statusFor("1045"))
	require.Len(t, reader.committed, 4)
	assert.Equal(t, "1043", string(reader.committed[3].Key))
}

func TestWorkerDropsRejectedMessage(t *testing.T) {
	reader := &fakeReader{queue: workerBatch()[4:]}
	ingest := &mockIngest{}
	ingest.On("Handle", mock.Anything, statusFor("1044")).
		Return(fmt.Errorf("%w: unknown type", services.ErrInvalidOrderMessage)).Once()

	require.NoError(t, newTestWorker(reader, ingest).processOnce(context.Background()))

	ingest.AssertNumberOfCalls(t, "Handle", 1)
	assert.Len(t, reader.committed, 1)
}

func TestWorkerRunStopsOnHandlerFailure(t *testing.T) {
	reader := &fakeReader{queue: workerBatch()[4:]}
	ingest := &mockIngest{}
	ingest.On("Handle", mock.Anything, mock.Anything).Return(errors.New("mongo unavailable"))

	done := make(chan error, 1)
	go func() { done <- newTestWorker(reader, ingest).Run(context.Background()) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrHandlerFailed)
		assert.Empty(t, reader.committed)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestWorkerRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := NewOrderWorker(newKafkaConsumer(&fakeReader{}, 5*time.Millisecond), &mockIngest{}, logger.NewNop(), time.Millisecond, 1)

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop")
	}
}
