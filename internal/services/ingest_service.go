package services

import (
	"context"
	"errors"
	"fmt"

	"referralbridge/internal/events"
	"referralbridge/internal/models"
	"referralbridge/internal/repositories/interfaces"
	"referralbridge/pkg/logger"
)

var ErrInvalidOrderMessage = errors.New("invalid order message")

// IngestService turns platform order notifications into dispatched order
// events. Webhooks and the topic consumer share it.
type IngestService interface {
	OrderCreated(ctx context.Context, payload *models.OrderCreatedPayload) error
	StatusChanged(ctx context.Context, payload *models.OrderStatusPayload) error
	Handle(ctx context.Context, message *models.OrderMessage) error
}

type ingestService struct {
	orderRepo  interfaces.OrderRepository
	dispatcher *events.Dispatcher
	logger     *logger.Logger
}

func NewIngestService(orderRepo interfaces.OrderRepository, dispatcher *events.Dispatcher, log *logger.Logger) IngestService {
	return &ingestService{
		orderRepo:  orderRepo,
		dispatcher: dispatcher,
		logger:     log.WithField("service", "ingest"),
	}
}

func (s *ingestService) OrderCreated(ctx context.Context, payload *models.OrderCreatedPayload) error {
	if payload == nil || payload.Order == nil || payload.Order.ID == "" {
		return fmt.Errorf("%w: order snapshot missing", ErrInvalidOrderMessage)
	}

	if err := s.orderRepo.Save(ctx, payload.Order); err != nil {
		return err
	}

	return s.dispatcher.Dispatch(ctx, events.Envelope{
		Event:    events.OrderCreated,
		OrderID:  payload.Order.ID,
		Tracking: payload.Tracking,
	})
}

func (s *ingestService) StatusChanged(ctx context.Context, payload *models.OrderStatusPayload) error {
	if payload == nil || payload.OrderID == "" {
		return fmt.Errorf("%w: order id missing", ErrInvalidOrderMessage)
	}

	var errs []error
	for _, event := range events.ForTransition(payload.From, payload.To) {
		if !s.dispatcher.Handles(event) {
			continue
		}
		s.logger.WithOrderID(payload.OrderID).WithField("event", event.String()).Debug("Dispatching order event")
		if err := s.dispatcher.Dispatch(ctx, events.Envelope{Event: event, OrderID: payload.OrderID}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *ingestService) Handle(ctx context.Context, message *models.OrderMessage) error {
	switch message.Type {
	case models.OrderMessageCreated:
		return s.OrderCreated(ctx, message.Created)
	case models.OrderMessageStatusChanged:
		return s.StatusChanged(ctx, message.Status)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidOrderMessage, message.Type)
	}
}
