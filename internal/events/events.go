// Package events defines the order events the platform delivers and a
// dispatcher that routes them to registered handlers.
package events

import (
	"fmt"

	"referralbridge/internal/models"
)

type OrderEvent int

const (
	OrderCreated OrderEvent = iota + 1
	StatusCompleted
	StatusProcessing
	CompletedToRefunded
	OnHoldToRefunded
	ProcessingToRefunded
	ProcessingToCancelled
	CompletedToCancelled
)

var eventNames = map[OrderEvent]string{
	OrderCreated:          "order.created",
	StatusCompleted:       "order.status.completed",
	StatusProcessing:      "order.status.processing",
	CompletedToRefunded:   "order.status.completed_to_refunded",
	OnHoldToRefunded:      "order.status.on-hold_to_refunded",
	ProcessingToRefunded:  "order.status.processing_to_refunded",
	ProcessingToCancelled: "order.status.processing_to_cancelled",
	CompletedToCancelled:  "order.status.completed_to_cancelled",
}

func (e OrderEvent) String() string {
	if name, ok := eventNames[e]; ok {
		return name
	}
	return fmt.Sprintf("order.event(%d)", int(e))
}

type transition struct {
	from models.OrderStatus
	to   models.OrderStatus
}

var statusEvents = map[models.OrderStatus]OrderEvent{
	models.OrderStatusCompleted:  StatusCompleted,
	models.OrderStatusProcessing: StatusProcessing,
}

var transitionEvents = map[transition]OrderEvent{
	{models.OrderStatusCompleted, models.OrderStatusRefunded}:   CompletedToRefunded,
	{models.OrderStatusOnHold, models.OrderStatusRefunded}:      OnHoldToRefunded,
	{models.OrderStatusProcessing, models.OrderStatusRefunded}:  ProcessingToRefunded,
	{models.OrderStatusProcessing, models.OrderStatusCancelled}: ProcessingToCancelled,
	{models.OrderStatusCompleted, models.OrderStatusCancelled}:  CompletedToCancelled,
}

// ForTransition returns the events a status change fires: the "now in
// status" event first, then the "from -> to" event. Changes with no known
// event return nil.
func ForTransition(from, to models.OrderStatus) []OrderEvent {
	if from == to {
		return nil
	}

	var out []OrderEvent
	if e, ok := statusEvents[to]; ok {
		out = append(out, e)
	}
	if e, ok := transitionEvents[transition{from: from, to: to}]; ok {
		out = append(out, e)
	}
	return out
}

// Envelope carries one event delivery. Tracking is only set for OrderCreated.
type Envelope struct {
	Event    OrderEvent
	OrderID  string
	Tracking models.Tracking
}
