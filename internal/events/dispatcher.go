package events

import (
	"context"
	"errors"
	"fmt"
)

type Handler func(ctx context.Context, env Envelope) error

// Dispatcher calls the handlers registered for an event in registration
// order. It is configured at startup and read-only afterwards.
type Dispatcher struct {
	handlers map[OrderEvent][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[OrderEvent][]Handler)}
}

func (d *Dispatcher) Register(event OrderEvent, handler Handler) {
	d.handlers[event] = append(d.handlers[event], handler)
}

func (d *Dispatcher) Handles(event OrderEvent) bool {
	return len(d.handlers[event]) > 0
}

// Dispatch runs every handler for env.Event. A failing handler does not stop
// the others; their errors are joined.
func (d *Dispatcher) Dispatch(ctx context.Context, env Envelope) error {
	var errs []error
	for _, handler := range d.handlers[env.Event] {
		if err := handler(ctx, env); err != nil {
			errs = append(errs, fmt.Errorf("%s handler: %w", env.Event, err))
		}
	}
	return errors.Join(errs...)
}
