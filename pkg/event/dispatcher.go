package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/caresync/hms-api/pkg/logger"
)

// Dispatcher delivers events synchronously, in registration order, to
// every handler subscribed to the event's type. Synchronous delivery
// keeps the one-notification-per-transition contract inside the
// request that caused the transition.
type Dispatcher struct {
	handlers map[Type][]Handler
	logger   *logger.Logger
}

func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[Type][]Handler),
		logger:   log,
	}
}

// Subscribe registers a handler for one event type. Not safe for
// concurrent use; subscriptions happen during wiring, before serving.
func (d *Dispatcher) Subscribe(typ Type, h Handler) {
	d.handlers[typ] = append(d.handlers[typ], h)
}

// Emit dispatches the event to all subscribed handlers. A failing
// handler is logged and does not stop delivery to the rest, nor does
// it fail the operation that emitted the event.
func (d *Dispatcher) Emit(ctx context.Context, typ Type, payload interface{}) error {
	evt := Event{
		ID:         uuid.New(),
		Type:       typ,
		OccurredAt: time.Now(),
		Payload:    payload,
	}

	for _, h := range d.handlers[typ] {
		if err := h.Handle(ctx, evt); err != nil {
			d.logger.Error(err, "event handler failed", "event_type", string(typ), "event_id", evt.ID.String())
		}
	}
	return nil
}
