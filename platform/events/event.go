// Package events carries domain events between bounded contexts so that
// modules like the dashboard can react to changes without importing the
// modules that produce them. It is platform infrastructure and knows
// nothing about the events' payloads.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event that travels over the bus.
type Event interface {
	// EventName identifies the event type, e.g. "project.changed".
	EventName() string
	// OccurredAt reports when the change happened.
	OccurredAt() time.Time
}

// BaseEvent carries the timestamp shared by all concrete events.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt reports when the change happened.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler reacts to events it subscribed for.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc lets a plain function subscribe as a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events to subscribed handlers.
type Bus interface {
	// Publish dispatches the event to every handler subscribed to its name.
	// Dispatch is asynchronous; handler errors are logged, not returned.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches the event and waits for every handler,
	// returning the first handler error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler under an event name as returned by
	// Event.EventName().
	Subscribe(eventName string, handler Handler)
}
