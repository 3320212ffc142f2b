package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans auth events out to subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// HandlerPanicError reports a subscriber that panicked while handling an event.
type HandlerPanicError struct {
	EventType EventType
	Value     any
}

func (e *HandlerPanicError) Error() string {
	return fmt.Sprintf("handler for %s panicked: %v", e.EventType, e.Value)
}

type inMemoryDispatcher struct {
	mu          sync.RWMutex
	subscribers map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a synchronous dispatcher. Subscribing and
// publishing are safe for concurrent use.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		subscribers: make(map[EventType][]EventHandler),
	}
}

// Publish runs every subscriber for the event type in registration order.
// Handler errors and panics do not stop later handlers; they are joined into the result.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subs := d.subscribers[event.Type]
	d.mu.RUnlock()

	var errs []error
	for _, handler := range subs {
		if err := invoke(ctx, handler, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	if handler == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	// copy-on-write; Publish iterates a snapshot outside the lock
	next := make([]EventHandler, 0, len(d.subscribers[eventType])+1)
	next = append(next, d.subscribers[eventType]...)
	d.subscribers[eventType] = append(next, handler)
}

func invoke(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &HandlerPanicError{EventType: event.Type, Value: r}
		}
	}()
	return handler(ctx, event)
}
