package shortener

import (
	"context"
	"sync"
)

// Observer receives the finalized fields of a link about to be persisted.
type Observer func(ctx context.Context, fields Fields)

// CreatingEvent returns the notification name raised before entity records are written.
func CreatingEvent(entity string) string {
	return entity + ".creating"
}

// Observers is a registry of callbacks keyed by event name. The zero value is not usable;
// a nil *Observers drops every notification.
type Observers struct {
	mu       sync.RWMutex
	handlers map[string][]Observer
}

// NewObservers creates an empty registry.
func NewObservers() *Observers {
	return &Observers{handlers: make(map[string][]Observer)}
}

// Subscribe registers observer for event.
func (o *Observers) Subscribe(event string, observer Observer) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.handlers[event] = append(o.handlers[event], observer)
}

// Publish calls every observer of event in subscription order.
func (o *Observers) Publish(ctx context.Context, event string, fields Fields) {
	if o == nil {
		return
	}

	o.mu.RLock()
	handlers := o.handlers[event]
	o.mu.RUnlock()

	for _, handle := range handlers {
		handle(ctx, fields)
	}
}
