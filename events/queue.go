// Package events carries import notifications from the workflow to the
// consumers that persist and publish them.
package events

import (
	"context"
	"sync"

	"github.com/flokiorg/tickethub/logger"
)

type Event interface {
	EventType() string
}

// EventQueue is a bounded FIFO. Enqueue never blocks so it can be called from
// inside a workflow transition.
type EventQueue struct {
	events chan Event
	mu     sync.RWMutex
	closed bool
}

func NewEventQueue(bufferSize int) *EventQueue {
	if bufferSize <= 0 {
		bufferSize = 1000
	}
	return &EventQueue{
		events: make(chan Event, bufferSize),
	}
}

// Enqueue adds an event, dropping it with a warning when the queue is full or
// closed.
func (eq *EventQueue) Enqueue(event Event) bool {
	eq.mu.RLock()
	defer eq.mu.RUnlock()

	if eq.closed {
		logger.Logger.Warn().Str("event_type", event.EventType()).Msg("Event queue closed, dropping event")
		return false
	}

	select {
	case eq.events <- event:
		return true
	default:
		logger.Logger.Warn().Str("event_type", event.EventType()).Msg("Event queue full, dropping event")
		return false
	}
}

// NextEvent blocks until the next event is available or ctx is done. It
// returns context.Canceled once the queue is closed and drained.
func (eq *EventQueue) NextEvent(ctx context.Context) (Event, error) {
	select {
	case event, ok := <-eq.events:
		if !ok {
			return nil, context.Canceled
		}
		return event, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (eq *EventQueue) Close() {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if !eq.closed {
		eq.closed = true
		close(eq.events)
	}
}
