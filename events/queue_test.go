package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flokiorg/tickethub/importflow"
)

type testEvent struct {
	id string
}

func (e *testEvent) EventType() string {
	return "test_event"
}

func nextEvents(t *testing.T, queue *EventQueue, n int) []Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	events := make([]Event, 0, n)
	for i := 0; i < n; i++ {
		event, err := queue.NextEvent(ctx)
		require.NoError(t, err)
		events = append(events, event)
	}
	return events
}

func assertEmpty(t *testing.T, queue *EventQueue) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := queue.NextEvent(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestEventQueue_Enqueue(t *testing.T) {
	queue := NewEventQueue(10)
	defer queue.Close()

	require.True(t, queue.Enqueue(&testEvent{id: "test1"}))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	received, err := queue.NextEvent(ctx)
	require.NoError(t, err)

	testEv, ok := received.(*testEvent)
	require.True(t, ok)
	assert.Equal(t, "test1", testEv.id)
}

func TestEventQueue_PreservesOrder(t *testing.T) {
	queue := NewEventQueue(10)
	defer queue.Close()

	for i := 0; i < 5; i++ {
		require.True(t, queue.Enqueue(&testEvent{id: string(rune('a' + i))}))
	}

	events := nextEvents(t, queue, 5)
	for i, event := range events {
		assert.Equal(t, string(rune('a'+i)), event.(*testEvent).id)
	}
}

func TestEventQueue_ContextCancellation(t *testing.T) {
	queue := NewEventQueue(10)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := queue.NextEvent(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEventQueue_BufferFull(t *testing.T) {
	queue := NewEventQueue(2)
	defer queue.Close()

	assert.True(t, queue.Enqueue(&testEvent{id: "1"}))
	assert.True(t, queue.Enqueue(&testEvent{id: "2"}))
	assert.False(t, queue.Enqueue(&testEvent{id: "3"}))

	events := nextEvents(t, queue, 2)
	assert.Equal(t, "2", events[1].(*testEvent).id)
	assertEmpty(t, queue)
}

func TestEventQueue_Closed(t *testing.T) {
	queue := NewEventQueue(2)
	queue.Enqueue(&testEvent{id: "1"})
	queue.Close()

	assert.False(t, queue.Enqueue(&testEvent{id: "2"}))

	event, err := queue.NextEvent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1", event.(*testEvent).id)

	_, err = queue.NextEvent(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestQueuePresenter(t *testing.T) {
	queue := NewEventQueue(4)
	defer queue.Close()

	NewQueuePresenter(queue).SessionChanged(importflow.Session{ID: "s1", State: importflow.StatePromptImport})

	events := nextEvents(t, queue, 1)
	changed, ok := events[0].(*ImportStateChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "s1", changed.Session.ID)
	assert.Equal(t, EventTypeImportStateChanged, changed.EventType())
}
