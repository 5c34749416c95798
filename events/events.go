package events

import (
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/universallink"
)

const (
	EventTypeImportStateChanged = "import_state_changed"
	EventTypePaidOrderReceived  = "paid_order_received"
)

type ImportStateChangedEvent struct {
	Session importflow.Session
}

func (e *ImportStateChangedEvent) EventType() string {
	return EventTypeImportStateChanged
}

type PaidOrderReceivedEvent struct {
	ID          string
	SignedOrder universallink.SignedOrder
	Token       universallink.TokenDescriptor
}

func (e *PaidOrderReceivedEvent) EventType() string {
	return EventTypePaidOrderReceived
}

// QueuePresenter forwards workflow snapshots onto a queue.
type QueuePresenter struct {
	queue *EventQueue
}

func NewQueuePresenter(queue *EventQueue) *QueuePresenter {
	return &QueuePresenter{queue: queue}
}

func (p *QueuePresenter) SessionChanged(session importflow.Session) {
	p.queue.Enqueue(&ImportStateChangedEvent{Session: session})
}

var _ Event = (*ImportStateChangedEvent)(nil)
var _ Event = (*PaidOrderReceivedEvent)(nil)
var _ importflow.Presenter = (*QueuePresenter)(nil)
