package importflow

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/flokiorg/tickethub/rates"
	"github.com/flokiorg/tickethub/relay"
	"github.com/flokiorg/tickethub/universallink"
)

type State string

const (
	StateValidating   State = "validating"
	StatePromptImport State = "prompt_import"
	StateProcessing   State = "processing"
	StateSucceeded    State = "succeeded"
	StateFailed       State = "failed"
	StateCancelled    State = "cancelled"
)

func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateFailed || s == StateCancelled
}

type FailureReason string

const (
	ReasonMalformed        FailureReason = "malformed"
	ReasonServerRejected   FailureReason = "server_rejected"
	ReasonTransportFailure FailureReason = "transport_failure"
)

// Retryable reports whether the same order can be submitted again.
func (r FailureReason) Retryable() bool {
	return r == ReasonServerRejected || r == ReasonTransportFailure
}

// TicketSummary is the display data derived from a free-transfer order.
type TicketSummary struct {
	Contract common.Address  `json:"contract"`
	Indices  []uint16        `json:"indices"`
	Count    int             `json:"count"`
	Expiry   time.Time       `json:"expiry"`
	Expired  bool            `json:"expired"`
	Issuer   *common.Address `json:"issuer,omitempty"`
}

// Session is an immutable snapshot of an import. Every transition produces a
// new one with a higher Version.
type Session struct {
	ID            string                     `json:"id"`
	Version       uint64                     `json:"version"`
	State         State                      `json:"state"`
	Reason        FailureReason              `json:"reason,omitempty"`
	Error         string                     `json:"error,omitempty"`
	SignedOrder   *universallink.SignedOrder `json:"signedOrder,omitempty"`
	TicketSummary *TicketSummary             `json:"ticketSummary,omitempty"`
	Costs         *rates.CostEstimate        `json:"costs,omitempty"`
	Request       *relay.Request             `json:"request,omitempty"`
	UpdatedAt     time.Time                  `json:"updatedAt"`
}

func summarize(signedOrder universallink.SignedOrder, now time.Time) *TicketSummary {
	order := signedOrder.Order
	summary := &TicketSummary{
		Contract: order.ContractAddress,
		Indices:  append([]uint16(nil), order.Indices...),
		Count:    len(order.Indices),
		Expiry:   order.ExpiresAt(),
		Expired:  order.Expired(now),
	}
	if issuer, err := signedOrder.Signer(); err == nil {
		summary.Issuer = &issuer
	}
	return summary
}
