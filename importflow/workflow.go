// Package importflow drives a single free-transfer import from validation to
// a terminal state, pushing a Session snapshot to the presenter on every
// transition.
package importflow

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flokiorg/tickethub/logger"
	"github.com/flokiorg/tickethub/rates"
	"github.com/flokiorg/tickethub/relay"
	"github.com/flokiorg/tickethub/universallink"
)

// Presenter receives every snapshot, in transition order. It is called with
// the workflow lock held and must not call back into the workflow.
type Presenter interface {
	SessionChanged(session Session)
}

type Options struct {
	Endpoint string
	// Timeout bounds each relay submission. Zero means no deadline beyond the
	// context passed to Confirm.
	Timeout time.Duration
	Now     func() time.Time
}

type Workflow struct {
	mu        sync.Mutex
	session   Session
	presenter Presenter
	client    relay.Client
	opts      Options
	attempt   uint64
	done      chan struct{}
	inflight  sync.WaitGroup
}

// New creates a workflow in the Validating state and announces it.
func New(id string, presenter Presenter, client relay.Client, opts Options) *Workflow {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	w := &Workflow{
		presenter: presenter,
		client:    client,
		opts:      opts,
		done:      make(chan struct{}),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.transition(Session{ID: id, State: StateValidating})
	return w
}

func (w *Workflow) ID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.ID
}

func (w *Workflow) Snapshot() Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

// Done is closed once the workflow reaches a terminal state.
func (w *Workflow) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until no relay submission is in flight.
func (w *Workflow) Wait() {
	w.inflight.Wait()
}

// Validated attaches a decoded free-transfer order. The relay request is built
// here so confirmation has nothing left to compute; a build failure fails the
// import as malformed.
func (w *Workflow) Validated(signedOrder universallink.SignedOrder, walletAddress string, costs rates.CostEstimate) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.expect("validated", StateValidating) {
		return false
	}

	next := w.session
	next.SignedOrder = &signedOrder

	req, err := relay.Build(signedOrder, walletAddress)
	if err != nil {
		w.log().Warn().Err(err).Msg("Failed to build relay request")
		next.State = StateFailed
		next.Reason = ReasonMalformed
		next.Error = err.Error()
		w.transition(next)
		return true
	}

	next.State = StatePromptImport
	next.TicketSummary = summarize(signedOrder, w.opts.Now())
	next.Costs = &costs
	next.Request = &req
	w.transition(next)
	return true
}

// Invalid fails a workflow whose link could not be decoded or classified.
func (w *Workflow) Invalid(err error) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.expect("invalid", StateValidating) {
		return false
	}

	next := w.session
	next.State = StateFailed
	next.Reason = ReasonMalformed
	if err != nil {
		next.Error = err.Error()
	}
	w.transition(next)
	return true
}

// Confirm records the user's confirmation and submits the relay request in
// the background. ctx must outlive the caller's request; the submission
// deadline is derived from it and Options.Timeout. Only the first confirm
// from PromptImport has any effect.
func (w *Workflow) Confirm(ctx context.Context) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.expect("confirm", StatePromptImport) {
		return false
	}

	next := w.session
	next.State = StateProcessing
	w.transition(next)

	w.attempt++
	attempt := w.attempt
	req := *next.Request

	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()

		submitCtx := ctx
		if w.opts.Timeout > 0 {
			var cancel context.CancelFunc
			submitCtx, cancel = context.WithTimeout(ctx, w.opts.Timeout)
			defer cancel()
		}

		res, err := w.client.Submit(submitCtx, w.opts.Endpoint, req)
		w.resolve(attempt, res, err)
	}()
	return true
}

// Cancel is cooperative: a request already sent is not aborted, its response
// is dropped.
func (w *Workflow) Cancel() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.expect("cancel", StateValidating, StatePromptImport, StateProcessing) {
		return false
	}

	next := w.session
	next.State = StateCancelled
	w.transition(next)
	return true
}

func (w *Workflow) resolve(attempt uint64, res *relay.Response, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session.State != StateProcessing || attempt != w.attempt {
		w.log().Info().Msg("Discarding late relay response")
		return
	}

	if err == nil && res == nil {
		err = relay.ErrTransport
	}

	next := w.session
	switch {
	case err != nil:
		next.State = StateFailed
		next.Reason = ReasonTransportFailure
		next.Error = err.Error()
		if errors.Is(err, context.DeadlineExceeded) {
			w.log().Error().Err(err).Dur("timeout", w.opts.Timeout).Msg("Relay submission timed out")
		} else {
			w.log().Error().Err(err).Msg("Relay transport failure")
		}
	case res.Accepted():
		next.State = StateSucceeded
	default:
		next.State = StateFailed
		next.Reason = ReasonServerRejected
		next.Error = string(res.Body)
		event := w.log().Warn().Int("status_code", res.StatusCode)
		if res.InvalidSignature() {
			event.Msg("Relay rejected the order signature")
		} else {
			event.Msg("Relay rejected the order")
		}
	}
	w.transition(next)
}

func (w *Workflow) expect(signal string, allowed ...State) bool {
	for _, state := range allowed {
		if w.session.State == state {
			return true
		}
	}
	w.log().Warn().Str("signal", signal).Msg("Ignoring signal in current state")
	return false
}

// transition must be called with mu held.
func (w *Workflow) transition(next Session) {
	next.Version = w.session.Version + 1
	next.UpdatedAt = w.opts.Now()
	w.session = next

	w.log().Debug().Msg("Import session changed state")
	if w.presenter != nil {
		w.presenter.SessionChanged(next)
	}
	if next.State.Terminal() {
		close(w.done)
	}
}

func (w *Workflow) log() *zerolog.Logger {
	l := logger.Logger.With().
		Str("session_id", w.session.ID).
		Str("state", string(w.session.State)).
		Logger()
	return &l
}
