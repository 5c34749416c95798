package service

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/flokiorg/tickethub/constants"
	"github.com/flokiorg/tickethub/events"
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/logger"
	"github.com/flokiorg/tickethub/universallink"
)

// HandleUniversalLink decodes a transfer link and routes it. URLs that do not
// carry the configured prefix are reported as not handled.
func (svc *service) HandleUniversalLink(ctx context.Context, url string) (*HandleResult, error) {
	if svc.ctx.Err() != nil {
		return nil, svc.ctx.Err()
	}

	if !svc.codec.Matches(url) {
		logger.Logger.Debug().Str("url", url).Msg("Ignoring URL without transfer link prefix")
		return &HandleResult{Handled: false}, nil
	}

	signedOrder, err := svc.codec.Decode(url)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to decode transfer link")
		wf := svc.newWorkflow()
		wf.Invalid(err)
		return svc.result(constants.IMPORT_KIND_FREE, wf), nil
	}

	switch route := universallink.Classify(signedOrder).(type) {
	case *universallink.PaidTransfer:
		token := universallink.NewTokenDescriptor(route.Order, svc.cfg.GetTokenName(), svc.cfg.GetTokenSymbol())
		logger.Logger.Info().
			Str("contract", token.Contract.Hex()).
			Str("price", route.Order.Order.PriceOrZero().String()).
			Msg("Handing off paid order")
		svc.paidImporter.ImportPaidSignedOrder(route.Order, token)
		return &HandleResult{Handled: true, Kind: constants.IMPORT_KIND_PAID}, nil
	case *universallink.FreeTransfer:
		wf := svc.startFreeImport(ctx, route.Order)
		return svc.result(constants.IMPORT_KIND_FREE, wf), nil
	default:
		return nil, errors.New("unknown transfer route")
	}
}

func (svc *service) startFreeImport(ctx context.Context, signedOrder universallink.SignedOrder) *importflow.Workflow {
	walletAddress, err := svc.keys.GetWalletAddress()
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("No recipient wallet for free import")
	}

	costs := svc.estimator.Estimate(ctx, signedOrder.Order.PriceOrZero())

	wf := svc.newWorkflow()
	wf.Validated(signedOrder, walletAddress, costs)
	return wf
}

func (svc *service) newWorkflow() *importflow.Workflow {
	wf := importflow.New(uuid.NewString(), svc.presenter, svc.relayClient, importflow.Options{
		Endpoint: svc.cfg.GetRelayEndpoint(),
		Timeout:  svc.cfg.GetRelayTimeout(),
	})

	svc.sessionsMu.Lock()
	svc.sessions[wf.ID()] = wf
	svc.sessionsMu.Unlock()
	return wf
}

func (svc *service) result(kind string, wf *importflow.Workflow) *HandleResult {
	session := wf.Snapshot()
	return &HandleResult{Handled: true, Kind: kind, Session: &session}
}

func (svc *service) workflow(id string) (*importflow.Workflow, error) {
	svc.sessionsMu.Lock()
	defer svc.sessionsMu.Unlock()

	wf, ok := svc.sessions[id]
	if !ok {
		return nil, ErrImportNotFound
	}
	return wf, nil
}

// ConfirmImport submits the prepared relay request. Confirming a session that
// is not awaiting confirmation is a no-op; the current snapshot is returned
// either way.
func (svc *service) ConfirmImport(id string) (*importflow.Session, error) {
	if svc.ctx.Err() != nil {
		return nil, svc.ctx.Err()
	}
	wf, err := svc.workflow(id)
	if err != nil {
		return nil, err
	}
	// the submission outlives the HTTP request that confirmed it
	wf.Confirm(svc.ctx)
	session := wf.Snapshot()
	return &session, nil
}

func (svc *service) CancelImport(id string) (*importflow.Session, error) {
	wf, err := svc.workflow(id)
	if err != nil {
		return nil, err
	}
	wf.Cancel()
	session := wf.Snapshot()
	return &session, nil
}

// RetryImport starts a new session from the order of a failed one. The failed
// session stays terminal.
func (svc *service) RetryImport(ctx context.Context, id string) (*HandleResult, error) {
	if svc.ctx.Err() != nil {
		return nil, svc.ctx.Err()
	}
	wf, err := svc.workflow(id)
	if err != nil {
		return nil, err
	}

	previous := wf.Snapshot()
	if previous.State != importflow.StateFailed || !previous.Reason.Retryable() || previous.SignedOrder == nil {
		return nil, ErrImportNotRetrying
	}

	logger.Logger.Info().Str("session_id", id).Str("reason", string(previous.Reason)).Msg("Retrying import")
	next := svc.startFreeImport(ctx, *previous.SignedOrder)
	return svc.result(constants.IMPORT_KIND_FREE, next), nil
}

// AcknowledgeImport releases a terminal session once the user has seen the
// outcome. Its last snapshot remains queryable from the database.
func (svc *service) AcknowledgeImport(id string) error {
	svc.sessionsMu.Lock()
	defer svc.sessionsMu.Unlock()

	wf, ok := svc.sessions[id]
	if !ok {
		return ErrImportNotFound
	}
	if !wf.Snapshot().State.Terminal() {
		return ErrImportNotTerminal
	}
	delete(svc.sessions, id)
	return nil
}

func (svc *service) GetImport(id string) (*importflow.Session, error) {
	wf, err := svc.workflow(id)
	if err == nil {
		session := wf.Snapshot()
		return &session, nil
	}
	return svc.store.loadSession(id)
}

// ListImports returns the sessions not yet acknowledged, most recent first.
func (svc *service) ListImports() []importflow.Session {
	svc.sessionsMu.Lock()
	sessions := make([]importflow.Session, 0, len(svc.sessions))
	for _, wf := range svc.sessions {
		sessions = append(sessions, wf.Snapshot())
	}
	svc.sessionsMu.Unlock()

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions
}

// queuedPaidOrderImporter records paid orders through the event queue so they
// are persisted for the on-chain importer to pick up.
type queuedPaidOrderImporter struct {
	queue *events.EventQueue
}

func newQueuedPaidOrderImporter(queue *events.EventQueue) *queuedPaidOrderImporter {
	return &queuedPaidOrderImporter{queue: queue}
}

func (importer *queuedPaidOrderImporter) ImportPaidSignedOrder(signedOrder universallink.SignedOrder, token universallink.TokenDescriptor) {
	id := uuid.NewString()
	queued := importer.queue.Enqueue(&events.PaidOrderReceivedEvent{
		ID:          id,
		SignedOrder: signedOrder,
		Token:       token,
	})
	if !queued {
		logger.Logger.Error().
			Str("id", id).
			Str("contract", token.Contract.Hex()).
			Msg("Paid order was not handed off")
	}
}
