package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/flokiorg/tickethub/config"
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/keys"
	"github.com/flokiorg/tickethub/rates"
	"github.com/flokiorg/tickethub/relay"
	"github.com/flokiorg/tickethub/universallink"
)

var (
	ErrImportNotFound    = errors.New("import session not found")
	ErrImportNotTerminal = errors.New("import session is still running")
	ErrImportNotRetrying = errors.New("import session cannot be retried")
)

// PaidOrderImporter imports paid orders on-chain. Calls must not block; the
// service does not wait for the outcome.
type PaidOrderImporter interface {
	ImportPaidSignedOrder(signedOrder universallink.SignedOrder, token universallink.TokenDescriptor)
}

// HandleResult tells the caller whether a URL was a transfer link and, for
// free transfers and broken links, which session now tracks it.
type HandleResult struct {
	Handled bool                `json:"handled"`
	Kind    string              `json:"kind,omitempty"`
	Session *importflow.Session `json:"session,omitempty"`
}

type Service interface {
	HandleUniversalLink(ctx context.Context, url string) (*HandleResult, error)
	ConfirmImport(id string) (*importflow.Session, error)
	CancelImport(id string) (*importflow.Session, error)
	RetryImport(ctx context.Context, id string) (*HandleResult, error)
	AcknowledgeImport(id string) error
	GetImport(id string) (*importflow.Session, error)
	ListImports() []importflow.Session

	GetDB() *gorm.DB
	GetConfig() config.Config
	GetKeys() keys.Keys
	Shutdown()
}

// Options overrides collaborators; nil fields get the production defaults.
type Options struct {
	Keys              keys.Keys
	RelayClient       relay.Client
	RateService       rates.RateService
	PaidOrderImporter PaidOrderImporter
}
