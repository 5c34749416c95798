package api

import (
	"context"

	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/service"
)

type API interface {
	GetInfo(ctx context.Context) (*InfoResponse, error)
	HandleLink(ctx context.Context, request *HandleLinkRequest) (*service.HandleResult, error)
	ListImports() []importflow.Session
	GetImport(id string) (*importflow.Session, error)
	ConfirmImport(id string) (*importflow.Session, error)
	CancelImport(id string) (*importflow.Session, error)
	RetryImport(ctx context.Context, id string) (*service.HandleResult, error)
	AcknowledgeImport(id string) error
	GetSettings() *SettingsResponse
	UpdateSettings(request *UpdateSettingsRequest) error
}

type InfoResponse struct {
	Version       string `json:"version"`
	Release       bool   `json:"release"`
	LinkPrefix    string `json:"linkPrefix"`
	RelayEndpoint string `json:"relayEndpoint"`
	WalletAddress string `json:"walletAddress"`
	WalletReady   bool   `json:"walletReady"`
	Currency      string `json:"currency"`
	ActiveImports int    `json:"activeImports"`
}

type HandleLinkRequest struct {
	URL string `json:"url"`
}

type SettingsResponse struct {
	RelayEndpoint string `json:"relayEndpoint"`
	WalletAddress string `json:"walletAddress"`
	RatesURL      string `json:"ratesUrl"`
	Currency      string `json:"currency"`
}

// UpdateSettingsRequest only changes the fields that are set.
type UpdateSettingsRequest struct {
	RelayEndpoint *string `json:"relayEndpoint"`
	WalletAddress *string `json:"walletAddress"`
	RatesURL      *string `json:"ratesUrl"`
	Currency      *string `json:"currency"`
}
