package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flokiorg/tickethub/config"
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/keys"
	"github.com/flokiorg/tickethub/logger"
	"github.com/flokiorg/tickethub/pkg/version"
	"github.com/flokiorg/tickethub/service"
)

type api struct {
	svc  service.Service
	cfg  config.Config
	keys keys.Keys
}

func NewAPI(svc service.Service, cfg config.Config, keys keys.Keys) *api {
	return &api{
		svc:  svc,
		cfg:  cfg,
		keys: keys,
	}
}

func (api *api) GetInfo(ctx context.Context) (*InfoResponse, error) {
	build := version.Current()
	info := &InfoResponse{
		Version:       build.Version,
		Release:       build.Release,
		LinkPrefix:    api.cfg.GetLinkPrefix(),
		RelayEndpoint: api.cfg.GetRelayEndpoint(),
		Currency:      api.cfg.GetCurrency(),
		ActiveImports: len(api.svc.ListImports()),
	}

	walletAddress, err := api.keys.GetWalletAddress()
	if err != nil && !errors.Is(err, keys.ErrNoWallet) {
		logger.Logger.Warn().Err(err).Msg("Configured wallet address is unusable")
	}
	info.WalletAddress = walletAddress
	info.WalletReady = err == nil

	return info, nil
}

func (api *api) HandleLink(ctx context.Context, request *HandleLinkRequest) (*service.HandleResult, error) {
	url := strings.TrimSpace(request.URL)
	if url == "" {
		return nil, errors.New("no url provided")
	}
	return api.svc.HandleUniversalLink(ctx, url)
}

func (api *api) ListImports() []importflow.Session {
	return api.svc.ListImports()
}

func (api *api) GetImport(id string) (*importflow.Session, error) {
	return api.svc.GetImport(id)
}

func (api *api) ConfirmImport(id string) (*importflow.Session, error) {
	return api.svc.ConfirmImport(id)
}

func (api *api) CancelImport(id string) (*importflow.Session, error) {
	return api.svc.CancelImport(id)
}

func (api *api) RetryImport(ctx context.Context, id string) (*service.HandleResult, error) {
	return api.svc.RetryImport(ctx, id)
}

func (api *api) AcknowledgeImport(id string) error {
	return api.svc.AcknowledgeImport(id)
}

func (api *api) GetSettings() *SettingsResponse {
	return &SettingsResponse{
		RelayEndpoint: api.cfg.GetRelayEndpoint(),
		WalletAddress: api.cfg.GetWalletAddress(),
		RatesURL:      api.cfg.GetRatesURL(),
		Currency:      api.cfg.GetCurrency(),
	}
}

// UpdateSettings validates every field before storing any of them.
func (api *api) UpdateSettings(request *UpdateSettingsRequest) error {
	if err := validateSettings(request); err != nil {
		return err
	}

	if request.RelayEndpoint != nil {
		if err := api.cfg.SetRelayEndpoint(*request.RelayEndpoint); err != nil {
			return err
		}
	}
	if request.WalletAddress != nil {
		if err := api.cfg.SetWalletAddress(*request.WalletAddress); err != nil {
			return err
		}
	}
	if request.RatesURL != nil {
		if err := api.cfg.SetRatesURL(*request.RatesURL); err != nil {
			return err
		}
	}
	if request.Currency != nil {
		if err := api.cfg.SetCurrency(*request.Currency); err != nil {
			return err
		}
	}
	logger.Logger.Info().Interface("settings", api.GetSettings()).Msg("Updated settings")
	return nil
}

func validateSettings(request *UpdateSettingsRequest) error {
	if request.RelayEndpoint != nil {
		if err := config.ValidateRelayEndpoint(*request.RelayEndpoint); err != nil {
			return fmt.Errorf("relay endpoint: %w", err)
		}
	}
	if request.WalletAddress != nil {
		if err := config.ValidateWalletAddress(*request.WalletAddress); err != nil {
			return fmt.Errorf("wallet address: %w", err)
		}
	}
	if request.RatesURL != nil {
		if err := config.ValidateRatesURL(*request.RatesURL); err != nil {
			return fmt.Errorf("rates url: %w", err)
		}
	}
	if request.Currency != nil {
		if err := config.ValidateCurrency(*request.Currency); err != nil {
			return fmt.Errorf("currency: %w", err)
		}
	}
	return nil
}
