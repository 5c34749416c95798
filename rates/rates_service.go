package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/flokiorg/tickethub/logger"
)

type rateService struct {
	cfg    Settings
	client *http.Client
}

func NewRateService(cfg Settings) *rateService {
	return &rateService{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (svc *rateService) GetEthRate(ctx context.Context) (*EthRate, error) {
	baseURL := svc.cfg.GetRatesURL()
	if baseURL == "" {
		return nil, errors.New("no rates url configured")
	}
	currency := strings.ToUpper(svc.cfg.GetCurrency())

	url := fmt.Sprintf("%s/rates.json", strings.TrimSuffix(baseURL, "/"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		logger.Logger.Error().
			Str("currency", currency).
			Err(err).
			Msg("Error creating request to ETH rate endpoint")
		return nil, err
	}
	setDefaultRequestHeaders(req)

	res, err := svc.client.Do(req)
	if err != nil {
		logger.Logger.Error().
			Str("currency", currency).
			Err(err).
			Msg("Failed to fetch ETH rate from API")
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		logger.Logger.Error().Err(err).
			Str("url", url).
			Msg("Failed to read response body")
		return nil, errors.New("failed to read response body")
	}

	if res.StatusCode >= 300 {
		logger.Logger.Error().
			Str("currency", currency).
			Str("body", string(body)).
			Int("status_code", res.StatusCode).
			Msg("ETH rate endpoint returned non-success code")
		return nil, fmt.Errorf("eth rate endpoint returned non-success code: %s", string(body))
	}

	var rates map[string]EthRate
	err = json.Unmarshal(body, &rates)
	if err != nil {
		logger.Logger.Error().
			Str("currency", currency).
			Str("body", string(body)).
			Err(err).
			Msg("Failed to decode ETH rate API response")
		return nil, err
	}

	rate, ok := rates[currency]
	if !ok {
		return nil, fmt.Errorf("no ETH rate for currency %s", currency)
	}
	if rate.Code == "" {
		rate.Code = currency
	}
	return &rate, nil
}

func setDefaultRequestHeaders(req *http.Request) {
	req.Header.Set("User-Agent", "Tickethub")
	req.Header.Set("Content-Type", "application/json")
}
