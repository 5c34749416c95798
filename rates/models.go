package rates

import (
	"context"

	"github.com/shopspring/decimal"
)

type RateService interface {
	// GetEthRate returns the price of one ether in the configured currency.
	GetEthRate(ctx context.Context) (*EthRate, error)
}

// Settings is the slice of config the rate service reads.
type Settings interface {
	GetRatesURL() string
	GetCurrency() string
}

type EthRate struct {
	Code      string  `json:"code"`
	Symbol    string  `json:"symbol"`
	Rate      string  `json:"rate"`
	RateFloat float64 `json:"rate_float"`
}

// CostEstimate is what the user pays to import an order. Fiat is nil when no
// exchange rate was available.
type CostEstimate struct {
	Eth      decimal.Decimal  `json:"eth"`
	Fiat     *decimal.Decimal `json:"fiat,omitempty"`
	Currency string           `json:"currency,omitempty"`
}
