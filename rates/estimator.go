package rates

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/flokiorg/tickethub/logger"
)

const weiDecimals = 18

type Estimator struct {
	rates RateService
}

// NewEstimator accepts a nil RateService, in which case only the ether cost is
// estimated.
func NewEstimator(rates RateService) *Estimator {
	return &Estimator{rates: rates}
}

func (e *Estimator) Estimate(ctx context.Context, priceWei *big.Int) CostEstimate {
	if priceWei == nil {
		priceWei = new(big.Int)
	}
	eth := decimal.NewFromBigInt(priceWei, -weiDecimals)
	estimate := CostEstimate{Eth: eth}

	if e.rates == nil {
		return estimate
	}
	rate, err := e.rates.GetEthRate(ctx)
	if err != nil || rate == nil {
		logger.Logger.Warn().Err(err).Msg("No exchange rate, omitting fiat cost")
		return estimate
	}

	perEth, err := decimal.NewFromString(rate.Rate)
	if err != nil {
		perEth = decimal.NewFromFloat(rate.RateFloat)
	}
	if !perEth.IsPositive() {
		logger.Logger.Warn().Str("rate", rate.Rate).Float64("rate_float", rate.RateFloat).Msg("Unusable exchange rate, omitting fiat cost")
		return estimate
	}
	fiat := eth.Mul(perEth).Round(2)
	estimate.Fiat = &fiat
	estimate.Currency = rate.Code
	return estimate
}
