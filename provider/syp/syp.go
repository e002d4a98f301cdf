// Package syp assembles the USD -> SYP strategy chain for Syria.
//
// The Syrian market runs on volatile parallel rates, so the chain
// reports a safe editorial mid from the generic API only. The spread
// floor of 50 pounds dominates the percentage at current magnitudes
package syp

import (
	"time"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/currencies"
	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/provider/rateapi"
	"github.com/sig-0/usdreport/storage/types"
)

const (
	CountryCode types.Country = "syria"

	currencyName = "ليرة سورية"
)

// Band is the SYP plausibility range for parsed USD rates
var Band = numeric.Band{Low: 1000, High: 50000}

// fallback is the last-resort constant pair: the recent editorial mid
// with the standard spread applied
var fallback = provider.Quote{Buy: 15000, Sell: 15050}

// spread synthesizes the buy/sell pair from the API mid rate: ~0.2%
// with an absolute floor of 50 pounds
var spread = provider.Spread{Pct: 0.002, Floor: 50}

// NewChain creates the Syria acquisition chain
func NewChain(timeout time.Duration, opts ...provider.ChainOption) *provider.Chain {
	strategies := []provider.Strategy{
		rateapi.New(
			"Exchangerate.host",
			rateapi.DefaultURL,
			currencies.SYP,
			Band,
			spread,
			timeout,
		),
	}

	return provider.NewChain(
		CountryCode,
		currencyName,
		Band,
		fallback,
		strategies,
		opts...,
	)
}
