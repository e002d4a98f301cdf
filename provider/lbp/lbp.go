// Package lbp assembles the USD -> LBP strategy chain for Lebanon.
//
// Lebanon trades almost entirely at the parallel rate; the chain
// reports a safe editorial mid from the generic API only, with a wider
// absolute spread floor to match the parallel market's spreads
package lbp

import (
	"time"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/currencies"
	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/provider/rateapi"
	"github.com/sig-0/usdreport/storage/types"
)

const (
	CountryCode types.Country = "lebanon"

	currencyName = "ليرة لبنانية"
)

// Band is the LBP plausibility range for parsed USD rates
var Band = numeric.Band{Low: 1000, High: 200000}

// fallback is the last-resort constant pair: the recent parallel mid
// with the standard spread applied
var fallback = provider.Quote{Buy: 89500, Sell: 89679}

// spread synthesizes the buy/sell pair from the API mid rate: ~0.2%
// with an absolute floor of 150 pounds
var spread = provider.Spread{Pct: 0.002, Floor: 150}

// NewChain creates the Lebanon acquisition chain
func NewChain(timeout time.Duration, opts ...provider.ChainOption) *provider.Chain {
	strategies := []provider.Strategy{
		rateapi.New(
			"Exchangerate.host",
			rateapi.DefaultURL,
			currencies.LBP,
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
