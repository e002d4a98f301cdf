// Package jod assembles the USD -> JOD strategy chain for Jordan.
//
// The dinar is pegged, so the chain is short: the Central Bank of
// Jordan listing, then the generic API. The pegged mid (~0.709) is
// small enough that the spread floor matters more than the percentage
package jod

import (
	"time"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/currencies"
	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/provider/rateapi"
	"github.com/sig-0/usdreport/provider/scrape"
	"github.com/sig-0/usdreport/storage/types"
)

const (
	CountryCode types.Country = "jordan"

	currencyName = "دينار أردني"

	cbjURL = "https://www.cbj.gov.jo/Pages/viewpage.aspx?pageID=163"
)

// Band is the JOD plausibility range for parsed USD rates
var Band = numeric.Band{Low: 0.3, High: 2}

// fallback is the last-resort constant pair around the peg
var fallback = provider.Quote{Buy: 0.709, Sell: 0.714}

// apiSpread synthesizes the buy/sell pair from the API mid rate
var apiSpread = provider.Spread{Pct: 0.003, Floor: 0.005}

// NewChain creates the Jordan acquisition chain
func NewChain(timeout time.Duration, opts ...provider.ChainOption) *provider.Chain {
	strategies := []provider.Strategy{
		scrape.NewRowStrategy(
			"CBJ",
			cbjURL,
			[]string{"الدولار", "US Dollar"},
			Band,
			timeout,
		),
		rateapi.New(
			"Exchangerate.host",
			rateapi.DefaultURL,
			currencies.JOD,
			Band,
			apiSpread,
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
