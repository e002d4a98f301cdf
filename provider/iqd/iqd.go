// Package iqd assembles the USD -> IQD strategy chain for Iraq.
//
// The stable public API is the primary source here; the Central Bank
// of Iraq site only hints at the rate in running text, so it serves as
// a light scraping backup. The Iraqi market has a gap between official
// and parallel rates; only the official mid is reported
package iqd

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
	CountryCode types.Country = "iraq"

	currencyName = "دينار عراقي"

	cbiURL = "https://cbi.iq"
)

// Band is the IQD plausibility range for parsed USD rates
var Band = numeric.Band{Low: 900, High: 2001}

// fallback is the last-resort constant pair: the recent official mid
// with the standard spread applied
var fallback = provider.Quote{Buy: 1310, Sell: 1312.62}

// spread applies to any mid-market value, API or scraped: ~0.2% with
// an absolute floor of one dinar
var spread = provider.Spread{Pct: 0.002, Floor: 1}

// NewChain creates the Iraq acquisition chain
func NewChain(timeout time.Duration, opts ...provider.ChainOption) *provider.Chain {
	strategies := []provider.Strategy{
		rateapi.New(
			"Exchangerate.host",
			rateapi.DefaultURL,
			currencies.IQD,
			Band,
			spread,
			timeout,
		),
		scrape.NewTextScanStrategy(
			"CBI",
			cbiURL,
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
