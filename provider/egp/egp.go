// Package egp assembles the USD -> EGP strategy chain for Egypt.
//
// Priority order: Central Bank of Egypt listings (Arabic, then
// English), the CIB and Banque Misr commercial pages, and finally the
// generic mid-market API. Egypt is a sensitive market, so only the
// official sources carry real buy/sell spreads; the API fallback
// synthesizes one
package egp

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
	CountryCode types.Country = "egypt"

	currencyName = "جنيه مصري"

	cbeArabicURL  = "https://www.cbe.org.eg/ar/EconomicResearch/Statistics/Pages/ExchangeRatesListing.aspx"
	cbeEnglishURL = "https://www.cbe.org.eg/en/EconomicResearch/Statistics/Pages/ExchangeRates.aspx"
	cibURL        = "https://www.cibeg.com/ar/exchange-rates"
	banqueMisrURL = "https://www.banquemisr.com/ar/rates"
)

// Band is the EGP plausibility range for parsed USD rates
var Band = numeric.Band{Low: 5, High: 400}

// fallback is the last-resort constant pair, used only when every
// strategy in the chain comes up empty
var fallback = provider.Quote{Buy: 60, Sell: 60.15}

// apiSpread synthesizes the buy/sell pair from the API mid rate
var apiSpread = provider.Spread{Pct: 0.003, Floor: 0.05}

// NewChain creates the Egypt acquisition chain
func NewChain(timeout time.Duration, opts ...provider.ChainOption) *provider.Chain {
	strategies := []provider.Strategy{
		scrape.NewRowStrategy(
			"CBE (Arabic)",
			cbeArabicURL,
			[]string{"الدولار"},
			Band,
			timeout,
		),
		scrape.NewRowStrategy(
			"CBE (English)",
			cbeEnglishURL,
			[]string{"US Dollar"},
			Band,
			timeout,
		),
		scrape.NewBlockStrategy(
			"CIB",
			cibURL,
			[]string{"الدولار", "USD"},
			Band,
			timeout,
		),
		scrape.NewBlockStrategy(
			"Banque Misr",
			banqueMisrURL,
			[]string{"الدولار", "USD"},
			Band,
			timeout,
		),
		rateapi.New(
			"Exchangerate.host",
			rateapi.DefaultURL,
			currencies.EGP,
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
