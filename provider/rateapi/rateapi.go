// Package rateapi implements the generic last-resort rate strategy,
// querying a public API that returns a single USD mid-market value
// from which a buy/sell pair is synthesized
package rateapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/currencies"
	"github.com/sig-0/usdreport/provider/numeric"
)

// DefaultURL is the public mid-market rate API endpoint
const DefaultURL = "https://api.exchangerate.host/latest"

var errNoMidRate = errors.New("no plausible mid rate in API response")

// latestResponse is the rate API response body
type latestResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// Strategy queries a mid-market rate API for a single symbol
type Strategy struct {
	client *http.Client

	name   string
	url    string
	symbol currencies.Symbol
	band   numeric.Band
	spread provider.Spread
}

// New creates a new rate API strategy for the given currency symbol
func New(
	name string,
	apiURL string,
	symbol currencies.Symbol,
	band numeric.Band,
	spread provider.Spread,
	timeout time.Duration,
) *Strategy {
	return &Strategy{
		client: &http.Client{
			Timeout: timeout,
		},
		name:   name,
		url:    apiURL,
		symbol: symbol,
		band:   band,
		spread: spread,
	}
}

func (s *Strategy) Name() string {
	return s.name
}

func (s *Strategy) Attempt(ctx context.Context) (*provider.Quote, error) {
	query := url.Values{
		"base":    []string{currencies.USD.String()},
		"symbols": []string{s.symbol.String()},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		s.url+"?"+query.Encode(),
		http.NoBody,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to create new GET request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to execute GET request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("invalid status code received: %d", resp.StatusCode)
	}

	var body latestResponse

	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("unable to decode API response: %w", err)
	}

	mid, ok := body.Rates[s.symbol.String()]
	if !ok || mid <= 0 || !s.band.Contains(mid) {
		return nil, errNoMidRate
	}

	quote := s.spread.Apply(mid)

	return &quote, nil
}
