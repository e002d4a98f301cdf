package provider

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/storage/types"
)

var (
	ErrUnknownCountry = errors.New("no rate chain registered for country")
	ErrInvalidRate    = errors.New("invalid rate values after normalization")
)

// ratePrecision is the decimal precision rates are normalized to
// after acquisition, regardless of which strategy supplied the values
const ratePrecision = 6

// Registry is the static mapping from country code to its strategy
// chain, built once at startup
type Registry struct {
	chains map[types.Country]*Chain
}

// NewRegistry creates a registry from the given chains
func NewRegistry(chains ...*Chain) *Registry {
	r := &Registry{
		chains: make(map[types.Country]*Chain, len(chains)),
	}

	for _, chain := range chains {
		r.chains[chain.Country()] = chain
	}

	return r
}

// Countries returns the registered country codes, sorted
func (r *Registry) Countries() []types.Country {
	out := make([]types.Country, 0, len(r.chains))

	for country := range r.chains {
		out = append(out, country)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i] < out[j]
	})

	return out
}

// Chain returns the chain registered for the given country, if any
func (r *Registry) Chain(country types.Country) (*Chain, bool) {
	chain, ok := r.chains[country]

	return chain, ok
}

// Rate is the acquisition entry point. It fails only when no chain is
// registered for the country (a configuration error) or when the
// acquired values do not survive normalization (a contract violation
// in a country chain, fatal for that country's run). Network and parse
// failures inside strategies are absorbed by the chain and never
// surface here
func (r *Registry) Rate(ctx context.Context, country types.Country) (*types.Rate, error) {
	chain, ok := r.chains[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country.String())
	}

	rate := chain.Acquire(ctx)

	if err := normalizeRate(rate); err != nil {
		return nil, fmt.Errorf("country %q: %w", country.String(), err)
	}

	return rate, nil
}

// normalizeRate rounds the rate values to a fixed precision and
// rejects absent or non-finite values
func normalizeRate(rate *types.Rate) error {
	rate.Buy = numeric.Round(rate.Buy, ratePrecision)
	rate.Sell = numeric.Round(rate.Sell, ratePrecision)

	for _, v := range []float64{rate.Buy, rate.Sell} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return fmt.Errorf("%w: buy=%v, sell=%v", ErrInvalidRate, rate.Buy, rate.Sell)
		}
	}

	return nil
}
