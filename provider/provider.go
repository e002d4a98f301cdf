package provider

import (
	"context"
	"io"
	"log/slog"

	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/storage/types"
)

// Quote is a raw (buy, sell) pair produced by a strategy,
// before provenance and country metadata are attached
type Quote struct {
	Buy  float64
	Sell float64
}

// Strategy is a single attempt at obtaining a country's USD rate pair
// from one external provider. "No value" is an error return, never a
// panic: provider pages change structure over time, and a strategy
// coming up empty is expected behavior, not a bug
type Strategy interface {
	// Name returns the provenance label recorded when this strategy wins
	Name() string

	// Attempt tries to obtain a quote from the provider
	Attempt(ctx context.Context) (*Quote, error)
}

// Spread synthesizes a buy/sell pair from a single mid-market value.
// The absolute floor exists because very small mid rates (e.g. JOD)
// make a pure percentage spread vanish
type Spread struct {
	Pct   float64
	Floor float64
}

// Apply builds a quote around the given mid-market value
func (s Spread) Apply(mid float64) Quote {
	spread := numeric.Round(mid*s.Pct, 3)
	if spread < s.Floor {
		spread = s.Floor
	}

	return Quote{
		Buy:  numeric.Round(mid, 3),
		Sell: numeric.Round(mid+spread, 3),
	}
}

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Chain is the ordered fallback list of strategies for one country.
// Strategies run strictly in priority order (authoritative primary
// first, generic API last), sequentially rather than as a race, so the
// first success short-circuits the load on more authoritative providers
type Chain struct {
	logger *slog.Logger

	country  types.Country
	currency string
	band     numeric.Band

	strategies []Strategy
	fallback   Quote
}

type ChainOption func(c *Chain)

// WithLogger specifies the logger for the chain
func WithLogger(l *slog.Logger) ChainOption {
	return func(c *Chain) {
		c.logger = l
	}
}

// NewChain creates a strategy chain for a single country
func NewChain(
	country types.Country,
	currency string,
	band numeric.Band,
	fallback Quote,
	strategies []Strategy,
	opts ...ChainOption,
) *Chain {
	c := &Chain{
		logger:     noopLogger,
		country:    country,
		currency:   currency,
		band:       band,
		strategies: strategies,
		fallback:   fallback,
	}

	// Apply the options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Country returns the country key the chain acquires rates for
func (c *Chain) Country() types.Country {
	return c.country
}

// Band returns the country's plausibility band
func (c *Chain) Band() numeric.Band {
	return c.band
}

// Acquire obtains a rate for the chain's country. It never fails:
// every strategy error is absorbed and logged, and full exhaustion
// degrades to the country's last-resort constant pair, visible to
// downstream consumers only through the Unknown provenance
func (c *Chain) Acquire(ctx context.Context) *types.Rate {
	for _, strategy := range c.strategies {
		quote, err := strategy.Attempt(ctx)
		if err != nil || quote == nil {
			// A nil quote without an error is still "no value"
			c.logger.Debug(
				"strategy yielded no value",
				"country", c.country,
				"strategy", strategy.Name(),
				"err", err,
			)

			continue
		}

		return c.newRate(*quote, types.Source(strategy.Name()))
	}

	c.logger.Warn(
		"all strategies exhausted, using fallback constant",
		"country", c.country,
	)

	return c.newRate(c.fallback, types.SourceUnknown)
}

func (c *Chain) newRate(q Quote, source types.Source) *types.Rate {
	// Enforce buy <= sell
	if q.Buy > q.Sell {
		q.Buy, q.Sell = q.Sell, q.Buy
	}

	return &types.Rate{
		Country:  c.country,
		Currency: c.currency,
		Source:   source,
		Buy:      q.Buy,
		Sell:     q.Sell,
	}
}
