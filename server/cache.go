package server

import (
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/sig-0/usdreport/config"
	"github.com/sig-0/usdreport/storage/types"
)

// rateCache keeps prepared per-country history reads hot between
// requests. Entries expire on a short TTL, so a freshly appended rate
// is visible within a minute of being saved
type rateCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func newRateCache(cfg *config.Cache) (*rateCache, error) {
	if cfg == nil {
		cfg = config.DefaultCacheConfig()
	}

	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
	})
	if err != nil {
		return nil, err
	}

	return &rateCache{
		cache: c,
		ttl:   time.Duration(cfg.TTLSeconds) * time.Second,
	}, nil
}

func (c *rateCache) getHistory(country types.Country) ([]types.HistoryRow, bool) {
	v, ok := c.cache.Get(country.String())
	if !ok {
		return nil, false
	}

	rows, ok := v.([]types.HistoryRow)

	return rows, ok
}

func (c *rateCache) setHistory(country types.Country, rows []types.HistoryRow) {
	c.cache.SetWithTTL(country.String(), rows, 1, c.ttl)
}

func (c *rateCache) Close() {
	c.cache.Close()
}
