package storage

import (
	"context"

	"github.com/sig-0/usdreport/storage/types"
)

// Storage is an abstraction over the append-only rate history,
// one logical table shared by all countries
type Storage interface {
	// SaveRate appends a single day's rate observation
	SaveRate(context.Context, *types.HistoryRow) error

	// History returns all stored rows for the given country,
	// in append order. Adapters are read-tolerant: rows that cannot
	// be parsed are dropped rather than surfaced as errors
	History(context.Context, types.Country) ([]types.HistoryRow, error)

	// Countries lists all countries present in the store
	Countries(context.Context) ([]types.Country, error)
}
