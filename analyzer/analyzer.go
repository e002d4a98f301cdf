// Package analyzer derives the day-over-day buy rate movement for one
// country from the shared rate history. It only ever reads the store
package analyzer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/storage"
	"github.com/sig-0/usdreport/storage/types"
)

// Direction thresholds, in percent. Movements inside (-0.2, +0.2) are
// noise-level fluctuations and reported as stable rather than a trend
const (
	upThreshold   = 0.2
	downThreshold = -0.2
)

// Analyzer computes rate changes over a history store
type Analyzer struct {
	storage storage.Storage
}

// New creates a new change analyzer over the given store
func New(storage storage.Storage) *Analyzer {
	return &Analyzer{
		storage: storage,
	}
}

// ChangeFor computes the day-over-day change for the given country
func (a *Analyzer) ChangeFor(ctx context.Context, country types.Country) (*types.ChangeResult, error) {
	rows, err := a.storage.History(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("unable to read history: %w", err)
	}

	return Change(Prepare(rows)), nil
}

// Prepare normalizes history rows for analysis: dates are truncated to
// day granularity, rows are stable-sorted descending by date, and
// same-date rows are deduplicated keeping the first occurrence.
// Since the stable sort preserves append order within a date, the
// earliest-appended row wins for any given day
func Prepare(rows []types.HistoryRow) []types.HistoryRow {
	prepared := make([]types.HistoryRow, 0, len(rows))

	for _, row := range rows {
		row.Date = truncateToDay(row.Date)
		prepared = append(prepared, row)
	}

	sort.SliceStable(prepared, func(i, j int) bool {
		return prepared[i].Date.After(prepared[j].Date)
	})

	deduped := prepared[:0]
	seen := make(map[time.Time]struct{}, len(prepared))

	for _, row := range prepared {
		if _, ok := seen[row.Date]; ok {
			continue
		}

		seen[row.Date] = struct{}{}
		deduped = append(deduped, row)
	}

	return deduped
}

// Change computes the change result over prepared rows.
// With fewer than two distinct days there is nothing to compare
// against, and the result degrades to a stable zero change
func Change(prepared []types.HistoryRow) *types.ChangeResult {
	if len(prepared) == 0 {
		return &types.ChangeResult{
			Direction: types.DirectionStable,
		}
	}

	todayBuy := prepared[0].Buy

	if len(prepared) == 1 {
		return &types.ChangeResult{
			TodayBuy:  &todayBuy,
			Direction: types.DirectionStable,
		}
	}

	yesterdayBuy := prepared[1].Buy

	var pct float64

	// A zero yesterday value yields a zero change instead of a
	// division error
	if yesterdayBuy != 0 {
		pct = numeric.Round((todayBuy-yesterdayBuy)/yesterdayBuy*100, 2)
	}

	return &types.ChangeResult{
		TodayBuy:      &todayBuy,
		YesterdayBuy:  &yesterdayBuy,
		Direction:     direction(pct),
		ChangePercent: pct,
	}
}

func direction(pct float64) types.Direction {
	switch {
	case pct > upThreshold:
		return types.DirectionUp
	case pct < downThreshold:
		return types.DirectionDown
	default:
		return types.DirectionStable
	}
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
