package mock

import (
	"context"

	"github.com/sig-0/usdreport/storage/types"
)

type (
	SaveRateDelegate  func(context.Context, *types.HistoryRow) error
	HistoryDelegate   func(context.Context, types.Country) ([]types.HistoryRow, error)
	CountriesDelegate func(context.Context) ([]types.Country, error)
)

type Storage struct {
	SaveRateFn  SaveRateDelegate
	HistoryFn   HistoryDelegate
	CountriesFn CountriesDelegate
}

func (m *Storage) SaveRate(ctx context.Context, row *types.HistoryRow) error {
	if m.SaveRateFn != nil {
		return m.SaveRateFn(ctx, row)
	}

	return nil
}

func (m *Storage) History(ctx context.Context, country types.Country) ([]types.HistoryRow, error) {
	if m.HistoryFn != nil {
		return m.HistoryFn(ctx, country)
	}

	return nil, nil
}

func (m *Storage) Countries(ctx context.Context) ([]types.Country, error) {
	if m.CountriesFn != nil {
		return m.CountriesFn(ctx)
	}

	return nil, nil
}
