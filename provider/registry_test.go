package provider

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/usdreport/storage/types"
)

func TestRegistry_Rate(t *testing.T) {
	t.Parallel()

	t.Run("unknown country", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry()

		rate, err := registry.Rate(context.Background(), "atlantis")

		require.Nil(t, rate)
		assert.ErrorIs(t, err, ErrUnknownCountry)
	})

	t.Run("valid acquisition", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry(newTestChain([]Strategy{
			&mockStrategy{
				nameFn: func() string {
					return "primary"
				},
				attemptFn: func(_ context.Context) (*Quote, error) {
					return &Quote{Buy: 48.6123456789, Sell: 48.75}, nil
				},
			},
		}))

		rate, err := registry.Rate(context.Background(), testCountry)

		require.NoError(t, err)
		require.NotNil(t, rate)

		// Normalized to 6 decimal places
		assert.InDelta(t, 48.612346, rate.Buy, 0.0000001)
		assert.InDelta(t, 48.75, rate.Sell, 0.0000001)
	})

	t.Run("non-finite value is fatal", func(t *testing.T) {
		t.Parallel()

		registry := NewRegistry(newTestChain([]Strategy{
			&mockStrategy{
				nameFn: func() string {
					return "primary"
				},
				attemptFn: func(_ context.Context) (*Quote, error) {
					return &Quote{Buy: math.NaN(), Sell: 48.75}, nil
				},
			},
		}))

		rate, err := registry.Rate(context.Background(), testCountry)

		require.Nil(t, rate)

		assert.ErrorIs(t, err, ErrInvalidRate)
		assert.ErrorContains(t, err, testCountry.String())
	})
}

func TestRegistry_Countries(t *testing.T) {
	t.Parallel()

	registry := NewRegistry(
		NewChain("iraq", "دينار عراقي", testBand, Quote{Buy: 1, Sell: 1}, nil),
		NewChain("egypt", "جنيه مصري", testBand, Quote{Buy: 1, Sell: 1}, nil),
	)

	assert.Equal(
		t,
		[]types.Country{"egypt", "iraq"},
		registry.Countries(),
	)
}
