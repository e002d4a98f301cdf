package serve

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/usdreport/provider/egp"
	"github.com/sig-0/usdreport/provider/iqd"
	"github.com/sig-0/usdreport/provider/jod"
	"github.com/sig-0/usdreport/provider/lbp"
	"github.com/sig-0/usdreport/provider/syp"
	"github.com/sig-0/usdreport/storage/types"
)

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := DefaultRegistry(logger)
	require.NotNil(t, registry)

	// All supported countries need to be registered
	assert.Equal(
		t,
		[]types.Country{
			egp.CountryCode,
			iqd.CountryCode,
			jod.CountryCode,
			lbp.CountryCode,
			syp.CountryCode,
		},
		registry.Countries(),
	)

	for _, country := range registry.Countries() {
		chain, ok := registry.Chain(country)

		require.True(t, ok)
		assert.NotNil(t, chain)
	}
}
