package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/usdreport/storage/types"
)

func day(t *testing.T, raw string) time.Time {
	t.Helper()

	parsed, err := time.Parse(dayFormat, raw)
	require.NoError(t, err)

	return parsed
}

func TestStorage_RoundTrip(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		path = filepath.Join(t.TempDir(), "rates_history.csv")

		s = NewStorage(path)
	)

	rows := []types.HistoryRow{
		{Date: day(t, "2024-01-01"), Country: "egypt", Buy: 49, Sell: 49.2},
		{Date: day(t, "2024-01-02"), Country: "egypt", Buy: 50, Sell: 50.2},
		{Date: day(t, "2024-01-02"), Country: "iraq", Buy: 1310, Sell: 1312.62},
	}

	for i := range rows {
		require.NoError(t, s.SaveRate(ctx, &rows[i]))
	}

	readBack, err := s.History(ctx, "egypt")
	require.NoError(t, err)
	require.Len(t, readBack, 2)

	assert.Equal(t, rows[0], readBack[0])
	assert.Equal(t, rows[1], readBack[1])

	countries, err := s.Countries(ctx)
	require.NoError(t, err)

	assert.Equal(t, []types.Country{"egypt", "iraq"}, countries)
}

func TestStorage_HeaderWrittenOnce(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		path = filepath.Join(t.TempDir(), "rates_history.csv")

		s = NewStorage(path)
	)

	for range 3 {
		require.NoError(t, s.SaveRate(ctx, &types.HistoryRow{
			Date:    day(t, "2024-01-02"),
			Country: "egypt",
			Buy:     50,
			Sell:    50.2,
		}))
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(
		t,
		"date,country,buy,sell\n"+
			"2024-01-02,egypt,50,50.2\n"+
			"2024-01-02,egypt,50,50.2\n"+
			"2024-01-02,egypt,50,50.2\n",
		string(content),
	)
}

func TestStorage_MissingStore(t *testing.T) {
	t.Parallel()

	var (
		ctx = context.Background()

		s = NewStorage(filepath.Join(t.TempDir(), "missing.csv"))
	)

	rows, err := s.History(ctx, "egypt")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestStorage_CorruptedStore(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		path = filepath.Join(t.TempDir(), "rates_history.csv")
	)

	corrupted := "date,country,buy,sell\n" +
		"not a date,egypt,50,50.2\n" +
		"2024-01-02,egypt,abc,50.2\n" +
		"2024-01-02,egypt\n" +
		"2024-01-03,egypt,51,51.2\n"

	require.NoError(t, os.WriteFile(path, []byte(corrupted), 0o644))

	s := NewStorage(path)

	rows, err := s.History(ctx, "egypt")
	require.NoError(t, err)

	// Only the single well-formed row survives
	require.Len(t, rows, 1)
	assert.InDelta(t, 51, rows[0].Buy, 0.0001)
}

func TestStorage_TolerantDateFormats(t *testing.T) {
	t.Parallel()

	var (
		ctx  = context.Background()
		path = filepath.Join(t.TempDir(), "rates_history.csv")
	)

	content := "date,country,buy,sell\n" +
		"2024-01-02,egypt,50,50.2\n" +
		"2024-01-03T00:00:00Z,egypt,51,51.2\n" +
		"2024-01-04 00:00:00,egypt,52,52.2\n"

	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s := NewStorage(path)

	rows, err := s.History(ctx, "egypt")
	require.NoError(t, err)

	assert.Len(t, rows, 3)
}
