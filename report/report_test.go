package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/numeric"
	"github.com/sig-0/usdreport/storage/memory"
	"github.com/sig-0/usdreport/storage/types"
)

var testBand = numeric.Band{Low: 5, High: 400}

func newTestRegistry(strategies ...provider.Strategy) *provider.Registry {
	return provider.NewRegistry(provider.NewChain(
		"egypt",
		"جنيه مصري",
		testBand,
		provider.Quote{Buy: 60, Sell: 60.15},
		strategies,
	))
}

func fixedNow(t *testing.T, raw string) func() time.Time {
	t.Helper()

	parsed, err := time.Parse("2006-01-02", raw)
	require.NoError(t, err)

	return func() time.Time {
		return parsed
	}
}

func TestReporter_Payload(t *testing.T) {
	t.Parallel()

	t.Run("acquires, persists and analyzes", func(t *testing.T) {
		t.Parallel()

		var (
			ctx   = context.Background()
			store = memory.NewStorage()

			registry = newTestRegistry(&mockStrategy{
				name: "CBE (Arabic)",
				attemptFn: func(_ context.Context) (*provider.Quote, error) {
					return &provider.Quote{Buy: 50, Sell: 50.2}, nil
				},
			})
		)

		// Seed yesterday's row
		require.NoError(t, store.SaveRate(ctx, &types.HistoryRow{
			Date:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Country: "egypt",
			Buy:     49,
			Sell:    49.2,
		}))

		r := New(registry, store, WithNowFunc(fixedNow(t, "2024-01-02")))

		payload, err := r.Payload(ctx, "egypt")

		require.NoError(t, err)
		require.NotNil(t, payload)

		assert.Equal(t, types.Country("egypt"), payload.Country)
		assert.Equal(t, "2024-01-02", payload.Date)
		assert.Equal(t, types.Source("CBE (Arabic)"), payload.Source)
		assert.InDelta(t, 50, payload.Buy, 0.0001)
		assert.InDelta(t, 50.2, payload.Sell, 0.0001)

		require.NotNil(t, payload.Change)
		assert.Equal(t, types.DirectionUp, payload.Change.Direction)
		assert.InDelta(t, 2.04, payload.Change.ChangePercent, 0.0001)

		// The acquisition was appended to history
		rows, err := store.History(ctx, "egypt")
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("unknown country is fatal", func(t *testing.T) {
		t.Parallel()

		r := New(newTestRegistry(), memory.NewStorage())

		payload, err := r.Payload(context.Background(), "atlantis")

		require.Nil(t, payload)
		assert.ErrorIs(t, err, provider.ErrUnknownCountry)
	})
}

func TestReporter_Report(t *testing.T) {
	t.Parallel()

	t.Run("generates and publishes", func(t *testing.T) {
		t.Parallel()

		var (
			articleDir = t.TempDir()

			publishedArticle string
			seenPrompt       string

			registry = newTestRegistry(&mockStrategy{
				name: "CBE (Arabic)",
				attemptFn: func(_ context.Context) (*provider.Quote, error) {
					return &provider.Quote{Buy: 50, Sell: 50.2}, nil
				},
			})

			generator = &mockGenerator{
				generateFn: func(_ context.Context, prompt string) (string, error) {
					seenPrompt = prompt

					return "# article body", nil
				},
			}

			publisher = &mockPublisher{
				publishFn: func(_ context.Context, _ *Payload, article string) error {
					publishedArticle = article

					return nil
				},
			}
		)

		r := New(
			registry,
			memory.NewStorage(),
			WithNowFunc(fixedNow(t, "2024-01-02")),
			WithGenerator(generator),
			WithPublisher(publisher),
			WithArticleDir(articleDir),
		)

		payload, err := r.Report(context.Background(), "egypt")

		require.NoError(t, err)
		require.NotNil(t, payload)

		assert.Equal(t, "# article body", publishedArticle)
		assert.Contains(t, seenPrompt, "50.2")
		assert.Contains(t, seenPrompt, "CBE (Arabic)")

		// A local markdown copy was kept
		content, err := os.ReadFile(filepath.Join(articleDir, "2024-01-02-egypt.md"))
		require.NoError(t, err)
		assert.Equal(t, "# article body", string(content))
	})

	t.Run("word bounds reach the prompt", func(t *testing.T) {
		t.Parallel()

		var (
			seenPrompt string

			registry = newTestRegistry(&mockStrategy{
				name: "CBE (Arabic)",
				attemptFn: func(_ context.Context) (*provider.Quote, error) {
					return &provider.Quote{Buy: 50, Sell: 50.2}, nil
				},
			})
		)

		r := New(
			registry,
			memory.NewStorage(),
			WithGenerator(&mockGenerator{
				generateFn: func(_ context.Context, prompt string) (string, error) {
					seenPrompt = prompt

					return "body", nil
				},
			}),
			WithWordBounds(300, 500),
		)

		_, err := r.Report(context.Background(), "egypt")

		require.NoError(t, err)
		assert.Contains(t, seenPrompt, "300")
		assert.Contains(t, seenPrompt, "500")
	})

	t.Run("generator error is fatal for the country", func(t *testing.T) {
		t.Parallel()

		var (
			generateErr = errors.New("model unavailable")

			registry = newTestRegistry(&mockStrategy{
				name: "CBE (Arabic)",
				attemptFn: func(_ context.Context) (*provider.Quote, error) {
					return &provider.Quote{Buy: 50, Sell: 50.2}, nil
				},
			})
		)

		r := New(
			registry,
			memory.NewStorage(),
			WithGenerator(&mockGenerator{
				generateFn: func(_ context.Context, _ string) (string, error) {
					return "", generateErr
				},
			}),
		)

		payload, err := r.Report(context.Background(), "egypt")

		require.Nil(t, payload)
		assert.ErrorIs(t, err, generateErr)
	})
}

func TestReporter_Run(t *testing.T) {
	t.Parallel()

	t.Run("isolates per-country failures", func(t *testing.T) {
		t.Parallel()

		registry := newTestRegistry(&mockStrategy{
			name: "CBE (Arabic)",
			attemptFn: func(_ context.Context) (*provider.Quote, error) {
				return &provider.Quote{Buy: 50, Sell: 50.2}, nil
			},
		})

		store := memory.NewStorage()

		r := New(registry, store, WithNowFunc(fixedNow(t, "2024-01-02")))

		err := r.Run(context.Background(), []types.Country{"atlantis", "egypt"})

		// The unknown country fails, egypt still goes through
		require.Error(t, err)
		assert.ErrorIs(t, err, provider.ErrUnknownCountry)

		rows, historyErr := store.History(context.Background(), "egypt")
		require.NoError(t, historyErr)
		assert.Len(t, rows, 1)
	})
}

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	buy := 50.0

	payload := &Payload{
		Country:  "egypt",
		Currency: "جنيه مصري",
		Source:   types.SourceUnknown,
		Date:     "2024-01-02",
		Buy:      50,
		Sell:     50.2,
		Change: &types.ChangeResult{
			TodayBuy:      &buy,
			Direction:     types.DirectionStable,
			ChangePercent: 0,
		},
	}

	prompt := BuildPrompt(payload)

	// Fallback provenance is never surfaced verbatim in the prompt
	assert.False(t, strings.Contains(prompt, types.SourceUnknown.String()))
	assert.Contains(t, prompt, "2024-01-02")
	assert.Contains(t, prompt, "استقرار")
}
