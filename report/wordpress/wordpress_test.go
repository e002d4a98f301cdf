package wordpress

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/usdreport/report"
	"github.com/sig-0/usdreport/storage/types"
)

func testPayload() *report.Payload {
	return &report.Payload{
		Country:  "egypt",
		Currency: "جنيه مصري",
		Source:   "CBE (Arabic)",
		Date:     "2024-01-02",
		Buy:      50,
		Sell:     50.2,
		Change: &types.ChangeResult{
			Direction: types.DirectionStable,
		},
	}
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	t.Run("valid publish", func(t *testing.T) {
		t.Parallel()

		var received postRequest

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, pass, ok := r.BasicAuth()

				require.True(t, ok)
				assert.Equal(t, "editor", user)
				assert.Equal(t, "app-pass", pass)

				require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":42}`))
			}),
		)
		t.Cleanup(srv.Close)

		p := New(
			Config{
				URL:         srv.URL,
				User:        "editor",
				AppPassword: "app-pass",
				Categories:  map[string]int{"egypt": 12},
				Status:      "publish",
			},
			time.Second*5,
		)

		require.NoError(t, p.Publish(context.Background(), testPayload(), "<p>body</p>"))

		assert.Equal(t, "<p>body</p>", received.Content)
		assert.Equal(t, "publish", received.Status)
		assert.Equal(t, "usd-egypt-2024-01-02", received.Slug)
		assert.Equal(t, []int{12}, received.Categories)

		// The excerpt is the article's meta description
		assert.Contains(t, received.Excerpt, "جنيه مصري")
		assert.Contains(t, received.Excerpt, "2024-01-02")
	})

	t.Run("defaults to draft status", func(t *testing.T) {
		t.Parallel()

		var received postRequest

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(`{"id":1}`))
			}),
		)
		t.Cleanup(srv.Close)

		p := New(Config{URL: srv.URL}, time.Second*5)

		require.NoError(t, p.Publish(context.Background(), testPayload(), "body"))
		assert.Equal(t, "draft", received.Status)
	})

	t.Run("rejected publish", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(
			http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			}),
		)
		t.Cleanup(srv.Close)

		p := New(Config{URL: srv.URL}, time.Second*5)

		err := p.Publish(context.Background(), testPayload(), "body")

		assert.ErrorContains(t, err, "invalid status code")
	})
}
