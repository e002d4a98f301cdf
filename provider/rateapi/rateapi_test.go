package rateapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sig-0/usdreport/provider"
	"github.com/sig-0/usdreport/provider/numeric"
)

var (
	testBand   = numeric.Band{Low: 5, High: 400}
	testSpread = provider.Spread{Pct: 0.003, Floor: 0.05}
)

func newTestServer(t *testing.T, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "USD", r.URL.Query().Get("base"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}),
	)

	t.Cleanup(srv.Close)

	return srv
}

func TestStrategy_Attempt(t *testing.T) {
	t.Parallel()

	t.Run("valid mid rate", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, `{"rates":{"EGP":48.5}}`)

		s := New("Exchangerate.host", srv.URL, "EGP", testBand, testSpread, time.Second*5)

		quote, err := s.Attempt(context.Background())

		require.NoError(t, err)
		require.NotNil(t, quote)

		// spread = max(0.05, round3(48.5 * 0.003)) = 0.146
		assert.InDelta(t, 48.5, quote.Buy, 0.0001)
		assert.InDelta(t, 48.646, quote.Sell, 0.0001)
	})

	t.Run("spread floor applies", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, `{"rates":{"EGP":10}}`)

		s := New("Exchangerate.host", srv.URL, "EGP", testBand, testSpread, time.Second*5)

		quote, err := s.Attempt(context.Background())

		require.NoError(t, err)

		// round3(10 * 0.003) = 0.03 < 0.05 floor
		assert.InDelta(t, 10, quote.Buy, 0.0001)
		assert.InDelta(t, 10.05, quote.Sell, 0.0001)
	})

	t.Run("missing symbol", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, `{"rates":{"IQD":1310}}`)

		s := New("Exchangerate.host", srv.URL, "EGP", testBand, testSpread, time.Second*5)

		quote, err := s.Attempt(context.Background())

		require.Nil(t, quote)
		assert.ErrorIs(t, err, errNoMidRate)
	})

	t.Run("out of band mid", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, `{"rates":{"EGP":99999}}`)

		s := New("Exchangerate.host", srv.URL, "EGP", testBand, testSpread, time.Second*5)

		quote, err := s.Attempt(context.Background())

		require.Nil(t, quote)
		assert.ErrorIs(t, err, errNoMidRate)
	})

	t.Run("malformed response", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, `<html>rate limited</html>`)

		s := New("Exchangerate.host", srv.URL, "EGP", testBand, testSpread, time.Second*5)

		quote, err := s.Attempt(context.Background())

		require.Nil(t, quote)
		assert.Error(t, err)
	})
}
