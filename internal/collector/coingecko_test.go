package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinbasePremium/internal/model"
)

func serveJSON(t *testing.T, status int, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestCoinGecko(url string) *CoinGeckoFetcher {
	f := NewCoinGeckoFetcher(url, "bitcoin", "usd", 365, NewHTTPClient("", 5*time.Second))
	f.Location = time.UTC
	return f
}

func TestCoinGecko_FetchDailyPrices(t *testing.T) {
	// 2024-01-01 00:00 UTC, 2024-01-02 00:00 UTC, 2024-01-02 13:37 UTC
	body := `{"prices": [
		[1704067200000, 42265.18833],
		[1704153600000, 44167.3312],
		[1704202620000, 45001.005]
	], "market_caps": [], "total_volumes": []}`
	srv := serveJSON(t, http.StatusOK, body, func(r *http.Request) {
		assert.Equal(t, "/api/v3/coins/bitcoin/market_chart", r.URL.Path)
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currency"))
		assert.Equal(t, "365", r.URL.Query().Get("days"))
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
	})

	series, err := newTestCoinGecko(srv.URL).FetchDailyPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, model.Day("2024-01-01"), series[0].Day)
	assert.Equal(t, "42265.19", series[0].Price.String())
	// the later entry for 2024-01-02 wins
	assert.Equal(t, model.Day("2024-01-02"), series[1].Day)
	assert.Equal(t, "45001.01", series[1].Price.String())
}

func TestCoinGecko_SortsByDay(t *testing.T) {
	body := `{"prices": [[1704153600000, 2], [1704067200000, 1], [1704240000000, 3]]}`
	srv := serveJSON(t, http.StatusOK, body, nil)

	series, err := newTestCoinGecko(srv.URL).FetchDailyPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.Equal(t, model.Day("2024-01-01"), series.First().Day)
	assert.Equal(t, model.Day("2024-01-03"), series.Last().Day)
}

func TestCoinGecko_LocalDayBucketing(t *testing.T) {
	// 2024-01-01 20:00 UTC is already 2024-01-02 in Tokyo.
	body := `{"prices": [[1704139200000, 100]]}`
	srv := serveJSON(t, http.StatusOK, body, nil)

	f := newTestCoinGecko(srv.URL)
	f.Location = time.FixedZone("JST", 9*3600)
	series, err := f.FetchDailyPrices(context.Background())
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, model.Day("2024-01-02"), series[0].Day)
}

func TestCoinGecko_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error": "boom"}`},
		{"rate limited", http.StatusTooManyRequests, `{"status": {"error_code": 429}}`},
		{"malformed json", http.StatusOK, `{"prices": [[1704067200000, `},
		{"no prices", http.StatusOK, `{"prices": []}`},
		{"short entry", http.StatusOK, `{"prices": [[1704067200000]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serveJSON(t, tt.status, tt.body, nil)
			series, err := newTestCoinGecko(srv.URL).FetchDailyPrices(context.Background())
			assert.Error(t, err)
			assert.Empty(t, series)
		})
	}
}

func TestCoinGecko_Unreachable(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{}`, nil)
	url := srv.URL
	srv.Close()

	_, err := newTestCoinGecko(url).FetchDailyPrices(context.Background())
	assert.Error(t, err)
}
