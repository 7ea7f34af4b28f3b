package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinbasePremium/internal/model"
)

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Prices: model.PriceSeries{
			{Day: "2024-01-01", Price: decimal.RequireFromString("42265.19")},
			{Day: "2024-01-02", Price: decimal.RequireFromString("44167.33")},
			{Day: "2024-01-03", Price: decimal.RequireFromString("44957.97")},
		},
		Premium: model.PremiumHistory{
			{Day: "2024-01-02", Value: decimal.RequireFromString("0.0123")},
			{Day: "2024-01-03", Value: decimal.RequireFromString("-0.0456")},
		},
	}
}

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestSaveWritesDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	s := NewFileStore(path)
	now := time.Date(2024, 1, 3, 8, 30, 15, 123456000, time.FixedZone("CET", 3600))

	_, err := s.Save(sampleSnapshot(), now)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "{\n  \"dates\": ["), "document should be indented:\n%s", raw)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, []any{"2024-01-01", "2024-01-02", "2024-01-03"}, doc["dates"])
	assert.Equal(t, []any{42265.19, 44167.33, 44957.97}, doc["btc_prices"])
	assert.Equal(t, []any{"2024-01-02", "2024-01-03"}, doc["premium_dates"])
	assert.Equal(t, []any{0.0123, -0.0456}, doc["premium_index"])
	assert.Equal(t, "2024-01-03T07:30:15.123456Z", doc["last_updated"])
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewFileStore(path)
	now := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	first, err := s.Save(sampleSnapshot(), now)
	require.NoError(t, err)

	res := s.Load()
	require.Equal(t, StatusOK, res.Status, "err: %v", res.Err)
	require.NotNil(t, res.Snapshot)
	assert.True(t, now.Equal(res.Snapshot.LastUpdated), "last updated %v", res.Snapshot.LastUpdated)
	for i, p := range sampleSnapshot().Prices {
		assert.Equal(t, p.Day, res.Snapshot.Prices[i].Day)
		assert.True(t, p.Price.Equal(res.Snapshot.Prices[i].Price), "price %d: %s", i, res.Snapshot.Prices[i].Price)
	}
	for i, p := range sampleSnapshot().Premium {
		assert.Equal(t, p.Day, res.History()[i].Day)
		assert.True(t, p.Value.Equal(res.History()[i].Value), "premium %d: %s", i, res.History()[i].Value)
	}

	second, err := s.Save(res.Snapshot, now)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSaveEmptySeries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	s := NewFileStore(path)

	_, err := s.Save(&model.Snapshot{}, time.Now())
	require.NoError(t, err)

	res := s.Load()
	require.Equal(t, StatusOK, res.Status, "err: %v", res.Err)
	assert.Empty(t, res.History())
}

func TestLoadMissingFile(t *testing.T) {
	res := NewFileStore(filepath.Join(t.TempDir(), "absent.json")).Load()

	assert.Equal(t, StatusEmpty, res.Status)
	assert.NoError(t, res.Err)
	assert.Nil(t, res.History())
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "{ this is not json"},
		{"truncated", `{"dates": ["2024-01-01"], "btc_prices": [1`},
		{"wrong type", `{"premium_dates": "2024-01-01", "premium_index": [1]}`},
		{"missing premium keys", `{"dates": [], "btc_prices": []}`},
		{"premium length mismatch", `{"dates": [], "btc_prices": [], "premium_dates": ["2024-01-01", "2024-01-02"], "premium_index": [0.5]}`},
		{"price length mismatch", `{"dates": ["2024-01-01"], "btc_prices": [], "premium_dates": [], "premium_index": []}`},
		{"bad date", `{"dates": [], "btc_prices": [], "premium_dates": ["01/02/2024"], "premium_index": [0.5]}`},
		{"duplicate date", `{"dates": [], "btc_prices": [], "premium_dates": ["2024-01-01", "2024-01-01"], "premium_index": [0.5, 0.6]}`},
		{"unsorted dates", `{"dates": [], "btc_prices": [], "premium_dates": ["2024-01-02", "2024-01-01"], "premium_index": [0.5, 0.6]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewFileStore(writeFile(t, t.TempDir(), tt.body)).Load()

			assert.Equal(t, StatusCorrupt, res.Status)
			assert.Error(t, res.Err)
			assert.Nil(t, res.Snapshot)
			assert.Nil(t, res.History())
		})
	}
}

func TestLoadOriginalFormat(t *testing.T) {
	body := `{
  "dates": ["2024-01-01", "2024-01-02"],
  "btc_prices": [42265.19, 44167.33],
  "premium_dates": ["2024-01-01"],
  "premium_index": [0.5],
  "last_updated": "2024-01-02T00:05:01.000042Z"
}`
	res := NewFileStore(writeFile(t, t.TempDir(), body)).Load()

	require.Equal(t, StatusOK, res.Status, "err: %v", res.Err)
	assert.Equal(t, model.PremiumHistory{{Day: "2024-01-01", Value: decimal.NewFromFloat(0.5)}}, res.History())
	assert.True(t, time.Date(2024, 1, 2, 0, 5, 1, 42000, time.UTC).Equal(res.Snapshot.LastUpdated))
}

func TestLoadStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "empty", StatusEmpty.String())
	assert.Equal(t, "corrupt", StatusCorrupt.String())
}

func TestLoadLastUpdatedFractions(t *testing.T) {
	tests := []struct {
		name  string
		stamp string
		want  time.Time
	}{
		{"no fraction", "2024-01-02T00:05:01Z", time.Date(2024, 1, 2, 0, 5, 1, 0, time.UTC)},
		{"short fraction", "2024-01-02T00:05:01.5Z", time.Date(2024, 1, 2, 0, 5, 1, 500000000, time.UTC)},
		{"microseconds", "2024-01-02T00:05:01.000042Z", time.Date(2024, 1, 2, 0, 5, 1, 42000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{"dates": [], "btc_prices": [], "premium_dates": [], "premium_index": [], "last_updated": "` + tt.stamp + `"}`
			res := NewFileStore(writeFile(t, t.TempDir(), body)).Load()

			require.Equal(t, StatusOK, res.Status, "err: %v", res.Err)
			assert.True(t, tt.want.Equal(res.Snapshot.LastUpdated), "got %s", res.Snapshot.LastUpdated)
		})
	}
}
