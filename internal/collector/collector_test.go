package collector

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinbasePremium/internal/model"
)

func TestCollect_AllFeedsUp(t *testing.T) {
	series := model.PriceSeries{{Day: "2024-01-01", Price: decimal.NewFromInt(42000)}}
	c := NewCollector(
		&StaticHistory{Series: series},
		&StaticSpot{Label: "coinbase", Price: decimal.NewFromInt(50500)},
		&StaticSpot{Label: "binance", Price: decimal.NewFromInt(50000)},
	)

	q := c.Collect(context.Background())

	assert.Equal(t, series, q.Prices)
	require.True(t, q.Coinbase.Valid)
	require.True(t, q.Binance.Valid)
	assert.Equal(t, "50500", q.Coinbase.Decimal.String())
	assert.Equal(t, "50000", q.Binance.Decimal.String())
}

func TestCollect_HistoryDownYieldsEmptySeries(t *testing.T) {
	c := NewCollector(
		&StaticHistory{Err: ErrFeedDown},
		&StaticSpot{Label: "coinbase", Price: decimal.NewFromInt(1)},
		&StaticSpot{Label: "binance", Price: decimal.NewFromInt(1)},
	)

	q := c.Collect(context.Background())

	assert.Equal(t, 0, q.Prices.Len())
	assert.True(t, q.Coinbase.Valid)
	assert.True(t, q.Binance.Valid)
}

func TestCollect_SpotDownYieldsMissingPrice(t *testing.T) {
	series := model.PriceSeries{{Day: "2024-01-01", Price: decimal.NewFromInt(42000)}}
	c := NewCollector(
		&StaticHistory{Series: series},
		&StaticSpot{Label: "coinbase", Err: ErrFeedDown},
		&StaticSpot{Label: "binance", Price: decimal.NewFromInt(50000)},
	)

	q := c.Collect(context.Background())

	assert.Equal(t, 1, q.Prices.Len())
	assert.False(t, q.Coinbase.Valid)
	assert.True(t, q.Binance.Valid)
}
