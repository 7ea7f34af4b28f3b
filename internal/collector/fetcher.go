package collector

import (
	"context"

	"github.com/shopspring/decimal"

	"CoinbasePremium/internal/model"
)

// HistoryFetcher returns the trailing daily close series for one asset.
type HistoryFetcher interface {
	FetchDailyPrices(ctx context.Context) (model.PriceSeries, error)
	Name() string
}

// SpotFetcher returns the current spot price on one exchange.
type SpotFetcher interface {
	FetchSpotPrice(ctx context.Context) (decimal.Decimal, error)
	Name() string
}
