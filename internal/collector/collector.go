package collector

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"CoinbasePremium/internal/model"
)

// StaticHistory returns a fixed series for development and testing.
type StaticHistory struct {
	Series model.PriceSeries
	Err    error
}

func (s *StaticHistory) Name() string { return "static-history" }

func (s *StaticHistory) FetchDailyPrices(_ context.Context) (model.PriceSeries, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Series, nil
}

// StaticSpot returns a fixed spot price for development and testing.
type StaticSpot struct {
	Label string
	Price decimal.Decimal
	Err   error
}

func (s *StaticSpot) Name() string { return s.Label }

func (s *StaticSpot) FetchSpotPrice(_ context.Context) (decimal.Decimal, error) {
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	return s.Price, nil
}

// ErrFeedDown is a convenience error for simulated outages.
var ErrFeedDown = errors.New("feed unavailable")

// Quotes is everything one run collects from the feeds. A missing spot
// price is an invalid NullDecimal; a failed history fetch is an empty series.
type Quotes struct {
	Prices   model.PriceSeries
	Coinbase decimal.NullDecimal
	Binance  decimal.NullDecimal
}

// Collector queries the history feed and both spot feeds.
type Collector struct {
	History  HistoryFetcher
	Coinbase SpotFetcher
	Binance  SpotFetcher
}

// NewCollector creates a new Collector.
func NewCollector(history HistoryFetcher, coinbase, binance SpotFetcher) *Collector {
	return &Collector{History: history, Coinbase: coinbase, Binance: binance}
}

// Collect fetches all feeds. Feed errors are logged and turned into
// missing values; Collect itself never fails.
func (c *Collector) Collect(ctx context.Context) *Quotes {
	q := &Quotes{}

	log.Printf("[INFO] fetching daily prices from %s", c.History.Name())
	series, err := c.History.FetchDailyPrices(ctx)
	if err != nil {
		log.Printf("[ERROR] fetch daily prices: %v", err)
	} else {
		q.Prices = series
		log.Printf("[INFO] got %d days of price data", series.Len())
	}

	// The two spot fetches are independent, so they run side by side.
	var g errgroup.Group
	g.Go(func() error {
		q.Coinbase = fetchSpot(ctx, c.Coinbase)
		return nil
	})
	g.Go(func() error {
		q.Binance = fetchSpot(ctx, c.Binance)
		return nil
	})
	_ = g.Wait()

	return q
}

func fetchSpot(ctx context.Context, f SpotFetcher) decimal.NullDecimal {
	log.Printf("[INFO] fetching %s spot price", f.Name())
	p, err := f.FetchSpotPrice(ctx)
	if err != nil {
		log.Printf("[ERROR] fetch %s spot price: %v", f.Name(), err)
		return decimal.NullDecimal{}
	}
	log.Printf("[INFO] %s spot: $%s", f.Name(), p.StringFixed(2))
	return decimal.NewNullDecimal(p)
}
