package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"CoinbasePremium/internal/model"
)

// DefaultCoinGeckoURL is the public CoinGecko API root.
const DefaultCoinGeckoURL = "https://api.coingecko.com"

// pricePrecision is the number of decimal places kept on daily closes.
const pricePrecision = 2

// CoinGeckoFetcher implements HistoryFetcher using the CoinGecko market_chart API.
type CoinGeckoFetcher struct {
	BaseURL    string
	CoinID     string
	VsCurrency string
	Days       int
	Client     *http.Client
	// Location decides which calendar day a timestamp falls on.
	Location *time.Location
}

// NewCoinGeckoFetcher creates a fetcher that buckets days in local time.
func NewCoinGeckoFetcher(baseURL, coinID, vsCurrency string, days int, client *http.Client) *CoinGeckoFetcher {
	return &CoinGeckoFetcher{
		BaseURL:    baseURL,
		CoinID:     coinID,
		VsCurrency: vsCurrency,
		Days:       days,
		Client:     client,
		Location:   time.Local,
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the subset of the market_chart response we use.
// Each entry is [timestamp_ms, price].
type marketChart struct {
	Prices [][]float64 `json:"prices"`
}

func (f *CoinGeckoFetcher) endpoint() string {
	q := url.Values{}
	q.Set("vs_currency", f.VsCurrency)
	q.Set("days", strconv.Itoa(f.Days))
	q.Set("interval", "daily")
	return fmt.Sprintf("%s/api/v3/coins/%s/market_chart?%s", f.BaseURL, url.PathEscape(f.CoinID), q.Encode())
}

// FetchDailyPrices returns one close per calendar day in ascending order.
// When several entries fall on the same day the later one in the response wins.
func (f *CoinGeckoFetcher) FetchDailyPrices(ctx context.Context) (model.PriceSeries, error) {
	var chart marketChart
	if err := getJSON(ctx, f.Client, f.endpoint(), &chart); err != nil {
		return nil, fmt.Errorf("coingecko market chart: %w", err)
	}
	if len(chart.Prices) == 0 {
		return nil, fmt.Errorf("coingecko: no price data returned")
	}

	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	byDay := make(map[model.Day]decimal.Decimal, len(chart.Prices))
	for i, entry := range chart.Prices {
		if len(entry) < 2 {
			return nil, fmt.Errorf("coingecko: prices[%d] has %d fields", i, len(entry))
		}
		day := model.DayOf(time.UnixMilli(int64(entry[0])).In(loc))
		byDay[day] = decimal.NewFromFloat(entry[1]).Round(pricePrecision)
	}

	series := make(model.PriceSeries, 0, len(byDay))
	for day, price := range byDay {
		series = append(series, model.DailyPrice{Day: day, Price: price})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day.Before(series[j].Day) })
	return series, nil
}
