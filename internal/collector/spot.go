package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const (
	// DefaultCoinbaseURL is the public Coinbase API root.
	DefaultCoinbaseURL = "https://api.coinbase.com"
	// DefaultBinanceURL is the public Binance API root.
	DefaultBinanceURL = "https://api.binance.com"
)

// CoinbaseFetcher implements SpotFetcher using the Coinbase v2 prices API.
type CoinbaseFetcher struct {
	BaseURL string
	Pair    string // e.g. BTC-USD
	Client  *http.Client
}

// NewCoinbaseFetcher creates a Coinbase spot fetcher for the given pair.
func NewCoinbaseFetcher(baseURL, pair string, client *http.Client) *CoinbaseFetcher {
	return &CoinbaseFetcher{BaseURL: baseURL, Pair: pair, Client: client}
}

func (f *CoinbaseFetcher) Name() string { return "coinbase" }

func (f *CoinbaseFetcher) FetchSpotPrice(ctx context.Context) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/v2/prices/%s/spot", f.BaseURL, url.PathEscape(f.Pair))
	var result struct {
		Data struct {
			Amount string `json:"amount"`
		} `json:"data"`
	}
	if err := getJSON(ctx, f.Client, endpoint, &result); err != nil {
		return decimal.Zero, fmt.Errorf("coinbase spot: %w", err)
	}
	return parsePrice("coinbase", result.Data.Amount)
}

// BinanceFetcher implements SpotFetcher using the Binance ticker price API.
type BinanceFetcher struct {
	BaseURL string
	Symbol  string // e.g. BTCUSDT
	Client  *http.Client
}

// NewBinanceFetcher creates a Binance spot fetcher for the given symbol.
func NewBinanceFetcher(baseURL, symbol string, client *http.Client) *BinanceFetcher {
	return &BinanceFetcher{BaseURL: baseURL, Symbol: symbol, Client: client}
}

func (f *BinanceFetcher) Name() string { return "binance" }

func (f *BinanceFetcher) FetchSpotPrice(ctx context.Context) (decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", f.BaseURL, url.QueryEscape(f.Symbol))
	var result struct {
		Price string `json:"price"`
	}
	if err := getJSON(ctx, f.Client, endpoint, &result); err != nil {
		return decimal.Zero, fmt.Errorf("binance ticker: %w", err)
	}
	return parsePrice("binance", result.Price)
}

func parsePrice(source, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, fmt.Errorf("%s: empty price", source)
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: parse price %q: %w", source, s, err)
	}
	return p, nil
}
