package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"CoinbasePremium/internal/model"
)

// timestampLayout matches the ISO-8601 form the chart expects, with a
// literal Z appended after conversion to UTC.
const timestampLayout = "2006-01-02T15:04:05.000000"

// document is the on-disk shape. Series are stored as parallel arrays.
type document struct {
	Dates        []string  `json:"dates"`
	BTCPrices    []float64 `json:"btc_prices"`
	PremiumDates []string  `json:"premium_dates"`
	PremiumIndex []float64 `json:"premium_index"`
	LastUpdated  string    `json:"last_updated"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout) + "Z"
}

func toDocument(snap *model.Snapshot, now time.Time) *document {
	doc := &document{
		Dates:        make([]string, len(snap.Prices)),
		BTCPrices:    make([]float64, len(snap.Prices)),
		PremiumDates: make([]string, len(snap.Premium)),
		PremiumIndex: make([]float64, len(snap.Premium)),
		LastUpdated:  formatTimestamp(now),
	}
	for i, p := range snap.Prices {
		doc.Dates[i] = p.Day.String()
		doc.BTCPrices[i] = p.Price.InexactFloat64()
	}
	for i, p := range snap.Premium {
		doc.PremiumDates[i] = p.Day.String()
		doc.PremiumIndex[i] = p.Value.InexactFloat64()
	}
	return doc
}

// toSnapshot validates doc and converts it back to model types. Missing
// premium arrays are a corrupt document, as is any broken alignment.
func (doc *document) toSnapshot() (*model.Snapshot, error) {
	if doc.PremiumDates == nil || doc.PremiumIndex == nil {
		return nil, errors.New("premium_dates or premium_index missing")
	}
	if len(doc.Dates) != len(doc.BTCPrices) {
		return nil, fmt.Errorf("dates has %d entries, btc_prices has %d", len(doc.Dates), len(doc.BTCPrices))
	}
	if len(doc.PremiumDates) != len(doc.PremiumIndex) {
		return nil, fmt.Errorf("premium_dates has %d entries, premium_index has %d", len(doc.PremiumDates), len(doc.PremiumIndex))
	}

	snap := &model.Snapshot{
		Prices:  make(model.PriceSeries, len(doc.Dates)),
		Premium: make(model.PremiumHistory, len(doc.PremiumDates)),
	}
	for i, s := range doc.Dates {
		day, err := model.ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("dates[%d]: %w", i, err)
		}
		snap.Prices[i] = model.DailyPrice{Day: day, Price: decimal.NewFromFloat(doc.BTCPrices[i])}
	}
	for i, s := range doc.PremiumDates {
		day, err := model.ParseDay(s)
		if err != nil {
			return nil, fmt.Errorf("premium_dates[%d]: %w", i, err)
		}
		if i > 0 && !snap.Premium[i-1].Day.Before(day) {
			return nil, fmt.Errorf("premium_dates[%d]: %s does not follow %s", i, day, snap.Premium[i-1].Day)
		}
		snap.Premium[i] = model.PremiumPoint{Day: day, Value: decimal.NewFromFloat(doc.PremiumIndex[i])}
	}
	if doc.LastUpdated != "" {
		if t, err := time.Parse(time.RFC3339Nano, doc.LastUpdated); err == nil {
			snap.LastUpdated = t
		}
	}
	return snap, nil
}
