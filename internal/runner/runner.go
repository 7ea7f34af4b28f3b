// Package runner executes one premium collection run end to end.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"CoinbasePremium/internal/calculator"
	"CoinbasePremium/internal/collector"
	"CoinbasePremium/internal/history"
	"CoinbasePremium/internal/model"
	"CoinbasePremium/internal/notifier"
	"CoinbasePremium/internal/publisher"
	"CoinbasePremium/internal/recorder"
	"CoinbasePremium/internal/store"
)

// ErrNoPriceData means the price history feed returned nothing, so the run
// stopped before writing and the previous document is untouched.
var ErrNoPriceData = errors.New("no bitcoin price data")

// Runner wires the stages of a run together.
type Runner struct {
	Store     *store.FileStore
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Publisher publisher.Publisher
	Notifier  notifier.Notifier
	// Now is the clock; today's premium is keyed by Now's local calendar day.
	Now func() time.Time
}

// New creates a Runner with no-op side outputs and the system clock.
func New(st *store.FileStore, col *collector.Collector) *Runner {
	return &Runner{
		Store:     st,
		Collector: col,
		Recorder:  recorder.NewNoopRecorder(),
		Publisher: publisher.Noop{},
		Notifier:  notifier.Noop{},
		Now:       time.Now,
	}
}

// Run loads the previous document, fetches fresh prices, merges today's
// premium and rewrites the document. A missing spot price only skips
// today's point; a missing price history aborts with ErrNoPriceData.
func (r *Runner) Run(ctx context.Context) (*model.RunSummary, error) {
	now := r.Now()
	summary := &model.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: now,
		Day:       model.DayOf(now),
		Action:    model.MergeSkipped,
	}
	log.Printf("[INFO] run %s starting for %s", summary.RunID, summary.Day)

	loaded := r.Store.Load()
	switch loaded.Status {
	case store.StatusOK:
		log.Printf("[INFO] loaded %s: %d premium points", r.Store.Path(), loaded.History().Len())
	case store.StatusEmpty:
		log.Printf("[INFO] no existing %s, starting fresh", r.Store.Path())
	case store.StatusCorrupt:
		log.Printf("[WARN] ignoring unusable %s, premium history starts empty: %v", r.Store.Path(), loaded.Err)
	}

	quotes := r.Collector.Collect(ctx)
	summary.CoinbasePrice = quotes.Coinbase
	summary.BinancePrice = quotes.Binance
	if quotes.Prices.Len() == 0 {
		summary.Status = model.RunNoPrices
		log.Printf("[ERROR] could not fetch bitcoin price history, leaving %s untouched", r.Store.Path())
		r.report(ctx, summary, nil)
		return summary, ErrNoPriceData
	}
	fillPriceStats(summary, quotes.Prices)

	summary.Premium = calculator.CalculatePremium(quotes.Coinbase, quotes.Binance)
	if summary.Premium.Valid {
		log.Printf("[INFO] coinbase premium: %s", notifier.FormatPremium(summary.Premium))
	} else {
		log.Printf("[WARN] coinbase premium unavailable, history not advanced")
	}

	merged, action := history.Merge(loaded.History(), summary.Day, summary.Premium)
	summary.Action = action
	summary.HistoryLen = merged.Len()
	if latest, ok := merged.Latest(); ok {
		summary.LatestPremium.Decimal = latest.Value
		summary.LatestPremium.Valid = true
	}
	switch action {
	case model.MergeAdded:
		log.Printf("[INFO] added premium for %s: %s", summary.Day, notifier.FormatPremium(summary.Premium))
	case model.MergeUpdated:
		log.Printf("[INFO] updated premium for %s: %s", summary.Day, notifier.FormatPremium(summary.Premium))
	}
	log.Printf("[INFO] premium history: %d data points", merged.Len())

	snap := &model.Snapshot{Prices: quotes.Prices, Premium: merged}
	data, err := r.Store.Save(snap, r.Now())
	if err != nil {
		summary.Status = model.RunSaveError
		r.report(ctx, summary, nil)
		return summary, fmt.Errorf("save snapshot: %w", err)
	}
	summary.Status = model.RunWritten

	log.Printf("[INFO] saved to %s", r.Store.Path())
	log.Printf("[INFO] BTC date range: %s to %s", summary.FirstDay, summary.LastDay)
	log.Printf("[INFO] latest BTC: $%s", summary.LatestPrice.StringFixed(0))
	log.Printf("[INFO] latest premium: %s", notifier.FormatPremium(summary.LatestPremium))

	if action != model.MergeSkipped {
		if err := r.Recorder.RecordPremium(summary.RunID, model.PremiumPoint{Day: summary.Day, Value: summary.Premium.Decimal}); err != nil {
			log.Printf("[ERROR] record premium: %v", err)
		}
	}
	r.report(ctx, summary, data)
	return summary, nil
}

func fillPriceStats(s *model.RunSummary, prices model.PriceSeries) {
	s.PriceDays = prices.Len()
	s.FirstDay = prices.First().Day
	s.LastDay = prices.Last().Day
	s.LatestPrice = prices.Last().Price
	if high, low, err := calculator.PriceRange(prices); err == nil {
		s.High, s.Low = high, low
	}
}

// report runs the best-effort side outputs. None of them can fail the run.
func (r *Runner) report(ctx context.Context, s *model.RunSummary, data []byte) {
	if err := r.Recorder.RecordRun(s); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
	if data != nil {
		if err := r.Publisher.Publish(ctx, data); err != nil {
			log.Printf("[ERROR] publish to %s: %v", r.Publisher.Name(), err)
		} else if _, ok := r.Publisher.(publisher.Noop); !ok {
			log.Printf("[INFO] published to %s", r.Publisher.Name())
		}
	}
	if err := r.Notifier.Notify(ctx, s); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
