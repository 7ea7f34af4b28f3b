package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the document persisted after every successful run.
type Snapshot struct {
	Prices      PriceSeries
	Premium     PremiumHistory
	LastUpdated time.Time
}

// RunStatus describes how a run ended.
type RunStatus string

const (
	RunWritten   RunStatus = "WRITTEN"
	RunNoPrices  RunStatus = "NO_PRICES"
	RunSaveError RunStatus = "SAVE_ERROR"
)

// MergeAction tells what a merge did with today's premium.
type MergeAction string

const (
	MergeAdded   MergeAction = "ADDED"
	MergeUpdated MergeAction = "UPDATED"
	MergeSkipped MergeAction = "SKIPPED"
)

// RunSummary collects what a single run observed and produced.
type RunSummary struct {
	RunID         string
	StartedAt     time.Time
	Day           Day
	Status        RunStatus
	PriceDays     int
	FirstDay      Day
	LastDay       Day
	LatestPrice   decimal.Decimal
	High          DailyPrice
	Low           DailyPrice
	CoinbasePrice decimal.NullDecimal
	BinancePrice  decimal.NullDecimal
	Premium       decimal.NullDecimal
	Action        MergeAction
	HistoryLen    int
	LatestPremium decimal.NullDecimal
}
