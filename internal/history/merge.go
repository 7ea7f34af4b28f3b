// Package history maintains the rolling Coinbase premium series across runs.
package history

import (
	"sort"

	"github.com/shopspring/decimal"

	"CoinbasePremium/internal/model"
)

// MaxDays is the retention window of the premium history.
const MaxDays = 365

// Merge folds today's premium into prior and returns the new history along
// with what happened to today's point. prior is never modified.
//
// A missing premium leaves the points as they were. A day already present has
// its value replaced, so re-running on the same day never duplicates it.
// Only the newest MaxDays points are kept, whether or not a point was added;
// a day that falls outside that window is reported as MergeSkipped.
func Merge(prior model.PremiumHistory, today model.Day, premium decimal.NullDecimal) (model.PremiumHistory, model.MergeAction) {
	merged := prior.Clone()
	if !premium.Valid {
		return Truncate(merged, MaxDays), model.MergeSkipped
	}

	action := model.MergeAdded
	if i := merged.IndexOf(today); i >= 0 {
		merged[i].Value = premium.Decimal
		action = model.MergeUpdated
	} else {
		point := model.PremiumPoint{Day: today, Value: premium.Decimal}
		// Normally today sorts last; a clock that moved backwards must not
		// break the ascending order.
		at := sort.Search(len(merged), func(i int) bool { return today.Before(merged[i].Day) })
		merged = append(merged, model.PremiumPoint{})
		copy(merged[at+1:], merged[at:])
		merged[at] = point
	}

	kept := Truncate(merged, MaxDays)
	// A day older than the whole window is cut off again right away.
	if kept.IndexOf(today) < 0 {
		return kept, model.MergeSkipped
	}
	return kept, action
}

// Truncate keeps the newest max points of h, preserving order.
func Truncate(h model.PremiumHistory, max int) model.PremiumHistory {
	if len(h) <= max {
		return h
	}
	return h[len(h)-max:]
}
