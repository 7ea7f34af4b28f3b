package model

import "github.com/shopspring/decimal"

// PremiumPoint is the Coinbase premium, in percent, observed on one day.
type PremiumPoint struct {
	Day   Day
	Value decimal.Decimal
}

// PremiumHistory is the accumulated premium series, unique by day and
// strictly increasing.
type PremiumHistory []PremiumPoint

// Len returns the number of points in the history.
func (h PremiumHistory) Len() int { return len(h) }

// IndexOf returns the position of day in h, or -1.
func (h PremiumHistory) IndexOf(day Day) int {
	for i, p := range h {
		if p.Day == day {
			return i
		}
	}
	return -1
}

// Latest returns the newest point, if any.
func (h PremiumHistory) Latest() (PremiumPoint, bool) {
	if len(h) == 0 {
		return PremiumPoint{}, false
	}
	return h[len(h)-1], true
}

// Clone returns a copy that shares no backing array with h.
func (h PremiumHistory) Clone() PremiumHistory {
	out := make(PremiumHistory, len(h))
	copy(out, h)
	return out
}
