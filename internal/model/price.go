package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DayLayout is the wire format of a calendar day.
const DayLayout = "2006-01-02"

// Day is a calendar day with no time component, formatted as YYYY-MM-DD.
// The zero-padded layout keeps lexical and chronological order identical.
type Day string

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	return Day(t.Format(DayLayout))
}

// ParseDay validates s as a YYYY-MM-DD calendar day.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse day %q: %w", s, err)
	}
	if t.Format(DayLayout) != s {
		return "", fmt.Errorf("parse day %q: not in %s form", s, DayLayout)
	}
	return Day(s), nil
}

func (d Day) String() string { return string(d) }

// Before reports whether d is strictly earlier than o.
func (d Day) Before(o Day) bool { return d < o }

// DailyPrice is a single daily close.
type DailyPrice struct {
	Day   Day
	Price decimal.Decimal
}

// PriceSeries holds one close per calendar day in ascending order.
type PriceSeries []DailyPrice

// Len returns the number of days in the series.
func (s PriceSeries) Len() int { return len(s) }

// First returns the oldest entry. The series must not be empty.
func (s PriceSeries) First() DailyPrice { return s[0] }

// Last returns the newest entry. The series must not be empty.
func (s PriceSeries) Last() DailyPrice { return s[len(s)-1] }
