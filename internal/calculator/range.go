package calculator

import (
	"errors"

	"CoinbasePremium/internal/model"
)

// PriceRange scans the series and returns the days with the highest and
// lowest close. Ties keep the earliest day.
func PriceRange(series model.PriceSeries) (high, low model.DailyPrice, err error) {
	if series.Len() == 0 {
		return model.DailyPrice{}, model.DailyPrice{}, errors.New("no daily prices provided")
	}
	high, low = series[0], series[0]
	for _, p := range series[1:] {
		if p.Price.GreaterThan(high.Price) {
			high = p
		}
		if p.Price.LessThan(low.Price) {
			low = p
		}
	}
	return high, low, nil
}

// RangePosition returns where current sits between low and high (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}
