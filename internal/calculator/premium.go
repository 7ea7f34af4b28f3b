package calculator

import "github.com/shopspring/decimal"

// PremiumPrecision is the number of decimal places kept on the premium.
const PremiumPrecision = 4

var hundred = decimal.NewFromInt(100)

// CalculatePremium returns the Coinbase premium over Binance in percent:
// (coinbase - binance) / binance * 100, rounded to four places.
// The result is invalid when either price is missing or binance is zero.
func CalculatePremium(coinbase, binance decimal.NullDecimal) decimal.NullDecimal {
	if !coinbase.Valid || !binance.Valid {
		return decimal.NullDecimal{}
	}
	if binance.Decimal.IsZero() {
		return decimal.NullDecimal{}
	}
	premium := coinbase.Decimal.Sub(binance.Decimal).
		Div(binance.Decimal).
		Mul(hundred).
		Round(PremiumPrecision)
	return decimal.NewNullDecimal(premium)
}
