package notifier

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"CoinbasePremium/internal/calculator"
	"CoinbasePremium/internal/model"
)

// FormatRunReport formats a run summary into a Telegram message.
func FormatRunReport(s *model.RunSummary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>Coinbase Premium</b> | %s\n\n", s.Day))

	if s.Status == model.RunNoPrices {
		b.WriteString("❌ BTC price history unavailable, nothing written\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("BTC range: %s → %s (%d days)\n", s.FirstDay, s.LastDay, s.PriceDays))
	b.WriteString(fmt.Sprintf("Latest BTC: $%s\n", s.LatestPrice.StringFixed(0)))
	if s.PriceDays > 0 {
		latest := s.LatestPrice.InexactFloat64()
		if pos, err := calculator.RangePosition(latest, s.High.Price.InexactFloat64(), s.Low.Price.InexactFloat64()); err == nil {
			b.WriteString(fmt.Sprintf("Range: $%s – $%s (at %.0f%%)\n",
				s.Low.Price.StringFixed(0), s.High.Price.StringFixed(0), pos*100))
		}
	}

	b.WriteString(fmt.Sprintf("\nCoinbase: %s | Binance: %s\n", formatPrice(s.CoinbasePrice), formatPrice(s.BinancePrice)))
	switch s.Action {
	case model.MergeAdded:
		b.WriteString(fmt.Sprintf("📈 Premium added: %s\n", FormatPremium(s.Premium)))
	case model.MergeUpdated:
		b.WriteString(fmt.Sprintf("📈 Premium updated: %s\n", FormatPremium(s.Premium)))
	default:
		b.WriteString("⚠️ Premium skipped: spot price missing\n")
	}
	b.WriteString(fmt.Sprintf("History: %d points, latest %s\n", s.HistoryLen, FormatPremium(s.LatestPremium)))

	if s.Status == model.RunSaveError {
		b.WriteString("\n❌ failed to write data file\n")
	}
	return b.String()
}

// FormatPremium renders a premium as a signed percentage, or N/A.
func FormatPremium(p decimal.NullDecimal) string {
	if !p.Valid {
		return "N/A"
	}
	s := p.Decimal.StringFixed(4)
	if !p.Decimal.IsNegative() {
		s = "+" + s
	}
	return s + "%"
}

func formatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return "N/A"
	}
	return "$" + p.Decimal.StringFixed(2)
}
