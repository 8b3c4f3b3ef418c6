package normalize

import "strings"

// Supported currencies. Everything unrecognized falls back to PLN, the
// operating currency of the ledger.
const (
	CurrencyPLN = "PLN"
	CurrencyEUR = "EUR"
	CurrencyUSD = "USD"
)

// Currency detects a currency from free text by keyword or symbol.
func Currency(text string) string {
	s := strings.ToUpper(text)
	switch {
	case strings.Contains(s, "PLN") || strings.Contains(s, "ZŁ") || strings.Contains(s, "ZL"):
		return CurrencyPLN
	case strings.Contains(s, "EUR") || strings.Contains(s, "€"):
		return CurrencyEUR
	case strings.Contains(s, "USD") || strings.Contains(s, "$"):
		return CurrencyUSD
	default:
		return CurrencyPLN
	}
}
