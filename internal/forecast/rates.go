// Package forecast computes cash position, payment plans and the short-term
// obligation outlook from the ledger. All obligation math is done in PLN;
// foreign-currency account balances are converted with a configurable rate
// table.
package forecast

// Rates maps a currency code to its PLN conversion rate.
type Rates map[string]float64

// DefaultRates returns the built-in conversion table. Override individual
// rates via settings before calling the balance functions.
func DefaultRates() Rates {
	return Rates{
		"PLN": 1,
		"EUR": 4.30,
		"USD": 3.95,
	}
}

// For returns the PLN rate for a currency, treating unknown or blank codes
// as already-PLN.
func (r Rates) For(currency string) float64 {
	if rate, ok := r[currency]; ok && rate > 0 {
		return rate
	}
	return 1
}
