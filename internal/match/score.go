// Package match pairs open invoices with imported bank transactions. It
// scores every candidate pair on a 0..100 scale and either confirms the
// pairing outright or records it for manual review.
package match

import (
	"math"
	"strings"

	"github.com/onetapday/otd/internal/model"
)

// Confirmation thresholds on the 0..100 score scale.
const (
	ConfirmThreshold   = 85
	CandidateThreshold = 55
)

// Score component weights.
const (
	amountWeight       = 60
	numberWeight       = 25
	counterpartyWeight = 10
	outflowWeight      = 5
)

const amountTolerance = 0.01

// legalSuffixWords are dropped from supplier and counterparty names before
// comparison. Punctuation is stripped first, so "sp. z o.o." and "s.a"
// arrive here as "sp z oo" and "sa".
var legalSuffixWords = []string{
	"sp z oo",
	"spółka",
	"spolka",
	"sa",
	"ooo",
}

// Score rates how well a bank transaction matches an open invoice. Amount
// agreement dominates; the invoice number appearing in the transfer title is
// the next strongest signal.
func Score(inv *model.Invoice, tx *model.Transaction) int {
	score := 0

	if math.Abs(math.Abs(tx.Amount)-inv.AmountDue) <= amountTolerance && currencyCompatible(inv.Currency, tx.Currency) {
		score += amountWeight
	}
	if num := strings.ToLower(strings.TrimSpace(inv.Number)); num != "" {
		if strings.Contains(strings.ToLower(tx.Description), num) {
			score += numberWeight
		}
	}
	if namesSimilar(inv.Supplier, tx.Counterparty) {
		score += counterpartyWeight
	}
	if tx.Amount < 0 {
		score += outflowWeight
	}

	if score > 100 {
		score = 100
	}
	return score
}

// currencyCompatible treats a blank currency on either side as a wildcard.
func currencyCompatible(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}

// namesSimilar compares a supplier name with a transaction counterparty
// after normalization: lowercase, punctuation stripped, whitespace
// collapsed, common legal-form suffixes removed. Equality or containment in
// either direction counts.
func namesSimilar(supplier, counterparty string) bool {
	a := normalizeName(supplier)
	b := normalizeName(counterparty)
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

func normalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.NewReplacer(".", "", ",", "").Replace(s)
	s = " " + strings.Join(strings.Fields(s), " ") + " "
	for _, w := range legalSuffixWords {
		s = strings.ReplaceAll(s, " "+w+" ", " ")
	}
	return strings.Join(strings.Fields(s), " ")
}
