package match

import (
	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// Summary reports what one reconciliation pass did.
type Summary struct {
	Confirmed  int
	Candidates int
	Cleared    int
}

// Run scores every open invoice against every unmatched outflow and applies
// the thresholds: a best score at or above ConfirmThreshold confirms the
// pairing immediately, one at or above CandidateThreshold is stored on the
// invoice for review, anything lower clears a stale candidate. Among equal
// best scores the earliest transaction in ledger order wins. Running twice
// over the same ledger is a no-op the second time.
func Run(state *ledger.State) Summary {
	var sum Summary
	changed := false

	for i := range state.Invoices {
		inv := &state.Invoices[i]
		if inv.IsPaid() {
			continue
		}

		bestScore := 0
		bestIdx := -1
		for j := range state.Transactions {
			tx := &state.Transactions[j]
			if tx.IsMatched() || !tx.IsOutflow() {
				continue
			}
			if score := Score(inv, tx); score > bestScore {
				bestScore = score
				bestIdx = j
			}
		}

		switch {
		case bestScore >= ConfirmThreshold:
			confirm(inv, &state.Transactions[bestIdx])
			sum.Confirmed++
			changed = true
		case bestScore >= CandidateThreshold:
			id := state.Transactions[bestIdx].ID
			if inv.CandidateTxID != id || inv.CandidateScore != bestScore {
				inv.CandidateTxID = id
				inv.CandidateScore = bestScore
				changed = true
			}
			sum.Candidates++
		default:
			if inv.CandidateTxID != "" || inv.CandidateScore != 0 {
				inv.ClearCandidate()
				sum.Cleared++
				changed = true
			}
		}
	}

	if changed {
		state.MarkChanged()
	}
	return sum
}

// AcceptSafe confirms every invoice whose stored candidate scored at or
// above ConfirmThreshold. Candidates whose transaction has since been
// deleted or matched elsewhere are skipped. Returns the number confirmed.
func AcceptSafe(state *ledger.State) int {
	confirmed := 0
	for i := range state.Invoices {
		inv := &state.Invoices[i]
		if inv.IsPaid() || inv.CandidateScore < ConfirmThreshold {
			continue
		}
		tx := state.TransactionByID(inv.CandidateTxID)
		if tx == nil || tx.IsMatched() {
			continue
		}
		confirm(inv, tx)
		confirmed++
	}
	if confirmed > 0 {
		state.MarkChanged()
	}
	return confirmed
}

// AcceptOne confirms the stored candidate of a single invoice regardless of
// its score. Returns false when the invoice or its candidate transaction
// cannot be resolved.
func AcceptOne(state *ledger.State, invoiceNumber string) bool {
	inv := state.InvoiceByNumber(invoiceNumber)
	if inv == nil || inv.IsPaid() || inv.CandidateTxID == "" {
		return false
	}
	tx := state.TransactionByID(inv.CandidateTxID)
	if tx == nil || tx.IsMatched() {
		return false
	}
	confirm(inv, tx)
	state.MarkChanged()
	return true
}

// confirm links the pair in both directions and settles the invoice.
func confirm(inv *model.Invoice, tx *model.Transaction) {
	tx.Status = model.TxStatusMatched
	tx.LinkedInvoiceID = inv.Number
	inv.Status = model.InvoiceStatusPaid
	inv.PaidDate = normalize.Today()
	inv.ClearCandidate()
}
