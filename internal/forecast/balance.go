package forecast

import (
	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
)

// AccountBalance computes one account's balance. When the statement carried
// a running balance column, the chronologically last transaction that has
// one is authoritative; otherwise the balance is the starting balance plus
// the sum of signed amounts.
func AccountBalance(state *ledger.State, accountID string) float64 {
	bestDate := ""
	bestBalance := 0.0
	haveBalance := false
	sum := 0.0

	for i := range state.Transactions {
		tx := &state.Transactions[i]
		if tx.AccountID != accountID {
			continue
		}
		sum += tx.Amount
		if tx.HasBalance && tx.Date >= bestDate {
			bestDate = tx.Date
			bestBalance = tx.Balance
			haveBalance = true
		}
	}

	if haveBalance {
		return bestBalance
	}
	return state.Accounts[accountID].StartingBalance + sum
}

// BankAvailable sums the balances of all plan-included accounts, converted
// to PLN.
func BankAvailable(state *ledger.State, rates Rates) float64 {
	total := 0.0
	for id, meta := range state.Accounts {
		if !meta.IncludeInPlan {
			continue
		}
		total += AccountBalance(state, id) * rates.For(meta.Currency)
	}
	return total
}

// CashRegisterBalance folds the cash book in insertion order: entries add
// or subtract, a close-of-day count resets the balance to the counted
// amount.
func CashRegisterBalance(state *ledger.State) float64 {
	balance := 0.0
	for i := range state.CashEntries {
		entry := &state.CashEntries[i]
		if entry.Kind == model.CashCloseBalance {
			balance = entry.Amount
			continue
		}
		balance += entry.SignedAmount()
	}
	return balance
}

// AvailableOptions selects how the total available cash is computed.
type AvailableOptions struct {
	// Manual replaces the computed bank total with ManualAmount, for users
	// who track balances outside their statements.
	Manual       bool
	ManualAmount float64
	Rates        Rates
}

// AvailableTotal returns the cash available for the payment plan: bank
// accounts (or the manual figure) plus the cash register.
func AvailableTotal(state *ledger.State, opts AvailableOptions) float64 {
	rates := opts.Rates
	if rates == nil {
		rates = DefaultRates()
	}
	bank := BankAvailable(state, rates)
	if opts.Manual {
		bank = opts.ManualAmount
	}
	return bank + CashRegisterBalance(state)
}
