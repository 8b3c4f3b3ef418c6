package ledger

import "github.com/onetapday/otd/internal/model"

// defaultAccountType labels accounts derived from imported statements.
const defaultAccountType = "Biznes"

// InferAccounts rebuilds the account metadata map from the accounts observed
// in the transaction list, then overlays any previously saved entries so user
// edits (name, starting balance, plan inclusion) survive re-imports.
func (s *State) InferAccounts() {
	derived := make(map[string]model.AccountMeta)
	for i := range s.Transactions {
		tx := &s.Transactions[i]
		id := tx.AccountID
		if id == "" {
			id = model.UnknownAccountID
		}
		if _, ok := derived[id]; ok {
			continue
		}
		derived[id] = model.AccountMeta{
			ID:            id,
			Name:          shortAccountName(id),
			Currency:      tx.Currency,
			Type:          defaultAccountType,
			IncludeInPlan: true,
		}
	}
	// Saved entries win over derived ones, and manually created accounts
	// with no transactions yet are kept as-is.
	for id, saved := range s.Accounts {
		derived[id] = saved
	}
	s.Accounts = derived
}

// shortAccountName truncates long account identifiers (IBANs) to a display
// name.
func shortAccountName(id string) string {
	runes := []rune(id)
	if len(runes) <= 12 {
		return id
	}
	return string(runes[:12])
}
