package ledger

import "github.com/onetapday/otd/internal/model"

// Merge reconciles a local snapshot with one loaded from another store.
// Collection by collection it prefers the side that actually has content;
// when both sides have content and both carry a save timestamp, the newer
// snapshot wins. An empty remote never erases non-empty local data.
func Merge(local, remote model.Snapshot) model.Snapshot {
	if remote.IsEmpty() {
		return local
	}
	if local.IsEmpty() {
		return remote
	}

	remoteWins := remote.SavedAt > 0 && remote.SavedAt >= local.SavedAt

	out := model.Snapshot{
		Transactions: pickTransactions(local.Transactions, remote.Transactions, remoteWins),
		Invoices:     pickInvoices(local.Invoices, remote.Invoices, remoteWins),
		CashEntries:  pickCashEntries(local.CashEntries, remote.CashEntries, remoteWins),
		AccountMeta:  pickAccounts(local.AccountMeta, remote.AccountMeta, remoteWins),
		Settings:     pickSettings(local.Settings, remote.Settings, remoteWins),
		SavedAt:      local.SavedAt,
	}
	if remote.SavedAt > out.SavedAt {
		out.SavedAt = remote.SavedAt
	}
	return out
}

func pickTransactions(local, remote []model.Transaction, remoteWins bool) []model.Transaction {
	if len(remote) == 0 {
		return local
	}
	if len(local) == 0 || remoteWins {
		return remote
	}
	return local
}

func pickInvoices(local, remote []model.Invoice, remoteWins bool) []model.Invoice {
	if len(remote) == 0 {
		return local
	}
	if len(local) == 0 || remoteWins {
		return remote
	}
	return local
}

func pickCashEntries(local, remote []model.CashEntry, remoteWins bool) []model.CashEntry {
	if len(remote) == 0 {
		return local
	}
	if len(local) == 0 || remoteWins {
		return remote
	}
	return local
}

func pickAccounts(local, remote map[string]model.AccountMeta, remoteWins bool) map[string]model.AccountMeta {
	if len(remote) == 0 {
		return local
	}
	if len(local) == 0 || remoteWins {
		return remote
	}
	return local
}

func pickSettings(local, remote map[string]string, remoteWins bool) map[string]string {
	if len(remote) == 0 {
		return local
	}
	if len(local) == 0 || remoteWins {
		return remote
	}
	return local
}
