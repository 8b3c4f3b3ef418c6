// Package ledger owns the in-memory collections the engines operate on:
// transactions, invoices, cash entries and per-account metadata. All access
// is single-threaded; the reconciliation and forecast engines receive a
// *State and mutate Transaction/Invoice fields in place.
package ledger

import (
	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// State is the ledger the engines read and mutate. Construct with NewState
// or Restore; do not share one State across goroutines.
type State struct {
	Accounts     map[string]model.AccountMeta
	Settings     map[string]string
	Transactions []model.Transaction
	Invoices     []model.Invoice
	CashEntries  []model.CashEntry
	onChange     []func()
}

// NewState returns an empty ledger.
func NewState() *State {
	return &State{
		Accounts: make(map[string]model.AccountMeta),
		Settings: make(map[string]string),
	}
}

// OnChange registers a callback invoked after every mutation that should be
// persisted. The debounced saver subscribes here.
func (s *State) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// MarkChanged fires the change callbacks. Engines call it after in-place
// field mutations that bypass the Add/Delete helpers.
func (s *State) MarkChanged() {
	for _, fn := range s.onChange {
		fn()
	}
}

// AddTransactions appends transactions, assigns ids where missing, rebuilds
// the derived account metadata and fires the change callbacks.
func (s *State) AddTransactions(txns ...model.Transaction) {
	s.Transactions = append(s.Transactions, txns...)
	s.EnsureTransactionIDs()
	s.InferAccounts()
	s.MarkChanged()
}

// AddInvoices appends invoices and fires the change callbacks.
func (s *State) AddInvoices(invoices ...model.Invoice) {
	s.Invoices = append(s.Invoices, invoices...)
	s.MarkChanged()
}

// AddCashEntry records one cash-register movement dated today and returns it.
func (s *State) AddCashEntry(kind string, amount float64, source, comment string) model.CashEntry {
	entry := model.CashEntry{
		ID:      model.NewID("cash"),
		Date:    normalize.Today(),
		Kind:    kind,
		Amount:  amount,
		Source:  source,
		Comment: comment,
	}
	s.CashEntries = append(s.CashEntries, entry)
	s.MarkChanged()
	return entry
}

// DeleteTransaction removes a transaction by id. Returns false when the id
// is unknown.
func (s *State) DeleteTransaction(id string) bool {
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			s.Transactions = append(s.Transactions[:i], s.Transactions[i+1:]...)
			s.InferAccounts()
			s.MarkChanged()
			return true
		}
	}
	return false
}

// DeleteInvoice removes an invoice by number.
func (s *State) DeleteInvoice(number string) bool {
	for i := range s.Invoices {
		if s.Invoices[i].Number == number {
			s.Invoices = append(s.Invoices[:i], s.Invoices[i+1:]...)
			s.MarkChanged()
			return true
		}
	}
	return false
}

// DeleteCashEntry removes a cash entry by id.
func (s *State) DeleteCashEntry(id string) bool {
	for i := range s.CashEntries {
		if s.CashEntries[i].ID == id {
			s.CashEntries = append(s.CashEntries[:i], s.CashEntries[i+1:]...)
			s.MarkChanged()
			return true
		}
	}
	return false
}

// EnsureTransactionIDs assigns a synthetic id to every transaction that has
// none, so reconciliation links stay stable across saves.
func (s *State) EnsureTransactionIDs() {
	for i := range s.Transactions {
		if s.Transactions[i].ID == "" {
			s.Transactions[i].ID = model.NewID("tx")
		}
	}
}

// TransactionByID returns the transaction with the given id, or nil.
func (s *State) TransactionByID(id string) *model.Transaction {
	if id == "" {
		return nil
	}
	for i := range s.Transactions {
		if s.Transactions[i].ID == id {
			return &s.Transactions[i]
		}
	}
	return nil
}

// InvoiceByNumber returns the invoice with the given number, or nil.
func (s *State) InvoiceByNumber(number string) *model.Invoice {
	if number == "" {
		return nil
	}
	for i := range s.Invoices {
		if s.Invoices[i].Number == number {
			return &s.Invoices[i]
		}
	}
	return nil
}

// Snapshot copies the ledger into the persistence contract shape.
func (s *State) Snapshot() model.Snapshot {
	snap := model.Snapshot{
		Transactions: append([]model.Transaction(nil), s.Transactions...),
		Invoices:     append([]model.Invoice(nil), s.Invoices...),
		CashEntries:  append([]model.CashEntry(nil), s.CashEntries...),
		AccountMeta:  make(map[string]model.AccountMeta, len(s.Accounts)),
		Settings:     make(map[string]string, len(s.Settings)),
	}
	for k, v := range s.Accounts {
		snap.AccountMeta[k] = v
	}
	for k, v := range s.Settings {
		snap.Settings[k] = v
	}
	return snap
}

// Restore replaces the ledger contents with a snapshot. Absent collections
// load as empty; ids and account metadata are re-derived afterwards so a
// partial snapshot still produces a consistent ledger.
func (s *State) Restore(snap model.Snapshot) {
	s.Transactions = append([]model.Transaction(nil), snap.Transactions...)
	s.Invoices = append([]model.Invoice(nil), snap.Invoices...)
	s.CashEntries = append([]model.CashEntry(nil), snap.CashEntries...)
	s.Accounts = make(map[string]model.AccountMeta, len(snap.AccountMeta))
	for k, v := range snap.AccountMeta {
		s.Accounts[k] = v
	}
	s.Settings = make(map[string]string, len(snap.Settings))
	for k, v := range snap.Settings {
		s.Settings[k] = v
	}
	s.EnsureTransactionIDs()
	s.InferAccounts()
}
