package model

import (
	"crypto/sha256"
	"fmt"
)

// Transaction statuses. A transaction is either untouched or paired with an
// invoice by the reconciliation engine.
const (
	TxStatusNone    = ""
	TxStatusMatched = "matched"
)

// UnknownAccountID is used when a statement row carries no resolvable
// account identifier.
const UnknownAccountID = "UNKNOWN"

// Transaction represents a single bank or cash movement. Amount is signed:
// positive values are inflows, negative values are outflows.
type Transaction struct {
	ID              string
	Date            string // ISO YYYY-MM-DD
	AccountID       string
	Counterparty    string
	Description     string
	Currency        string
	Status          string
	LinkedInvoiceID string
	Amount          float64
	Balance         float64 // running balance after the operation, if the export carries one
	HasBalance      bool
}

// IsOutflow reports whether the transaction moves money out.
func (t *Transaction) IsOutflow() bool {
	return t.Amount < 0
}

// IsMatched reports whether the reconciliation engine already paired this
// transaction with an invoice.
func (t *Transaction) IsMatched() bool {
	return t.Status == TxStatusMatched
}

// GenerateHash creates a stable hash for duplicate detection across imports.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s:%s",
		t.Date,
		t.Amount,
		t.Counterparty,
		t.AccountID)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
