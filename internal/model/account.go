package model

// AccountMeta holds per-account settings keyed by account id. The set of
// accounts is derived from observed transactions and rebuilt whenever the
// transaction collection changes; user overrides (currency, inclusion,
// starting balance, type) are overlaid on top of each rebuild.
type AccountMeta struct {
	ID              string
	Name            string
	Currency        string
	Type            string // free-form label, e.g. "Biznes" or "Osobisty"
	StartingBalance float64
	IncludeInPlan   bool
}

// Snapshot is the persistence contract for the whole ledger state. Absent
// collections decode as empty; SavedAt is zero when the writer did not stamp
// the snapshot.
type Snapshot struct {
	Transactions []Transaction          `json:"transactions"`
	Invoices     []Invoice              `json:"invoices"`
	CashEntries  []CashEntry            `json:"cashEntries"`
	AccountMeta  map[string]AccountMeta `json:"accountMeta"`
	Settings     map[string]string      `json:"settings"`
	SavedAt      int64                  `json:"savedAt,omitempty"` // unix millis
}

// IsEmpty reports whether the snapshot carries no ledger data at all.
/// Settings alone do not count: an empty remote snapshot must never erase
// non-empty local collections during a merge.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Transactions) == 0 &&
		len(s.Invoices) == 0 &&
		len(s.CashEntries) == 0 &&
		len(s.AccountMeta) == 0
}
