package model

// Cash register entry kinds.
const (
	CashIn           = "in"
	CashOut          = "out"
	CashCloseBalance = "closeBalance"
)

// CashEntry is one cash-register movement. Amount is unsigned; Kind decides
// the direction. A closeBalance entry resets the running register balance to
// its amount instead of adding or subtracting.
type CashEntry struct {
	ID      string
	Date    string // ISO YYYY-MM-DD
	Kind    string
	Source  string
	Comment string
	Amount  float64
}

// SignedAmount returns the entry amount with its direction applied.
// closeBalance entries report their raw amount; callers that fold a running
// balance must treat them as resets, not additions.
func (c *CashEntry) SignedAmount() float64 {
	if c.Kind == CashOut {
		return -abs(c.Amount)
	}
	return abs(c.Amount)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
