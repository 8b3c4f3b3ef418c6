package model

import "strings"

// Canonical invoice statuses. Imported data may carry locale variants
// ("Opłacone", "к оплате", …); the status helpers below accept them so that
// one bad export does not break reconciliation or the obligation windows.
const (
	InvoiceStatusUnpaid  = "unpaid"
	InvoiceStatusOverdue = "overdue"
	InvoiceStatusPaid    = "paid"
)

// paidVariants are the lowercase status spellings that mean "already paid"
// across the bank export languages we ingest.
var paidVariants = []string{"paid", "opłacone", "oplacone", "оплачено"}

// openVariants are the lowercase status spellings that mean "still owed".
var openVariants = []string{
	"unpaid", "overdue", "to pay",
	"do zapłaty", "do zaplaty", "przeterminowane",
	"к оплате", "просрочено",
}

// overdueVariants are the open spellings that additionally mean "past due".
var overdueVariants = []string{"overdue", "przeterminowane", "просрочено"}

// Invoice represents a payable extracted from an import or entered manually.
// AmountDue is unsigned; paying it is always an outflow.
type Invoice struct {
	Number         string
	Supplier       string
	DueDate        string // ISO YYYY-MM-DD
	IssueDate      string
	PaidDate       string
	Currency       string
	Status         string
	CandidateTxID  string // reconciliation candidate, not yet confirmed
	AmountDue      float64
	CandidateScore int // 0..100, meaningful only when CandidateTxID is set
}

// IsPaid reports whether the invoice status is any paid variant. Paid
// invoices are excluded from reconciliation and obligation windows.
func (i *Invoice) IsPaid() bool {
	s := strings.ToLower(strings.TrimSpace(i.Status))
	for _, v := range paidVariants {
		if s == v {
			return true
		}
	}
	return false
}

// IsOpen reports whether the invoice still needs paying.
func (i *Invoice) IsOpen() bool {
	s := strings.ToLower(strings.TrimSpace(i.Status))
	for _, v := range openVariants {
		if s == v {
			return true
		}
	}
	return false
}

// IsOverdue reports whether the invoice is open and flagged past due.
func (i *Invoice) IsOverdue() bool {
	s := strings.ToLower(strings.TrimSpace(i.Status))
	for _, v := range overdueVariants {
		if s == v {
			return true
		}
	}
	return false
}

// ClearCandidate drops any stale reconciliation candidate.
func (i *Invoice) ClearCandidate() {
	i.CandidateTxID = ""
	i.CandidateScore = 0
}
