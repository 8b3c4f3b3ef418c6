package ingest

import (
	"strings"

	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// matchedStatusSpellings are transaction statuses that mean "already paired
// with an invoice" in previously exported data.
var matchedStatusSpellings = []string{"matched", "sparowane"}

// TransactionsFromRows converts delimited-export rows into canonical
// transactions. Missing ids get synthetic ones, missing accounts resolve to
// UNKNOWN, malformed amounts normalize to zero and missing dates to today.
func TransactionsFromRows(rows []Row) []model.Transaction {
	out := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		date := normalize.Date(normalize.Field(row, txDateKeys...))
		iso := date.ISO
		if date.WasDefaulted {
			iso = normalize.Today()
		}

		id := normalize.Field(row, txIDKeys...)
		if id == "" {
			id = model.NewID("tx")
		}

		account := normalize.Field(row, txAccountKeys...)
		if account == "" {
			account = model.UnknownAccountID
		}

		status := model.TxStatusNone
		raw := strings.ToLower(normalize.Field(row, txStatusKeys...))
		for _, s := range matchedStatusSpellings {
			if raw == s {
				status = model.TxStatusMatched
			}
		}

		t := model.Transaction{
			ID:           id,
			Date:         iso,
			AccountID:    account,
			Counterparty: normalize.Field(row, txCounterpartyKeys...),
			Description:  normalize.Field(row, txDescriptionKeys...),
			Amount:       normalize.AmountValue(normalize.Field(row, txAmountKeys...)),
			Currency:     normalize.Currency(normalize.Field(row, txCurrencyKeys...)),
			Status:       status,
		}
		if raw := normalize.Field(row, txBalanceKeys...); raw != "" {
			if res := normalize.Amount(raw); !res.WasDefaulted {
				t.Balance = res.Value
				t.HasBalance = true
			}
		}
		out = append(out, t)
	}
	return out
}

// InvoicesFromRows converts delimited-export rows into canonical invoices.
// The raw status survives (model.Invoice understands locale variants);
// rows with no status at all start as unpaid.
func InvoicesFromRows(rows []Row) []model.Invoice {
	out := make([]model.Invoice, 0, len(rows))
	for _, row := range rows {
		number := normalize.Field(row, invNumberKeys...)
		if number == "" {
			number = model.NewID("inv")
		}

		status := normalize.Field(row, invStatusKeys...)
		if strings.TrimSpace(status) == "" {
			status = model.InvoiceStatusUnpaid
		}

		due := normalize.Date(normalize.Field(row, invDueDateKeys...))
		iso := due.ISO
		if due.WasDefaulted {
			iso = normalize.Today()
		}

		amountText := normalize.Field(row, invAmountKeys...)
		currency := normalize.Field(row, invCurrencyKeys...)
		if currency == "" {
			currency = amountText
		}

		out = append(out, model.Invoice{
			Number:    number,
			Supplier:  normalize.Field(row, invSupplierKeys...),
			DueDate:   iso,
			IssueDate: normalize.DateValue(normalize.Field(row, invIssueDateKeys...)),
			AmountDue: absFloat(normalize.AmountValue(amountText)),
			Currency:  normalize.Currency(currency),
			Status:    status,
		})
	}
	return out
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
