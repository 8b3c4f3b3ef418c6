// Package export renders the ledger as CSV. The format is deliberately
// plain: comma separator, one header row, two-decimal amounts, and embedded
// commas in free text replaced by spaces rather than quoted, so the files
// open cleanly in any spreadsheet.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

var (
	bookHeader      = []string{"date", "source", "account", "counterparty", "description", "amount", "currency", "doc_type", "doc_no", "doc_date", "due_date", "status"}
	statementHeader = []string{"date", "account", "counterparty", "description", "amount", "currency", "status"}
	invoicesHeader  = []string{"due_date", "invoice_no", "supplier", "amount", "currency", "status"}
	cashHeader      = []string{"date", "type", "amount", "source", "comment"}
)

// sanitize strips the characters that would break an unquoted CSV field.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}

func amountField(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func render(header []string, rows [][]string) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(header, ","))
	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, ","))
	}
	return []byte(b.String())
}

// Book renders the unified cash book: bank transactions, open invoices as
// planned outflows, and cash-register entries, sorted by date.
func Book(state *ledger.State) []byte {
	type bookRow struct {
		date string
		cols []string
	}
	var rows []bookRow

	for i := range state.Transactions {
		tx := &state.Transactions[i]
		account := tx.AccountID
		if account == "" {
			account = model.UnknownAccountID
		}
		rows = append(rows, bookRow{tx.Date, []string{
			tx.Date, "bank", account,
			sanitize(tx.Counterparty), sanitize(tx.Description),
			amountField(tx.Amount), tx.Currency,
			"", "", "", "", sanitize(tx.Status),
		}})
	}

	for i := range state.Invoices {
		inv := &state.Invoices[i]
		date := inv.IssueDate
		if date == "" {
			date = inv.DueDate
		}
		if date == "" {
			date = normalize.Today()
		}
		rows = append(rows, bookRow{date, []string{
			date, "invoice", "",
			sanitize(inv.Supplier), "INVOICE",
			amountField(-inv.AmountDue), inv.Currency,
			"INVOICE", sanitize(inv.Number), inv.IssueDate, inv.DueDate, sanitize(inv.Status),
		}})
	}

	for i := range state.CashEntries {
		entry := &state.CashEntries[i]
		desc := entry.Comment
		if desc == "" {
			desc = entry.Source
		}
		rows = append(rows, bookRow{entry.Date, []string{
			entry.Date, "cash", "KASA",
			"", sanitize(desc),
			amountField(entry.SignedAmount()), "PLN",
			"CASH", "", "", "", "",
		}})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].date < rows[j].date })

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.cols
	}
	return render(bookHeader, out)
}

// Statement renders the bank transactions alone.
func Statement(state *ledger.State) []byte {
	rows := make([][]string, 0, len(state.Transactions))
	for i := range state.Transactions {
		tx := &state.Transactions[i]
		account := tx.AccountID
		if account == "" {
			account = model.UnknownAccountID
		}
		rows = append(rows, []string{
			tx.Date, account,
			sanitize(tx.Counterparty), sanitize(tx.Description),
			amountField(tx.Amount), tx.Currency, sanitize(tx.Status),
		})
	}
	return render(statementHeader, rows)
}

// Invoices renders the invoice register.
func Invoices(state *ledger.State) []byte {
	rows := make([][]string, 0, len(state.Invoices))
	for i := range state.Invoices {
		inv := &state.Invoices[i]
		rows = append(rows, []string{
			inv.DueDate, sanitize(inv.Number), sanitize(inv.Supplier),
			amountField(inv.AmountDue), inv.Currency, sanitize(inv.Status),
		})
	}
	return render(invoicesHeader, rows)
}

// CashBook renders the cash register with signed amounts.
func CashBook(state *ledger.State) []byte {
	rows := make([][]string, 0, len(state.CashEntries))
	for i := range state.CashEntries {
		entry := &state.CashEntries[i]
		source := entry.Source
		if source == "" {
			source = "manual"
		}
		rows = append(rows, []string{
			entry.Date, entry.Kind,
			amountField(entry.SignedAmount()),
			sanitize(source), sanitize(entry.Comment),
		})
	}
	return render(cashHeader, rows)
}
