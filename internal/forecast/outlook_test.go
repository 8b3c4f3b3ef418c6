package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
)

func TestSevenDayBuckets(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "overdue", AmountDue: 100, Currency: "PLN", DueDate: "2025-10-01", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "today", AmountDue: 50, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "day3", AmountDue: 200, Currency: "PLN", DueDate: "2025-10-23", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "day6", AmountDue: 75, Currency: "PLN", DueDate: "2025-10-26", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "day7", AmountDue: 25, Currency: "PLN", DueDate: "2025-10-27", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "day8", AmountDue: 999, Currency: "PLN", DueDate: "2025-10-28", Status: model.InvoiceStatusUnpaid},
	)

	out := SevenDay(s, 1000, ref)

	require.Len(t, out.Days, 7)
	// Overdue amounts are clamped into today's bucket, day-7 amounts into
	// the last one; day 8 falls outside the window entirely.
	assert.InDelta(t, 150.0, out.Days[0].Due, 1e-9)
	assert.InDelta(t, 200.0, out.Days[3].Due, 1e-9)
	assert.InDelta(t, 100.0, out.Days[6].Due, 1e-9)
	assert.Equal(t, ref, out.Days[0].Date)
	assert.Equal(t, "2025-10-26", out.Days[6].Date)
	assert.InDelta(t, 850.0, out.Days[0].CashAfter, 1e-9)
	assert.InDelta(t, 550.0, out.Days[6].CashAfter, 1e-9)
	assert.Equal(t, -1, out.GapDay)
}

func TestSevenDayCashAfterIsMonotonic(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "a", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "b", AmountDue: 20, Currency: "PLN", DueDate: "2025-10-24", Status: model.InvoiceStatusUnpaid},
	)

	out := SevenDay(s, 100, ref)
	for i := 1; i < len(out.Days); i++ {
		assert.LessOrEqual(t, out.Days[i].CashAfter, out.Days[i-1].CashAfter)
	}
}

func TestSevenDayGapDay(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "a", AmountDue: 80, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "b", AmountDue: 50, Currency: "PLN", DueDate: "2025-10-23", Status: model.InvoiceStatusUnpaid},
	)

	out := SevenDay(s, 100, ref)
	assert.Equal(t, 3, out.GapDay)
	assert.Less(t, out.Days[3].CashAfter, 0.0)
}

func TestDaySummary(t *testing.T) {
	s := ledger.NewState()
	s.AddTransactions(
		model.Transaction{ID: "tx-1", Date: "2025-10-20", AccountID: "a", Amount: 500, Currency: "PLN"},
		model.Transaction{ID: "tx-2", Date: "2025-10-20", AccountID: "a", Amount: -120, Currency: "PLN"},
		model.Transaction{ID: "tx-3", Date: "2025-10-19", AccountID: "a", Amount: -999, Currency: "PLN"},
	)
	s.CashEntries = append(s.CashEntries,
		model.CashEntry{ID: "c1", Date: "2025-10-20", Kind: model.CashIn, Amount: 80},
		model.CashEntry{ID: "c2", Date: "2025-10-20", Kind: model.CashOut, Amount: 30},
		model.CashEntry{ID: "c3", Date: "2025-10-20", Kind: model.CashCloseBalance, Amount: 5000},
	)

	flow := DaySummary(s, "2025-10-20")
	assert.InDelta(t, 580.0, flow.Inflow, 1e-9)
	assert.InDelta(t, 150.0, flow.Outflow, 1e-9)
	assert.InDelta(t, 430.0, flow.Net, 1e-9)
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name             string
		avail, o7, o30   float64
		want             string
	}{
		{"no obligations", 0, 0, 0, RiskGreen},
		{"month covered", 1000, 200, 900, RiskGreen},
		{"week covered only", 500, 200, 2000, RiskYellow},
		{"not even the week", 100, 200, 2000, RiskRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevel(tt.avail, tt.o7, tt.o30))
		})
	}
}

func TestSafetyDays(t *testing.T) {
	assert.Equal(t, 10, SafetyDays(300, 0, 900))   // burn 30/day
	assert.Equal(t, 7, SafetyDays(70, 70, 0))      // weekly fallback, 10/day
	assert.Equal(t, -1, SafetyDays(1000, 0, 0))    // nothing due
	assert.Equal(t, 0, SafetyDays(0, 0, 900))      // broke
}

func TestNextPayments(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "soon", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "later", AmountDue: 10, Currency: "PLN", DueDate: "2025-11-05", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "far", AmountDue: 10, Currency: "PLN", DueDate: "2025-12-24", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "paid", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-22", Status: model.InvoiceStatusPaid},
	)

	got := NextPayments(s, 5, ref)
	require.Len(t, got, 2)
	assert.Equal(t, "soon", got[0].Number)
	assert.Equal(t, "later", got[1].Number)

	got = NextPayments(s, 1, ref)
	require.Len(t, got, 1)
	assert.Equal(t, "soon", got[0].Number)
}
