package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
)

const ref = "2025-10-20"

func invoiceLedger(invoices ...model.Invoice) *ledger.State {
	s := ledger.NewState()
	s.AddInvoices(invoices...)
	return s
}

func TestObligationWindow(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "past", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-19", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "today", AmountDue: 20, Currency: "PLN", DueDate: "2025-10-20", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "edge", AmountDue: 30, Currency: "PLN", DueDate: "2025-10-27", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "beyond", AmountDue: 40, Currency: "PLN", DueDate: "2025-10-28", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "paid", AmountDue: 50, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusPaid},
		model.Invoice{Number: "eur", AmountDue: 60, Currency: "EUR", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
	)

	window := ObligationWindow(s, 7, ref)

	require.Len(t, window, 2)
	assert.Equal(t, "today", window[0].Number)
	assert.Equal(t, "edge", window[1].Number)
	assert.InDelta(t, 50.0, ObligationTotal(s, 7, ref), 1e-9)
}

func TestObligationTotalGrowsWithWindow(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "a", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "b", AmountDue: 20, Currency: "PLN", DueDate: "2025-10-25", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "c", AmountDue: 30, Currency: "PLN", DueDate: "2025-11-05", Status: model.InvoiceStatusUnpaid},
	)

	for _, refDate := range []string{"2025-10-15", "2025-10-20", "2025-10-26", "2025-11-10"} {
		week := ObligationTotal(s, 7, refDate)
		month := ObligationTotal(s, 30, refDate)
		assert.LessOrEqual(t, week, month, "ref %s", refDate)
	}
}

func TestBuildPlanOrderAndGreed(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "big-due", AmountDue: 600, Currency: "PLN", DueDate: "2025-10-22", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "small-overdue", AmountDue: 100, Currency: "PLN", DueDate: "2025-10-10", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "big-overdue", AmountDue: 400, Currency: "PLN", DueDate: "2025-10-15", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "small-due", AmountDue: 50, Currency: "PLN", DueDate: "2025-10-24", Status: model.InvoiceStatusUnpaid},
	)

	plan := BuildPlan(s, PlanWeek, 560, PlanOptions{Ref: ref})

	// Overdue first (larger overdue before smaller), then due invoices by
	// amount. 600 does not fit after the overdue pair, 50 still does.
	require.Len(t, plan.Entries, 3)
	assert.Equal(t, "big-overdue", plan.Entries[0].Invoice.Number)
	assert.True(t, plan.Entries[0].Overdue)
	assert.Equal(t, "small-overdue", plan.Entries[1].Invoice.Number)
	assert.Equal(t, "small-due", plan.Entries[2].Invoice.Number)
	assert.False(t, plan.Entries[2].Overdue)
	assert.Equal(t, 1, plan.Skipped)
	assert.InDelta(t, 10.0, plan.Remaining, 1e-9)
}

func TestBuildPlanNeverOverspends(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "a", AmountDue: 300, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "b", AmountDue: 200, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "c", AmountDue: 100, Currency: "PLN", DueDate: "2025-10-21", Status: model.InvoiceStatusUnpaid},
	)

	for _, available := range []float64{0, 99, 100, 450, 600, 1000} {
		plan := BuildPlan(s, PlanAll, available, PlanOptions{Ref: ref})
		total := 0.0
		for _, e := range plan.Entries {
			total += e.Invoice.AmountDue
		}
		assert.LessOrEqual(t, total, available)
		assert.GreaterOrEqual(t, plan.Remaining, 0.0)
		assert.InDelta(t, available-total, plan.Remaining, 1e-9)
	}
}

func TestBuildPlanModes(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "overdue", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-01", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "today", AmountDue: 10, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "in-week", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-26", Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "next-month", AmountDue: 10, Currency: "PLN", DueDate: "2025-11-15", Status: model.InvoiceStatusUnpaid},
	)

	assert.Len(t, BuildPlan(s, PlanToday, 1000, PlanOptions{Ref: ref}).Entries, 1)
	assert.Len(t, BuildPlan(s, PlanWeek, 1000, PlanOptions{Ref: ref}).Entries, 3)
	assert.Len(t, BuildPlan(s, PlanAll, 1000, PlanOptions{Ref: ref}).Entries, 4)
}

func TestBuildPlanTodayExcludesOverdue(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "F/overdue", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-10", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "F/today", AmountDue: 10, Currency: "PLN", DueDate: "2025-10-19", Status: model.InvoiceStatusUnpaid},
	)

	plan := BuildPlan(s, PlanToday, 1000, PlanOptions{Ref: "2025-10-19"})

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "F/today", plan.Entries[0].Invoice.Number)
	assert.False(t, plan.Entries[0].Overdue)
}

func TestBuildPlanBlacklist(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "a", Supplier: "ACME Sp. z o.o.", AmountDue: 10, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "b", Supplier: "Orlen", AmountDue: 10, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
	)

	plan := BuildPlan(s, PlanToday, 1000, PlanOptions{Ref: ref, Blacklist: []string{"acme"}})

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "b", plan.Entries[0].Invoice.Number)
}

func TestMinimumPayment(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "small", AmountDue: 100, Currency: "PLN", DueDate: "2025-10-10", Status: model.InvoiceStatusOverdue},
		model.Invoice{Number: "large", AmountDue: 900, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "future", AmountDue: 5000, Currency: "PLN", DueDate: "2025-11-01", Status: model.InvoiceStatusUnpaid},
	)

	pick := MinimumPayment(s, 0.05, ref)
	require.NotNil(t, pick)
	assert.Equal(t, "large", pick.Number)
}

func TestMinimumPaymentTieBreak(t *testing.T) {
	// A zero penalty rate makes every penalty equal; the larger amount
	// wins the tie.
	s := invoiceLedger(
		model.Invoice{Number: "small", AmountDue: 100, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
		model.Invoice{Number: "large", AmountDue: 300, Currency: "PLN", DueDate: ref, Status: model.InvoiceStatusUnpaid},
	)

	pick := MinimumPayment(s, 0, ref)
	require.NotNil(t, pick)
	assert.Equal(t, "large", pick.Number)
}

func TestMinimumPaymentNothingDue(t *testing.T) {
	s := invoiceLedger(
		model.Invoice{Number: "future", AmountDue: 100, Currency: "PLN", DueDate: "2025-12-01", Status: model.InvoiceStatusUnpaid},
	)
	assert.Nil(t, MinimumPayment(s, 0.05, ref))
}
