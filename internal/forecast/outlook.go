package forecast

import (
	"math"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// Day is one bucket of the seven-day outlook.
type Day struct {
	Date      string
	Due       float64 // obligations landing on this day
	CashAfter float64 // available cash after paying everything through this day
}

// Outlook is the seven-day obligation forecast. GapDay is the index of the
// first day the cash goes negative, or -1 when the week is covered.
type Outlook struct {
	Days   []Day
	GapDay int
}

// SevenDay buckets the open PLN obligations of the next week by due date
// and subtracts them cumulatively from the available cash. Amounts already
// overdue land in the first bucket together with today's; amounts due
// exactly seven days out are clamped into the last bucket so the running
// balance still counts them.
func SevenDay(state *ledger.State, available float64, ref string) Outlook {
	if ref == "" {
		ref = normalize.Today()
	}

	due := make([]float64, 7)
	for _, inv := range openPLNInvoices(state, nil) {
		if inv.DueDate == "" {
			continue
		}
		offset := normalize.DaysBetween(ref, inv.DueDate)
		if offset > 7 {
			continue
		}
		if offset < 0 {
			offset = 0
		}
		if offset > 6 {
			offset = 6
		}
		due[offset] += inv.AmountDue
	}

	out := Outlook{Days: make([]Day, 7), GapDay: -1}
	cash := available
	for i := 0; i < 7; i++ {
		cash -= due[i]
		out.Days[i] = Day{
			Date:      normalize.AddDays(ref, i),
			Due:       due[i],
			CashAfter: cash,
		}
		if cash < 0 && out.GapDay < 0 {
			out.GapDay = i
		}
	}
	return out
}

// DayFlow summarizes one day's money movement across bank and cash
// register.
type DayFlow struct {
	Inflow  float64
	Outflow float64
	Net     float64
}

// DaySummary totals the bank transactions and cash entries dated on the
// given day. Close-of-day register counts are not movements and are
// ignored.
func DaySummary(state *ledger.State, date string) DayFlow {
	var flow DayFlow
	add := func(amount float64) {
		if amount >= 0 {
			flow.Inflow += amount
		} else {
			flow.Outflow += -amount
		}
	}
	for i := range state.Transactions {
		if state.Transactions[i].Date == date {
			add(state.Transactions[i].Amount)
		}
	}
	for i := range state.CashEntries {
		entry := &state.CashEntries[i]
		if entry.Date == date && entry.Kind != model.CashCloseBalance {
			add(entry.SignedAmount())
		}
	}
	flow.Net = flow.Inflow - flow.Outflow
	return flow
}

// Risk levels for the dashboard.
const (
	RiskGreen  = "green"
	RiskYellow = "yellow"
	RiskRed    = "red"
)

// RiskLevel grades the cash position: green when the month's obligations
// are covered (or there are none), yellow when at least the week is, red
// otherwise.
func RiskLevel(available, due7, due30 float64) string {
	switch {
	case due30 <= 0 || available >= due30:
		return RiskGreen
	case available >= due7:
		return RiskYellow
	default:
		return RiskRed
	}
}

// SafetyDays estimates how many days the available cash lasts at the
// current burn rate (month's obligations spread over 30 days, falling back
// to the week's over 7). Returns -1 when there is no burn at all.
func SafetyDays(available, due7, due30 float64) int {
	burn := due30 / 30
	if burn <= 0 {
		burn = due7 / 7
	}
	if burn <= 0 {
		return -1
	}
	if available <= 0 {
		return 0
	}
	return int(math.Floor(available / burn))
}

// NextPayments returns the n nearest open PLN obligations due within the
// next 30 days, soonest first.
func NextPayments(state *ledger.State, n int, ref string) []model.Invoice {
	if ref == "" {
		ref = normalize.Today()
	}
	window := ObligationWindow(state, 30, ref) // already due-date sorted
	if n >= 0 && len(window) > n {
		window = window[:n]
	}
	return window
}
