package forecast

import (
	"sort"
	"strings"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

// PlanMode selects which due dates a payment plan considers.
type PlanMode string

const (
	PlanToday PlanMode = "today" // due exactly today
	PlanWeek  PlanMode = "week"  // everything due within 7 days
	PlanAll   PlanMode = "all"   // every open obligation
)

// PlanOptions tunes plan building.
type PlanOptions struct {
	// Ref is the reference date (ISO). Blank means today.
	Ref string
	// Blacklist excludes invoices whose supplier contains any of these
	// substrings (case-insensitive). Used to park disputed suppliers.
	Blacklist []string
}

// PlanEntry is one invoice the plan recommends paying.
type PlanEntry struct {
	Invoice model.Invoice
	Overdue bool
}

// Plan is the result of a greedy payment pass.
type Plan struct {
	Entries   []PlanEntry
	Remaining float64
	Skipped   int // open obligations in the window the cash did not cover
}

// openPLNInvoices returns the open PLN obligations, excluding blacklisted
// suppliers.
func openPLNInvoices(state *ledger.State, blacklist []string) []model.Invoice {
	var out []model.Invoice
	for i := range state.Invoices {
		inv := state.Invoices[i]
		if !inv.IsOpen() || !strings.EqualFold(inv.Currency, "PLN") {
			continue
		}
		if supplierBlacklisted(inv.Supplier, blacklist) {
			continue
		}
		out = append(out, inv)
	}
	return out
}

func supplierBlacklisted(supplier string, blacklist []string) bool {
	s := strings.ToLower(supplier)
	for _, b := range blacklist {
		b = strings.ToLower(strings.TrimSpace(b))
		if b != "" && strings.Contains(s, b) {
			return true
		}
	}
	return false
}

// ObligationWindow returns the open PLN invoices due between ref and
// ref+days inclusive. Obligations already past due before ref are not part
// of the window; they surface through the plan's overdue ordering instead.
func ObligationWindow(state *ledger.State, days int, ref string) []model.Invoice {
	if ref == "" {
		ref = normalize.Today()
	}
	end := normalize.AddDays(ref, days)

	var out []model.Invoice
	for _, inv := range openPLNInvoices(state, nil) {
		if inv.DueDate >= ref && inv.DueDate <= end {
			out = append(out, inv)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate < out[j].DueDate })
	return out
}

// ObligationTotal sums the window.
func ObligationTotal(state *ledger.State, days int, ref string) float64 {
	total := 0.0
	for _, inv := range ObligationWindow(state, days, ref) {
		total += inv.AmountDue
	}
	return total
}

// BuildPlan picks which obligations to pay with the available cash. Overdue
// invoices come first, then larger amounts; each invoice is taken greedily
// while the running cash stays non-negative, so a large unaffordable
// invoice does not block smaller ones behind it.
func BuildPlan(state *ledger.State, mode PlanMode, available float64, opts PlanOptions) Plan {
	ref := opts.Ref
	if ref == "" {
		ref = normalize.Today()
	}

	candidates := openPLNInvoices(state, opts.Blacklist)

	var window []model.Invoice
	for _, inv := range candidates {
		switch mode {
		case PlanToday:
			// Strictly today. Overdue obligations are not swept in here;
			// they surface through week/all mode and the minimum-payment
			// pick.
			if inv.DueDate == ref {
				window = append(window, inv)
			}
		case PlanWeek:
			if inv.DueDate <= normalize.AddDays(ref, 7) {
				window = append(window, inv)
			}
		default:
			window = append(window, inv)
		}
	}

	sort.SliceStable(window, func(i, j int) bool {
		io, jo := window[i].DueDate < ref, window[j].DueDate < ref
		if io != jo {
			return io
		}
		return window[i].AmountDue > window[j].AmountDue
	})

	plan := Plan{Remaining: available}
	for _, inv := range window {
		if plan.Remaining-inv.AmountDue < 0 {
			plan.Skipped++
			continue
		}
		plan.Remaining -= inv.AmountDue
		plan.Entries = append(plan.Entries, PlanEntry{
			Invoice: inv,
			Overdue: inv.DueDate < ref,
		})
	}
	return plan
}

// MinimumPayment picks the single obligation whose delay hurts most: among
// overdue and due-today PLN invoices, the one with the highest estimated
// penalty (amount × penaltyPct), ties broken by the larger amount. Returns
// nil when nothing is due.
func MinimumPayment(state *ledger.State, penaltyPct float64, ref string) *model.Invoice {
	if ref == "" {
		ref = normalize.Today()
	}

	var due []model.Invoice
	for _, inv := range openPLNInvoices(state, nil) {
		if inv.DueDate <= ref {
			due = append(due, inv)
		}
	}
	if len(due) == 0 {
		return nil
	}

	sort.SliceStable(due, func(i, j int) bool {
		pi, pj := due[i].AmountDue*penaltyPct, due[j].AmountDue*penaltyPct
		if pi != pj {
			return pi > pj
		}
		return due[i].AmountDue > due[j].AmountDue
	})
	pick := due[0]
	return &pick
}
