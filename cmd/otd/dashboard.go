package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/forecast"
	"github.com/onetapday/otd/internal/normalize"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's cash position at a glance",
		RunE:  runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	state := sess.State
	rates := currentRates()
	today := normalize.Today()

	bank := forecast.BankAvailable(state, rates)
	register := forecast.CashRegisterBalance(state)
	available := bank + register
	due7 := forecast.ObligationTotal(state, 7, today)
	due30 := forecast.ObligationTotal(state, 30, today)
	risk := forecast.RiskLevel(available, due7, due30)
	flow := forecast.DaySummary(state, today)

	var b strings.Builder
	fmt.Fprintf(&b, "Bank:          %s\n", cli.FormatAmount(bank, "PLN"))
	fmt.Fprintf(&b, "Cash register: %s\n", cli.FormatAmount(register, "PLN"))
	fmt.Fprintf(&b, "Available:     %s\n\n", cli.FormatAmount(available, "PLN"))
	fmt.Fprintf(&b, "Due in 7 days:  %.2f PLN\n", due7)
	fmt.Fprintf(&b, "Due in 30 days: %.2f PLN\n", due30)
	fmt.Fprintf(&b, "Risk: %s", cli.FormatRisk(risk))
	if days := forecast.SafetyDays(available, due7, due30); days >= 0 {
		fmt.Fprintf(&b, "   Safety: ~%d days", days)
	}
	fmt.Fprintf(&b, "\n\nToday: in %.2f / out %.2f / net %s",
		flow.Inflow, flow.Outflow, cli.FormatAmount(flow.Net, "PLN"))
	fmt.Println(cli.RenderBox("Cash position "+today, b.String()))

	next := forecast.NextPayments(state, 5, today)
	if len(next) > 0 {
		var nb strings.Builder
		for _, inv := range next {
			fmt.Fprintf(&nb, "%s  %-20s %-24s %s\n",
				inv.DueDate, inv.Number, inv.Supplier,
				cli.FormatAmount(-inv.AmountDue, inv.Currency))
		}
		fmt.Println(cli.RenderBox("Next payments", strings.TrimRight(nb.String(), "\n")))
	}
	return nil
}
