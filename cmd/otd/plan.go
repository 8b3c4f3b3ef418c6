package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/forecast"
)

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build a payment plan from the available cash",
		Long: `Pick which obligations to pay today. Overdue invoices come first,
then larger amounts, greedily while the cash lasts.`,
		RunE: runPlan,
	}

	cmd.Flags().StringP("mode", "m", "week", "planning window (today, week, all)")
	cmd.Flags().Float64("available", 0, "override the computed available cash")
	cmd.Flags().StringSlice("blacklist", nil, "exclude suppliers containing these substrings")
	cmd.Flags().Float64("penalty-pct", 0.02, "late-payment penalty rate for the minimum-payment pick")

	_ = viper.BindPFlag("plan.mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("plan.available", cmd.Flags().Lookup("available"))
	_ = viper.BindPFlag("plan.blacklist", cmd.Flags().Lookup("blacklist"))
	_ = viper.BindPFlag("plan.penalty_pct", cmd.Flags().Lookup("penalty-pct"))

	return cmd
}

func planMode(s string) (forecast.PlanMode, error) {
	switch s {
	case "today":
		return forecast.PlanToday, nil
	case "week", "7d":
		return forecast.PlanWeek, nil
	case "all":
		return forecast.PlanAll, nil
	default:
		return "", fmt.Errorf("invalid plan mode: %s", s)
	}
}

func runPlan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	mode, err := planMode(viper.GetString("plan.mode"))
	if err != nil {
		return err
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	opts := forecast.AvailableOptions{Rates: currentRates()}
	if v := viper.GetFloat64("plan.available"); v > 0 {
		opts.Manual = true
		opts.ManualAmount = v
	}
	available := forecast.AvailableTotal(sess.State, opts)

	plan := forecast.BuildPlan(sess.State, mode, available, forecast.PlanOptions{
		Blacklist: viper.GetStringSlice("plan.blacklist"),
	})

	fmt.Printf("%s %s\n", cli.TitleStyle.Render("Available:"), cli.FormatAmount(available, "PLN"))

	if len(plan.Entries) == 0 {
		fmt.Println(cli.FormatInfo("Nothing to pay in this window"))
	} else {
		var b strings.Builder
		for _, e := range plan.Entries {
			marker := "  "
			if e.Overdue {
				marker = cli.ErrorStyle.Render("! ")
			}
			fmt.Fprintf(&b, "%s%-20s %-24s due %s  %s\n",
				marker, e.Invoice.Number, e.Invoice.Supplier, e.Invoice.DueDate,
				cli.FormatAmount(-e.Invoice.AmountDue, e.Invoice.Currency))
		}
		fmt.Println(cli.RenderBox("Payment plan", strings.TrimRight(b.String(), "\n")))
	}

	fmt.Printf("Remaining after plan: %s", cli.FormatAmount(plan.Remaining, "PLN"))
	if plan.Skipped > 0 {
		fmt.Printf("  %s", cli.FormatWarning(fmt.Sprintf("%d obligations not covered", plan.Skipped)))
	}
	fmt.Println()

	if pick := forecast.MinimumPayment(sess.State, viper.GetFloat64("plan.penalty_pct"), ""); pick != nil {
		fmt.Printf("If you pay only one thing today: %s (%s, due %s)\n",
			cli.TitleStyle.UnsetMargins().Render(pick.Number),
			cli.FormatAmount(-pick.AmountDue, pick.Currency), pick.DueDate)
	}
	return nil
}
