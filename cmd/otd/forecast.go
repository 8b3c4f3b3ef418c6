package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/forecast"
)

func forecastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forecast",
		Short: "Project the next seven days of cash",
		Long: `Bucket the open obligations by due date and subtract them day by day
from the available cash. Overdue amounts count against today.`,
		RunE: runForecast,
	}
}

func runForecast(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	available := forecast.AvailableTotal(sess.State, forecast.AvailableOptions{Rates: currentRates()})
	out := forecast.SevenDay(sess.State, available, "")

	var b strings.Builder
	for i, day := range out.Days {
		label := day.Date
		if i == 0 {
			label += " (today)"
		}
		line := fmt.Sprintf("%-18s due %10.2f   after %s", label, day.Due, cli.FormatAmount(day.CashAfter, "PLN"))
		if i == out.GapDay {
			line += "  " + cli.FormatError("cash gap")
		}
		b.WriteString(line + "\n")
	}
	fmt.Println(cli.RenderBox("Seven-day forecast", strings.TrimRight(b.String(), "\n")))

	if out.GapDay < 0 {
		fmt.Println(cli.FormatSuccess("The week is covered"))
	} else {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Cash gap on %s", out.Days[out.GapDay].Date)))
	}
	return nil
}
