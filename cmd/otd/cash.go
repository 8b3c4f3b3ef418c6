package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/common"
	"github.com/onetapday/otd/internal/forecast"
	"github.com/onetapday/otd/internal/model"
	"github.com/onetapday/otd/internal/normalize"
)

func cashCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cash",
		Short: "Manage the cash register",
		RunE:  runCashList,
	}

	var source, comment string

	add := &cobra.Command{
		Use:   "add <in|out|close> <amount>",
		Short: "Record a cash movement or a close-of-day count",
		Long: `Record cash taken in, paid out, or a close-of-day count. A count
resets the register balance to the counted amount.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCashAdd(cmd, args, source, comment)
		},
	}
	add.Flags().StringVar(&source, "source", "", "where the cash came from or went")
	add.Flags().StringVar(&comment, "comment", "", "free-form note")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a cash entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runCashDelete,
	})

	return cmd
}

func cashKind(s string) (string, error) {
	switch s {
	case "in":
		return model.CashIn, nil
	case "out":
		return model.CashOut, nil
	case "close":
		return model.CashCloseBalance, nil
	default:
		return "", fmt.Errorf("invalid cash entry kind: %s (want in, out or close)", s)
	}
}

func runCashAdd(cmd *cobra.Command, args []string, source, comment string) error {
	ctx := cmd.Context()
	kind, err := cashKind(args[0])
	if err != nil {
		return err
	}
	amount := normalize.Amount(args[1])
	if amount.WasDefaulted {
		return fmt.Errorf("could not parse amount %q", args[1])
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	entry := sess.State.AddCashEntry(kind, amount.Value, source, comment)
	balance := forecast.CashRegisterBalance(sess.State)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s %s (%s)", entry.Kind,
		strconv.FormatFloat(entry.Amount, 'f', 2, 64), entry.ID)))
	fmt.Printf("Register balance: %s\n", cli.FormatAmount(balance, "PLN"))
	return nil
}

func runCashDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	if !sess.State.DeleteCashEntry(args[0]) {
		return fmt.Errorf("cash entry %s: %w", args[0], common.ErrNotFound)
	}
	fmt.Println(cli.FormatSuccess("Entry deleted"))
	return nil
}

func runCashList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	state := sess.State
	if len(state.CashEntries) == 0 {
		fmt.Println(cli.FormatInfo("Cash register is empty"))
		return nil
	}

	var b strings.Builder
	for i := range state.CashEntries {
		entry := &state.CashEntries[i]
		note := entry.Comment
		if note == "" {
			note = entry.Source
		}
		if entry.Kind == model.CashCloseBalance {
			fmt.Fprintf(&b, "%s  %-6s %10.2f  %s\n", entry.Date, "close", entry.Amount, note)
			continue
		}
		fmt.Fprintf(&b, "%s  %-6s %10s  %s\n", entry.Date, entry.Kind,
			cli.FormatAmount(entry.SignedAmount(), "PLN"), note)
	}
	fmt.Println(cli.RenderBox("Cash register", strings.TrimRight(b.String(), "\n")))
	fmt.Printf("Balance: %s\n", cli.FormatAmount(forecast.CashRegisterBalance(state), "PLN"))
	return nil
}
