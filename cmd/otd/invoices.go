package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/common"
	"github.com/onetapday/otd/internal/model"
)

func invoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoices",
		Short: "List supplier invoices",
		RunE:  runInvoicesList,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <invoice-number>",
		Short: "Delete an invoice",
		Args:  cobra.ExactArgs(1),
		RunE:  runInvoicesDelete,
	})

	return cmd
}

func runInvoicesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	state := sess.State
	if len(state.Invoices) == 0 {
		fmt.Println(cli.FormatInfo("No invoices yet"))
		return nil
	}

	invoices := append([]model.Invoice(nil), state.Invoices...)
	sort.SliceStable(invoices, func(i, j int) bool { return invoices[i].DueDate < invoices[j].DueDate })

	var b strings.Builder
	for i := range invoices {
		inv := &invoices[i]
		status := inv.Status
		switch {
		case inv.IsPaid():
			status = cli.SuccessStyle.Render(status)
		case inv.IsOverdue():
			status = cli.ErrorStyle.Render(status)
		}
		fmt.Fprintf(&b, "%s  %-20s %-24s %s  %s\n",
			inv.DueDate, inv.Number, inv.Supplier,
			cli.FormatAmount(-inv.AmountDue, inv.Currency), status)
	}
	fmt.Println(cli.RenderBox("Invoices", strings.TrimRight(b.String(), "\n")))
	return nil
}

func runInvoicesDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	if !sess.State.DeleteInvoice(args[0]) {
		return fmt.Errorf("invoice %s: %w", args[0], common.ErrNotFound)
	}
	fmt.Println(cli.FormatSuccess("Invoice deleted"))
	return nil
}
