package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/export"
	"github.com/onetapday/otd/internal/ledger"
)

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <book|statement|invoices|cash>",
		Short: "Export the ledger as CSV",
		Long: `Export for the accountant. "book" is the unified cash book: bank
transactions, invoices as planned outflows and cash entries in one
date-sorted file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: otd_<what>.csv)")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, out string) error {
	ctx := cmd.Context()

	var renderer func(*ledger.State) []byte
	switch args[0] {
	case "book":
		renderer = export.Book
	case "statement":
		renderer = export.Statement
	case "invoices":
		renderer = export.Invoices
	case "cash":
		renderer = export.CashBook
	default:
		return fmt.Errorf("unknown export %q (want book, statement, invoices or cash)", args[0])
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	if out == "" {
		out = "otd_" + args[0] + ".csv"
	}

	data := renderer(sess.State)
	if err := os.WriteFile(out, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %s", out)))
	return nil
}
