package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/config"
	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/storage"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync <database-file>",
		Short: "Merge the ledger from another database file",
		Long: `Merge the ledger stored in another otd database into this one, for
example a copy carried over from a second machine. Collection by
collection the side with content wins, and the newer snapshot wins when
both sides have data; an empty file never erases local records.`,
		Args: cobra.ExactArgs(1),
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	other, err := storage.NewSQLiteStore(config.ExpandPath(args[0]))
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = other.Close() }()
	if err := other.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	remote, err := other.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	if remote.IsEmpty() {
		fmt.Println(cli.FormatInfo("Nothing to merge"))
		return nil
	}

	merged := ledger.Merge(sess.State.Snapshot(), remote)
	sess.State.Restore(merged)
	sess.State.MarkChanged()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Merged ledger: %d transactions, %d invoices, %d cash entries",
		len(sess.State.Transactions), len(sess.State.Invoices), len(sess.State.CashEntries))))
	return nil
}
