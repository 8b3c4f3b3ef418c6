package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/common"
	"github.com/onetapday/otd/internal/ingest"
	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import bank statements, invoices or OCR text",
		Long: `Import records into the ledger.

Supported inputs: delimited statements and invoice registers (.csv),
OFX/QFX downloads, and plain text extracted by OCR from statement or
invoice photos. The format is detected from the file, or forced with
--kind.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().StringP("kind", "k", "auto", "input kind (auto, statement, invoices, bank-text, invoice-text, ofx)")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without saving")

	_ = viper.BindPFlag("import.kind", cmd.Flags().Lookup("kind"))
	_ = viper.BindPFlag("import.dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := viper.GetString("import.kind")
	dryRun := viper.GetBool("import.dry_run")

	var txns []model.Transaction
	var invoices []model.Invoice

	var bar *progressbar.ProgressBar
	if len(args) > 1 {
		bar = progressbar.Default(int64(len(args)), "importing")
	}

	for _, path := range args {
		fileTxns, fileInvoices, err := importFile(path, kind)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("could not import %s", path), err)
		}
		txns = append(txns, fileTxns...)
		invoices = append(invoices, fileInvoices...)
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	slog.Info("Parsed import files",
		"files", len(args),
		"transactions", len(txns),
		"invoices", len(invoices))

	if dryRun {
		fmt.Println(cli.FormatWarning("Dry run mode - not saving to database"))
		displayImportSummary(txns, invoices)
		return nil
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	txns, skipped := dedupTransactions(sess.State, txns)
	if skipped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Skipped %d already-imported transactions", skipped)))
	}
	if len(txns) > 0 {
		sess.State.AddTransactions(txns...)
	}
	if len(invoices) > 0 {
		sess.State.AddInvoices(invoices...)
	}

	fmt.Println(cli.FormatSuccess("Import complete"))
	displayImportSummary(txns, invoices)

	return nil
}

func importFile(path, kind string) ([]model.Transaction, []model.Invoice, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-supplied import path
	if err != nil {
		return nil, nil, err
	}
	text := string(data)
	if strings.TrimSpace(text) == "" {
		return nil, nil, common.ErrEmptyInput
	}

	if kind == "auto" || kind == "" {
		kind = detectKind(path, text)
	}

	switch kind {
	case "statement":
		return ingest.TransactionsFromRows(ingest.ParseDelimited(text)), nil, nil
	case "invoices":
		return nil, ingest.InvoicesFromRows(ingest.ParseDelimited(text)), nil
	case "bank-text":
		return ingest.ParseBankText(text), nil, nil
	case "invoice-text":
		return nil, []model.Invoice{ingest.ParseInvoiceText(text)}, nil
	case "ofx":
		txns, err := ingest.ParseOFX(strings.NewReader(text))
		return txns, nil, err
	default:
		return nil, nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, kind)
	}
}

// dedupTransactions drops incoming transactions whose date+amount+
// counterparty+account hash already exists in the ledger, so re-importing
// the same statement is harmless.
func dedupTransactions(state *ledger.State, txns []model.Transaction) ([]model.Transaction, int) {
	seen := make(map[string]struct{}, len(state.Transactions))
	for i := range state.Transactions {
		seen[state.Transactions[i].GenerateHash()] = struct{}{}
	}

	kept := txns[:0]
	skipped := 0
	for i := range txns {
		hash := txns[i].GenerateHash()
		if _, ok := seen[hash]; ok {
			skipped++
			continue
		}
		seen[hash] = struct{}{}
		kept = append(kept, txns[i])
	}
	return kept, skipped
}

// detectKind guesses the input kind from the file extension and a peek at
// the content.
func detectKind(path, text string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		return "ofx"
	case ".csv":
		if looksLikeInvoiceRegister(text) {
			return "invoices"
		}
		return "statement"
	default:
		if looksLikeInvoiceText(text) {
			return "invoice-text"
		}
		return "bank-text"
	}
}

func looksLikeInvoiceRegister(text string) bool {
	header := strings.ToLower(firstLine(text))
	return strings.Contains(header, "faktur") ||
		strings.Contains(header, "invoice") ||
		strings.Contains(header, "dostawca") ||
		strings.Contains(header, "supplier")
}

func looksLikeInvoiceText(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "faktura") ||
		strings.Contains(lower, "invoice") ||
		strings.Contains(lower, "do zapłaty") ||
		strings.Contains(lower, "termin płatności")
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}

func displayImportSummary(txns []model.Transaction, invoices []model.Invoice) {
	if len(txns) == 0 && len(invoices) == 0 {
		fmt.Println(cli.FormatWarning("Nothing to import"))
		return
	}

	var b strings.Builder
	if len(txns) > 0 {
		inflow, outflow := 0.0, 0.0
		accounts := make(map[string]struct{})
		for i := range txns {
			if txns[i].Amount >= 0 {
				inflow += txns[i].Amount
			} else {
				outflow += -txns[i].Amount
			}
			accounts[txns[i].AccountID] = struct{}{}
		}
		fmt.Fprintf(&b, "Transactions: %d (accounts: %d)\n", len(txns), len(accounts))
		fmt.Fprintf(&b, "  inflow:  %.2f\n", inflow)
		fmt.Fprintf(&b, "  outflow: %.2f\n", outflow)
	}
	if len(invoices) > 0 {
		total := 0.0
		for i := range invoices {
			total += invoices[i].AmountDue
		}
		fmt.Fprintf(&b, "Invoices: %d (total due: %.2f)\n", len(invoices), total)
	}

	fmt.Println(cli.RenderBox("Import Summary", strings.TrimRight(b.String(), "\n")))
}
