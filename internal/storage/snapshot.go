package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/onetapday/otd/internal/model"
)

// Save replaces the stored snapshot with the given one. The whole write
// runs in one transaction so a crash never leaves a half-written snapshot.
func (s *SQLiteStore) Save(ctx context.Context, snap model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"transactions", "invoices", "cash_entries", "account_meta", "settings"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO transactions (id, date, account_id, counterparty, description, amount, currency, status, linked_invoice_id, balance, has_balance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.Date, t.AccountID, t.Counterparty, t.Description,
			t.Amount, t.Currency, t.Status, t.LinkedInvoiceID, t.Balance, t.HasBalance)
		if err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", t.ID, err)
		}
	}

	for i := range snap.Invoices {
		inv := &snap.Invoices[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoices (number, supplier, amount_due, currency, issue_date, due_date, paid_date, status, candidate_tx_id, candidate_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			inv.Number, inv.Supplier, inv.AmountDue, inv.Currency,
			inv.IssueDate, inv.DueDate, inv.PaidDate, inv.Status,
			inv.CandidateTxID, inv.CandidateScore)
		if err != nil {
			return fmt.Errorf("failed to save invoice %s: %w", inv.Number, err)
		}
	}

	// Position preserves the fold order of the cash book.
	for i := range snap.CashEntries {
		entry := &snap.CashEntries[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cash_entries (id, date, kind, amount, source, comment, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			entry.ID, entry.Date, entry.Kind, entry.Amount, entry.Source, entry.Comment, i)
		if err != nil {
			return fmt.Errorf("failed to save cash entry %s: %w", entry.ID, err)
		}
	}

	for id, meta := range snap.AccountMeta {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO account_meta (id, name, currency, type, starting_balance, include_in_plan)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, meta.Name, meta.Currency, meta.Type, meta.StartingBalance, meta.IncludeInPlan)
		if err != nil {
			return fmt.Errorf("failed to save account %s: %w", id, err)
		}
	}

	for key, value := range snap.Settings {
		if _, err = tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}

	savedAt := snap.SavedAt
	if savedAt == 0 {
		savedAt = time.Now().UnixMilli()
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, saved_at) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET saved_at = excluded.saved_at`, savedAt)
	if err != nil {
		return fmt.Errorf("failed to save snapshot metadata: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Load reads the stored snapshot. A fresh database loads as an empty
// snapshot, not an error.
func (s *SQLiteStore) Load(ctx context.Context) (model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return model.Snapshot{}, err
	}

	snap := model.Snapshot{
		AccountMeta: make(map[string]model.AccountMeta),
		Settings:    make(map[string]string),
	}

	if err := s.loadTransactions(ctx, &snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.loadInvoices(ctx, &snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.loadCashEntries(ctx, &snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.loadAccountMeta(ctx, &snap); err != nil {
		return model.Snapshot{}, err
	}
	if err := s.loadSettings(ctx, &snap); err != nil {
		return model.Snapshot{}, err
	}

	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshot_meta WHERE id = 1`).Scan(&snap.SavedAt)
	if err != nil && err != sql.ErrNoRows {
		return model.Snapshot{}, fmt.Errorf("failed to load snapshot metadata: %w", err)
	}

	return snap, nil
}

func (s *SQLiteStore) loadTransactions(ctx context.Context, snap *model.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, account_id, counterparty, description, amount, currency, status, linked_invoice_id, balance, has_balance
		FROM transactions ORDER BY date, id`)
	if err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.AccountID, &t.Counterparty, &t.Description,
			&t.Amount, &t.Currency, &t.Status, &t.LinkedInvoiceID, &t.Balance, &t.HasBalance); err != nil {
			return fmt.Errorf("failed to scan transaction: %w", err)
		}
		snap.Transactions = append(snap.Transactions, t)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadInvoices(ctx context.Context, snap *model.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT number, supplier, amount_due, currency, issue_date, due_date, paid_date, status, candidate_tx_id, candidate_score
		FROM invoices ORDER BY due_date, number`)
	if err != nil {
		return fmt.Errorf("failed to load invoices: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var inv model.Invoice
		if err := rows.Scan(&inv.Number, &inv.Supplier, &inv.AmountDue, &inv.Currency,
			&inv.IssueDate, &inv.DueDate, &inv.PaidDate, &inv.Status,
			&inv.CandidateTxID, &inv.CandidateScore); err != nil {
			return fmt.Errorf("failed to scan invoice: %w", err)
		}
		snap.Invoices = append(snap.Invoices, inv)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadCashEntries(ctx context.Context, snap *model.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, kind, amount, source, comment
		FROM cash_entries ORDER BY position`)
	if err != nil {
		return fmt.Errorf("failed to load cash entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var entry model.CashEntry
		if err := rows.Scan(&entry.ID, &entry.Date, &entry.Kind, &entry.Amount, &entry.Source, &entry.Comment); err != nil {
			return fmt.Errorf("failed to scan cash entry: %w", err)
		}
		snap.CashEntries = append(snap.CashEntries, entry)
	}
	return rows.Err()
}

func (s *SQLiteStore) loadAccountMeta(ctx context.Context, snap *model.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, currency, type, starting_balance, include_in_plan
		FROM account_meta`)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var meta model.AccountMeta
		if err := rows.Scan(&meta.ID, &meta.Name, &meta.Currency, &meta.Type, &meta.StartingBalance, &meta.IncludeInPlan); err != nil {
			return fmt.Errorf("failed to scan account: %w", err)
		}
		snap.AccountMeta[meta.ID] = meta
	}
	return rows.Err()
}

func (s *SQLiteStore) loadSettings(ctx context.Context, snap *model.Snapshot) error {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return fmt.Errorf("failed to scan setting: %w", err)
		}
		snap.Settings[key] = value
	}
	return rows.Err()
}
