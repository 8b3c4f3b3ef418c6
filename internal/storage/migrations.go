package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a fatal
// error.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS transactions (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					account_id TEXT NOT NULL,
					counterparty TEXT,
					description TEXT,
					amount REAL NOT NULL,
					currency TEXT NOT NULL,
					status TEXT,
					linked_invoice_id TEXT,
					balance REAL,
					has_balance INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_transactions_date ON transactions(date)`,
				`CREATE INDEX idx_transactions_account ON transactions(account_id)`,

				`CREATE TABLE IF NOT EXISTS invoices (
					number TEXT PRIMARY KEY,
					supplier TEXT,
					amount_due REAL NOT NULL,
					currency TEXT NOT NULL,
					issue_date TEXT,
					due_date TEXT,
					paid_date TEXT,
					status TEXT NOT NULL,
					candidate_tx_id TEXT,
					candidate_score INTEGER NOT NULL DEFAULT 0
				)`,
				`CREATE INDEX idx_invoices_due_date ON invoices(due_date)`,

				`CREATE TABLE IF NOT EXISTS cash_entries (
					id TEXT PRIMARY KEY,
					date TEXT NOT NULL,
					kind TEXT NOT NULL,
					amount REAL NOT NULL,
					source TEXT,
					comment TEXT,
					position INTEGER NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS account_meta (
					id TEXT PRIMARY KEY,
					name TEXT,
					currency TEXT,
					type TEXT,
					starting_balance REAL NOT NULL DEFAULT 0,
					include_in_plan INTEGER NOT NULL DEFAULT 1
				)`,

				`CREATE TABLE IF NOT EXISTS settings (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add snapshot metadata",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS snapshot_meta (
					id INTEGER PRIMARY KEY CHECK (id = 1),
					saved_at INTEGER NOT NULL DEFAULT 0
				)
			`)
			return err
		},
	},
}

// Migrate applies all pending database migrations.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	var currentVersion int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, txErr := s.db.BeginTx(ctx, nil)
		if txErr != nil {
			return fmt.Errorf("failed to begin transaction: %w", txErr)
		}

		if upErr := migration.Up(tx); upErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, upErr)
		}

		if _, execErr := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); execErr != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", execErr)
		}

		if commitErr := tx.Commit(); commitErr != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, commitErr)
		}

		slog.Info("Applied migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	err = s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion)
	if err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}

	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}
