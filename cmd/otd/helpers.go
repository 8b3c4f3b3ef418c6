package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/onetapday/otd/internal/config"
	"github.com/onetapday/otd/internal/forecast"
	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/storage"
	"github.com/onetapday/otd/internal/syncer"
)

// session bundles the open store, the restored ledger and its debounced
// saver for the lifetime of one command.
type session struct {
	Store     *storage.SQLiteStore
	State     *ledger.State
	Debouncer *syncer.Debouncer
	dirty     bool
}

func dbPath() string {
	if p := viper.GetString("db.path"); p != "" {
		return config.ExpandPath(p)
	}
	return filepath.Join(os.Getenv("HOME"), ".config", "otd", "otd.db")
}

// openSession opens the database, migrates it, restores the ledger and
// wires every subsequent mutation to a debounced save.
func openSession(ctx context.Context) (*session, error) {
	store, err := storage.NewSQLiteStore(dbPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	snap, err := store.Load(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	state := ledger.NewState()
	state.Restore(snap)

	d := syncer.NewDebouncer(state.Snapshot, store.Save, 0)
	sess := &session{Store: store, State: state, Debouncer: d}
	state.OnChange(func() {
		sess.dirty = true
		d.Schedule()
	})

	return sess, nil
}

// Close flushes pending saves and closes the database. Commands that only
// read leave the snapshot untouched.
func (s *session) Close(ctx context.Context) error {
	var flushErr error
	if s.dirty {
		flushErr = s.Debouncer.Flush(ctx)
	}
	closeErr := s.Store.Close()
	if flushErr != nil {
		return fmt.Errorf("failed to save ledger: %w", flushErr)
	}
	return closeErr
}

// currentRates returns the conversion table with any configured overrides.
func currentRates() forecast.Rates {
	rates := forecast.DefaultRates()
	if v := viper.GetFloat64("rates.eur"); v > 0 {
		rates["EUR"] = v
	}
	if v := viper.GetFloat64("rates.usd"); v > 0 {
		rates["USD"] = v
	}
	return rates
}
