package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "otd.db"))
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testSnapshot() model.Snapshot {
	return model.Snapshot{
		Transactions: []model.Transaction{
			{ID: "tx-1", Date: "2025-10-05", AccountID: "PL61", Counterparty: "ACME", Description: "czynsz", Amount: -1234.5, Currency: "PLN", Status: model.TxStatusMatched, LinkedInvoiceID: "FV/1/2025", Balance: 500, HasBalance: true},
			{ID: "tx-2", Date: "2025-10-06", AccountID: "PL61", Amount: 200, Currency: "PLN"},
		},
		Invoices: []model.Invoice{
			{Number: "FV/1/2025", Supplier: "ACME", AmountDue: 1234.5, Currency: "PLN", IssueDate: "2025-10-01", DueDate: "2025-10-14", PaidDate: "2025-10-05", Status: model.InvoiceStatusPaid},
			{Number: "FV/2/2025", Supplier: "Orlen", AmountDue: 300, Currency: "PLN", DueDate: "2025-10-30", Status: model.InvoiceStatusUnpaid, CandidateTxID: "tx-2", CandidateScore: 65},
		},
		CashEntries: []model.CashEntry{
			{ID: "c1", Date: "2025-10-05", Kind: model.CashIn, Amount: 100, Source: "utarg"},
			{ID: "c2", Date: "2025-10-06", Kind: model.CashCloseBalance, Amount: 500, Comment: "inwentaryzacja"},
		},
		AccountMeta: map[string]model.AccountMeta{
			"PL61": {ID: "PL61", Name: "Konto firmowe", Currency: "PLN", Type: "Biznes", StartingBalance: 1000, IncludeInPlan: true},
		},
		Settings: map[string]string{"rate_eur": "4.30"},
		SavedAt:  1729500000000,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	want := testSnapshot()

	require.NoError(t, store.Save(ctx, want))
	got, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, want.Transactions, got.Transactions)
	assert.Equal(t, want.Invoices, got.Invoices)
	assert.Equal(t, want.CashEntries, got.CashEntries)
	assert.Equal(t, want.AccountMeta, got.AccountMeta)
	assert.Equal(t, want.Settings, got.Settings)
	assert.Equal(t, want.SavedAt, got.SavedAt)
}

func TestLoadEmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, got.IsEmpty())
	assert.Empty(t, got.Transactions)
	assert.NotNil(t, got.AccountMeta)
	assert.NotNil(t, got.Settings)
	assert.Zero(t, got.SavedAt)
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSnapshot()))

	smaller := model.Snapshot{
		Transactions: []model.Transaction{
			{ID: "tx-9", Date: "2025-11-01", AccountID: "PL61", Amount: -10, Currency: "PLN"},
		},
		SavedAt: 1729600000000,
	}
	require.NoError(t, store.Save(ctx, smaller))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "tx-9", got.Transactions[0].ID)
	assert.Empty(t, got.Invoices)
	assert.Empty(t, got.CashEntries)
	assert.Equal(t, int64(1729600000000), got.SavedAt)
}

func TestSaveStampsMissingTimestamp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := testSnapshot()
	snap.SavedAt = 0
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Positive(t, got.SavedAt)
}

func TestCashEntryOrderSurvivesReload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// The fold depends on insertion order, not dates: the close-of-day
	// count must stay between the entries it was recorded between.
	snap := model.Snapshot{
		CashEntries: []model.CashEntry{
			{ID: "c1", Date: "2025-10-10", Kind: model.CashIn, Amount: 100},
			{ID: "c2", Date: "2025-10-09", Kind: model.CashCloseBalance, Amount: 500},
			{ID: "c3", Date: "2025-10-08", Kind: model.CashIn, Amount: 20},
		},
	}
	require.NoError(t, store.Save(ctx, snap))

	got, err := store.Load(ctx)
	require.NoError(t, err)

	require.Len(t, got.CashEntries, 3)
	assert.Equal(t, []string{"c1", "c2", "c3"}, []string{got.CashEntries[0].ID, got.CashEntries[1].ID, got.CashEntries[2].ID})
}

func TestMergeAcrossStores(t *testing.T) {
	// Two database files, as when a ledger copy comes back from another
	// machine: load both, merge, and the newer side's collections land in
	// the surviving store.
	local := newTestStore(t)
	other := newTestStore(t)
	ctx := context.Background()

	localSnap := testSnapshot()
	require.NoError(t, local.Save(ctx, localSnap))

	remoteSnap := model.Snapshot{
		Transactions: []model.Transaction{
			{ID: "tx-remote", Date: "2025-10-07", AccountID: "PL61", Amount: -50, Currency: "PLN"},
		},
		SavedAt: localSnap.SavedAt + 1000,
	}
	require.NoError(t, other.Save(ctx, remoteSnap))

	loadedLocal, err := local.Load(ctx)
	require.NoError(t, err)
	loadedRemote, err := other.Load(ctx)
	require.NoError(t, err)

	merged := ledger.Merge(loadedLocal, loadedRemote)
	require.NoError(t, local.Save(ctx, merged))

	got, err := local.Load(ctx)
	require.NoError(t, err)

	// Newer remote transactions replaced the local ones; the collections
	// the remote file did not carry stayed local.
	require.Len(t, got.Transactions, 1)
	assert.Equal(t, "tx-remote", got.Transactions[0].ID)
	assert.Equal(t, localSnap.Invoices, got.Invoices)
	assert.Equal(t, localSnap.CashEntries, got.CashEntries)
	assert.Equal(t, remoteSnap.SavedAt, got.SavedAt)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Migrate(context.Background()))
}
