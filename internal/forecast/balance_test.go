package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onetapday/otd/internal/ledger"
	"github.com/onetapday/otd/internal/model"
)

func TestAccountBalanceFromRunningBalance(t *testing.T) {
	s := ledger.NewState()
	s.AddTransactions(
		model.Transaction{ID: "tx-1", Date: "2025-10-01", AccountID: "a", Amount: -100, Currency: "PLN", Balance: 900, HasBalance: true},
		model.Transaction{ID: "tx-2", Date: "2025-10-03", AccountID: "a", Amount: -50, Currency: "PLN", Balance: 850, HasBalance: true},
		model.Transaction{ID: "tx-3", Date: "2025-10-02", AccountID: "a", Amount: 200, Currency: "PLN"},
	)

	// The chronologically last balance-bearing row wins even though a later
	// import appended an older transaction after it.
	assert.Equal(t, 850.0, AccountBalance(s, "a"))
}

func TestAccountBalanceFromStartingBalance(t *testing.T) {
	s := ledger.NewState()
	s.AddTransactions(
		model.Transaction{ID: "tx-1", Date: "2025-10-01", AccountID: "a", Amount: -100, Currency: "PLN"},
		model.Transaction{ID: "tx-2", Date: "2025-10-02", AccountID: "a", Amount: 40, Currency: "PLN"},
	)
	meta := s.Accounts["a"]
	meta.StartingBalance = 1000
	s.Accounts["a"] = meta

	assert.InDelta(t, 940.0, AccountBalance(s, "a"), 1e-9)
}

func TestBankAvailableConvertsAndFilters(t *testing.T) {
	s := ledger.NewState()
	s.AddTransactions(
		model.Transaction{ID: "tx-1", Date: "2025-10-01", AccountID: "pln", Amount: 100, Currency: "PLN"},
		model.Transaction{ID: "tx-2", Date: "2025-10-01", AccountID: "eur", Amount: 10, Currency: "EUR"},
		model.Transaction{ID: "tx-3", Date: "2025-10-01", AccountID: "excluded", Amount: 500, Currency: "PLN"},
	)
	meta := s.Accounts["excluded"]
	meta.IncludeInPlan = false
	s.Accounts["excluded"] = meta

	// 100 PLN + 10 EUR × 4.30.
	assert.InDelta(t, 143.0, BankAvailable(s, DefaultRates()), 1e-9)
}

func TestCashRegisterBalanceFold(t *testing.T) {
	s := ledger.NewState()
	s.AddCashEntry(model.CashIn, 100, "utarg", "")
	s.AddCashEntry(model.CashOut, 30, "", "zakupy")
	s.AddCashEntry(model.CashCloseBalance, 500, "", "inwentaryzacja")
	s.AddCashEntry(model.CashIn, 20, "utarg", "")

	assert.Equal(t, 520.0, CashRegisterBalance(s))
}

func TestAvailableTotal(t *testing.T) {
	s := ledger.NewState()
	s.AddTransactions(model.Transaction{ID: "tx-1", Date: "2025-10-01", AccountID: "a", Amount: 300, Currency: "PLN"})
	s.AddCashEntry(model.CashIn, 50, "", "")

	assert.InDelta(t, 350.0, AvailableTotal(s, AvailableOptions{}), 1e-9)
	assert.InDelta(t, 1050.0, AvailableTotal(s, AvailableOptions{Manual: true, ManualAmount: 1000}), 1e-9)
}

func TestRatesFor(t *testing.T) {
	rates := DefaultRates()
	assert.Equal(t, 1.0, rates.For("PLN"))
	assert.Equal(t, 4.30, rates.For("EUR"))
	assert.Equal(t, 3.95, rates.For("USD"))
	assert.Equal(t, 1.0, rates.For("GBP"))
	assert.Equal(t, 1.0, rates.For(""))
}
