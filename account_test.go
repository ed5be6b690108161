package brokerage

import (
	"errors"
	"testing"
	"time"
)

// newTestAccount opens an account for alice with a 10000 USD opening deposit.
func newTestAccount(t *testing.T) *Account {
	t.Helper()
	a, err := NewAccount("alice", "USD", M(10000, "USD"), time.Time{})
	if err != nil {
		t.Fatalf("NewAccount() failed: %v", err)
	}
	return a
}

func TestNewAccount(t *testing.T) {
	a := newTestAccount(t)

	if got := a.UserID(); got != "alice" {
		t.Errorf("UserID() = %q, want alice", got)
	}
	if got := a.Currency(); got != "USD" {
		t.Errorf("Currency() = %q, want USD", got)
	}
	if got := a.CashBalance(); !got.Equal(M(10000, "USD")) {
		t.Errorf("CashBalance() = %s, want 10000", got)
	}
	if got := len(a.Holdings()); got != 0 {
		t.Errorf("Holdings() has %d entries, want 0", got)
	}
	txs := a.Transactions()
	if len(txs) != 1 {
		t.Fatalf("ledger has %d entries, want 1", len(txs))
	}
	if txs[0].Kind != KindDeposit {
		t.Errorf("first transaction is %q, want deposit", txs[0].Kind)
	}
	if txs[0].ID == "" {
		t.Error("transaction has no id")
	}
}

func TestNewAccountRejectsBadInput(t *testing.T) {
	if _, err := NewAccount("", "USD", M(100, "USD"), time.Time{}); err == nil {
		t.Error("empty user id should fail")
	}
	if _, err := NewAccount("alice", "dollars", M(100, "USD"), time.Time{}); err == nil {
		t.Error("bad currency should fail")
	}
	if _, err := NewAccount("alice", "USD", M(-100, "USD"), time.Time{}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative opening deposit: error = %v, want ErrInvalidAmount", err)
	}
	if _, err := NewAccount("alice", "USD", M(100, "EUR"), time.Time{}); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("opening deposit in EUR: error = %v, want ErrInvalidAmount", err)
	}
}

func TestNewAccountWithoutInitialDeposit(t *testing.T) {
	// a zero opening deposit opens an empty account, with no transaction.
	a, err := NewAccount("alice", "USD", M(0, "USD"), time.Time{})
	if err != nil {
		t.Fatalf("NewAccount with zero deposit failed: %v", err)
	}
	if !a.CashBalance().IsZero() {
		t.Errorf("CashBalance() = %s, want 0", a.CashBalance())
	}
	if !a.InitialDeposit().IsZero() {
		t.Errorf("InitialDeposit() = %s, want 0", a.InitialDeposit())
	}
	if got := len(a.Transactions()); got != 0 {
		t.Errorf("ledger has %d entries, want 0", got)
	}

	// a later deposit is an ordinary contribution, not the opening deposit.
	if _, err := a.Deposit(M(500, "USD"), time.Time{}, ""); err != nil {
		t.Fatal(err)
	}
	if !a.InitialDeposit().IsZero() {
		t.Errorf("InitialDeposit() = %s after a deposit, want 0", a.InitialDeposit())
	}
	pnl, err := a.ProfitLossFromInitial(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !pnl.Equal(M(500, "USD")) {
		t.Errorf("ProfitLossFromInitial() = %s, want 500", pnl)
	}
}

func TestDepositAndWithdraw(t *testing.T) {
	a := newTestAccount(t)

	if _, err := a.Deposit(M(2000, "USD"), time.Time{}, ""); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if got := a.CashBalance(); !got.Equal(M(12000, "USD")) {
		t.Errorf("CashBalance() = %s, want 12000", got)
	}

	tx, err := a.Withdraw(M(500, "USD"), time.Time{}, "rent")
	if err != nil {
		t.Fatalf("Withdraw failed: %v", err)
	}
	if got := a.CashBalance(); !got.Equal(M(11500, "USD")) {
		t.Errorf("CashBalance() = %s, want 11500", got)
	}
	if tx.Note != "rent" {
		t.Errorf("note = %q, want rent", tx.Note)
	}
	if !tx.ResultingCash.Equal(M(11500, "USD")) {
		t.Errorf("ResultingCash = %s, want 11500", tx.ResultingCash)
	}
}

func TestWithdrawMoreThanBalance(t *testing.T) {
	a := newTestAccount(t)

	_, err := a.Withdraw(M(10001, "USD"), time.Time{}, "")
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("error = %v, want ErrInsufficientFunds", err)
	}
	// the failed withdrawal left no trace.
	if got := a.CashBalance(); !got.Equal(M(10000, "USD")) {
		t.Errorf("CashBalance() = %s, want 10000", got)
	}
	if got := len(a.Transactions()); got != 1 {
		t.Errorf("ledger has %d entries, want 1", got)
	}
}

func TestInvalidAmounts(t *testing.T) {
	a := newTestAccount(t)

	for _, amount := range []Money{M(0, "USD"), M(-50, "USD")} {
		if _, err := a.Deposit(amount, time.Time{}, ""); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Deposit(%s) error = %v, want ErrInvalidAmount", amount, err)
		}
		if _, err := a.Withdraw(amount, time.Time{}, ""); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("Withdraw(%s) error = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if _, err := a.Deposit(M(100, "EUR"), time.Time{}, ""); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Deposit in EUR: error = %v, want ErrInvalidAmount", err)
	}
}

func TestBuyAndSell(t *testing.T) {
	a := newTestAccount(t)

	tx, err := a.Buy(nil, "AAPL", 10, time.Time{}, "")
	if err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if !tx.Total.Equal(M(1500, "USD")) {
		t.Errorf("buy total = %s, want 1500", tx.Total)
	}
	if !tx.PricePerShare.Equal(M(150, "USD")) {
		t.Errorf("price = %s, want 150", tx.PricePerShare)
	}
	if got := a.CashBalance(); !got.Equal(M(8500, "USD")) {
		t.Errorf("CashBalance() = %s, want 8500", got)
	}
	if got := a.Position("AAPL"); got != 10 {
		t.Errorf("Position(AAPL) = %d, want 10", got)
	}

	if _, err := a.Sell(nil, "aapl", 4, time.Time{}, ""); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if got := a.CashBalance(); !got.Equal(M(9100, "USD")) {
		t.Errorf("CashBalance() = %s, want 9100", got)
	}
	if got := a.Position("AAPL"); got != 6 {
		t.Errorf("Position(AAPL) = %d, want 6", got)
	}
}

func TestSellWholePositionRemovesIt(t *testing.T) {
	a := newTestAccount(t)

	if _, err := a.Buy(nil, "TSLA", 2, time.Time{}, ""); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if _, err := a.Sell(nil, "TSLA", 2, time.Time{}, ""); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}
	if _, ok := a.Holdings()["TSLA"]; ok {
		t.Error("TSLA still present in holdings after selling out")
	}
	if got := a.CashBalance(); !got.Equal(M(10000, "USD")) {
		t.Errorf("CashBalance() = %s, want 10000", got)
	}
}

func TestBuyRejections(t *testing.T) {
	a := newTestAccount(t)

	if _, err := a.Buy(nil, "AAPL", 0, time.Time{}, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: error = %v, want ErrInvalidQuantity", err)
	}
	if _, err := a.Buy(nil, "AAPL", -5, time.Time{}, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("negative quantity: error = %v, want ErrInvalidQuantity", err)
	}
	if _, err := a.Buy(nil, "MSFT", 1, time.Time{}, ""); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("unknown symbol: error = %v, want ErrInvalidSymbol", err)
	}
	// 10000 buys at most 3 GOOGL at 2700.
	if _, err := a.Buy(nil, "GOOGL", 4, time.Time{}, ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Errorf("too expensive: error = %v, want ErrInsufficientFunds", err)
	}
	if got := len(a.Transactions()); got != 1 {
		t.Errorf("ledger has %d entries, want 1", got)
	}
}

func TestSellRejections(t *testing.T) {
	a := newTestAccount(t)

	if _, err := a.Sell(nil, "AAPL", 1, time.Time{}, ""); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("selling shares never held: error = %v, want ErrInsufficientShares", err)
	}
	if _, err := a.Buy(nil, "AAPL", 3, time.Time{}, ""); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if _, err := a.Sell(nil, "AAPL", 4, time.Time{}, ""); !errors.Is(err, ErrInsufficientShares) {
		t.Errorf("overselling: error = %v, want ErrInsufficientShares", err)
	}
	if _, err := a.Sell(nil, "AAPL", 0, time.Time{}, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("zero quantity: error = %v, want ErrInvalidQuantity", err)
	}
	if got := a.Position("AAPL"); got != 3 {
		t.Errorf("Position(AAPL) = %d, want 3", got)
	}
}

// TestAccountScenario walks a full session and checks every derived figure.
func TestAccountScenario(t *testing.T) {
	a := newTestAccount(t)

	if _, err := a.Deposit(M(2000, "USD"), time.Time{}, ""); err != nil {
		t.Fatalf("Deposit failed: %v", err)
	}
	if _, err := a.Buy(nil, "AAPL", 10, time.Time{}, ""); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}
	if _, err := a.Sell(nil, "AAPL", 2, time.Time{}, ""); err != nil {
		t.Fatalf("Sell failed: %v", err)
	}

	if got := a.CashBalance(); !got.Equal(M(10800, "USD")) {
		t.Errorf("CashBalance() = %s, want 10800", got)
	}
	if got := a.Position("AAPL"); got != 8 {
		t.Errorf("Position(AAPL) = %d, want 8", got)
	}

	pv, err := a.PortfolioValue(nil)
	if err != nil {
		t.Fatalf("PortfolioValue failed: %v", err)
	}
	if !pv.Equal(M(1200, "USD")) {
		t.Errorf("PortfolioValue() = %s, want 1200", pv)
	}

	equity, err := a.TotalEquity(nil)
	if err != nil {
		t.Fatalf("TotalEquity failed: %v", err)
	}
	if !equity.Equal(M(12000, "USD")) {
		t.Errorf("TotalEquity() = %s, want 12000", equity)
	}

	pnl, err := a.ProfitLossFromInitial(nil)
	if err != nil {
		t.Fatalf("ProfitLossFromInitial failed: %v", err)
	}
	if !pnl.Equal(M(2000, "USD")) {
		t.Errorf("ProfitLossFromInitial() = %s, want 2000", pnl)
	}

	// all cash was contributed, none withdrawn: net profit is zero.
	pnl, err = a.ProfitLossFromNetDeposits(nil)
	if err != nil {
		t.Fatalf("ProfitLossFromNetDeposits failed: %v", err)
	}
	if !pnl.IsZero() {
		t.Errorf("ProfitLossFromNetDeposits() = %s, want 0", pnl)
	}

	if got := len(a.Transactions()); got != 4 {
		t.Errorf("ledger has %d entries, want 4", got)
	}
}

func TestProfitWithCustomPrices(t *testing.T) {
	a := newTestAccount(t)

	buyTime := StaticOracle{"NVDA": M(100, "USD")}
	if _, err := a.Buy(buyTime, "NVDA", 50, time.Time{}, ""); err != nil {
		t.Fatalf("Buy failed: %v", err)
	}

	// the price doubles.
	now := StaticOracle{"NVDA": M(200, "USD")}
	pnl, err := a.ProfitLossFromInitial(now)
	if err != nil {
		t.Fatalf("ProfitLossFromInitial failed: %v", err)
	}
	if !pnl.Equal(M(5000, "USD")) {
		t.Errorf("ProfitLossFromInitial() = %s, want 5000", pnl)
	}
}

func TestValuationFailsOnUnpricedHolding(t *testing.T) {
	a := newTestAccount(t)
	if _, err := a.Buy(StaticOracle{"NVDA": M(100, "USD")}, "NVDA", 5, time.Time{}, ""); err != nil {
		t.Fatal(err)
	}

	// the default oracle has no price for NVDA: valuations must fail
	// rather than value the position at zero.
	if _, err := a.PortfolioValue(nil); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("PortfolioValue error = %v, want ErrInvalidSymbol", err)
	}
	if _, err := a.TotalEquity(nil); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("TotalEquity error = %v, want ErrInvalidSymbol", err)
	}
	if _, err := a.ProfitLossFromInitial(nil); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("ProfitLossFromInitial error = %v, want ErrInvalidSymbol", err)
	}
	if _, err := a.NewStatement(nil); !errors.Is(err, ErrInvalidSymbol) {
		t.Errorf("NewStatement error = %v, want ErrInvalidSymbol", err)
	}
}

func TestTransactionsFilters(t *testing.T) {
	a := newTestAccount(t)
	t0 := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	if _, err := a.Deposit(M(500, "USD"), t0, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Buy(nil, "AAPL", 2, t0.Add(time.Hour), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Withdraw(M(100, "USD"), t0.Add(2*time.Hour), ""); err != nil {
		t.Fatal(err)
	}

	if got := len(a.Transactions(ByKind(KindDeposit))); got != 2 {
		t.Errorf("deposits: got %d, want 2", got)
	}
	if got := len(a.Transactions(ByKind(KindBuy, KindSell))); got != 1 {
		t.Errorf("trades: got %d, want 1", got)
	}
	if got := len(a.Transactions(Since(t0), Until(t0.Add(time.Hour)))); got != 2 {
		t.Errorf("time range: got %d, want 2", got)
	}
	if got := len(a.Transactions(BySymbol("aapl"))); got != 1 {
		t.Errorf("by symbol: got %d, want 1", got)
	}
	// bounds are inclusive.
	if got := len(a.Transactions(Since(t0.Add(2*time.Hour)), Until(t0.Add(2*time.Hour)))); got != 1 {
		t.Errorf("inclusive bounds: got %d, want 1", got)
	}
}

func TestTransactionByID(t *testing.T) {
	a := newTestAccount(t)
	tx, err := a.Deposit(M(42, "USD"), time.Time{}, "pocket money")
	if err != nil {
		t.Fatal(err)
	}

	got, err := a.Transaction(tx.ID)
	if err != nil {
		t.Fatalf("Transaction(%q) failed: %v", tx.ID, err)
	}
	if !got.Equal(tx) {
		t.Errorf("Transaction(%q) = %+v, want %+v", tx.ID, got, tx)
	}

	if _, err := a.Transaction("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestUniqueTransactionIDs(t *testing.T) {
	a := newTestAccount(t)
	for i := 0; i < 20; i++ {
		if _, err := a.Deposit(M(1, "USD"), time.Time{}, ""); err != nil {
			t.Fatal(err)
		}
	}
	seen := make(map[string]bool)
	for _, tx := range a.Transactions() {
		if seen[tx.ID] {
			t.Fatalf("duplicate transaction id %q", tx.ID)
		}
		seen[tx.ID] = true
	}
}

func TestHoldingsCopyIsDetached(t *testing.T) {
	a := newTestAccount(t)
	if _, err := a.Buy(nil, "AAPL", 5, time.Time{}, ""); err != nil {
		t.Fatal(err)
	}
	h := a.Holdings()
	h["AAPL"] = 9999
	if got := a.Position("AAPL"); got != 5 {
		t.Errorf("mutating the returned map changed the account: Position = %d", got)
	}
}
