package brokerage

import (
	"sync"
	"testing"
	"time"
)

// TestConcurrentMutations hammers one account from many goroutines and
// checks the invariants still hold: one ledger entry per successful call,
// non-negative cash, and holdings consistent with the trades.
func TestConcurrentMutations(t *testing.T) {
	a, err := NewAccount("alice", "USD", M(100000, "USD"), time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	const rounds = 50

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 1 // the opening deposit
	countOK := func(err error) {
		if err == nil {
			mu.Lock()
			successes++
			mu.Unlock()
		}
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				_, err := a.Deposit(M(10, "USD"), time.Time{}, "")
				countOK(err)
				_, err = a.Buy(nil, "AAPL", 1, time.Time{}, "")
				countOK(err)
				_, err = a.Sell(nil, "AAPL", 1, time.Time{}, "")
				countOK(err)
				_, err = a.Withdraw(M(10, "USD"), time.Time{}, "")
				countOK(err)
				a.CashBalance()
				a.Holdings()
			}
		}()
	}
	wg.Wait()

	if got := len(a.Transactions()); got != successes {
		t.Errorf("ledger has %d entries, want %d (one per successful call)", got, successes)
	}
	if a.CashBalance().IsNegative() {
		t.Errorf("cash went negative: %s", a.CashBalance())
	}
	for sym, qty := range a.Holdings() {
		if qty <= 0 {
			t.Errorf("holding %s has non-positive quantity %d", sym, qty)
		}
	}

	// replaying the whole ledger must reproduce the final state.
	restored, err := RestoreAccount(a.Snapshot())
	if err != nil {
		t.Fatalf("ledger does not replay: %v", err)
	}
	if !restored.CashBalance().Equal(a.CashBalance()) {
		t.Errorf("replayed cash %s, live cash %s", restored.CashBalance(), a.CashBalance())
	}
}
