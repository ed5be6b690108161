package brokerage

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Account is a single-user brokerage account: a cash balance, share holdings,
// and the append-only list of transactions that produced them.
//
// All methods are safe for concurrent use. Mutations take the write lock for
// the whole validate-compute-commit sequence, so a failed operation never
// leaves a partial change behind, and the ledger order is the commit order.
type Account struct {
	mu sync.RWMutex

	userID   string
	currency string
	initial  Money

	cash        Money
	netDeposits Money
	holdings    map[string]int64
	ledger      []Transaction
}

// NewAccount opens an account for userID denominated in the given currency,
// funded with an initial deposit. A zero deposit opens an empty account with
// no opening transaction; a negative one is rejected. at zero-value means
// now.
func NewAccount(userID, currency string, initialDeposit Money, at time.Time) (*Account, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, fmt.Errorf("empty user id")
	}
	if err := ValidateCurrency(currency); err != nil {
		return nil, err
	}
	if initialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, initialDeposit)
	}
	if c := initialDeposit.Currency(); c != "" && c != currency {
		return nil, fmt.Errorf("%w: %s is not in account currency %s", ErrInvalidAmount, initialDeposit, currency)
	}
	a := &Account{
		userID:      userID,
		currency:    currency,
		initial:     M(initialDeposit.Decimal(), currency).Quantize(),
		cash:        M(0, currency),
		netDeposits: M(0, currency),
		holdings:    make(map[string]int64),
	}
	if a.initial.IsPositive() {
		if _, err := a.Deposit(a.initial, at, "initial deposit"); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// UserID returns the account owner's identifier.
func (a *Account) UserID() string { return a.userID }

// Currency returns the account's denomination currency code.
func (a *Account) Currency() string { return a.currency }

// checkAmount validates that amount is a positive cash amount in the
// account's currency. A weak (currency-less) amount is adopted as-is.
func (a *Account) checkAmount(amount Money) (Money, error) {
	if !amount.IsPositive() {
		return Money{}, fmt.Errorf("%w: %s", ErrInvalidAmount, amount)
	}
	if c := amount.Currency(); c != "" && c != a.currency {
		return Money{}, fmt.Errorf("%w: %s is not in account currency %s", ErrInvalidAmount, amount, a.currency)
	}
	return M(amount.Decimal(), a.currency).Quantize(), nil
}

// record appends a committed transaction to the ledger, stamping it with a
// fresh id and the post-state of the account. Callers hold the write lock.
func (a *Account) record(tx Transaction) Transaction {
	tx.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	tx.ResultingCash = a.cash
	if len(a.holdings) > 0 {
		tx.ResultingHoldings = make(map[string]int64, len(a.holdings))
		for sym, qty := range a.holdings {
			tx.ResultingHoldings[sym] = qty
		}
	}
	a.ledger = append(a.ledger, tx)
	return tx.clone()
}

// Deposit credits the account with amount and records a deposit transaction.
// at zero-value means now.
func (a *Account) Deposit(amount Money, at time.Time, note string) (Transaction, error) {
	amount, err := a.checkAmount(amount)
	if err != nil {
		return Transaction{}, err
	}
	if at.IsZero() {
		at = time.Now()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.cash = a.cash.Add(amount)
	a.netDeposits = a.netDeposits.Add(amount)
	return a.record(Transaction{
		Kind:      KindDeposit,
		Total:     amount,
		Timestamp: at,
		Note:      note,
	}), nil
}

// Withdraw debits the account by amount and records a withdraw transaction.
// It fails with ErrInsufficientFunds when amount exceeds the cash balance.
// at zero-value means now.
func (a *Account) Withdraw(amount Money, at time.Time, note string) (Transaction, error) {
	amount, err := a.checkAmount(amount)
	if err != nil {
		return Transaction{}, err
	}
	if at.IsZero() {
		at = time.Now()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cash.LessThan(amount) {
		return Transaction{}, fmt.Errorf("%w: withdraw %s exceeds balance %s", ErrInsufficientFunds, amount, a.cash)
	}
	a.cash = a.cash.Sub(amount)
	a.netDeposits = a.netDeposits.Sub(amount)
	return a.record(Transaction{
		Kind:      KindWithdraw,
		Total:     amount,
		Timestamp: at,
		Note:      note,
	}), nil
}

// Buy purchases quantity shares of symbol at the oracle's current price and
// records a buy transaction. A nil oracle means DefaultOracle(). It fails
// with ErrInsufficientFunds when the total cost exceeds the cash balance.
// at zero-value means now.
func (a *Account) Buy(oracle PriceOracle, symbol string, quantity int64, at time.Time, note string) (Transaction, error) {
	symbol = NormalizeSymbol(symbol)
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	// Resolve the price before taking the lock: oracles may hit the network.
	price, err := resolvePrice(oracle, symbol)
	if err != nil {
		return Transaction{}, err
	}
	if c := price.Currency(); c != "" && c != a.currency {
		return Transaction{}, fmt.Errorf("%w: price %s is not in account currency %s", ErrInvalidSymbol, price, a.currency)
	}
	price = M(price.Decimal(), a.currency).Quantize()
	total := price.MulInt(quantity).Quantize()
	if at.IsZero() {
		at = time.Now()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cash.LessThan(total) {
		return Transaction{}, fmt.Errorf("%w: buy %d %s costs %s, balance %s", ErrInsufficientFunds, quantity, symbol, total, a.cash)
	}
	a.cash = a.cash.Sub(total)
	a.holdings[symbol] += quantity
	return a.record(Transaction{
		Kind:          KindBuy,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		Total:         total,
		Timestamp:     at,
		Note:          note,
	}), nil
}

// Sell disposes of quantity shares of symbol at the oracle's current price
// and records a sell transaction. A nil oracle means DefaultOracle(). It
// fails with ErrInsufficientShares when the account holds fewer than
// quantity shares of symbol. at zero-value means now.
func (a *Account) Sell(oracle PriceOracle, symbol string, quantity int64, at time.Time, note string) (Transaction, error) {
	symbol = NormalizeSymbol(symbol)
	if quantity <= 0 {
		return Transaction{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	if at.IsZero() {
		at = time.Now()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if held := a.holdings[symbol]; held < quantity {
		return Transaction{}, fmt.Errorf("%w: sell %d %s, holding %d", ErrInsufficientShares, quantity, symbol, held)
	}
	price, err := resolvePrice(oracle, symbol)
	if err != nil {
		return Transaction{}, err
	}
	if c := price.Currency(); c != "" && c != a.currency {
		return Transaction{}, fmt.Errorf("%w: price %s is not in account currency %s", ErrInvalidSymbol, price, a.currency)
	}
	price = M(price.Decimal(), a.currency).Quantize()
	total := price.MulInt(quantity).Quantize()

	a.cash = a.cash.Add(total)
	if a.holdings[symbol] == quantity {
		delete(a.holdings, symbol)
	} else {
		a.holdings[symbol] -= quantity
	}
	return a.record(Transaction{
		Kind:          KindSell,
		Symbol:        symbol,
		Quantity:      quantity,
		PricePerShare: price,
		Total:         total,
		Timestamp:     at,
		Note:          note,
	}), nil
}

// CashBalance returns the account's current cash balance.
func (a *Account) CashBalance() Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cash
}

// Holdings returns a copy of the current holdings, share quantity by symbol.
// Symbols fully sold out are absent.
func (a *Account) Holdings() map[string]int64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	h := make(map[string]int64, len(a.holdings))
	for sym, qty := range a.holdings {
		h[sym] = qty
	}
	return h
}

// Position returns the number of shares of symbol currently held, zero when
// none.
func (a *Account) Position(symbol string) int64 {
	symbol = NormalizeSymbol(symbol)
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.holdings[symbol]
}

// PortfolioValue returns the market value of all holdings at the oracle's
// current prices. A nil oracle means DefaultOracle().
func (a *Account) PortfolioValue(oracle PriceOracle) (Money, error) {
	holdings := a.Holdings()
	value := M(0, a.currency)
	for sym, qty := range holdings {
		price, err := resolvePrice(oracle, sym)
		if err != nil {
			return Money{}, err
		}
		value = value.Add(M(price.Decimal(), a.currency).MulInt(qty))
	}
	return value.Quantize(), nil
}

// TotalEquity returns cash plus the market value of all holdings.
func (a *Account) TotalEquity(oracle PriceOracle) (Money, error) {
	pv, err := a.PortfolioValue(oracle)
	if err != nil {
		return Money{}, err
	}
	return a.CashBalance().Add(pv).Quantize(), nil
}

// ProfitLossFromInitial returns total equity minus the initial deposit.
func (a *Account) ProfitLossFromInitial(oracle PriceOracle) (Money, error) {
	equity, err := a.TotalEquity(oracle)
	if err != nil {
		return Money{}, err
	}
	return equity.Sub(a.InitialDeposit()).Quantize(), nil
}

// ProfitLossFromNetDeposits returns total equity minus net contributed cash
// (all deposits minus all withdrawals), a measure unaffected by moving cash
// in or out of the account.
func (a *Account) ProfitLossFromNetDeposits(oracle PriceOracle) (Money, error) {
	equity, err := a.TotalEquity(oracle)
	if err != nil {
		return Money{}, err
	}
	return equity.Sub(a.NetDeposits()).Quantize(), nil
}

// InitialDeposit returns the amount of the account's opening deposit, zero
// when the account was opened unfunded.
func (a *Account) InitialDeposit() Money {
	return a.initial
}

// NetDeposits returns all cash deposited minus all cash withdrawn, the
// opening deposit included.
func (a *Account) NetDeposits() Money {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.netDeposits
}

// Transactions returns the transactions accepted by every given filter, in
// the order they were committed.
func (a *Account) Transactions(filters ...Filter) []Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var txs []Transaction
loop:
	for _, tx := range a.ledger {
		for _, accept := range filters {
			if !accept(tx) {
				continue loop
			}
		}
		txs = append(txs, tx.clone())
	}
	return txs
}

// Transaction returns the transaction with the given id, or ErrNotFound.
func (a *Account) Transaction(id string) (Transaction, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, tx := range a.ledger {
		if tx.ID == id {
			return tx.clone(), nil
		}
	}
	return Transaction{}, fmt.Errorf("%w: transaction %q", ErrNotFound, id)
}
