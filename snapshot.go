package brokerage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	// Numbers in snapshots are JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Snapshot is a self-contained, serializable image of an account: its
// identity, the opening deposit, and the full ledger. Cash and holdings are
// not stored; they are replayed from the ledger on restore, which also
// verifies the ledger is consistent.
type Snapshot struct {
	UserID         string
	Currency       string
	InitialDeposit Money
	Transactions   []Transaction
}

// Snapshot captures the account's current state.
func (a *Account) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	txs := make([]Transaction, 0, len(a.ledger))
	for _, tx := range a.ledger {
		txs = append(txs, tx.clone())
	}
	return Snapshot{
		UserID:         a.userID,
		Currency:       a.currency,
		InitialDeposit: a.initial,
		Transactions:   txs,
	}
}

// RestoreAccount rebuilds an account from a snapshot, replaying the ledger
// and checking each transaction's recorded post-state against the replayed
// one. It fails on a ledger that was never reachable through the account's
// own operations: a negative running cash balance, an oversold position, or
// a post-state that does not match.
func RestoreAccount(s Snapshot) (*Account, error) {
	if s.UserID == "" {
		return nil, fmt.Errorf("snapshot has no user id")
	}
	if err := ValidateCurrency(s.Currency); err != nil {
		return nil, err
	}
	initial := M(s.InitialDeposit.Decimal(), s.Currency)
	if initial.IsNegative() {
		return nil, fmt.Errorf("snapshot initial deposit: %w: %s", ErrInvalidAmount, initial)
	}
	if !initial.Equal(initial.Quantize()) {
		return nil, fmt.Errorf("snapshot initial deposit %s is not quantized", initial)
	}
	a := &Account{
		userID:      s.UserID,
		currency:    s.Currency,
		initial:     initial,
		cash:        M(0, s.Currency),
		netDeposits: M(0, s.Currency),
		holdings:    make(map[string]int64),
	}
	for i, tx := range s.Transactions {
		if err := a.replay(tx); err != nil {
			return nil, fmt.Errorf("snapshot transaction #%d (%s): %w", i, tx.ID, err)
		}
	}
	return a, nil
}

// replay applies one historical transaction without minting a new id or
// post-state, verifying the recorded post-state instead.
func (a *Account) replay(tx Transaction) error {
	if !tx.Total.IsPositive() {
		return fmt.Errorf("%w: %s", ErrInvalidAmount, tx.Total)
	}
	// Amounts outside the currency's minor unit cannot come from the
	// account's own operations, which quantize before committing.
	if !tx.Total.Equal(tx.Total.Quantize()) {
		return fmt.Errorf("%w: total %s is not quantized", ErrInvalidAmount, tx.Total)
	}
	if !tx.ResultingCash.Equal(tx.ResultingCash.Quantize()) {
		return fmt.Errorf("recorded cash %s is not quantized", tx.ResultingCash)
	}
	switch tx.Kind {
	case KindDeposit:
		a.cash = a.cash.Add(tx.Total)
		a.netDeposits = a.netDeposits.Add(tx.Total)
	case KindWithdraw:
		if a.cash.LessThan(tx.Total) {
			return fmt.Errorf("%w: withdraw %s exceeds balance %s", ErrInsufficientFunds, tx.Total, a.cash)
		}
		a.cash = a.cash.Sub(tx.Total)
		a.netDeposits = a.netDeposits.Sub(tx.Total)
	case KindBuy:
		if tx.Quantity <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidQuantity, tx.Quantity)
		}
		if a.cash.LessThan(tx.Total) {
			return fmt.Errorf("%w: buy costs %s, balance %s", ErrInsufficientFunds, tx.Total, a.cash)
		}
		a.cash = a.cash.Sub(tx.Total)
		a.holdings[tx.Symbol] += tx.Quantity
	case KindSell:
		if tx.Quantity <= 0 {
			return fmt.Errorf("%w: %d", ErrInvalidQuantity, tx.Quantity)
		}
		if held := a.holdings[tx.Symbol]; held < tx.Quantity {
			return fmt.Errorf("%w: sell %d %s, holding %d", ErrInsufficientShares, tx.Quantity, tx.Symbol, held)
		}
		a.cash = a.cash.Add(tx.Total)
		if a.holdings[tx.Symbol] == tx.Quantity {
			delete(a.holdings, tx.Symbol)
		} else {
			a.holdings[tx.Symbol] -= tx.Quantity
		}
	default:
		return fmt.Errorf("unknown transaction kind: %q", tx.Kind)
	}
	if !a.cash.Equal(tx.ResultingCash) {
		return fmt.Errorf("recorded cash %s, replayed %s", tx.ResultingCash, a.cash)
	}
	if len(a.holdings) != len(tx.ResultingHoldings) {
		return fmt.Errorf("recorded %d holdings, replayed %d", len(tx.ResultingHoldings), len(a.holdings))
	}
	for sym, qty := range tx.ResultingHoldings {
		if a.holdings[sym] != qty {
			return fmt.Errorf("recorded %d %s, replayed %d", qty, sym, a.holdings[sym])
		}
	}
	a.ledger = append(a.ledger, tx.clone())
	return nil
}

// snapshotHeader is the first line of an encoded snapshot.
type snapshotHeader struct {
	UserID   string          `json:"user"`
	Currency string          `json:"currency"`
	Initial  decimal.Decimal `json:"initial"`
}

// MarshalJSON implements the json.Marshaler interface for snapshotHeader,
// with a stable key order.
func (h snapshotHeader) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("user", h.UserID)
	w.Append("currency", h.Currency)
	w.Append("initial", h.Initial)
	return w.MarshalJSON()
}

// EncodeSnapshot writes a snapshot in JSONL form: a header object on the
// first line, then one transaction per line in ledger order. The output is
// canonical, so two identical snapshots encode byte-for-byte the same.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	b := bufio.NewWriter(w)
	enc := json.NewEncoder(b)
	if err := enc.Encode(snapshotHeader{UserID: s.UserID, Currency: s.Currency, Initial: s.InitialDeposit.Decimal()}); err != nil {
		return fmt.Errorf("cannot encode snapshot header: %w", err)
	}
	for _, tx := range s.Transactions {
		if err := enc.Encode(tx); err != nil {
			return fmt.Errorf("cannot encode transaction %s: %w", tx.ID, err)
		}
	}
	return b.Flush()
}

// DecodeSnapshot reads a snapshot in the format written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	dec := json.NewDecoder(r)
	var h snapshotHeader
	if err := dec.Decode(&h); err != nil {
		return Snapshot{}, fmt.Errorf("cannot decode snapshot header: %w", err)
	}
	s := Snapshot{UserID: h.UserID, Currency: h.Currency, InitialDeposit: M(h.Initial, h.Currency)}
	for {
		var tx Transaction
		if err := dec.Decode(&tx); err == io.EOF {
			break
		} else if err != nil {
			return Snapshot{}, fmt.Errorf("cannot decode transaction #%d: %w", len(s.Transactions), err)
		}
		s.Transactions = append(s.Transactions, tx)
	}
	return s, nil
}

// ReadAccount decodes a snapshot from r and restores the account from it.
func ReadAccount(r io.Reader) (*Account, error) {
	s, err := DecodeSnapshot(r)
	if err != nil {
		return nil, err
	}
	return RestoreAccount(s)
}

// WriteAccount encodes the account's snapshot to w.
func WriteAccount(w io.Writer, a *Account) error {
	return EncodeSnapshot(w, a.Snapshot())
}
