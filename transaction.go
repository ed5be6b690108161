package brokerage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is a typed string identifying the nature of a transaction.
type Kind string

// Transaction kinds recorded in the ledger.
const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindBuy      Kind = "buy"
	KindSell     Kind = "sell"
)

// ParseKind parses a string into a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindDeposit, KindWithdraw, KindBuy, KindSell:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("unknown transaction kind: %q", s)
	}
}

// Transaction is an immutable record of one account mutation. Total is always
// a positive magnitude; Kind disambiguates the cash direction (deposit and
// sell credit the account, withdraw and buy debit it).
//
// Symbol, Quantity and PricePerShare are set only for buy and sell records.
// ResultingCash captures the account's cash immediately after the mutation
// and is never recomputed; ResultingHoldings is a copy of the holdings after
// the mutation, nil when the account held nothing.
type Transaction struct {
	ID            string
	Kind          Kind
	Symbol        string
	Quantity      int64
	PricePerShare Money
	Total         Money
	Timestamp     time.Time
	Note          string

	ResultingCash     Money
	ResultingHoldings map[string]int64
}

// Equal reports whether two transactions carry the same record.
func (t Transaction) Equal(o Transaction) bool {
	if t.ID != o.ID || t.Kind != o.Kind || t.Symbol != o.Symbol ||
		t.Quantity != o.Quantity || t.Note != o.Note ||
		!t.Timestamp.Equal(o.Timestamp) ||
		!t.PricePerShare.Equal(o.PricePerShare) ||
		!t.Total.Equal(o.Total) ||
		!t.ResultingCash.Equal(o.ResultingCash) ||
		len(t.ResultingHoldings) != len(o.ResultingHoldings) {
		return false
	}
	for sym, qty := range t.ResultingHoldings {
		if o.ResultingHoldings[sym] != qty {
			return false
		}
	}
	return true
}

// clone returns a deep copy, so callers can never alias internal state.
func (t Transaction) clone() Transaction {
	c := t
	if t.ResultingHoldings != nil {
		c.ResultingHoldings = make(map[string]int64, len(t.ResultingHoldings))
		for sym, qty := range t.ResultingHoldings {
			c.ResultingHoldings[sym] = qty
		}
	}
	return c
}

// MarshalJSON implements the json.Marshaler interface for Transaction, with a
// stable key order suitable for canonical, diff-friendly output.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("kind", t.Kind)
	w.Optional("symbol", t.Symbol)
	w.Optional("quantity", t.Quantity)
	if t.Symbol != "" {
		w.Append("price", t.PricePerShare.Decimal())
	}
	w.Append("total", t.Total.Decimal())
	w.Optional("currency", t.Total.Currency())
	w.Append("timestamp", t.Timestamp.UTC().Format(time.RFC3339Nano))
	w.Optional("note", t.Note)
	w.Append("cash", t.ResultingCash.Decimal())
	w.Optional("holdings", t.ResultingHoldings)
	return w.MarshalJSON()
}

// jsonTx is a specialized struct to decode a transaction's flat JSON form.
type jsonTx struct {
	ID        string           `json:"id"`
	Kind      Kind             `json:"kind"`
	Symbol    string           `json:"symbol"`
	Quantity  int64            `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Total     decimal.Decimal  `json:"total"`
	Currency  string           `json:"currency"`
	Timestamp time.Time        `json:"timestamp"`
	Note      string           `json:"note"`
	Cash      decimal.Decimal  `json:"cash"`
	Holdings  map[string]int64 `json:"holdings"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp jsonTx
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if _, err := ParseKind(string(temp.Kind)); err != nil {
		return err
	}
	t.ID = temp.ID
	t.Kind = temp.Kind
	t.Symbol = temp.Symbol
	t.Quantity = temp.Quantity
	if temp.Symbol != "" {
		t.PricePerShare = M(temp.Price, temp.Currency)
	} else {
		t.PricePerShare = Money{}
	}
	t.Total = M(temp.Total, temp.Currency)
	t.Timestamp = temp.Timestamp
	t.Note = temp.Note
	t.ResultingCash = M(temp.Cash, temp.Currency)
	t.ResultingHoldings = temp.Holdings
	return nil
}

// --- ledger filters ---

// A Filter selects transactions in listings. Filters passed together are all
// required to accept a transaction.
type Filter func(Transaction) bool

// ByKind returns a filter accepting transactions of any of the given kinds.
// With no kinds it accepts everything.
func ByKind(kinds ...Kind) Filter {
	return func(tx Transaction) bool {
		if len(kinds) == 0 {
			return true
		}
		for _, k := range kinds {
			if tx.Kind == k {
				return true
			}
		}
		return false
	}
}

// Since returns a filter accepting transactions timestamped on or after t.
func Since(t time.Time) Filter {
	return func(tx Transaction) bool { return !tx.Timestamp.Before(t) }
}

// Until returns a filter accepting transactions timestamped on or before t.
func Until(t time.Time) Filter {
	return func(tx Transaction) bool { return !tx.Timestamp.After(t) }
}

// BySymbol returns a filter accepting buy/sell transactions of one symbol.
func BySymbol(symbol string) Filter {
	symbol = NormalizeSymbol(symbol)
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}
