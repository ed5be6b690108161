package brokerage

import (
	"sort"
	"time"
)

// Statement is a point-in-time view of the account: cash, each position
// valued at the oracle's current prices, and the derived equity and
// profit figures.
type Statement struct {
	UserID   string
	Currency string
	Time     time.Time // Generation time

	Cash      Money
	Positions []Position

	PortfolioValue Money
	TotalEquity    Money
	// ProfitLoss is total equity minus net deposited cash.
	ProfitLoss Money
	// ProfitLossFromInitial is total equity minus the opening deposit.
	ProfitLossFromInitial Money
}

// Position is one valued holding line of a statement.
type Position struct {
	Symbol      string
	Quantity    int64
	Price       Money
	MarketValue Money
}

// NewStatement values the account at the oracle's current prices. A nil
// oracle means DefaultOracle(). Positions are sorted by symbol.
func (a *Account) NewStatement(oracle PriceOracle) (*Statement, error) {
	// One consistent view of the account, then price it outside the lock.
	a.mu.RLock()
	cash := a.cash
	net := a.netDeposits
	holdings := make(map[string]int64, len(a.holdings))
	for sym, qty := range a.holdings {
		holdings[sym] = qty
	}
	a.mu.RUnlock()
	initial := a.InitialDeposit()

	s := &Statement{
		UserID:   a.UserID(),
		Currency: a.Currency(),
		Time:     time.Now(),
		Cash:     cash,
	}
	pv := M(0, a.currency)
	for sym, qty := range holdings {
		price, err := resolvePrice(oracle, sym)
		if err != nil {
			return nil, err
		}
		price = M(price.Decimal(), a.currency).Quantize()
		value := price.MulInt(qty).Quantize()
		pv = pv.Add(value)
		s.Positions = append(s.Positions, Position{
			Symbol:      sym,
			Quantity:    qty,
			Price:       price,
			MarketValue: value,
		})
	}
	sort.Slice(s.Positions, func(i, j int) bool { return s.Positions[i].Symbol < s.Positions[j].Symbol })

	s.PortfolioValue = pv.Quantize()
	s.TotalEquity = cash.Add(pv).Quantize()
	s.ProfitLoss = s.TotalEquity.Sub(net).Quantize()
	s.ProfitLossFromInitial = s.TotalEquity.Sub(initial).Quantize()
	return s, nil
}
