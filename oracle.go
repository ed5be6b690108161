package brokerage

import (
	"errors"
	"fmt"
	"strings"
)

// PriceOracle maps a ticker symbol to its current unit price. Implementations
// must be side-effect-free and deterministic for a given symbol so that the
// Account can call them while computing valuations; a slow or blocking
// implementation violates the collaborator contract.
type PriceOracle interface {
	Price(symbol string) (Money, error)
}

// PriceFunc adapts a plain function to the PriceOracle interface.
type PriceFunc func(symbol string) (Money, error)

func (f PriceFunc) Price(symbol string) (Money, error) { return f(symbol) }

// StaticOracle is a fixed symbol-to-price table.
type StaticOracle map[string]Money

// Price returns the tabled price for the normalized symbol, or
// ErrInvalidSymbol if the symbol is not listed.
func (o StaticOracle) Price(symbol string) (Money, error) {
	price, ok := o[NormalizeSymbol(symbol)]
	if !ok {
		return Money{}, fmt.Errorf("no price for symbol %q: %w", symbol, ErrInvalidSymbol)
	}
	return price.Quantize(), nil
}

// DefaultOracle returns the test-grade oracle with a small fixed price table.
// Callers substitute their own PriceOracle for anything beyond tests.
func DefaultOracle() PriceOracle {
	return StaticOracle{
		"AAPL":  M(150.00, "USD"),
		"TSLA":  M(700.00, "USD"),
		"GOOGL": M(2700.00, "USD"),
	}
}

// NormalizeSymbol trims surrounding whitespace and upper-cases a ticker
// symbol. All Account operations normalize symbols before any check, so
// "aapl " and "AAPL" address the same holding.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// resolvePrice resolves a normalized symbol through the given oracle, falling
// back to the default oracle when nil. Any lookup failure is reported as
// ErrInvalidSymbol: there is no zero-price fallback.
func resolvePrice(oracle PriceOracle, symbol string) (Money, error) {
	if oracle == nil {
		oracle = DefaultOracle()
	}
	price, err := oracle.Price(symbol)
	if err != nil {
		if errors.Is(err, ErrInvalidSymbol) {
			return Money{}, err
		}
		return Money{}, fmt.Errorf("price lookup for %q failed: %w (%v)", symbol, ErrInvalidSymbol, err)
	}
	return price.Quantize(), nil
}
