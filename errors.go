package brokerage

import "errors"

// Domain errors returned by Account operations. They are all deterministic
// business-rule violations: retrying the same call with the same inputs
// reproduces the same failure. Callers are expected to match them with
// errors.Is, as operations wrap them with context.
var (
	// ErrInvalidAmount reports a non-positive or malformed monetary input
	// to a deposit or withdrawal.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInvalidQuantity reports a non-positive share count on a buy or sell.
	ErrInvalidQuantity = errors.New("invalid quantity")

	// ErrInvalidSymbol reports a symbol for which no price can be resolved,
	// whether requested in a trade or already held during valuation.
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrInsufficientFunds reports a withdrawal or purchase exceeding the
	// available cash balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares reports a sale exceeding the held quantity.
	ErrInsufficientShares = errors.New("insufficient shares")

	// ErrNotFound reports a transaction id lookup miss.
	ErrNotFound = errors.New("transaction not found")
)
