// Package brokerage implements an in-memory ledger for a single brokerage
// account. It tracks a user's cash balance, equity holdings, and an
// append-only, chronological transaction history, enforcing solvency and
// holdings invariants on every mutation.
//
// The core functionalities include:
//   - Account Operations: deposits, withdrawals, and share purchases and
//     sales, each validated against the account state before any mutation
//     and recorded as an immutable Transaction.
//   - Valuation: cash balance, portfolio value, total equity, and
//     profit-and-loss figures, computed against an injectable PriceOracle.
//   - Transaction History: filtered, insertion-ordered listings of the
//     ledger and lookups by transaction id.
//   - Snapshots: encoding and decoding of the full account state to and
//     from a human-readable JSONL form, so an embedding application can
//     persist accounts however it sees fit.
//
// All monetary values are exact decimals quantized to the account
// currency's minor unit. An Account is safe for concurrent use; every
// mutating operation is all-or-nothing.
//
// This package serves as the foundational logic for the `bat` command-line
// tool, which is a thin consumer of the public read API.
package brokerage
