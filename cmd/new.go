package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage"
)

// newCmd holds the flags for the 'new' subcommand.
type newCmd struct {
	user     string
	currency string
	amount   float64
	date     string
}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "open a new account funded with an initial deposit" }
func (*newCmd) Usage() string {
	return `bat new -user <id> [-currency <code>] -amount <amount> [-d <date>]

  Opens a new account and writes it to the account file. An initial
  deposit, when given, is the first transaction of the ledger.
`
}

func (c *newCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Owner of the account.")
	f.StringVar(&c.currency, "currency", "USD", "Account currency (ISO 4217 code).")
	f.Float64Var(&c.amount, "amount", 0, "Initial deposit amount.")
	f.StringVar(&c.date, "d", "", "Date of the opening deposit (defaults to now).")
}

func (c *newCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	at, err := parseTime(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	if _, err := os.Stat(*accountFile); err == nil {
		fmt.Fprintf(os.Stderr, "Error: account file %q already exists\n", *accountFile)
		return subcommands.ExitFailure
	}

	a, err := brokerage.NewAccount(c.user, c.currency, brokerage.M(c.amount, c.currency), at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening account: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveAccount(a); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("Opened account for %s with %s in %s\n", a.UserID(), a.CashBalance(), *accountFile)
	return subcommands.ExitSuccess
}
