package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage"
	"github.com/prithwis/brokerage/renderer"
)

// depositCmd holds the flags for the 'deposit' subcommand.
type depositCmd struct {
	amount float64
	date   string
	note   string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "deposit cash into the account" }
func (*depositCmd) Usage() string {
	return `bat deposit -amount <amount> [-d <date>] [-note <text>]

  Credits the account with the given amount and records a deposit
  transaction.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount to deposit.")
	f.StringVar(&c.date, "d", "", "Date of the deposit (defaults to now).")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the transaction.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	at, err := parseTime(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	a, err := LoadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := a.Deposit(brokerage.M(c.amount, a.Currency()), at, c.note)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveAccount(a); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Printf("%s, balance %s\n", renderer.Transaction(tx), tx.ResultingCash)
	return subcommands.ExitSuccess
}
