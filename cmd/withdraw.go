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

// withdrawCmd holds the flags for the 'withdraw' subcommand.
type withdrawCmd struct {
	amount float64
	date   string
	note   string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "withdraw cash from the account" }
func (*withdrawCmd) Usage() string {
	return `bat withdraw -amount <amount> [-d <date>] [-note <text>]

  Debits the account by the given amount and records a withdraw
  transaction. Fails when the amount exceeds the cash balance.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount to withdraw.")
	f.StringVar(&c.date, "d", "", "Date of the withdrawal (defaults to now).")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the transaction.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx, err := a.Withdraw(brokerage.M(c.amount, a.Currency()), at, c.note)
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
