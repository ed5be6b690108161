package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage/renderer"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	symbol   string
	quantity int64
	date     string
	note     string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "buy shares at the current oracle price" }
func (*buyCmd) Usage() string {
	return `bat buy -symbol <symbol> -quantity <n> [-d <date>] [-note <text>]

  Buys whole shares at the oracle's current price. Fails when the cost
  exceeds the cash balance.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Symbol to buy.")
	f.Int64Var(&c.quantity, "quantity", 0, "Number of shares to buy.")
	f.StringVar(&c.date, "d", "", "Date of the trade (defaults to now).")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the transaction.")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx, err := a.Buy(oracle(), c.symbol, c.quantity, at, c.note)
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
