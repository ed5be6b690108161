package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage/renderer"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	symbol   string
	quantity int64
	date     string
	note     string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "sell shares at the current oracle price" }
func (*sellCmd) Usage() string {
	return `bat sell -symbol <symbol> -quantity <n> [-d <date>] [-note <text>]

  Sells whole shares at the oracle's current price. Fails when the
  account holds fewer shares than asked.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Symbol to sell.")
	f.Int64Var(&c.quantity, "quantity", 0, "Number of shares to sell.")
	f.StringVar(&c.date, "d", "", "Date of the trade (defaults to now).")
	f.StringVar(&c.note, "note", "", "Free-form note attached to the transaction.")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	tx, err := a.Sell(oracle(), c.symbol, c.quantity, at, c.note)
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
