package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage"
	"github.com/prithwis/brokerage/renderer"
)

type txCmd struct {
	kinds string
	start string
	end   string
	head  int
	tail  int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list transactions from the ledger" }
func (*txCmd) Usage() string {
	return `bat tx [-k <kinds>] [-s <start>] [-e <end>] [-head <n> | -tail <n>]

  Lists transactions from the ledger, with options for filtering and
  limiting the output. Kinds are comma-separated (deposit, withdraw,
  buy, sell); start and end bound the timestamp, inclusive.
`
}

func (p *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.kinds, "k", "", "Comma-separated transaction kinds to list.")
	f.StringVar(&p.start, "s", "", "The start date for a custom range.")
	f.StringVar(&p.end, "e", "", "The end date for the range.")
	f.IntVar(&p.head, "head", 0, "Show only the first N transactions.")
	f.IntVar(&p.tail, "tail", 0, "Show only the last N transactions.")
}

func (p *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.head > 0 && p.tail > 0 {
		fmt.Fprintln(os.Stderr, "Error: -head and -tail flags cannot be used together.")
		return subcommands.ExitUsageError
	}

	a, err := LoadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var filters []brokerage.Filter
	if p.kinds != "" {
		var kinds []brokerage.Kind
		for _, s := range strings.Split(p.kinds, ",") {
			kind, err := brokerage.ParseKind(strings.TrimSpace(s))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitUsageError
			}
			kinds = append(kinds, kind)
		}
		filters = append(filters, brokerage.ByKind(kinds...))
	}
	if p.start != "" {
		start, err := parseTime(p.start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, brokerage.Since(start))
	}
	if p.end != "" {
		end, err := parseTime(p.end)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		filters = append(filters, brokerage.Until(end))
	}

	transactions := a.Transactions(filters...)
	if p.head > 0 && len(transactions) > p.head {
		transactions = transactions[:p.head]
	}
	if p.tail > 0 && len(transactions) > p.tail {
		transactions = transactions[len(transactions)-p.tail:]
	}

	printMarkdown(renderer.TransactionsMarkdown(transactions))
	return subcommands.ExitSuccess
}
