package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage/renderer"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display a full account statement" }
func (*summaryCmd) Usage() string {
	return `bat summary

  Displays a statement of the account: cash, positions at market value,
  total equity and profit.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := LoadAccount()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := a.NewStatement(oracle())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error valuing account: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.StatementMarkdown(s))
	return subcommands.ExitSuccess
}
