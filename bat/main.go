package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/prithwis/brokerage/cmd"
)

// completion describes the CLI for shell completion. Complete() exits the
// process when invoked by the shell, so it must run before flag.Parse.
func completion() {
	kinds := predict.Set{"deposit", "withdraw", "buy", "sell"}
	cmp := &complete.Command{
		Flags: map[string]complete.Predictor{
			"f":              predict.Files("*.jsonl"),
			"quote-url":      predict.Something,
			"quote-path":     predict.Something,
			"quote-currency": predict.Something,
		},
		Sub: map[string]*complete.Command{
			"new":      {Flags: map[string]complete.Predictor{"user": predict.Something, "currency": predict.Something, "amount": predict.Something, "d": predict.Something}},
			"deposit":  {Flags: map[string]complete.Predictor{"amount": predict.Something, "d": predict.Something, "note": predict.Something}},
			"withdraw": {Flags: map[string]complete.Predictor{"amount": predict.Something, "d": predict.Something, "note": predict.Something}},
			"buy":      {Flags: map[string]complete.Predictor{"symbol": predict.Something, "quantity": predict.Something, "d": predict.Something, "note": predict.Something}},
			"sell":     {Flags: map[string]complete.Predictor{"symbol": predict.Something, "quantity": predict.Something, "d": predict.Something, "note": predict.Something}},
			"tx":       {Flags: map[string]complete.Predictor{"k": kinds, "s": predict.Something, "e": predict.Something, "head": predict.Something, "tail": predict.Something}},
			"holding":  {},
			"summary":  {},
			"topic":    {Args: predict.Set{"readme", "account", "trading", "transactions", "pricing", "snapshot", "*"}},
		},
	}
	cmp.Complete(path.Base(os.Args[0]))
}

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
