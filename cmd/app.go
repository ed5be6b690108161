// Package cmd implements the CLI application to manage a brokerage account.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/prithwis/brokerage"
)

// Commands lists every subcommand.
// A main package iterates over Commands to register them, then Execute() the user-selected one.
var Commands = []subcommands.Command{
	&newCmd{},
	&depositCmd{},
	&withdrawCmd{},
	&buyCmd{},
	&sellCmd{},
	&txCmd{},
	&holdingCmd{},
	&summaryCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var accountFile = flag.String("f", "account.jsonl", "Path to the account file (JSONL format)")
var quoteURL = flag.String("quote-url", "", "Quote service URL format, %s replaced by the symbol")
var quotePath = flag.String("quote-path", "$.price", "JSONPath to the price in the quote response")
var quoteCurrency = flag.String("quote-currency", "USD", "Currency the quote service quotes in")

// oracle returns the price oracle selected by the global flags, nil meaning
// the built-in default table.
func oracle() brokerage.PriceOracle {
	if *quoteURL == "" {
		return nil
	}
	return &brokerage.HTTPOracle{
		URLFormat: *quoteURL,
		Path:      *quotePath,
		Currency:  *quoteCurrency,
	}
}

// LoadAccount reads the account from the app account file.
func LoadAccount() (*brokerage.Account, error) {
	f, err := os.Open(*accountFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open account file %q: %w", *accountFile, err)
	}
	defer f.Close()
	return brokerage.ReadAccount(f)
}

// SaveAccount writes the account back to the app account file.
func SaveAccount(a *brokerage.Account) subcommands.ExitStatus {
	f, err := os.Create(*accountFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening account file %q: %v\n", *accountFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := brokerage.WriteAccount(f, a); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing account file %q: %v\n", *accountFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// parseTime parses a user-provided timestamp: a date, a date with time, or
// empty for now (as the zero time).
func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}
