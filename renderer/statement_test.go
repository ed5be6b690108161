package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/prithwis/brokerage"
)

func testStatement(t *testing.T) *brokerage.Statement {
	t.Helper()
	a, err := brokerage.NewAccount("alice", "USD", brokerage.M(10000, "USD"), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Deposit(brokerage.M(2000, "USD"), time.Time{}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Buy(nil, "TSLA", 1, time.Time{}, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Buy(nil, "AAPL", 10, time.Time{}, ""); err != nil {
		t.Fatal(err)
	}
	s, err := a.NewStatement(nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestStatementMarkdown(t *testing.T) {
	got := StatementMarkdown(testStatement(t))

	for _, want := range []string{
		"# Account Statement for alice",
		"## Positions",
		"| AAPL | 10 |",
		"| TSLA | 1 |",
		"## Summary",
		"| Total Equity |",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("statement is missing %q:\n%s", want, got)
		}
	}

	// positions are sorted by symbol.
	if strings.Index(got, "AAPL") > strings.Index(got, "TSLA") {
		t.Error("positions are not sorted by symbol")
	}
}

func TestHoldingMarkdown(t *testing.T) {
	got := HoldingMarkdown(testStatement(t))
	if !strings.Contains(got, "| Symbol | Quantity | Price | Market Value |") {
		t.Errorf("holding table header missing:\n%s", got)
	}

	t.Run("no positions", func(t *testing.T) {
		a, err := brokerage.NewAccount("bob", "USD", brokerage.M(100, "USD"), time.Time{})
		if err != nil {
			t.Fatal(err)
		}
		s, err := a.NewStatement(nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := HoldingMarkdown(s); !strings.Contains(got, "No open positions.") {
			t.Errorf("empty holdings render:\n%s", got)
		}
	})
}

func TestTransactionLine(t *testing.T) {
	a, err := brokerage.NewAccount("alice", "USD", brokerage.M(10000, "USD"), time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	tx, err := a.Buy(nil, "AAPL", 10, time.Time{}, "")
	if err != nil {
		t.Fatal(err)
	}
	got := Transaction(tx)
	if !strings.Contains(got, "Bought 10 of AAPL") {
		t.Errorf("Transaction = %q", got)
	}

	md := TransactionsMarkdown(a.Transactions())
	if !strings.Contains(md, "| Date | Kind | Detail | Cash After |") {
		t.Errorf("transactions table header missing:\n%s", md)
	}
	if !strings.Contains(md, "deposit") || !strings.Contains(md, "buy") {
		t.Errorf("transactions table rows missing:\n%s", md)
	}
}
