// Package renderer formats brokerage reports as markdown.
package renderer

import (
	"fmt"
	"strings"

	"github.com/prithwis/brokerage"
)

// StatementMarkdown renders a full account statement: cash, positions valued
// at current prices, and the equity and profit figures.
func StatementMarkdown(s *brokerage.Statement) string {
	r := &markdownRenderer{Builder: &strings.Builder{}}

	r.Printf("# Account Statement for %s\n\n", s.UserID)
	r.Printf("Generated on %s\n\n", s.Time.Format("2006-01-02 15:04:05"))

	if len(s.Positions) > 0 {
		r.renderPositions(s.Positions)
	}

	r.Printf("## Summary\n\n")
	r.Printf("| | Amount |\n")
	r.Printf("|:---|---:|\n")
	r.Printf("| Cash | %s |\n", s.Cash)
	r.Printf("| Portfolio Value | %s |\n", s.PortfolioValue)
	r.Printf("| Total Equity | %s |\n", s.TotalEquity)
	r.Printf("| Profit/Loss | %s |\n", s.ProfitLoss)
	r.Printf("\n")
	return r.String()
}

// HoldingMarkdown renders only the positions table of a statement.
func HoldingMarkdown(s *brokerage.Statement) string {
	r := &markdownRenderer{Builder: &strings.Builder{}}
	r.Printf("# Holdings for %s\n\n", s.UserID)
	if len(s.Positions) == 0 {
		r.Printf("No open positions.\n")
		return r.String()
	}
	r.renderPositions(s.Positions)
	r.Printf("Total: %s\n", s.PortfolioValue)
	return r.String()
}

// markdownRenderer formats report output into a markdown string.
type markdownRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *markdownRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

func (r *markdownRenderer) renderPositions(positions []brokerage.Position) {
	r.Printf("## Positions\n\n")
	r.Printf("| Symbol | Quantity | Price | Market Value |\n")
	r.Printf("|:---|---:|---:|---:|\n")
	for _, p := range positions {
		r.Printf("| %s | %d | %s | %s |\n", p.Symbol, p.Quantity, p.Price, p.MarketValue)
	}
	r.Printf("\n")
}
