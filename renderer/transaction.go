package renderer

import (
	"fmt"
	"strings"

	"github.com/prithwis/brokerage"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx brokerage.Transaction) string {
	switch tx.Kind {
	case brokerage.KindDeposit:
		return fmt.Sprintf("Deposited %s", tx.Total)
	case brokerage.KindWithdraw:
		return fmt.Sprintf("Withdrew %s", tx.Total)
	case brokerage.KindBuy:
		return fmt.Sprintf("Bought %d of %s at %s for %s", tx.Quantity, tx.Symbol, tx.PricePerShare, tx.Total)
	case brokerage.KindSell:
		return fmt.Sprintf("Sold %d of %s at %s for %s", tx.Quantity, tx.Symbol, tx.PricePerShare, tx.Total)
	default:
		return string(tx.Kind)
	}
}

// TransactionsMarkdown renders a transaction list as a markdown table, in
// ledger order.
func TransactionsMarkdown(txs []brokerage.Transaction) string {
	r := &markdownRenderer{Builder: &strings.Builder{}}
	r.Printf("# Transactions\n\n")
	if len(txs) == 0 {
		r.Printf("No transactions.\n")
		return r.String()
	}
	r.Printf("| Date | Kind | Detail | Cash After |\n")
	r.Printf("|:---|:---|:---|---:|\n")
	for _, tx := range txs {
		r.Printf("| %s | %s | %s | %s |\n",
			tx.Timestamp.Format("2006-01-02 15:04"),
			tx.Kind,
			Transaction(tx),
			tx.ResultingCash,
		)
	}
	r.Printf("\n")
	return r.String()
}
