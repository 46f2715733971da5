// Package renderer formats ledger data as markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/finbook/finbook"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx finbook.Transaction) string {
	switch tx.Category {
	case finbook.Incomes:
		return fmt.Sprintf("Income of %s to %s", tx.Amount, tx.AccountDebited)
	case finbook.Expenses:
		return fmt.Sprintf("Expense of %s from %s", tx.Amount, tx.AccountCredited)
	case finbook.Transfers:
		return fmt.Sprintf("Transfer of %s from %s to %s", tx.Amount, tx.AccountCredited, tx.AccountDebited)
	default:
		return string(tx.Category)
	}
}

// Transactions renders a markdown table of transactions.
func Transactions(transactions []finbook.Transaction) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "| Date | Category | Amount | Subcategory | Account | Description | Id |\n")
	fmt.Fprintf(b, "|------|----------|-------:|-------------|---------|-------------|----|\n")
	for _, tx := range transactions {
		account := tx.AccountDebited
		if tx.Category == finbook.Expenses {
			account = tx.AccountCredited
		}
		if tx.Category == finbook.Transfers {
			account = tx.AccountCredited + " → " + tx.AccountDebited
		}
		sub := tx.Subcategory
		if sub == "" {
			sub = finbook.Uncategorized
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			tx.Date, tx.Category, tx.Amount, sub, account, tx.Description, tx.ID)
	}
	return b.String()
}

// Balances renders a markdown table of account balances and their total.
func Balances(names []string, balances map[string]finbook.Money, total finbook.Money) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "| Account | Balance |\n")
	fmt.Fprintf(b, "|---------|--------:|\n")
	for _, name := range names {
		fmt.Fprintf(b, "| %s | %s |\n", name, balances[name])
	}
	fmt.Fprintf(b, "| **Total** | **%s** |\n", total)
	return b.String()
}

// Summary renders a full markdown summary report.
func Summary(s *finbook.Summary) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "# Summary %s to %s\n\n", s.Range.From, s.Range.To)

	fmt.Fprintf(b, "| | Total | Daily Avg |\n")
	fmt.Fprintf(b, "|---|------:|----------:|\n")
	fmt.Fprintf(b, "| Income | %s | %s |\n", s.TotalIncome, s.DailyAvgIncome)
	fmt.Fprintf(b, "| Expense | %s | %s |\n", s.TotalExpense, s.DailyAvgExpense)
	fmt.Fprintf(b, "| **Net** | **%s** | |\n\n", s.Net)

	renderTop(b, "Top Income Subcategories", s.TopIncomes)
	renderTop(b, "Top Expense Subcategories", s.TopExpenses)
	return b.String()
}

func renderTop(b *strings.Builder, title string, totals []finbook.SubcategoryTotal) {
	if len(totals) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	fmt.Fprintf(b, "| Subcategory | Total |\n")
	fmt.Fprintf(b, "|-------------|------:|\n")
	for _, t := range totals {
		fmt.Fprintf(b, "| %s | %s |\n", t.Subcategory, t.Total)
	}
	fmt.Fprintf(b, "\n")
}
