package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finbook/finbook"
	"github.com/finbook/finbook/renderer"
	"github.com/google/subcommands"
)

// recordCmd is the shared implementation of the income, expense and
// transfer commands: only the category and the account flags they expose
// differ.
type recordCmd struct {
	category finbook.Category
	synopsis string
	usage    string

	username    string
	profile     string
	to          string // account debited
	from        string // account credited
	date        string
	subcategory string
	description string
}

func newIncomeCmd() *recordCmd {
	return &recordCmd{
		category: finbook.Incomes,
		synopsis: "record an income to an account",
		usage: `fin income -u <username> [-p <profile>] -to <account> [-d <date>] [-s <subcategory>] [-m <description>] <amount>

  Records an income: the amount is added to the debited account's balance.
`,
	}
}

func newExpenseCmd() *recordCmd {
	return &recordCmd{
		category: finbook.Expenses,
		synopsis: "record an expense from an account",
		usage: `fin expense -u <username> [-p <profile>] -from <account> [-d <date>] [-s <subcategory>] [-m <description>] <amount>

  Records an expense: the amount is subtracted from the credited account's
  balance. The expense is rejected if it would drive the balance below zero.
`,
	}
}

func newTransferCmd() *recordCmd {
	return &recordCmd{
		category: finbook.Transfers,
		synopsis: "transfer an amount between two accounts",
		usage: `fin transfer -u <username> [-p <profile>] -from <account> -to <account> [-d <date>] [-s <subcategory>] [-m <description>] <amount>

  Moves the amount between two accounts of the same profile. The transfer
  is recorded in both accounts' logs under the same transaction id.
`,
	}
}

func (c *recordCmd) Name() string {
	switch c.category {
	case finbook.Incomes:
		return "income"
	case finbook.Expenses:
		return "expense"
	default:
		return "transfer"
	}
}

func (c *recordCmd) Synopsis() string { return c.synopsis }
func (c *recordCmd) Usage() string    { return c.usage }

func (c *recordCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.profile, "p", "", "Profile name (defaults to the user's default profile)")
	if c.category != finbook.Expenses {
		f.StringVar(&c.to, "to", "", "Account receiving the amount")
	}
	if c.category != finbook.Incomes {
		f.StringVar(&c.from, "from", "", "Account paying the amount")
	}
	f.StringVar(&c.date, "d", "", "Transaction date (YYYY-MM-DD), defaults to today")
	f.StringVar(&c.subcategory, "s", "", "Subcategory tag, e.g. food or salary")
	f.StringVar(&c.description, "m", "", "An optional note for the transaction")
}

func (c *recordCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := finbook.ParseMoney(f.Arg(0), *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
		return subcommands.ExitUsageError
	}

	var date finbook.Date
	if c.date != "" {
		if date, err = finbook.ParseDate(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	profile, err := resolveProfile(store, c.username, c.profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	tx, err := store.Record(c.username, profile, finbook.Draft{
		Category:        c.category,
		Amount:          amount,
		AccountDebited:  c.to,
		AccountCredited: c.from,
		Date:            date,
		Subcategory:     c.subcategory,
		Description:     c.description,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(store); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Printf("%s (id %s)\n", renderer.Transaction(tx), tx.ID)
	return subcommands.ExitSuccess
}

type rollbackCmd struct{}

func (*rollbackCmd) Name() string     { return "rollback" }
func (*rollbackCmd) Synopsis() string { return "undo a recorded transaction" }
func (*rollbackCmd) Usage() string {
	return `fin rollback <transaction-id>

  Reverses a previously recorded transaction: restores the balances it
  changed and removes it from every log it appears in.
`
}

func (c *rollbackCmd) SetFlags(f *flag.FlagSet) {}

func (c *rollbackCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := store.Rollback(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error rolling back transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(store); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Printf("Rolled back: %s\n", renderer.Transaction(tx))
	return subcommands.ExitSuccess
}
