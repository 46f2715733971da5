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

type historyCmd struct {
	username    string
	profile     string
	account     string
	category    string
	subcategory string
	limit       int
	from        string
	to          string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list transactions, filtered" }
func (*historyCmd) Usage() string {
	return `fin history -u <username> [-p <profile>] [-a <account>] [-c <category>] [-s <subcategory>] [-from <date> [-to <date>]] [-limit <n>]

  Lists transactions of the profile. Without -a all accounts are pooled,
  without -c all categories are pooled. The date bounds are inclusive;
  -from alone is bounded at today, -to alone is an error.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.profile, "p", "", "Profile name (defaults to the user's default profile)")
	f.StringVar(&c.account, "a", "", "Restrict to one account")
	f.StringVar(&c.category, "c", "", "Restrict to one category (incomes, expenses, transfers)")
	f.StringVar(&c.subcategory, "s", "", "Restrict to one subcategory")
	f.IntVar(&c.limit, "limit", 0, "Keep only the first N matches")
	f.StringVar(&c.from, "from", "", "Lower date bound (YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "", "Upper date bound (YYYY-MM-DD)")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	filter := finbook.Filter{
		Account:     c.account,
		Category:    finbook.Category(c.category),
		Subcategory: c.subcategory,
		Limit:       c.limit,
	}
	var err error
	if c.from != "" {
		if filter.From, err = finbook.ParseDate(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if filter.To, err = finbook.ParseDate(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
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

	transactions, err := store.Transactions(c.username, profile, filter)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Transactions(transactions))
	fmt.Printf("Total: %s over %d transactions\n", finbook.SumAmounts(transactions), len(transactions))
	return subcommands.ExitSuccess
}
