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

type summaryCmd struct {
	username string
	profile  string
	start    string
	end      string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals, net and top subcategories" }
func (*summaryCmd) Usage() string {
	return `fin summary -u <username> [-p <profile>] [-s <start_date>] [-d <end_date>]

  Displays total income and expense, net income, daily averages and the
  top-5 income and expense subcategories over the range. The range
  defaults to the current month to date.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.profile, "p", "", "Profile name (defaults to the user's default profile)")
	f.StringVar(&c.start, "s", "", "Start date (defaults to the first of the current month)")
	f.StringVar(&c.end, "d", "", "End date (defaults to today)")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	rng := finbook.MonthToDate(finbook.Today())
	var err error
	if c.end != "" {
		if rng.To, err = finbook.ParseDate(c.end); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
			return subcommands.ExitUsageError
		}
		rng.From = rng.To.StartOfMonth()
	}
	if c.start != "" {
		if rng.From, err = finbook.ParseDate(c.start); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
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

	summary, err := store.Summarize(c.username, profile, finbook.NewRange(rng.From, rng.To))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.Summary(summary))
	return subcommands.ExitSuccess
}
