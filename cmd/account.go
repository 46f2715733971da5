package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finbook/finbook"
	"github.com/google/subcommands"
)

type accountCmd struct {
	username    string
	profile     string
	name        string
	balance     string
	description string
}

func (*accountCmd) Name() string     { return "account" }
func (*accountCmd) Synopsis() string { return "add an account under a profile" }
func (*accountCmd) Usage() string {
	return `fin account -u <username> [-p <profile>] -n <name> [-b <balance>] [-m <description>]

  Adds a balance-bearing account under the profile (the user's default
  profile when -p is omitted).
`
}

func (c *accountCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.profile, "p", "", "Profile name (defaults to the user's default profile)")
	f.StringVar(&c.name, "n", "", "Account name (unique per profile)")
	f.StringVar(&c.balance, "b", "0", "Initial balance")
	f.StringVar(&c.description, "m", "", "An optional description")
}

func (c *accountCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	balance, err := finbook.ParseMoney(c.balance, *currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing balance: %v\n", err)
		return subcommands.ExitUsageError
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
	if err := store.AddAccount(c.username, profile, c.name, balance, c.description); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding account: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(store); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Printf("Added account %q under profile %q.%q\n", c.name, c.username, profile)
	return subcommands.ExitSuccess
}
