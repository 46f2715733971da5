package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type profileCmd struct {
	username    string
	name        string
	description string
	dflt        bool
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "add a profile under a user" }
func (*profileCmd) Usage() string {
	return `fin profile -u <username> -n <name> [-m <description>] [-default]

  Adds a named partition of accounts under the user. The first profile a
  user gets is always the default one.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.name, "n", "", "Profile name (unique per user)")
	f.StringVar(&c.description, "m", "", "An optional description")
	f.BoolVar(&c.dflt, "default", false, "Make this profile the user's default")
}

func (c *profileCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.AddProfile(c.username, c.name, c.description, c.dflt); err != nil {
		fmt.Fprintf(os.Stderr, "Error adding profile: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(store); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Printf("Added profile %q under user %q\n", c.name, c.username)
	return subcommands.ExitSuccess
}

type defaultCmd struct {
	username string
	profile  string
}

func (*defaultCmd) Name() string     { return "set-default" }
func (*defaultCmd) Synopsis() string { return "set a user's default profile" }
func (*defaultCmd) Usage() string {
	return `fin set-default -u <username> -p <profile>

  Marks an existing profile as the user's default.
`
}

func (c *defaultCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username")
	f.StringVar(&c.profile, "p", "", "Profile name")
}

func (c *defaultCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.profile == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SetDefaultProfile(c.username, c.profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error setting default profile: %v\n", err)
		return subcommands.ExitFailure
	}
	return SaveStore(store)
}
