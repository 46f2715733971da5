// Package cmd implements the CLI application to manage the finance tracker.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/finbook/finbook"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() and then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&registerCmd{}, "users")
	c.Register(&profileCmd{}, "users")
	c.Register(&defaultCmd{}, "users")
	c.Register(&accountCmd{}, "users")

	c.Register(newIncomeCmd(), "transactions")
	c.Register(newExpenseCmd(), "transactions")
	c.Register(newTransferCmd(), "transactions")
	c.Register(&rollbackCmd{}, "transactions")

	c.Register(&balancesCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")

	c.Register(&inspectCmd{}, "snapshot")
	c.Register(&topicCmd{}, "snapshot")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeFile = flag.String("store-file", "finbook.json", "Path to the snapshot file holding the ledger")
var currency = flag.String("currency", "USD", "Currency used to enter and display amounts")

// OpenStore opens the snapshot file, creating an empty one if it does not
// exist yet. Each command opens the store fresh, so it always observes the
// latest on-disk snapshot.
func OpenStore() (*finbook.Store, error) {
	if _, err := os.Stat(*storeFile); errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, snapshot does not exist, creating an empty one instead")
	}
	return finbook.Open(*storeFile)
}

// SaveStore persists the store after a mutation. Every mutating command
// must call it; a failed save means the change is not durable.
func SaveStore(s *finbook.Store) subcommands.ExitStatus {
	if err := s.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving snapshot %q: %v\n", s.Path(), err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// resolveProfile returns the profile to operate on: the explicitly
// requested one, or the user's default profile when none is given.
func resolveProfile(s *finbook.Store, username, profile string) (string, error) {
	if profile != "" {
		return profile, nil
	}
	user, ok := s.UserByUsername(username)
	if !ok {
		return "", fmt.Errorf("unknown user %q", username)
	}
	if user.DefaultProfile == "" {
		return "", fmt.Errorf("user %q has no default profile, use -p", username)
	}
	return user.DefaultProfile, nil
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown.
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
