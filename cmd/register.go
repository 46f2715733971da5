package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/finbook/finbook"
	"github.com/google/subcommands"
	"golang.org/x/crypto/bcrypt"
)

type registerCmd struct {
	username string
	email    string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "create a new user" }
func (*registerCmd) Usage() string {
	return `fin register -u <username> -e <email> -P <password>

  Creates a new user with a "personal" default profile. The password is
  stored as a bcrypt hash, never in clear.
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Username (unique)")
	f.StringVar(&c.email, "e", "", "Email address")
	f.StringVar(&c.password, "P", "", "Password")
}

func (c *registerCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.username == "" || c.email == "" || c.password == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		return subcommands.ExitFailure
	}

	store, err := OpenStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	user := finbook.User{
		Username:     c.username,
		Email:        c.email,
		PasswordHash: string(hash),
	}
	if err := store.AddUser(user); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		return subcommands.ExitFailure
	}
	if status := SaveStore(store); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Printf("Created user %q with default profile %q\n", c.username, finbook.DefaultProfileName)
	return subcommands.ExitSuccess
}
