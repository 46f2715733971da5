package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type inspectCmd struct{}

func (*inspectCmd) Name() string     { return "inspect" }
func (*inspectCmd) Synopsis() string { return "query the raw snapshot with a jsonpath expression" }
func (*inspectCmd) Usage() string {
	return `fin inspect <jsonpath>

  Evaluates a jsonpath expression against the raw snapshot file, e.g.

    fin inspect '$.alice.profiles.personal.accounts.cash.balance'
`
}

func (c *inspectCmd) SetFlags(f *flag.FlagSet) {}

func (c *inspectCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}

	data, err := os.ReadFile(*storeFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading snapshot %q: %v\n", *storeFile, err)
		return subcommands.ExitFailure
	}
	var obj interface{}
	if err := json.Unmarshal(data, &obj); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing snapshot %q: %v\n", *storeFile, err)
		return subcommands.ExitFailure
	}

	val, err := jsonpath.Get(f.Arg(0), obj)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating jsonpath %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}

	out, err := json.MarshalIndent(val, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting result: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}
