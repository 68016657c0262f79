package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// deleteCmd holds the flags for the 'delete' subcommand.
type deleteCmd struct {
	when string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "remove a transaction from the log" }
func (*deleteCmd) Usage() string {
	return `pat delete -t '<timestamp>'

  Removes the first fiat or trade entry whose timestamp matches exactly,
  using the log's own format 'Jan 2, 2006 15:04:05'.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.when, "t", "", "Timestamp of the entry to remove.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := runMutation(patrimonio.DeleteTransaction{Timestamp: c.when})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Removed transaction at %s\n", c.when)
	}
	return status
}
