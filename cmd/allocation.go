package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimonio/renderer"
	"github.com/google/subcommands"
)

// allocationCmd holds the flags for the 'allocation' subcommand.
type allocationCmd struct {
	offline bool
}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "compare the actual allocation against the targets" }
func (*allocationCmd) Usage() string {
	return `pat allocation [-offline]

  Displays the share of each category in the total patrimony next to its
  configured target.
`
}

func (c *allocationCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip the live quote fetch; crypto prices show as unknown.")
}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sum, err := buildSummary(c.offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderAllocation(sum.Allocation))
	return subcommands.ExitSuccess
}
