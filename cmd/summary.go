package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/patrimonio/renderer"
	"github.com/google/subcommands"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the full patrimony summary" }
func (*summaryCmd) Usage() string {
	return `pat summary [-offline]

  Replays the transaction logs, fetches live crypto quotes, and displays the
  positions, totals, allocation comparison, deposits and real estate.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip the live quote fetch; crypto prices show as unknown.")
}

func (c *summaryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sum, err := buildSummary(c.offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.RenderSummary(sum))
	return subcommands.ExitSuccess
}
