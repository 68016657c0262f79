package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// depositCmd holds the flags for the 'deposit' subcommand.
type depositCmd struct {
	amount   float64
	maturity string
	kind     string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "open a time deposit" }
func (*depositCmd) Usage() string {
	return `pat deposit -amount <EUR> -maturity '<timestamp>' [-kind <text>]

  Opens a time deposit. The principal is reserved out of the usable cash
  until maturity; it is never spent, and interest must be recorded
  separately as a top-up when it arrives.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Principal in EUR, must be positive.")
	f.StringVar(&c.maturity, "maturity", "", "Maturity, 'Jan 2, 2006 15:04:05'.")
	f.StringVar(&c.kind, "kind", "Vincolato", "Free-form deposit kind.")
}

func (c *depositCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	maturity, err := time.Parse(patrimonio.TimestampLayout, c.maturity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing maturity: %v\n", err)
		return subcommands.ExitUsageError
	}

	status := runMutation(patrimonio.OpenDeposit{
		Amount:   patrimonio.M(c.amount, patrimonio.EUR),
		Maturity: maturity,
		Kind:     c.kind,
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Opened %s deposit of %s until %s\n", c.kind, patrimonio.M(c.amount, patrimonio.EUR), c.maturity)
	}
	return status
}
