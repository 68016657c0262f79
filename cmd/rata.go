package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// payRataCmd holds the flags for the 'rata' subcommand.
type payRataCmd struct {
	id string
}

func (*payRataCmd) Name() string     { return "rata" }
func (*payRataCmd) Synopsis() string { return "pay one mortgage installment" }
func (*payRataCmd) Usage() string {
	return `pat rata -id IMM-1

  Pays exactly one installment of a mortgaged property, debiting it from the
  EUR balance through a synthetic withdrawal.
`
}

func (c *payRataCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Property identifier, IMM-<n>.")
}

func (c *payRataCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := runMutation(patrimonio.PayInstallment{ID: c.id})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Paid one installment of %s\n", c.id)
	}
	return status
}
