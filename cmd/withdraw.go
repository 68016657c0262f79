package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// withdrawCmd holds the flags for the 'withdraw' subcommand.
type withdrawCmd struct {
	amount float64
	note   string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "record a fiat withdrawal" }
func (*withdrawCmd) Usage() string {
	return `pat withdraw -amount <EUR> [-note <text>]

  Appends a fiat withdrawal to the log, decreasing the EUR balance and the
  total invested capital.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount in EUR, must be positive.")
	f.StringVar(&c.note, "note", "", "Optional note attached to the movement.")
}

func (c *withdrawCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := runMutation(patrimonio.AddFiat{
		Kind:   patrimonio.Withdraw,
		Amount: patrimonio.M(c.amount, patrimonio.EUR),
		Note:   c.note,
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Recorded withdrawal of %s\n", patrimonio.M(c.amount, patrimonio.EUR))
	}
	return status
}
