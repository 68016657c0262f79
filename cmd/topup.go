package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// topUpCmd holds the flags for the 'topup' subcommand.
type topUpCmd struct {
	amount float64
	note   string
}

func (*topUpCmd) Name() string     { return "topup" }
func (*topUpCmd) Synopsis() string { return "record a fiat top-up" }
func (*topUpCmd) Usage() string {
	return `pat topup -amount <EUR> [-note <text>]

  Appends a fiat top-up to the log, increasing the EUR balance and the total
  invested capital.
`
}

func (c *topUpCmd) SetFlags(f *flag.FlagSet) {
	f.Float64Var(&c.amount, "amount", 0, "Amount in EUR, must be positive.")
	f.StringVar(&c.note, "note", "", "Optional note attached to the movement.")
}

func (c *topUpCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := runMutation(patrimonio.AddFiat{
		Kind:   patrimonio.TopUp,
		Amount: patrimonio.M(c.amount, patrimonio.EUR),
		Note:   c.note,
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Recorded top-up of %s\n", patrimonio.M(c.amount, patrimonio.EUR))
	}
	return status
}
