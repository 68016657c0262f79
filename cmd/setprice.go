package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// setPriceCmd holds the flags for the 'set-price' subcommand.
type setPriceCmd struct {
	symbol string
	price  float64
}

func (*setPriceCmd) Name() string     { return "set-price" }
func (*setPriceCmd) Synopsis() string { return "update the manual price of a fund" }
func (*setPriceCmd) Usage() string {
	return `pat set-price -symbol VWCE -price <EUR>

  Updates the manual EUR price of a fund already present in the price table.
  Fund prices have no live oracle, they are maintained by hand.
`
}

func (c *setPriceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "", "Fund ticker.")
	f.Float64Var(&c.price, "price", 0, "Unit price in EUR, must be positive.")
}

func (c *setPriceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	status := runMutation(patrimonio.SetFundPrice{
		Symbol: c.symbol,
		Price:  patrimonio.M(c.price, patrimonio.EUR),
	})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Set %s price to %s\n", c.symbol, patrimonio.M(c.price, patrimonio.EUR))
	}
	return status
}
