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

// tradeCmd holds the flags for the 'trade' subcommand.
type tradeCmd struct {
	pair     string
	side     string
	price    float64
	units    float64
	filled   float64
	executed float64
	fee      float64
	feeCur   string
	category string
	when     string
}

func (*tradeCmd) Name() string     { return "trade" }
func (*tradeCmd) Synopsis() string { return "record a trade in the log" }
func (*tradeCmd) Usage() string {
	return `pat trade -pair BTC/USDT -side Buy -price <p> -units <u> -executed <e> [flags]

  Appends a trade to the log. The pair is BASE/QUOTE; amounts are expressed
  in the pair's own currencies. Filled units default to the ordered units.
`
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pair, "pair", "", "Trading pair, BASE/QUOTE.")
	f.StringVar(&c.side, "side", string(patrimonio.Buy), "Buy or Sell.")
	f.Float64Var(&c.price, "price", 0, "Unit price in the quote currency, 0 when unknown.")
	f.Float64Var(&c.units, "units", 0, "Ordered units of the base asset.")
	f.Float64Var(&c.filled, "filled", 0, "Filled units, defaults to the ordered units.")
	f.Float64Var(&c.executed, "executed", 0, "Executed amount in the quote currency.")
	f.Float64Var(&c.fee, "fee", 0, "Trade fee amount.")
	f.StringVar(&c.feeCur, "fee-currency", "", "Currency of the fee, defaults to the quote currency.")
	f.StringVar(&c.category, "category", string(patrimonio.Plain), "Transazione, Earn or Etf.")
	f.StringVar(&c.when, "t", "", "Timestamp, 'Jan 2, 2006 15:04:05'. Defaults to now.")
}

func (c *tradeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	pair := patrimonio.Pair(c.pair)
	if c.filled == 0 {
		c.filled = c.units
	}
	if c.feeCur == "" {
		c.feeCur = pair.Quote()
	}

	var when time.Time
	if c.when != "" {
		var err error
		when, err = time.Parse(patrimonio.TimestampLayout, c.when)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing timestamp: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ev := patrimonio.TradeEvent{
		Time:        when,
		Pair:        pair,
		Side:        patrimonio.Side(c.side),
		Price:       patrimonio.M(c.price, pair.Quote()),
		OrderUnits:  patrimonio.Q(c.units),
		FilledUnits: patrimonio.Q(c.filled),
		Executed:    patrimonio.M(c.executed, pair.Quote()),
		Fee:         patrimonio.M(c.fee, c.feeCur),
		Category:    patrimonio.Category(c.category),
	}

	status := runMutation(patrimonio.AddTrade{Event: ev})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Recorded %s %s %v %s\n", c.side, c.pair, c.units, pair.Base())
	}
	return status
}
