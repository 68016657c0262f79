package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// propertyCmd holds the flags for the 'property' subcommand.
type propertyCmd struct {
	kind         string
	value        float64
	downPayment  float64
	mortgage     bool
	loan         float64
	installments int
	installment  float64
}

func (*propertyCmd) Name() string     { return "property" }
func (*propertyCmd) Synopsis() string { return "record a real-estate purchase" }
func (*propertyCmd) Usage() string {
	return `pat property -kind <text> -value <EUR> -down <EUR> [mortgage flags]

  Records a real-estate holding. The down payment is debited from the EUR
  balance through a synthetic withdrawal. With -mortgage, the installment
  schedule must be given and is paid one installment at a time with
  'pat rata'.
`
}

func (c *propertyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "", "Free-form property kind.")
	f.Float64Var(&c.value, "value", 0, "Declared property value in EUR.")
	f.Float64Var(&c.downPayment, "down", 0, "Down payment in EUR, must be positive.")
	f.BoolVar(&c.mortgage, "mortgage", false, "The purchase is financed by a mortgage.")
	f.Float64Var(&c.loan, "loan", 0, "Loan amount in EUR.")
	f.IntVar(&c.installments, "installments", 0, "Number of installments in the schedule.")
	f.Float64Var(&c.installment, "installment", 0, "Amount of a single installment in EUR.")
}

func (c *propertyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	p := patrimonio.Property{
		Kind:             c.kind,
		Value:            patrimonio.M(c.value, patrimonio.EUR),
		Mortgage:         c.mortgage,
		DownPayment:      patrimonio.M(c.downPayment, patrimonio.EUR),
		LoanAmount:       patrimonio.M(c.loan, patrimonio.EUR),
		InstallmentCount: c.installments,
		Installment:      patrimonio.M(c.installment, patrimonio.EUR),
	}

	status := runMutation(patrimonio.AddProperty{Property: p})
	if status == subcommands.ExitSuccess {
		fmt.Printf("Recorded property %q, down payment %s\n", c.kind, p.DownPayment)
	}
	return status
}
