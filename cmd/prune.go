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

// pruneCmd holds the flags for the 'prune' subcommand.
type pruneCmd struct{}

func (*pruneCmd) Name() string     { return "prune" }
func (*pruneCmd) Synopsis() string { return "drop matured deposits from the book" }
func (*pruneCmd) Usage() string {
	return `pat prune

  Removes matured deposits from the deposit book. Removal only stops the
  cash reservation, it credits nothing: the principal never left the EUR
  balance.
`
}

func (*pruneCmd) SetFlags(f *flag.FlagSet) {}

func (*pruneCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s := store()
	st, err := s.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}

	removed := st.Deposits.Prune(time.Now())
	if len(removed) == 0 {
		fmt.Println("No matured deposits.")
		return subcommands.ExitSuccess
	}

	if err := s.Persist(st, []patrimonio.Effect{patrimonio.PersistDeposits}); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting state: %v\n", err)
		return subcommands.ExitFailure
	}
	for _, d := range removed {
		fmt.Printf("Dropped matured %s deposit of %s\n", d.Kind, d.Amount)
	}
	return subcommands.ExitSuccess
}
