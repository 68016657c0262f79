// Package cmd implements the CLI application to manage a patrimony.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/patrimonio"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&summaryCmd{}, "reports")
	c.Register(&allocationCmd{}, "reports")

	c.Register(&topUpCmd{}, "transactions")
	c.Register(&withdrawCmd{}, "transactions")
	c.Register(&tradeCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")

	c.Register(&depositCmd{}, "deposits")
	c.Register(&pruneCmd{}, "deposits")

	c.Register(&propertyCmd{}, "real estate")
	c.Register(&payRataCmd{}, "real estate")

	c.Register(&setPriceCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dataDir = flag.String("data", ".", "Path to the data directory containing the record files")

// store returns the persistence collaborator rooted at the data directory.
func store() *patrimonio.Store {
	return patrimonio.NewStore(*dataDir)
}

// runMutation loads the state, applies the command, and persists the effects.
func runMutation(c patrimonio.Command) subcommands.ExitStatus {
	s := store()
	st, err := s.LoadState()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}

	effects, err := c.Apply(st, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if err := s.Persist(st, effects); err != nil {
		fmt.Fprintf(os.Stderr, "Error persisting state: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// buildSummary assembles the full report, fetching live quotes unless offline.
func buildSummary(offline bool) (*patrimonio.Summary, error) {
	s := store()
	st, err := s.LoadState()
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	mapping, err := s.LoadMapping()
	if err != nil {
		return nil, fmt.Errorf("loading crypto mapping: %w", err)
	}
	targets, err := s.LoadTargets()
	if err != nil {
		return nil, fmt.Errorf("loading targets: %w", err)
	}

	quotes := map[string]patrimonio.PricePoint{}
	if !offline {
		quotes = patrimonio.NewOracle().Fetch(mapping.IDs())
	}
	return patrimonio.BuildSummary(st, quotes, mapping, targets, time.Now()), nil
}
