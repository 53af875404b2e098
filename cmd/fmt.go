package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "validates and rewrites the data files into canonical form"
}
func (*fmtCmd) Usage() string {
	return `pfl fmt

  Validates and formats the ledger and rates files. This command reads all
  operations and rate series, validates them, sorts them, and writes them
  back in canonical JSONL form, so that the files diff cleanly.
`
}

func (*fmtCmd) SetFlags(_ *flag.FlagSet) {}

func (c *fmtCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates %q: %v\n", *ratesFile, err)
		return subcommands.ExitFailure
	}
	if err := saveRates(rates); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Formatted %s (%d operations) and %s (%d pairs)\n",
		*ledgerFile, ledger.Len(), *ratesFile, len(rates.Pairs()))
	return subcommands.ExitSuccess
}
