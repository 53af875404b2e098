package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rigaml/portfolio"
)

// --- Import Command ---

type importCmd struct {
	file string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import operations from a broker CSV export" }
func (*importCmd) Usage() string {
	return `pfl import -f <file.csv>

  Imports operations from a CSV file into the ledger. The file must carry a
  header row naming the columns; column order is free. Duplicates of
  already recorded operations are rejected and nothing is written.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "CSV file to import, '-' for stdin")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	in := os.Stdin
	if c.file != "-" {
		var err error
		in, err = os.Open(c.file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
			return subcommands.ExitFailure
		}
		defer in.Close()
	}

	operations, err := portfolio.ImportOperations(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing operations: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Append(operations...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Imported %d operations into %s\n", len(operations), *ledgerFile)
	return subcommands.ExitSuccess
}

// --- Export Command ---

type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the ledger as CSV" }
func (*exportCmd) Usage() string {
	return `pfl export

  Writes the whole ledger to stdout in the import CSV format, so that an
  exported file can be imported back.
`
}

func (*exportCmd) SetFlags(_ *flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if err := portfolio.ExportOperations(os.Stdout, ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting operations: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
