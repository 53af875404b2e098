// Package cmd implements the CLI application to manage a brokerage ledger
// and report realized profits.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/subcommands"

	"github.com/rigaml/portfolio"
)

// Commands is the list of subcommands a main package registers.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&importCmd{},
	&exportCmd{},
	&fmtCmd{},
	&fetchRatesCmd{},
	&totalCmd{},
	&detailsCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

// envOr lets extensions and scripts preset the globals through the
// environment, flags still win.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var ledgerFile = flag.String("ledger-file", envOr(EnvLedgerFile, "operations.jsonl"), "Path to the operations ledger file (JSONL format)")
var ratesFile = flag.String("rates-file", envOr(EnvRatesFile, "rates.jsonl"), "Path to the exchange rates file (JSONL format)")
var defaultCurrency = flag.String("currency", envOr(EnvDefaultCurrency, "EUR"), "Default target currency for profit reports")

// DecodeLedger loads the app ledger file. A missing file is an empty ledger.
func DecodeLedger() (*portfolio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return portfolio.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return portfolio.DecodeLedger(f)
}

// DecodeRates loads the app rates file. A missing file is an empty table.
func DecodeRates() (*portfolio.RateTable, error) {
	f, err := os.Open(*ratesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return portfolio.NewRateTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()
	return portfolio.DecodeRateTable(f)
}

// EncodeOperation appends a single operation to the app ledger file.
func EncodeOperation(op portfolio.Operation) subcommands.ExitStatus {
	// The new operation must not collide with the recorded ones.
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Append(op); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := portfolio.EncodeOperation(f, op); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended %s %s to %s\n", op.Type, op.Ticker, *ledgerFile)
	return subcommands.ExitSuccess
}

// saveLedger rewrites the whole ledger file in canonical form.
func saveLedger(ledger *portfolio.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("cannot write ledger file %q: %w", *ledgerFile, err)
	}
	defer f.Close()
	return portfolio.EncodeLedger(f, ledger)
}

// saveRates rewrites the whole rates file in canonical form.
func saveRates(table *portfolio.RateTable) error {
	f, err := os.Create(*ratesFile)
	if err != nil {
		return fmt.Errorf("cannot write rates file %q: %w", *ratesFile, err)
	}
	defer f.Close()
	return portfolio.EncodeRateTable(f, table)
}
