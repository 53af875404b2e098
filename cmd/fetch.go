package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/rigaml/portfolio"
)

type fetchRatesCmd struct {
	origin string
	target string
	start  string
	end    string
}

func (*fetchRatesCmd) Name() string     { return "fetch-rates" }
func (*fetchRatesCmd) Synopsis() string { return "download exchange rates for a currency pair" }
func (*fetchRatesCmd) Usage() string {
	return `pfl fetch-rates -o <origin> -t <target> -s <date> [-d <date>]

  Downloads the daily exchange rates of the pair over the window and merges
  them into the rates file. Already known days are overwritten.
`
}

func (c *fetchRatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.origin, "o", "", "Origin currency code")
	f.StringVar(&c.target, "t", "", "Target currency code")
	f.StringVar(&c.start, "s", "", "First day of the window (YYYY-MM-DD)")
	f.StringVar(&c.end, "d", portfolio.Today().String(), "Last day of the window (YYYY-MM-DD)")
}

func (c *fetchRatesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.origin == "" || c.target == "" || c.start == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	from, err := portfolio.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := portfolio.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	history, err := portfolio.FetchRates(c.origin, c.target, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching rates: %v\n", err)
		return subcommands.ExitFailure
	}

	rates, err := DecodeRates()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading rates %q: %v\n", *ratesFile, err)
		return subcommands.ExitFailure
	}
	if err := rates.Merge(c.origin, c.target, history); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := saveRates(rates); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Fetched %d rates for %s-%s into %s\n", history.Len(), c.origin, c.target, *ratesFile)
	return subcommands.ExitSuccess
}
