package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/rigaml/portfolio"
	"github.com/rigaml/portfolio/renderer"
)

// reportFlags is the common flag set of the profit reporting commands.
type reportFlags struct {
	account  string
	currency string
	start    string
	end      string
	html     bool
}

func (c *reportFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account to report on. Defaults to the only account if one exists.")
	f.StringVar(&c.currency, "c", "", "Target currency of the report. Defaults to the -currency global flag.")
	f.StringVar(&c.start, "s", "", "Start of the reporting period (YYYY-MM-DD). Open when omitted.")
	f.StringVar(&c.end, "d", "", "End of the reporting period (YYYY-MM-DD). Open when omitted.")
	f.BoolVar(&c.html, "html", false, "Render the report as HTML instead of markdown")
}

// bound parses an optional period bound, empty leaves the bound open.
func bound(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	d, err := portfolio.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

// report loads the data files and computes the profit report.
func (c *reportFlags) report() (*portfolio.DetailsReport, error) {
	ledger, err := DecodeLedger()
	if err != nil {
		return nil, fmt.Errorf("cannot load ledger %q: %w", *ledgerFile, err)
	}
	rates, err := DecodeRates()
	if err != nil {
		return nil, fmt.Errorf("cannot load rates %q: %w", *ratesFile, err)
	}

	account := c.account
	if account == "" {
		accounts := ledger.Accounts()
		if len(accounts) != 1 {
			return nil, fmt.Errorf("-a is required, the ledger holds accounts %v", accounts)
		}
		account = accounts[0]
	}
	currency := c.currency
	if currency == "" {
		currency = *defaultCurrency
	}
	from, err := bound(c.start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	to, err := bound(c.end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}

	service := portfolio.NewProfitService(ledger, rates)
	return service.TotalDetails(account, currency, from, to)
}

// render prints a markdown report, converting to HTML when requested.
func (c *reportFlags) render(md string) subcommands.ExitStatus {
	if c.html {
		html, err := renderer.HTML(md)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Print(html)
		return subcommands.ExitSuccess
	}
	printMarkdown(md)
	return subcommands.ExitSuccess
}

// --- Total Command ---

type totalCmd struct{ reportFlags }

func (*totalCmd) Name() string     { return "total" }
func (*totalCmd) Synopsis() string { return "realized profit per ticker over a period" }
func (*totalCmd) Usage() string {
	return `pfl total [-a <account>] [-c <currency>] [-s <date>] [-d <date>] [-html]

  Computes the realized profit of each ticker sold in the period, matching
  sells against buys first-in first-out, and converting every leg into the
  target currency.
`
}

func (c *totalCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *totalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.report()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing profits: %v\n", err)
		return subcommands.ExitFailure
	}
	return c.render(renderer.TotalMarkdown(report))
}

// --- Details Command ---

type detailsCmd struct {
	reportFlags
	csv bool
}

func (*detailsCmd) Name() string     { return "details" }
func (*detailsCmd) Synopsis() string { return "full buy/sell match breakdown of realized profits" }
func (*detailsCmd) Usage() string {
	return `pfl details [-a <account>] [-c <currency>] [-s <date>] [-d <date>] [-html|-csv]

  Shows every buy/sell match behind the profit figures, with the exchange
  rates applied to each leg. Use -csv for the tax spreadsheet.
`
}

func (c *detailsCmd) SetFlags(f *flag.FlagSet) {
	c.setFlags(f)
	f.BoolVar(&c.csv, "csv", false, "Write the breakdown as CSV instead of markdown")
}

func (c *detailsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := c.report()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing profits: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.csv {
		if err := portfolio.ExportDetails(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	return c.render(renderer.DetailsMarkdown(report))
}
