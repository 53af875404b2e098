package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/rigaml/portfolio"
)

// operationFlags is the common flag set of the buy and sell commands.
type operationFlags struct {
	date     string
	account  string
	broker   string
	ticker   string
	exchange string
	quantity float64
	amount   float64
	currency string
}

func (c *operationFlags) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", portfolio.Today().String(), "Operation date (YYYY-MM-DD)")
	f.StringVar(&c.account, "a", "", "Account holding the position")
	f.StringVar(&c.broker, "b", "", "Broker that executed the operation")
	f.StringVar(&c.ticker, "t", "", "Ticker")
	f.StringVar(&c.exchange, "x", "", "Exchange venue (optional)")
	f.Float64Var(&c.quantity, "q", 0, "Number of shares")
	f.Float64Var(&c.amount, "p", 0, "Total amount paid or received")
	f.StringVar(&c.currency, "c", "", "Currency of the amount")
}

// operation builds and validates the operation from the flags.
func (c *operationFlags) operation(typ portfolio.OperationType, f *flag.FlagSet) (portfolio.Operation, subcommands.ExitStatus) {
	day, err := portfolio.ParseDate(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return portfolio.Operation{}, subcommands.ExitUsageError
	}
	op := portfolio.Operation{
		Date:     time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		Account:  c.account,
		Broker:   c.broker,
		Type:     typ,
		Ticker:   c.ticker,
		Exchange: c.exchange,
		Quantity: portfolio.Q(c.quantity),
		Amount:   portfolio.M(c.amount, strings.ToUpper(c.currency)),
	}
	if err := op.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return portfolio.Operation{}, subcommands.ExitUsageError
	}
	return op, subcommands.ExitSuccess
}

// --- Buy Command ---

type buyCmd struct{ operationFlags }

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase, opening or adding to a position" }
func (*buyCmd) Usage() string {
	return `pfl buy -a <account> -b <broker> -t <ticker> -q <quantity> -p <amount> -c <currency> [-d <date>] [-x <exchange>]

  Records a buy operation in the ledger. The amount is the total paid, not
  the price per share.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	op, status := c.operation(portfolio.BuyType, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	return EncodeOperation(op)
}

// --- Sell Command ---

type sellCmd struct{ operationFlags }

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale, trimming or closing a position" }
func (*sellCmd) Usage() string {
	return `pfl sell -a <account> -b <broker> -t <ticker> -q <quantity> -p <amount> -c <currency> [-d <date>] [-x <exchange>]

  Records a sell operation in the ledger. The amount is the total received,
  not the price per share.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) { c.setFlags(f) }

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	op, status := c.operation(portfolio.SellType, f)
	if status != subcommands.ExitSuccess {
		return status
	}
	return EncodeOperation(op)
}
