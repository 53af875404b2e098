package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// this file contains functions to handle the operation import format and the
// profit report export format. Both are CSV: brokers export CSV, and CSV is
// what ends up in the tax spreadsheet.

// operationHeader is the canonical column set of the operations CSV.
var operationHeader = []string{
	"date", "account", "broker", "type", "ticker", "exchange", "quantity", "currency", "amount", "rate",
}

// ImportOperations reads operations from 'r' in the import format.
//
// The import format is a CSV file with a header row. The date column
// accepts a full RFC3339 timestamp or a plain date (taken at midnight
// UTC). The rate column may be empty when the broker reported none.
func ImportOperations(r io.Reader) ([]Operation, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read operations CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range operationHeader {
		if _, ok := col[name]; !ok && name != "exchange" && name != "rate" {
			return nil, fmt.Errorf("operations CSV is missing column %q", name)
		}
	}

	var operations []Operation
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read operations CSV line %d: %w", line, err)
		}

		field := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		on, err := parseTimestamp(field("date"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		quantity, err := decimal.NewFromString(field("quantity"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid quantity %q: %w", line, field("quantity"), err)
		}
		amount, err := decimal.NewFromString(field("amount"))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid amount %q: %w", line, field("amount"), err)
		}
		rate := decimal.Decimal{}
		if s := field("rate"); s != "" {
			rate, err = decimal.NewFromString(s)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid rate %q: %w", line, s, err)
			}
		}

		op := Operation{
			Date:     on,
			Account:  field("account"),
			Broker:   field("broker"),
			Type:     OperationType(strings.ToUpper(field("type"))),
			Ticker:   field("ticker"),
			Exchange: field("exchange"),
			Quantity: Q(quantity),
			Amount:   M(amount, strings.ToUpper(field("currency"))),
			Rate:     rate,
		}
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		operations = append(operations, op)
	}
	return operations, nil
}

// ExportOperations writes operations to 'w' in the import format, so that
// an exported file can be imported back.
func ExportOperations(w io.Writer, ledger *Ledger) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(operationHeader); err != nil {
		return fmt.Errorf("cannot write operations CSV: %w", err)
	}
	for op := range ledger.Operations() {
		rate := ""
		if !op.Rate.IsZero() {
			rate = op.Rate.String()
		}
		record := []string{
			op.Date.Format(DatetimeFormat),
			op.Account,
			op.Broker,
			string(op.Type),
			op.Ticker,
			op.Exchange,
			op.Quantity.String(),
			op.Amount.Currency(),
			op.Amount.Decimal().String(),
			rate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("cannot write operations CSV: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportDetails writes the full FIFO match breakdown of a report to 'w',
// one line per match.
func ExportDetails(w io.Writer, report *DetailsReport) error {
	cw := csv.NewWriter(w)
	header := []string{
		"ticker",
		"sell date", "sell quantity", "sell amount", "sell currency",
		"buy date", "buy amount", "buy currency",
		"profit",
		"currency",
		"buy rate", "buy amount exchanged",
		"sell rate", "sell amount exchanged",
		"profit exchanged",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("cannot write details CSV: %w", err)
	}
	for _, ticker := range report.Tickers {
		for _, m := range ticker.Details {
			profit := ""
			if m.SameCurrency() {
				profit = m.Profit.Decimal().String()
			}
			record := []string{
				ticker.Ticker,
				m.SellDate.Format(DatetimeFormat),
				m.SellQuantity.String(),
				m.SellAmount.Decimal().String(),
				m.SellAmount.Currency(),
				m.BuyDate.Format(DatetimeFormat),
				m.BuyAmount.Decimal().String(),
				m.BuyAmount.Currency(),
				profit,
				m.Currency,
				m.BuyRate.String(),
				m.BuyAmountExchanged.Decimal().String(),
				m.SellRate.String(),
				m.SellAmountExchanged.Decimal().String(),
				m.ProfitExchanged.Decimal().String(),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("cannot write details CSV: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// parseTimestamp accepts a full RFC3339 timestamp or a plain date taken at
// midnight UTC.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(DatetimeFormat, s); err == nil {
		return t, nil
	}
	d, err := ParseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want %q or %q", s, DatetimeFormat, DateFormat)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
}
