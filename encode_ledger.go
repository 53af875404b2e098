package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// The ledger file is JSONL: one operation per line, human readable and easy
// to append to or merge. Field order is fixed so that files diff cleanly.

// MarshalJSON implements the json.Marshaler interface for Operation.
func (o Operation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", o.Date.Format(DatetimeFormat))
	w.Append("account", o.Account)
	w.Append("broker", o.Broker)
	w.Append("type", o.Type)
	w.Append("ticker", o.Ticker)
	w.Optional("exchange", o.Exchange)
	w.Append("quantity", o.Quantity)
	w.Append("amount", o.Amount.Decimal())
	w.Append("currency", o.Amount.Currency())
	w.Optional("rate", o.Rate)
	return w.MarshalJSON()
}

// operationRow is a specialized struct to read an operation line, with the
// amount and currency in two separate fields.
type operationRow struct {
	Date     string          `json:"date"`
	Account  string          `json:"account"`
	Broker   string          `json:"broker"`
	Type     OperationType   `json:"type"`
	Ticker   string          `json:"ticker"`
	Exchange string          `json:"exchange"`
	Quantity Quantity        `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Rate     decimal.Decimal `json:"rate"`
}

func (row operationRow) operation() (Operation, error) {
	on, err := time.Parse(DatetimeFormat, row.Date)
	if err != nil {
		return Operation{}, fmt.Errorf("invalid operation date %q, want format %q: %w", row.Date, DatetimeFormat, err)
	}
	return Operation{
		Date:     on,
		Account:  row.Account,
		Broker:   row.Broker,
		Type:     row.Type,
		Ticker:   row.Ticker,
		Exchange: row.Exchange,
		Quantity: row.Quantity,
		Amount:   M(row.Amount, row.Currency),
		Rate:     row.Rate,
	}, nil
}

// DecodeLedger decodes operations from a stream of JSONL data, validates
// them, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var row operationRow
		if err := json.Unmarshal(lineBytes, &row); err != nil {
			return nil, fmt.Errorf("could not parse operation line %q: %w", string(lineBytes), err)
		}
		op, err := row.operation()
		if err != nil {
			return nil, err
		}
		if err := ledger.Append(op); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read ledger: %w", err)
	}
	return ledger, nil
}

// EncodeOperation writes a single operation as one JSONL line.
func EncodeOperation(w io.Writer, op Operation) error {
	data, err := json.Marshal(op)
	if err != nil {
		return fmt.Errorf("cannot marshal operation: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write operation: %w", err)
	}
	return nil
}

// EncodeLedger writes the whole ledger in canonical JSONL form,
// chronological order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for op := range ledger.Operations() {
		if err := EncodeOperation(w, op); err != nil {
			return err
		}
	}
	return nil
}
