package portfolio

import (
	"fmt"
	"iter"
	"slices"
	"time"
)

// Ledger is the record of all brokerage operations across accounts.
//
// Operations are always kept in chronological order, with BUY before SELL
// on equal dates. That ordering is what makes the ledger directly usable
// as an [OperationSource]: FIFO matching depends on it and never re-sorts.
type Ledger struct {
	operations []Operation
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{operations: make([]Operation, 0)}
}

// compareOperations orders by date, with BUY before SELL on equal dates so
// that a same-day buy is available to match the sell.
func compareOperations(a, b Operation) int {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c
	}
	if a.Type != b.Type {
		if a.Type == BuyType {
			return -1
		}
		return 1
	}
	return 0
}

// key identifies an operation for duplicate detection. Brokers do not
// report sub-day ordering, so two same-day operations of the same kind on
// the same ticker and venue cannot be told apart and are rejected.
func (o Operation) key() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s", o.Account, o.Date.Format(DatetimeFormat), o.Broker, o.Type, o.Ticker, o.Exchange)
}

// Append validates and inserts operations, keeping the ledger sorted.
// A duplicate of an already recorded operation is rejected.
func (l *Ledger) Append(operations ...Operation) error {
	seen := make(map[string]bool, len(l.operations))
	for _, existing := range l.operations {
		seen[existing.key()] = true
	}
	for _, op := range operations {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("invalid %s operation on %s: %w", op.Type, op.Date.Format(DatetimeFormat), err)
		}
		if seen[op.key()] {
			return fmt.Errorf("duplicate operation: %s %s %q on %s", op.Broker, op.Type, op.Ticker, op.Date.Format(DatetimeFormat))
		}
		seen[op.key()] = true
		l.operations = append(l.operations, op)
	}
	slices.SortStableFunc(l.operations, compareOperations)
	return nil
}

// Len returns the number of recorded operations.
func (l *Ledger) Len() int { return len(l.operations) }

// Operations returns an iterator over all operations in chronological order.
func (l *Ledger) Operations() iter.Seq[Operation] {
	return func(yield func(Operation) bool) {
		for _, op := range l.operations {
			if !yield(op) {
				return
			}
		}
	}
}

// Accounts returns the distinct accounts with recorded operations, sorted.
func (l *Ledger) Accounts() []string {
	var accounts []string
	for _, op := range l.operations {
		if !slices.Contains(accounts, op.Account) {
			accounts = append(accounts, op.Account)
		}
	}
	slices.Sort(accounts)
	return accounts
}

// inPeriod reports whether t falls within [from, to], zero bounds open.
func inPeriod(t time.Time, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}

// TickersSold implements [OperationSource]. Tickers come out in the order
// of their first sell in the period.
func (l *Ledger) TickersSold(account string, from, to time.Time) ([]string, error) {
	var tickers []string
	for _, op := range l.operations {
		if op.Account != account || op.Type != SellType {
			continue
		}
		if !inPeriod(op.Date, from, to) {
			continue
		}
		if !slices.Contains(tickers, op.Ticker) {
			tickers = append(tickers, op.Ticker)
		}
	}
	return tickers, nil
}

// TickerOperations implements [OperationSource]: the full history of the
// ticker up to 'to', already in matching order.
func (l *Ledger) TickerOperations(account, ticker string, to time.Time) ([]Record, error) {
	var records []Record
	for _, op := range l.operations {
		if op.Account != account || op.Ticker != ticker {
			continue
		}
		if !to.IsZero() && op.Date.After(to) {
			continue
		}
		records = append(records, op.Record())
	}
	return records, nil
}
