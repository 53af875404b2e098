package portfolio

import "time"

// This file declares the read interfaces the profit computation consumes.
// The file-backed Ledger and RateTable implement them; a database layer can
// substitute its own implementations without touching the computation.

// OperationSource supplies per-account operation history.
type OperationSource interface {
	// TickersSold returns the distinct tickers with at least one SELL in
	// the period. A zero 'from' or 'to' leaves that side unbounded.
	TickersSold(account string, from, to time.Time) ([]string, error)

	// TickerOperations returns all operations of the account on the ticker
	// up to 'to' (all of history when 'to' is zero), ordered ascending by
	// (date, type) with BUY before SELL on equal dates. Profit matching
	// needs the full history of buys, not just the reporting period.
	TickerOperations(account, ticker string, to time.Time) ([]Record, error)
}

// RateSource supplies historical daily exchange rate series.
type RateSource interface {
	// Rates returns the date-to-rate series for the ordered currency pair
	// within the window. A zero 'from' or 'to' leaves that side unbounded.
	// An empty series means no rates are known for the pair.
	Rates(origin, target string, from, to Date) (*RateHistory, error)
}
