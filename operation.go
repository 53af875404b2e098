package portfolio

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OperationType identifies the side of a brokerage operation.
type OperationType string

const (
	// BuyType is an acquisition of a quantity of a ticker.
	BuyType OperationType = "BUY"
	// SellType is a disposal of a quantity of a ticker.
	SellType OperationType = "SELL"
)

// ErrInvalidOperationType reports an operation whose type is neither BUY nor SELL.
// Upstream validation should make it impossible, the matcher still checks.
var ErrInvalidOperationType = errors.New("invalid operation type")

// Operation is one buy or sell event as reported by a broker.
type Operation struct {
	Date     time.Time     // broker-supplied timestamp, timezone aware
	Account  string        // account the operation belongs to
	Broker   string        // broker short name
	Type     OperationType // BUY or SELL
	Ticker   string
	Exchange string   // trading venue the broker routed the operation to
	Quantity Quantity // always positive, fractional shares allowed
	Amount   Money    // total amount paid or received, in the operation currency
	Rate     decimal.Decimal // broker-supplied exchange rate, zero when not provided
}

// Validate checks the operation fields for correctness.
func (o Operation) Validate() error {
	if o.Type != BuyType && o.Type != SellType {
		return fmt.Errorf("%w: %q", ErrInvalidOperationType, o.Type)
	}
	if o.Ticker == "" {
		return errors.New("operation ticker is missing")
	}
	if o.Date.IsZero() {
		return errors.New("operation date is missing")
	}
	if !o.Quantity.IsPositive() {
		return fmt.Errorf("operation quantity must be positive, got %s", o.Quantity)
	}
	if err := ValidateCurrency(o.Amount.Currency()); err != nil {
		return err
	}
	return nil
}

// Record is the matching view of an Operation: what the FIFO matcher needs
// and nothing it must not touch. Quantity is the remaining unmatched
// quantity and is decremented in place while sells consume buy lots.
type Record struct {
	Type     OperationType
	Date     time.Time
	Quantity Quantity
	Currency string
	PriceAvg Money // Amount / Quantity, assumed constant across the whole lot
}

// Record derives the matching view of the operation.
func (o Operation) Record() Record {
	return Record{
		Type:     o.Type,
		Date:     o.Date,
		Quantity: o.Quantity,
		Currency: o.Amount.Currency(),
		PriceAvg: o.Amount.Div(o.Quantity),
	}
}
