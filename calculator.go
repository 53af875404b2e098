package portfolio

import (
	"fmt"
	"time"
)

// BuySellMismatchError reports a sell that could not be fully matched:
// within the visible history more of the ticker was sold than ever bought.
// This is a data integrity problem upstream, the whole ticker computation
// is aborted rather than reporting a partial match list.
type BuySellMismatchError struct {
	Ticker   string
	Date     time.Time // date of the offending sell
	Quantity Quantity  // quantity left to sell with no corresponding buy
}

func (e *BuySellMismatchError) Error() string {
	return fmt.Sprintf("on %s, %s of %q left to sell without corresponding buys",
		e.Date.Format(DatetimeFormat), e.Quantity, e.Ticker)
}

// Calculator FIFO-matches the chronological operation history of a single
// ticker into profit records normalized to one target currency.
//
// It is stateless across calls: each call owns its open-buys queue, so the
// caller must pass the complete history of the ticker every time.
type Calculator struct {
	exchanger *Exchanger
}

// NewCalculator returns a Calculator normalizing matches through 'exchanger'.
func NewCalculator(exchanger *Exchanger) *Calculator {
	return &Calculator{exchanger: exchanger}
}

// TickerProfits matches the operations of one ticker and returns one
// exchanged match per FIFO slice.
//
// The input must be ordered ascending by (date, type) with BUY before SELL
// on equal dates; the calculator relies on that ordering and does not
// re-sort.
func (c *Calculator) TickerProfits(ticker string, operations []Record, targetCurrency string) ([]MatchExchanged, error) {
	var open lots
	var matches []MatchExchanged

	for _, op := range operations {
		switch op.Type {
		case BuyType:
			open.push(op)
		case SellType:
			sellMatches, err := c.matchSell(ticker, op, &open, targetCurrency)
			if err != nil {
				return nil, err
			}
			matches = append(matches, sellMatches...)
		default:
			return nil, fmt.Errorf("%w: %q on ticker %q", ErrInvalidOperationType, op.Type, ticker)
		}
	}
	return matches, nil
}

// matchSell consumes open buy lots from the front until the sell quantity
// is exhausted, producing one match per slice.
func (c *Calculator) matchSell(ticker string, sell Record, open *lots, targetCurrency string) ([]MatchExchanged, error) {
	var matches []MatchExchanged

	for sell.Quantity.IsPositive() && !open.empty() {
		buy := open.front()

		slice := MinQuantity(sell.Quantity, buy.Quantity)
		sell.Quantity = sell.Quantity.Sub(slice)
		buy.Quantity = buy.Quantity.Sub(slice)

		exchanged, err := c.exchanger.Exchange(newMatch(slice, sell, *buy), targetCurrency)
		if err != nil {
			return nil, err
		}
		matches = append(matches, exchanged)

		if buy.Quantity.IsZero() {
			open.pop()
		}
	}

	if sell.Quantity.IsPositive() {
		return nil, &BuySellMismatchError{Ticker: ticker, Date: sell.Date, Quantity: sell.Quantity}
	}
	return matches, nil
}

// newMatch builds the match of one slice. Amounts are recomputed as
// slice x average price, not a proportional split of the original totals:
// the average price is constant across the whole lot.
func newMatch(slice Quantity, sell, buy Record) Match {
	m := Match{
		SellDate:     sell.Date,
		SellQuantity: slice,
		SellAmount:   sell.PriceAvg.Mul(slice),
		BuyDate:      buy.Date,
		BuyAmount:    buy.PriceAvg.Mul(slice),
	}
	if m.SameCurrency() {
		m.Profit = m.SellAmount.Sub(m.BuyAmount)
	}
	return m
}
