package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Match is one FIFO match between a slice of a sell and a slice of a buy
// lot. A sell spanning several lots produces several matches, and a large
// lot serves several sells. Immutable once created.
type Match struct {
	SellDate     time.Time
	SellQuantity Quantity // the matched slice, at most the original sell quantity
	SellAmount   Money    // SellQuantity x sell average price, in the sell currency
	BuyDate      time.Time
	BuyAmount    Money // SellQuantity x buy average price, in the buy currency
	Profit       Money // raw profit, only meaningful when both legs share a currency
}

// SameCurrency reports whether both legs of the match are denominated in
// the same currency, i.e. whether the raw Profit field is meaningful.
func (m Match) SameCurrency() bool {
	return m.SellAmount.Currency() == m.BuyAmount.Currency()
}

// MatchExchanged is a Match normalized into a single target currency. Its
// ProfitExchanged is the authoritative profit figure: it is always
// expressed in the target currency, whether or not the legs shared one.
type MatchExchanged struct {
	Match
	Currency            string          // target currency of the normalization
	BuyRate             decimal.Decimal // buy currency to target, on the buy date
	BuyAmountExchanged  Money
	SellRate            decimal.Decimal // sell currency to target, on the sell date
	SellAmountExchanged Money
	ProfitExchanged     Money // SellAmountExchanged - BuyAmountExchanged
}

// TickerProfits is the full FIFO match breakdown for one ticker.
type TickerProfits struct {
	Ticker  string
	Details []MatchExchanged
}

// Profit sums the exchanged profit over the ticker's matches.
func (t TickerProfits) Profit(currency string) Money {
	total := M(0, currency)
	for _, m := range t.Details {
		total = total.Add(m.ProfitExchanged)
	}
	return total
}
