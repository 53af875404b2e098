package portfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

// rec builds an operation record for matching tests.
func rec(typ OperationType, day string, quantity, priceAvg float64, currency string) Record {
	return Record{
		Type:     typ,
		Date:     at(day),
		Quantity: Q(quantity),
		Currency: currency,
		PriceAvg: M(priceAvg, currency),
	}
}

// usdCalculator returns a calculator whose conversions are all identity
// (every leg already in USD).
func usdCalculator() *Calculator {
	return NewCalculator(NewExchanger(NewConverter(&stubRates{}, Date{}, Date{})))
}

func TestCalculator_FIFOOrder(t *testing.T) {
	// Two lots at different prices, one sell spanning both: the oldest lot
	// must be consumed entirely before the second one is touched.
	operations := []Record{
		rec(BuyType, "2024-01-01", 5, 100, "USD"),
		rec(BuyType, "2024-01-02", 5, 95, "USD"),
		rec(SellType, "2024-02-01", 10, 110, "USD"),
	}

	matches, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	if err != nil {
		t.Fatalf("TickerProfits() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}

	first, second := matches[0], matches[1]
	if !first.BuyDate.Equal(at("2024-01-01")) || !first.SellQuantity.Equal(Q(5)) {
		t.Errorf("first match = buy %v qty %s, want the 2024-01-01 lot fully consumed", first.BuyDate, first.SellQuantity)
	}
	if !first.Profit.Equal(M(50, "USD")) {
		t.Errorf("first match profit = %s, want 50 USD", first.Profit.Decimal())
	}
	if !second.BuyDate.Equal(at("2024-01-02")) || !second.Profit.Equal(M(75, "USD")) {
		t.Errorf("second match = buy %v profit %s, want 2024-01-02 lot with 75 USD", second.BuyDate, second.Profit.Decimal())
	}
}

func TestCalculator_PartialLotServesSeveralSells(t *testing.T) {
	operations := []Record{
		rec(BuyType, "2024-01-01", 20, 100, "USD"),
		rec(SellType, "2024-02-01", 10, 110, "USD"),
		rec(SellType, "2024-02-15", 10, 120, "USD"),
	}

	matches, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	if err != nil {
		t.Fatalf("TickerProfits() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2", len(matches))
	}
	if !matches[0].ProfitExchanged.Equal(M(100, "USD")) {
		t.Errorf("first sell profit = %s, want 100 USD", matches[0].ProfitExchanged.Decimal())
	}
	if !matches[1].ProfitExchanged.Equal(M(200, "USD")) {
		t.Errorf("second sell profit = %s, want 200 USD", matches[1].ProfitExchanged.Decimal())
	}
}

func TestCalculator_ProfitMatchesAveragePriceAccounting(t *testing.T) {
	// Total profit must equal total sell amount minus FIFO-matched buy
	// amount, both derived from average price x matched quantity.
	operations := []Record{
		rec(BuyType, "2024-01-01", 3, 10, "USD"),
		rec(BuyType, "2024-01-05", 7, 12, "USD"),
		rec(SellType, "2024-01-10", 8, 15, "USD"),
	}

	matches, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	if err != nil {
		t.Fatalf("TickerProfits() error = %v", err)
	}

	total := decimal.Zero
	for _, m := range matches {
		total = total.Add(m.ProfitExchanged.Decimal())
	}
	// 8*15 - (3*10 + 5*12) = 120 - 90 = 30
	if !total.Equal(decimal.NewFromInt(30)) {
		t.Errorf("total profit = %s, want 30", total)
	}
}

func TestCalculator_OversellAborts(t *testing.T) {
	operations := []Record{
		rec(BuyType, "2024-01-01", 10, 100, "USD"),
		rec(SellType, "2024-02-01", 11, 110, "USD"),
	}

	matches, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	var mismatch *BuySellMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("TickerProfits() error = %v, want BuySellMismatchError", err)
	}
	if mismatch.Ticker != "AAPL" {
		t.Errorf("mismatch ticker = %q, want AAPL", mismatch.Ticker)
	}
	if !mismatch.Quantity.Equal(Q(1)) {
		t.Errorf("mismatch quantity = %s, want 1", mismatch.Quantity)
	}
	if matches != nil {
		t.Errorf("got a partial match list on mismatch: %v", matches)
	}
}

func TestCalculator_SellWithNoBuysAborts(t *testing.T) {
	operations := []Record{
		rec(SellType, "2024-02-01", 5, 110, "USD"),
	}

	_, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	var mismatch *BuySellMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("TickerProfits() error = %v, want BuySellMismatchError", err)
	}
	if !mismatch.Quantity.Equal(Q(5)) {
		t.Errorf("mismatch quantity = %s, want 5", mismatch.Quantity)
	}
}

func TestCalculator_UnknownOperationType(t *testing.T) {
	operations := []Record{
		{Type: "DIVIDEND", Date: at("2024-01-01"), Quantity: Q(1), Currency: "USD", PriceAvg: M(1, "USD")},
	}

	_, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	if !errors.Is(err, ErrInvalidOperationType) {
		t.Fatalf("TickerProfits() error = %v, want ErrInvalidOperationType", err)
	}
}

func TestCalculator_FractionalQuantities(t *testing.T) {
	operations := []Record{
		rec(BuyType, "2024-01-01", 0.7500001, 100, "USD"),
		rec(SellType, "2024-02-01", 0.7500001, 104, "USD"),
	}

	matches, err := usdCalculator().TickerProfits("AAPL", operations, "USD")
	if err != nil {
		t.Fatalf("TickerProfits() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	want := decimal.NewFromFloat(0.7500001).Mul(decimal.NewFromInt(4))
	if !matches[0].ProfitExchanged.Decimal().Equal(want) {
		t.Errorf("profit = %s, want %s", matches[0].ProfitExchanged.Decimal(), want)
	}
}
