package portfolio

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestExchanger_SameCurrencyRoundTrip(t *testing.T) {
	// Both legs already in the target currency: rates are 1 and the
	// exchanged profit equals the raw one.
	x := NewExchanger(NewConverter(&stubRates{}, Date{}, Date{}))

	m := newMatch(Q(5), rec(SellType, "2024-02-01", 5, 110, "USD"), rec(BuyType, "2024-01-01", 5, 100, "USD"))
	got, err := x.Exchange(m, "USD")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	one := decimal.NewFromInt(1)
	if !got.BuyRate.Equal(one) || !got.SellRate.Equal(one) {
		t.Errorf("rates = %s, %s, want 1, 1", got.BuyRate, got.SellRate)
	}
	if !got.ProfitExchanged.Equal(M(50, "USD")) {
		t.Errorf("ProfitExchanged = %s, want 50 USD", got.ProfitExchanged.Decimal())
	}
	if !got.ProfitExchanged.Decimal().Equal(got.Profit.Decimal()) {
		t.Errorf("ProfitExchanged = %s differs from raw profit %s", got.ProfitExchanged.Decimal(), got.Profit.Decimal())
	}
}

func TestExchanger_CrossCurrency(t *testing.T) {
	// Buy in USD, sell in GBP, report in EUR: each leg converts at the
	// rate of its own date.
	source := ratesOf(map[string]map[string]float64{
		"USD-EUR": {"2024-01-01": 0.9},
		"GBP-EUR": {"2024-02-01": 1.2},
	})
	x := NewExchanger(NewConverter(source, Date{}, Date{}))

	m := newMatch(Q(10), rec(SellType, "2024-02-01", 10, 11, "GBP"), rec(BuyType, "2024-01-01", 10, 10, "USD"))
	if m.SameCurrency() {
		t.Fatal("legs should differ in currency")
	}
	got, err := x.Exchange(m, "EUR")
	if err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	// buy 100 USD * 0.9 = 90 EUR, sell 110 GBP * 1.2 = 132 EUR
	if !got.BuyAmountExchanged.Equal(M(90, "EUR")) {
		t.Errorf("BuyAmountExchanged = %s %s, want 90 EUR", got.BuyAmountExchanged.Decimal(), got.BuyAmountExchanged.Currency())
	}
	if !got.SellAmountExchanged.Equal(M(132, "EUR")) {
		t.Errorf("SellAmountExchanged = %s %s, want 132 EUR", got.SellAmountExchanged.Decimal(), got.SellAmountExchanged.Currency())
	}
	if !got.ProfitExchanged.Equal(M(42, "EUR")) {
		t.Errorf("ProfitExchanged = %s, want 42 EUR", got.ProfitExchanged.Decimal())
	}
}

func TestExchanger_PropagatesRateFailures(t *testing.T) {
	x := NewExchanger(NewConverter(&stubRates{}, Date{}, Date{}))

	m := newMatch(Q(1), rec(SellType, "2024-02-01", 1, 11, "GBP"), rec(BuyType, "2024-01-01", 1, 10, "USD"))
	_, err := x.Exchange(m, "EUR")
	if !errors.Is(err, ErrExchangeNotFound) {
		t.Fatalf("Exchange() error = %v, want ErrExchangeNotFound", err)
	}
}
