package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
)

func d(day string) Date { return MustParseDate(day) }

func TestRateHistory_AppendSortsAndReplaces(t *testing.T) {
	h := (&RateHistory{}).
		Append(d("2024-01-03"), decimal.NewFromFloat(1.3)).
		Append(d("2024-01-01"), decimal.NewFromFloat(1.1)).
		Append(d("2024-01-02"), decimal.NewFromFloat(1.2)).
		Append(d("2024-01-01"), decimal.NewFromFloat(1.15)) // same day, last wins

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	first, rate := h.First()
	if first != d("2024-01-01") || !rate.Equal(decimal.NewFromFloat(1.15)) {
		t.Errorf("First() = %s %s, want 2024-01-01 1.15", first, rate)
	}
	var prev Date
	for day := range h.Values() {
		if !prev.IsZero() && day.Before(prev) {
			t.Fatalf("series out of order: %s after %s", day, prev)
		}
		prev = day
	}
}

func TestRateHistory_Rate(t *testing.T) {
	h := (&RateHistory{}).Append(d("2024-01-01"), decimal.NewFromFloat(1.1))

	if rate, ok := h.Rate(d("2024-01-01")); !ok || !rate.Equal(decimal.NewFromFloat(1.1)) {
		t.Errorf("Rate(2024-01-01) = %s %v, want 1.1 true", rate, ok)
	}
	if _, ok := h.Rate(d("2024-01-02")); ok {
		t.Error("Rate() on an absent day should not be found")
	}
}

func TestRateHistory_Slice(t *testing.T) {
	h := (&RateHistory{}).
		Append(d("2024-01-01"), decimal.NewFromInt(1)).
		Append(d("2024-01-02"), decimal.NewFromInt(2)).
		Append(d("2024-01-03"), decimal.NewFromInt(3))

	if got := h.Slice(d("2024-01-02"), d("2024-01-03")); got.Len() != 2 {
		t.Errorf("Slice(02, 03).Len() = %d, want 2", got.Len())
	}
	if got := h.Slice(Date{}, d("2024-01-01")); got.Len() != 1 {
		t.Errorf("Slice(zero, 01).Len() = %d, want 1", got.Len())
	}
	if got := h.Slice(Date{}, Date{}); got.Len() != 3 {
		t.Errorf("Slice(zero, zero).Len() = %d, want 3", got.Len())
	}
}

func TestRateTable_Append(t *testing.T) {
	table := NewRateTable()
	if err := table.Append(d("2024-01-01"), "usd", "eur", decimal.NewFromFloat(0.9)); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	h := table.History("USD", "EUR")
	if h.Len() != 1 {
		t.Fatalf("history length = %d, want 1 (currencies normalized to upper case)", h.Len())
	}

	if err := table.Append(d("2024-01-01"), "USD", "XXX", decimal.NewFromInt(1)); err == nil {
		t.Error("Append() should reject an unknown currency code")
	}
	if err := table.Append(Date{}, "USD", "EUR", decimal.NewFromInt(1)); err == nil {
		t.Error("Append() should reject a zero date")
	}
	if err := table.Append(d("2024-01-01"), "USD", "EUR", decimal.NewFromInt(-1)); err == nil {
		t.Error("Append() should reject a non-positive rate")
	}
}

func TestRateTable_RatesUnknownPairIsEmptyNotError(t *testing.T) {
	table := NewRateTable()
	h, err := table.Rates("USD", "EUR", Date{}, Date{})
	if err != nil {
		t.Fatalf("Rates() error = %v, want nil for an unknown pair", err)
	}
	if h.Len() != 0 {
		t.Errorf("Rates() on unknown pair returned %d days, want empty series", h.Len())
	}
}

func TestRateTable_RatesWindow(t *testing.T) {
	table := NewRateTable()
	for _, day := range []string{"2024-01-01", "2024-01-02", "2024-01-03"} {
		if err := table.Append(d(day), "USD", "EUR", decimal.NewFromFloat(0.9)); err != nil {
			t.Fatalf("Append(%s) error = %v", day, err)
		}
	}
	h, err := table.Rates("USD", "EUR", Date{}, d("2024-01-02"))
	if err != nil {
		t.Fatalf("Rates() error = %v", err)
	}
	if h.Len() != 2 {
		t.Errorf("Rates() window length = %d, want 2", h.Len())
	}
}

func TestRateTable_Pairs(t *testing.T) {
	table := NewRateTable()
	table.Append(d("2024-01-01"), "USD", "GBP", decimal.NewFromFloat(0.8))
	table.Append(d("2024-01-01"), "EUR", "USD", decimal.NewFromFloat(1.1))

	got := table.Pairs()
	if len(got) != 2 || got[0] != "EUR-USD" || got[1] != "USD-GBP" {
		t.Errorf("Pairs() = %v, want [EUR-USD USD-GBP]", got)
	}
}
