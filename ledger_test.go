package portfolio

import (
	"strings"
	"testing"
	"time"
)

func TestLedger_AppendKeepsChronologicalOrder(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2024-03-01", SellType, "AAPL", 5, 600, "USD"),
		op("main", "2024-01-01", BuyType, "AAPL", 10, 1000, "USD"),
		op("main", "2024-02-01", BuyType, "MSFT", 3, 900, "USD"),
	)

	var dates []time.Time
	for operation := range ledger.Operations() {
		dates = append(dates, operation.Date)
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Before(dates[i-1]) {
			t.Fatalf("operations out of order at %d: %v after %v", i, dates[i], dates[i-1])
		}
	}
}

func TestLedger_SameDayBuyBeforeSell(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2024-01-05", SellType, "AAPL", 10, 1100, "USD"),
		op("main", "2024-01-05", BuyType, "AAPL", 10, 1000, "USD"),
	)

	records, err := ledger.TickerOperations("main", "AAPL", time.Time{})
	if err != nil {
		t.Fatalf("TickerOperations() error = %v", err)
	}
	if len(records) != 2 || records[0].Type != BuyType || records[1].Type != SellType {
		t.Fatalf("same-day operations = %v, want BUY then SELL", records)
	}
}

func TestLedger_AppendRejectsDuplicate(t *testing.T) {
	ledger := NewLedger()
	buy := op("main", "2024-01-01", BuyType, "AAPL", 10, 1000, "USD")
	mustAppend(t, ledger, buy)

	err := ledger.Append(buy)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("Append() dup error = %v, want duplicate rejection", err)
	}
	if ledger.Len() != 1 {
		t.Errorf("ledger length = %d, want 1", ledger.Len())
	}
}

func TestLedger_AppendRejectsInvalidOperation(t *testing.T) {
	ledger := NewLedger()
	bad := op("main", "2024-01-01", OperationType("SHORT"), "AAPL", 10, 1000, "USD")
	if err := ledger.Append(bad); err == nil {
		t.Fatal("Append() should reject an unknown operation type")
	}
	if ledger.Len() != 0 {
		t.Errorf("ledger length = %d, want 0", ledger.Len())
	}
}

func TestLedger_Accounts(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("zeta", "2024-01-01", BuyType, "AAPL", 10, 1000, "USD"),
		op("alpha", "2024-01-02", BuyType, "AAPL", 10, 1000, "USD"),
		op("zeta", "2024-01-03", BuyType, "MSFT", 1, 100, "USD"),
	)
	got := ledger.Accounts()
	if len(got) != 2 || got[0] != "alpha" || got[1] != "zeta" {
		t.Errorf("Accounts() = %v, want [alpha zeta]", got)
	}
}

func TestLedger_TickersSold(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2024-01-01", BuyType, "AAPL", 10, 1000, "USD"),
		op("main", "2024-01-15", SellType, "MSFT", 1, 100, "USD"),
		op("main", "2024-02-01", SellType, "AAPL", 5, 600, "USD"),
		op("main", "2024-02-10", SellType, "MSFT", 1, 110, "USD"),
		op("other", "2024-02-11", SellType, "TSLA", 1, 200, "USD"),
		op("main", "2025-01-01", SellType, "NVDA", 1, 300, "USD"),
	)

	got, err := ledger.TickersSold("main", at("2024-01-01"), at("2024-12-31"))
	if err != nil {
		t.Fatalf("TickersSold() error = %v", err)
	}
	// distinct, first-sell order, bounded to the period and the account
	want := []string{"MSFT", "AAPL"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("TickersSold() = %v, want %v", got, want)
	}
}

func TestLedger_TickersSold_OpenBounds(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2020-01-01", SellType, "AAPL", 1, 100, "USD"),
		op("main", "2030-01-01", SellType, "MSFT", 1, 100, "USD"),
	)
	got, err := ledger.TickersSold("main", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("TickersSold() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("TickersSold() with open bounds = %v, want both tickers", got)
	}
}

func TestLedger_TickerOperations(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2023-06-01", BuyType, "AAPL", 10, 1000, "USD"),
		op("main", "2024-02-01", SellType, "AAPL", 5, 600, "USD"),
		op("main", "2024-06-01", SellType, "AAPL", 5, 700, "USD"),
		op("main", "2024-02-02", BuyType, "MSFT", 1, 100, "USD"),
	)

	records, err := ledger.TickerOperations("main", "AAPL", at("2024-03-01"))
	if err != nil {
		t.Fatalf("TickerOperations() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2 (history up to the bound)", len(records))
	}
	first := records[0]
	if first.Type != BuyType || !first.PriceAvg.Equal(M(100, "USD")) {
		t.Errorf("first record = %+v, want the buy with average price 100 USD", first)
	}
}
