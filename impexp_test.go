package portfolio

import (
	"strings"
	"testing"
	"time"
)

func TestImportOperations(t *testing.T) {
	const csv = `date,account,broker,type,ticker,exchange,quantity,currency,amount,rate
2024-01-01,main,IBKR,buy,AAPL,NASDAQ,10,usd,1000,
2024-02-01T15:30:00Z,main,IBKR,SELL,AAPL,,5,USD,600,1.1
`
	operations, err := ImportOperations(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportOperations() error = %v", err)
	}
	if len(operations) != 2 {
		t.Fatalf("got %d operations, want 2", len(operations))
	}

	buy := operations[0]
	if buy.Type != BuyType {
		t.Errorf("type = %s, want BUY (case folded)", buy.Type)
	}
	if !buy.Amount.Equal(M(1000, "USD")) {
		t.Errorf("amount = %v, want 1000 USD (currency upper cased)", buy.Amount)
	}
	if !buy.Date.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("plain date should decode at midnight UTC, got %v", buy.Date)
	}

	sell := operations[1]
	if sell.Date.Hour() != 15 || sell.Exchange != "" || sell.Rate.IsZero() {
		t.Errorf("sell = %+v, want 15:30 timestamp, empty exchange, rate 1.1", sell)
	}
}

func TestImportOperations_ColumnOrderIsFree(t *testing.T) {
	const csv = `ticker,type,amount,currency,quantity,broker,account,date
AAPL,BUY,1000,USD,10,IBKR,main,2024-01-01
`
	operations, err := ImportOperations(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportOperations() error = %v", err)
	}
	if len(operations) != 1 || operations[0].Ticker != "AAPL" {
		t.Errorf("operations = %+v, want one AAPL buy", operations)
	}
}

func TestImportOperations_Errors(t *testing.T) {
	testCases := []struct {
		name string
		csv  string
	}{
		{"missing column", "date,account,broker,type,ticker,quantity,currency\n"},
		{"bad date", "date,account,broker,type,ticker,quantity,currency,amount\n01/02/2024,main,IBKR,BUY,AAPL,10,USD,1000\n"},
		{"bad quantity", "date,account,broker,type,ticker,quantity,currency,amount\n2024-01-01,main,IBKR,BUY,AAPL,ten,USD,1000\n"},
		{"bad type", "date,account,broker,type,ticker,quantity,currency,amount\n2024-01-01,main,IBKR,HOLD,AAPL,10,USD,1000\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ImportOperations(strings.NewReader(tc.csv)); err == nil {
				t.Error("ImportOperations() should fail")
			}
		})
	}
}

func TestExportOperationsRoundTrip(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2024-01-01", BuyType, "AAPL", 10, 1000, "USD"),
		op("main", "2024-02-01", SellType, "AAPL", 5, 600, "USD"),
	)

	var sb strings.Builder
	if err := ExportOperations(&sb, ledger); err != nil {
		t.Fatalf("ExportOperations() error = %v", err)
	}
	operations, err := ImportOperations(strings.NewReader(sb.String()))
	if err != nil {
		t.Fatalf("ImportOperations() on exported CSV error = %v", err)
	}
	if len(operations) != 2 {
		t.Fatalf("round trip lost operations: got %d, want 2", len(operations))
	}
	if !operations[1].Quantity.Equal(Q(5)) {
		t.Errorf("round-tripped sell quantity = %v, want 5", operations[1].Quantity)
	}
}

func TestExportDetails(t *testing.T) {
	ledger := NewLedger()
	mustAppend(t, ledger,
		op("main", "2024-01-01", BuyType, "AAPL", 20, 2000, "USD"),
		op("main", "2024-02-01", SellType, "AAPL", 10, 1100, "USD"),
	)
	s := NewProfitService(ledger, NewRateTable())
	report, err := s.TotalDetails("main", "USD", time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("TotalDetails() error = %v", err)
	}

	var sb strings.Builder
	if err := ExportDetails(&sb, report); err != nil {
		t.Fatalf("ExportDetails() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want header plus one match", len(lines))
	}
	match := lines[1]
	for _, want := range []string{"AAPL", "1100", "1000", "100", "USD"} {
		if !strings.Contains(match, want) {
			t.Errorf("match line %q missing %q", match, want)
		}
	}
}
