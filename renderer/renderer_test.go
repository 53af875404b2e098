package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rigaml/portfolio"
)

func sampleReport() *portfolio.DetailsReport {
	one := decimal.NewFromInt(1)
	return &portfolio.DetailsReport{
		Account:  "main",
		Currency: "USD",
		From:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Tickers: []portfolio.TickerProfits{
			{
				Ticker: "AAPL",
				Details: []portfolio.MatchExchanged{
					{
						Match: portfolio.Match{
							SellDate:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
							SellQuantity: portfolio.Q(10),
							SellAmount:   portfolio.M(1100, "USD"),
							BuyDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
							BuyAmount:    portfolio.M(1000, "USD"),
							Profit:       portfolio.M(100, "USD"),
						},
						Currency:            "USD",
						BuyRate:             one,
						BuyAmountExchanged:  portfolio.M(1000, "USD"),
						SellRate:            one,
						SellAmountExchanged: portfolio.M(1100, "USD"),
						ProfitExchanged:     portfolio.M(100, "USD"),
					},
				},
			},
		},
	}
}

func TestTotalMarkdown(t *testing.T) {
	md := TotalMarkdown(sampleReport())

	for _, want := range []string{
		`# Profit Report "main" from 2024-01-01 to 2024-12-31`,
		"Currency: USD",
		"| AAPL | 1 |",
		"**Total**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("TotalMarkdown() missing %q in:\n%s", want, md)
		}
	}
}

func TestTotalMarkdown_OpenPeriod(t *testing.T) {
	report := sampleReport()
	report.From, report.To = time.Time{}, time.Time{}
	md := TotalMarkdown(report)
	if !strings.Contains(md, "from - to -") {
		t.Errorf("open bounds should render as dashes, got:\n%s", md)
	}
}

func TestDetailsMarkdown(t *testing.T) {
	md := DetailsMarkdown(sampleReport())

	for _, want := range []string{
		"## AAPL",
		"| 2024-02-01 | 10 |",
		"| 2024-01-01 |",
		"Total: **",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("DetailsMarkdown() missing %q in:\n%s", want, md)
		}
	}
}

func TestHTML(t *testing.T) {
	html, err := HTML(TotalMarkdown(sampleReport()))
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("HTML() should render the report table, got:\n%s", html)
	}
	if !strings.Contains(html, "<h1") {
		t.Errorf("HTML() should render the title, got:\n%s", html)
	}
}
