package renderer

import (
	"fmt"
	"strings"
	"time"

	"github.com/rigaml/portfolio"
)

// period renders a report bound, an open bound reads as "-".
func period(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(portfolio.DateFormat)
}

// TotalMarkdown renders the per-ticker profit summary of a report.
func TotalMarkdown(report *portfolio.DetailsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Profit Report %q from %s to %s\n\n", report.Account, period(report.From), period(report.To))
	fmt.Fprintf(&b, "Currency: %s\n\n", report.Currency)

	fmt.Fprintln(&b, "| Ticker | Matches | Profit |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, ticker := range report.Tickers {
		fmt.Fprintf(&b, "| %s | %d | %s |\n",
			ticker.Ticker,
			len(ticker.Details),
			ticker.Profit(report.Currency).SignedString(),
		)
	}
	fmt.Fprintf(&b, "| **Total** | | **%s** |\n", report.Total().SignedString())

	return b.String()
}

// DetailsMarkdown renders the full FIFO match breakdown, one section per
// ticker, one row per match.
func DetailsMarkdown(report *portfolio.DetailsReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Profit Details %q from %s to %s\n\n", report.Account, period(report.From), period(report.To))
	fmt.Fprintf(&b, "Currency: %s\n\n", report.Currency)

	for _, ticker := range report.Tickers {
		fmt.Fprintf(&b, "## %s\n\n", ticker.Ticker)
		fmt.Fprintln(&b, "| Sell Date | Quantity | Sell | Buy Date | Buy | Sell Rate | Buy Rate | Profit |")
		fmt.Fprintln(&b, "|:---|---:|---:|:---|---:|---:|---:|---:|")
		for _, m := range ticker.Details {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
				m.SellDate.Format(portfolio.DateFormat),
				m.SellQuantity,
				m.SellAmount,
				m.BuyDate.Format(portfolio.DateFormat),
				m.BuyAmount,
				m.SellRate,
				m.BuyRate,
				m.ProfitExchanged.SignedString(),
			)
		}
		fmt.Fprintf(&b, "\nProfit: **%s**\n\n", ticker.Profit(report.Currency).SignedString())
	}
	fmt.Fprintf(&b, "Total: **%s**\n", report.Total().SignedString())

	return b.String()
}
