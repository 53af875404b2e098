package portfolio

import (
	"fmt"
	"strings"
	"time"
)

// AggregationError wraps the failure of a single ticker during a report.
// The report is aborted on the first failing ticker: a partial financial
// total is worse than no total.
type AggregationError struct {
	Ticker string
	Err    error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("computing profits for ticker %q: %v", e.Ticker, e.Err)
}

func (e *AggregationError) Unwrap() error { return e.Err }

// DetailsReport is the per-ticker FIFO match breakdown of an account over
// a period, every amount normalized into 'Currency'.
type DetailsReport struct {
	Account  string
	Currency string
	From, To time.Time // zero sides were unbounded
	Tickers  []TickerProfits
}

// Total sums the exchanged profit over every ticker of the report.
func (r *DetailsReport) Total() Money {
	total := M(0, r.Currency)
	for _, t := range r.Tickers {
		total = total.Add(t.Profit(r.Currency))
	}
	return total
}

// ProfitService orchestrates per-account profit reporting on top of the
// read interfaces.
type ProfitService struct {
	ops   OperationSource
	rates RateSource
}

// NewProfitService wires a ProfitService from its sources.
func NewProfitService(ops OperationSource, rates RateSource) *ProfitService {
	return &ProfitService{ops: ops, rates: rates}
}

// TotalDetails computes the FIFO profit breakdown of every ticker the
// account sold within the period, normalized to the target currency.
//
// The period bounds which tickers count as sold, not which buys are
// visible: matching always sees the full history up to 'to', so a sell
// inside the window matches buys from years before it.
func (s *ProfitService) TotalDetails(account, targetCurrency string, from, to time.Time) (*DetailsReport, error) {
	targetCurrency = strings.ToUpper(targetCurrency)
	if err := ValidateCurrency(targetCurrency); err != nil {
		return nil, fmt.Errorf("invalid target currency: %w", err)
	}

	tickers, err := s.ops.TickersSold(account, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing tickers sold by %q: %w", account, err)
	}

	// The rate window is open at the start on purpose: the buy leg of a
	// match can predate the reporting period by years and still needs a
	// rate on its own date.
	var rateEnd Date
	if !to.IsZero() {
		rateEnd = DateOf(to)
	}
	converter := NewConverter(s.rates, Date{}, rateEnd)
	calculator := NewCalculator(NewExchanger(converter))

	report := &DetailsReport{
		Account:  account,
		Currency: targetCurrency,
		From:     from,
		To:       to,
	}
	for _, ticker := range tickers {
		if IsConversion(ticker) {
			// currency hedges are not stock profits
			continue
		}

		operations, err := s.ops.TickerOperations(account, ticker, to)
		if err != nil {
			return nil, fmt.Errorf("loading %q operations of %q: %w", ticker, account, err)
		}

		matches, err := calculator.TickerProfits(ticker, operations, targetCurrency)
		if err != nil {
			return nil, &AggregationError{Ticker: ticker, Err: err}
		}

		report.Tickers = append(report.Tickers, TickerProfits{Ticker: ticker, Details: matches})
	}
	return report, nil
}

// Total computes the account's realized profit over the period as a single
// amount in the target currency. It is the sum of the exchanged profit of
// every match TotalDetails would report.
func (s *ProfitService) Total(account, targetCurrency string, from, to time.Time) (Money, error) {
	report, err := s.TotalDetails(account, targetCurrency, from, to)
	if err != nil {
		return Money{}, err
	}
	return report.Total(), nil
}
