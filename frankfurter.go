package portfolio

import (
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// This file fetches historical daily exchange rates from frankfurter.app,
// a free ECB reference rate service.

/*
	{
	    "amount": 1.0,
	    "base": "USD",
	    "start_date": "2024-01-02",
	    "end_date": "2024-01-05",
	    "rates": {
	        "2024-01-02": { "GBP": 0.79271 },
	        "2024-01-03": { "GBP": 0.78972 }
	    }
	}
*/

// FetchRates downloads the daily rate series of the ordered currency pair
// over the window. Weekends and holidays are simply absent from the
// response, the resolver's backward walk deals with them.
func FetchRates(origin, target string, from, to Date) (*RateHistory, error) {
	origin, target = strings.ToUpper(origin), strings.ToUpper(target)
	if err := ValidateCurrency(origin); err != nil {
		return nil, fmt.Errorf("invalid origin: %w", err)
	}
	if err := ValidateCurrency(target); err != nil {
		return nil, fmt.Errorf("invalid target: %w", err)
	}
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("fetching %s-%s rates requires a bounded window", origin, target)
	}

	addr := fmt.Sprintf("https://api.frankfurter.app/%s..%s?from=%s&to=%s", from, to, origin, target)
	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", pairKey(origin, target), err)
	}

	path := "$.rates"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %q %w", pairKey(origin, target), path, err)
	}
	days, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error parsing %q: %q %s %v", pairKey(origin, target), path, "not an object", jval)
	}

	h := &RateHistory{}
	for day, byCurrency := range days {
		d, err := ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("unexpected date in %s response: %w", addr, err)
		}
		jrates, ok := byCurrency.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected rates on %s in %s response: %v", day, addr, byCurrency)
		}
		rate, ok := jrates[target].(float64)
		if !ok {
			return nil, fmt.Errorf("missing %s rate on %s in %s response", target, day, addr)
		}
		h.Append(d, decimal.NewFromFloat(rate))
	}
	return h, nil
}
