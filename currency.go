package portfolio

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Conversion failures, wrapped with pair and date context before surfacing.
var (
	// ErrExchangeNotFound means no rate series exists at all for a
	// currency pair within the resolver window.
	ErrExchangeNotFound = errors.New("exchange rates not found")
	// ErrConversionFailed means a series exists but holds no rate on or
	// before the requested date.
	ErrConversionFailed = errors.New("exchange rate conversion failed")
)

// conversionTickers are the pseudo-tickers brokers report for currency
// hedging operations. They are not stocks and are excluded from profit
// accounting.
var conversionTickers = map[string]bool{
	"USDGBP": true,
	"USDEUR": true,
	"GBPUSD": true,
	"GBPEUR": true,
	"EURUSD": true,
	"EURGBP": true,
}

// IsConversion reports whether the ticker names a currency conversion
// pseudo-operation rather than a stock. Case insensitive.
func IsConversion(ticker string) bool {
	return conversionTickers[strings.ToUpper(ticker)]
}

// Converter resolves point-in-time exchange rates between currency codes
// from historical daily series, tolerating non-trading days.
//
// A Converter is scoped to a single report computation: it caches every
// series it fetches for the lifetime of the instance, and the cache is
// never invalidated. Build a fresh Converter per report so rates are never
// reused across a different window.
type Converter struct {
	source   RateSource
	from, to Date // window fetched from the source, zero sides unbounded
	cache    map[string]*RateHistory
}

// NewConverter returns a Converter fetching rates from 'source' within the
// given window.
func NewConverter(source RateSource, from, to Date) *Converter {
	return &Converter{
		source: source,
		from:   from,
		to:     to,
		cache:  make(map[string]*RateHistory),
	}
}

// Rate resolves how many units of 'target' one unit of 'origin' was worth
// on the day of 'on'.
//
// Currency codes are uppercased on entry. Identical codes resolve to 1
// without touching the source. Brokers timestamp operations on weekends
// and holidays with no published rate, so the resolution walks backward
// one day at a time and returns the nearest prior rate, stopping at the
// start of the known series.
func (c *Converter) Rate(origin, target string, on time.Time) (decimal.Decimal, error) {
	origin, target = strings.ToUpper(origin), strings.ToUpper(target)
	if origin == target {
		return decimal.NewFromInt(1), nil
	}

	key := pairKey(origin, target)
	series, ok := c.cache[key]
	if !ok {
		var err error
		series, err = c.source.Rates(origin, target, c.from, c.to)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("fetching %s rates: %w", key, err)
		}
		// cache even an empty series, there is no point asking again
		c.cache[key] = series
	}

	if series.Len() == 0 {
		return decimal.Decimal{}, fmt.Errorf("no rates for %s: %w", key, ErrExchangeNotFound)
	}

	earliest, _ := series.First()
	for day := DateOf(on); !day.Before(earliest); day = day.Add(-1) {
		if rate, ok := series.Rate(day); ok {
			return rate, nil
		}
	}
	return decimal.Decimal{}, fmt.Errorf("no %s rate on or before %s: %w", key, DateOf(on), ErrConversionFailed)
}
