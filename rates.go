package portfolio

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// RateHistory stores a chronological series of exchange rates, each
// associated with a specific day. Days are unique and the series is always
// sorted.
type RateHistory struct {
	days  []Date
	rates []decimal.Decimal
}

// Len returns the number of days in the series.
func (h *RateHistory) Len() int { return len(h.days) }

// First returns the earliest day and rate in the series.
// If the series is empty, it returns zero values.
func (h *RateHistory) First() (day Date, rate decimal.Decimal) {
	if len(h.days) == 0 {
		return Date{}, decimal.Decimal{}
	}
	return h.days[0], h.rates[0]
}

// Rate returns the rate published on exactly that day.
func (h *RateHistory) Rate(on Date) (rate decimal.Decimal, ok bool) {
	if i := slices.Index(h.days, on); i >= 0 {
		return h.rates[i], true
	}
	return decimal.Decimal{}, false
}

// chronological is a private implementation to keep the series sorted.
type chronological struct{ *RateHistory }

func (s chronological) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }

func (s chronological) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.rates[i], s.rates[j] = s.rates[j], s.rates[i]
}

func (h *RateHistory) sort() { sort.Sort(chronological{h}) }

// Append adds a rate to the series.
//
// An existing rate on that day is overwritten.
func (h *RateHistory) Append(on Date, rate decimal.Decimal) *RateHistory {
	if i := slices.Index(h.days, on); i >= 0 {
		// A rate already exists on that day. We choose to replace, so the
		// last loaded data wins.
		h.rates[i] = rate
		return h
	}
	h.days, h.rates = append(h.days, on), append(h.rates, rate)
	h.sort()
	return h
}

// Values returns an iterator over all day/rate pairs, in chronological order.
func (h *RateHistory) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, day := range h.days {
			if !yield(day, h.rates[i]) {
				return
			}
		}
	}
}

// Slice returns the sub-series within the window. A zero 'from' or 'to'
// leaves that side unbounded.
func (h *RateHistory) Slice(from, to Date) *RateHistory {
	out := &RateHistory{}
	for i, day := range h.days {
		if !from.IsZero() && day.Before(from) {
			continue
		}
		if !to.IsZero() && day.After(to) {
			continue
		}
		// days are already sorted, append keeps the order
		out.days = append(out.days, day)
		out.rates = append(out.rates, h.rates[i])
	}
	return out
}

// RateTable holds the known exchange rate series, one per ordered currency
// pair. It implements [RateSource].
type RateTable struct {
	pairs map[string]*RateHistory
}

// NewRateTable returns a new empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{pairs: make(map[string]*RateHistory)}
}

// pairKey is the canonical "ORIGIN-TARGET" key of an ordered currency pair.
func pairKey(origin, target string) string { return origin + "-" + target }

// Append records the rate of the ordered pair on that day, overwriting any
// previously known rate for the same day. Currency codes are normalized to
// upper case.
func (t *RateTable) Append(on Date, origin, target string, rate decimal.Decimal) error {
	origin, target = strings.ToUpper(origin), strings.ToUpper(target)
	if err := ValidateCurrency(origin); err != nil {
		return fmt.Errorf("invalid origin: %w", err)
	}
	if err := ValidateCurrency(target); err != nil {
		return fmt.Errorf("invalid target: %w", err)
	}
	if on.IsZero() {
		return fmt.Errorf("missing date for %s rate", pairKey(origin, target))
	}
	if !rate.IsPositive() {
		return fmt.Errorf("rate for %s on %s must be positive, got %s", pairKey(origin, target), on, rate)
	}
	key := pairKey(origin, target)
	h, ok := t.pairs[key]
	if !ok {
		h = &RateHistory{}
		t.pairs[key] = h
	}
	h.Append(on, rate)
	return nil
}

// Merge appends every rate of 'h' for the ordered pair.
func (t *RateTable) Merge(origin, target string, h *RateHistory) error {
	for day, rate := range h.Values() {
		if err := t.Append(day, origin, target, rate); err != nil {
			return err
		}
	}
	return nil
}

// Pairs returns the known ordered currency pairs, sorted.
func (t *RateTable) Pairs() []string {
	keys := make([]string, 0, len(t.pairs))
	for key := range t.pairs {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// History returns the full series of an ordered pair, or nil when unknown.
func (t *RateTable) History(origin, target string) *RateHistory {
	return t.pairs[pairKey(origin, target)]
}

// Rates implements [RateSource]. An unknown pair yields an empty series,
// not an error: the resolver decides how hard a missing pair fails.
func (t *RateTable) Rates(origin, target string, from, to Date) (*RateHistory, error) {
	h, ok := t.pairs[pairKey(origin, target)]
	if !ok {
		return &RateHistory{}, nil
	}
	return h.Slice(from, to), nil
}
