package portfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// The rates file is JSONL: one currency pair per line, the whole series of
// that pair as a single json object mapping dates to rates.

// jpair is the readable form of one rate series line.
type jpair struct {
	Origin string                     `json:"origin"`
	Target string                     `json:"target"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// DecodeRateTable decodes rate series from a stream of JSONL data.
func DecodeRateTable(r io.Reader) (*RateTable, error) {
	table := NewRateTable()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jp jpair
		if err := json.Unmarshal(line, &jp); err != nil {
			return nil, fmt.Errorf("could not parse rates line %q: %w", string(line), err)
		}
		for day, rate := range jp.Rates {
			d, err := ParseDate(day)
			if err != nil {
				return nil, fmt.Errorf("in %s-%s series: %w", jp.Origin, jp.Target, err)
			}
			if err := table.Append(d, jp.Origin, jp.Target, rate); err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read rates: %w", err)
	}
	return table, nil
}

// EncodeRateTable writes the rate table in canonical JSONL form, pairs
// sorted alphabetically.
func EncodeRateTable(w io.Writer, table *RateTable) error {
	for _, pair := range table.Pairs() {
		origin, target, _ := strings.Cut(pair, "-")
		jp := jpair{
			Origin: origin,
			Target: target,
			Rates:  make(map[string]decimal.Decimal),
		}
		for day, rate := range table.History(origin, target).Values() {
			jp.Rates[day.String()] = rate
		}
		data, err := json.Marshal(jp)
		if err != nil {
			return fmt.Errorf("cannot marshal %s rate series: %w", pair, err)
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			return fmt.Errorf("cannot write rates: %w", err)
		}
	}
	return nil
}
