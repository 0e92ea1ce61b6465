// Package aggregate sums normalized amounts across collections of records,
// either in total or grouped by a key.
package aggregate

import (
	"fmt"

	"github.com/iwvelando/canfin/pkg/frequency"
	"github.com/iwvelando/canfin/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Group is the accumulated amount for one key. Percentage is the share of the
// grand total and is nil when the total is zero.
type Group struct {
	Key        string           `json:"key"`
	Amount     decimal.Decimal  `json:"amount"`
	Percentage *decimal.Decimal `json:"percentage,omitempty"`
}

// AmountFunc extracts an amount from a record.
type AmountFunc[T any] func(T) decimal.Decimal

// FrequencyFunc extracts the frequency of a periodic record.
type FrequencyFunc[T any] func(T) frequency.Frequency

// KeyFunc extracts the grouping key of a record.
type KeyFunc[T any] func(T) string

// SumMonthly sums the monthly equivalent of every record. An empty slice sums
// to zero.
func SumMonthly[T any](records []T, amountOf AmountFunc[T], frequencyOf FrequencyFunc[T]) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, record := range records {
		monthly, err := frequency.ToMonthly(amountOf(record), frequencyOf(record))
		if err != nil {
			return decimal.Zero, fmt.Errorf("record %d: %w", i, err)
		}
		total = total.Add(monthly)
	}
	return total, nil
}

// Sum adds point-in-time values that carry no frequency.
func Sum[T any](records []T, amountOf AmountFunc[T]) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(amountOf(record))
	}
	return total
}

// GroupedMonthly accumulates monthly equivalents per key. Groups are returned
// in order of first occurrence.
func GroupedMonthly[T any](records []T, keyOf KeyFunc[T], amountOf AmountFunc[T], frequencyOf FrequencyFunc[T]) ([]Group, error) {
	acc := newAccumulator()
	for i, record := range records {
		monthly, err := frequency.ToMonthly(amountOf(record), frequencyOf(record))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		acc.add(keyOf(record), monthly)
	}
	return acc.groups(), nil
}

// Grouped accumulates point-in-time values per key in order of first
// occurrence.
func Grouped[T any](records []T, keyOf KeyFunc[T], amountOf AmountFunc[T]) []Group {
	acc := newAccumulator()
	for _, record := range records {
		acc.add(keyOf(record), amountOf(record))
	}
	return acc.groups()
}

// FromTotals builds groups directly from labelled totals, e.g. the
// assets/liabilities split of a net worth chart.
func FromTotals(keys []string, amounts []decimal.Decimal) []Group {
	acc := newAccumulator()
	for i, key := range keys {
		if i < len(amounts) {
			acc.add(key, amounts[i])
		}
	}
	return acc.groups()
}

// Total returns the sum of all group amounts.
func Total(groups []Group) decimal.Decimal {
	total := decimal.Zero
	for _, g := range groups {
		total = total.Add(g.Amount)
	}
	return total
}

type accumulator struct {
	order  []string
	totals map[string]decimal.Decimal
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]decimal.Decimal)}
}

func (a *accumulator) add(key string, amount decimal.Decimal) {
	current, seen := a.totals[key]
	if !seen {
		a.order = append(a.order, key)
	}
	a.totals[key] = current.Add(amount)
}

func (a *accumulator) groups() []Group {
	groups := make([]Group, 0, len(a.order))
	grand := decimal.Zero
	for _, key := range a.order {
		grand = grand.Add(a.totals[key])
	}
	for _, key := range a.order {
		g := Group{Key: key, Amount: a.totals[key]}
		if pct, ok := mathutil.Percentage(g.Amount, grand); ok {
			g.Percentage = &pct
		}
		groups = append(groups, g)
	}
	return groups
}
