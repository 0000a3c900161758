/*
rates.go - Per-date nightly base price table

Every date resolves to a price: the configured rate when the date is set,
the default otherwise. There are no error cases.
*/
package hotel

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DefaultNightlyRate is the fallback when a date has no configured rate and
// the engine was not given its own default.
var DefaultNightlyRate = decimal.NewFromInt(300)

// RateTable maps ISO dates (YYYY-MM-DD) to nightly base prices.
type RateTable map[string]decimal.Decimal

// Rate returns the configured price for d, or fallback when unset.
func (rt RateTable) Rate(d Date, fallback decimal.Decimal) decimal.Decimal {
	if price, ok := rt[d.String()]; ok {
		return price
	}
	return fallback
}

// Set adds or updates the rate for a date.
func (rt RateTable) Set(d Date, price decimal.Decimal) {
	rt[d.String()] = Cents(price)
}

// Remove deletes the rate for a date, reverting it to the default.
func (rt RateTable) Remove(d Date) {
	delete(rt, d.String())
}

// Entries returns the configured rates sorted by date. ISO strings sort
// chronologically, so plain string order is calendar order.
func (rt RateTable) Entries() []NightRate {
	keys := make([]string, 0, len(rt))
	for k := range rt {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]NightRate, 0, len(keys))
	for _, k := range keys {
		d, err := ParseDate(k)
		if err != nil {
			continue // skip malformed keys rather than failing the listing
		}
		entries = append(entries, NightRate{Date: d, Rate: rt[k]})
	}
	return entries
}
