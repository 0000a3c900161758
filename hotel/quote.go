/*
quote.go - Price quoting and incentive eligibility

PURPOSE:
  Produces the locked nightly-rate breakdown for a stay. This is the revenue
  core: type multipliers, the incentive eligibility gate, per-night rounding,
  and the date-change surcharge.

PRICING RULES:
  multiplier:  Prepaid 0.75, 60-Day 0.85, Conventional 1.00, Incentive 0.80
  eligibility: daysUntilArrival <= 30 AND occupancy <= 0.60
               An ineligible Incentive booking pays the full 1.00 rate -
               the discount only rewards near-term bookings into a soft span.
  rounding:    each night is rounded to cents BEFORE summing; the total is
               the sum of rounded nights, rounded again to cents.

DATE-CHANGE SURCHARGE:
  Types paid up front (Prepaid, 60-Day) pay a 10% premium on the recomputed
  total when their dates change: adjusted = round(new * 1.10, 2), penalty =
  max(0, adjusted - original). Conventional and Incentive reprice plainly.
  The change note records the arithmetic for the audit trail.

STALENESS:
  Occupancy and eligibility are computed against store state at quote time.
  A quote can go stale if other bookings land before it is saved; that
  window is accepted, not guarded.
*/
package hotel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// incentive eligibility thresholds
const (
	incentiveMaxDaysOut   = 30
	incentiveMaxOccupancy = 0.60
)

// changePremium is the multiplier applied to the recomputed total when a
// paid-up-front reservation changes dates.
var changePremium = decimal.NewFromFloat(1.10)

// Quote is a priced stay. Saving a reservation freezes Nightly and Total
// onto the record.
type Quote struct {
	Span StaySpan        `json:"span"`
	Type ReservationType `json:"rtype"`

	Nightly []NightRate     `json:"nightly"`
	Total   decimal.Decimal `json:"total"`

	IncentiveEligible bool    `json:"incentive_eligible"`
	OccupancyRatio    float64 `json:"occupancy_ratio"`

	// ChangeNote and Penalty are only set by QuoteChange.
	ChangeNote string          `json:"change_note,omitempty"`
	Penalty    decimal.Decimal `json:"penalty"`
}

// Quote prices a prospective stay against current store state.
func (e *Engine) Quote(ctx context.Context, span StaySpan, rtype ReservationType) (*Quote, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return e.quote(state, span, rtype, decimal.Zero, false, "")
}

// QuoteChange reprices an existing reservation for new dates, applying the
// change-premium policy against its locked original cost. The reservation's
// own occupancy is excluded so it does not compete with itself.
func (e *Engine) QuoteChange(ctx context.Context, span StaySpan, rtype ReservationType, originalCost decimal.Decimal, excludeLocator string) (*Quote, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return e.quote(state, span, rtype, originalCost, true, excludeLocator)
}

func (e *Engine) quote(state *State, span StaySpan, rtype ReservationType, originalCost decimal.Decimal, isChange bool, excludeLocator string) (*Quote, error) {
	if err := span.Validate(); err != nil {
		return nil, err
	}
	if !rtype.Valid() {
		return nil, &ValidationError{Field: "rtype", Reason: fmt.Sprintf("unknown reservation type %q", rtype)}
	}

	occ := OccupancyRatio(state.Active(), span, e.cfg.Capacity, excludeLocator)
	daysOut := e.Today().DaysUntil(span.Arrive)
	eligible := daysOut <= incentiveMaxDaysOut && occ <= incentiveMaxOccupancy

	mult := rtype.Multiplier()
	if rtype == TypeIncentive && !eligible {
		mult = decimal.NewFromInt(1) // discount not honored, full rate applies
	}

	nightly := make([]NightRate, 0, span.Nights())
	total := decimal.Zero
	for _, d := range span.Dates() {
		rate := Cents(state.Rates.Rate(d, e.cfg.DefaultRate).Mul(mult))
		nightly = append(nightly, NightRate{Date: d, Rate: rate})
		total = total.Add(rate)
	}
	total = Cents(total)

	q := &Quote{
		Span:              span,
		Type:              rtype,
		Nightly:           nightly,
		Total:             total,
		IncentiveEligible: eligible,
		OccupancyRatio:    occ,
		Penalty:           decimal.Zero,
	}

	if isChange {
		q.applyChangePolicy(originalCost)
	}
	return q, nil
}

// applyChangePolicy folds the date-change surcharge into the quote. Only
// paid-up-front types carry the 10% premium; the premium is applied
// unconditionally for those types, never capped at the original cost.
func (q *Quote) applyChangePolicy(originalCost decimal.Decimal) {
	if !q.Type.PaidUpFront() {
		q.ChangeNote = fmt.Sprintf(
			"Date change to %s: new total $%s replaces $%s (no change premium for %s).",
			q.Span, q.Total.StringFixed(2), originalCost.StringFixed(2), q.Type)
		return
	}

	plain := q.Total
	adjusted := Cents(plain.Mul(changePremium))
	penalty := adjusted.Sub(originalCost)
	if penalty.IsNegative() {
		penalty = decimal.Zero
	}

	q.Total = adjusted
	q.Penalty = penalty
	q.ChangeNote = fmt.Sprintf(
		"Date change to %s: recomputed total $%s, +10%% change premium = $%s; previous locked total $%s; additional due $%s.",
		q.Span, plain.StringFixed(2), adjusted.StringFixed(2),
		originalCost.StringFixed(2), penalty.StringFixed(2))
}
