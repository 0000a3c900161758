/*
payment.go - Payment ledger

Tracks cumulative payments against a reservation's locked total. Partial,
advance, and full payments all append to the history; FullyPaid flips once
cumulative payments reach the locked total.
*/
package hotel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// ApplyPayment records a payment of amount on the given date and returns
// the updated balance. Non-positive amounts are rejected, as are payments
// on reservations with nothing owing.
func (e *Engine) ApplyPayment(ctx context.Context, locator string, amount decimal.Decimal, on Date) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("amount %s: %w", amount.StringFixed(2), ErrInvalidAmount)
	}

	state, err := e.load(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	r := state.Find(locator)
	if r == nil {
		return decimal.Zero, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}
	if r.FullyPaid && !r.Balance().IsPositive() {
		return decimal.Zero, fmt.Errorf("locator %s: %w", locator, ErrAlreadyFullyPaid)
	}

	if on.IsZero() {
		on = e.Today()
	}

	r.Payments = append(r.Payments, Payment{Date: on, Amount: Cents(amount)})
	r.PaidAdvance = r.PaidAdvance.Add(Cents(amount))
	r.FullyPaid = r.PaidAdvance.GreaterThanOrEqual(r.TotalLocked)

	if err := e.save(ctx, state); err != nil {
		return decimal.Zero, err
	}
	return r.Balance(), nil
}
