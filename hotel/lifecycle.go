/*
lifecycle.go - Reservation lifecycle state machine

PURPOSE:
  Governs which status transitions are legal and what each one does to the
  money. The transition table is explicit: any (status, event) pair not in
  the table is rejected with a TransitionError before anything mutates.

STATES AND EVENTS:

      Booked ──check-in──▶ In-House ──check-out──▶ Checked-out
        │  │                   │
        │  ├──cancel──────────▶│──cancel──▶ Cancelled
        │  └──no-show─────────▶ No-Show
        └──change-dates──▶ Booked (repriced)

  Changing-date is a transient UI marker; the table treats it as Booked.

FEE POLICIES:
  Cancel   Prepaid/60-Day:        no refund, no new fee - the advance
                                  payment already collected is forfeited.
           Conventional/Incentive: < 3 days before arrival charges the
                                  first night's locked rate; otherwise free.
  No-show  Conventional/Incentive: first night's locked rate.
           Prepaid/60-Day:        full locked total, recorded as a fee label
                                  only - the money was collected at booking.
  Charged fees are collected against the card on file by flooring
  PaidAdvance at the fee amount, with the delta appended to the payment
  history.

ATOMICITY:
  Each transition validates, then mutates the loaded State, then saves.
  A rejection or a failed save leaves the persisted store untouched.
*/
package hotel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Event names a lifecycle action for the transition table and error messages.
type Event string

const (
	EventCheckIn     Event = "check-in"
	EventCheckOut    Event = "check-out"
	EventCancel      Event = "cancel"
	EventNoShow      Event = "mark no-show"
	EventChangeDates Event = "change dates"
)

// daysBeforeArrivalPenalty is the cancellation window: cancelling a
// Conventional/Incentive stay fewer than this many days out charges the
// first night.
const daysBeforeArrivalPenalty = 3

// transitions is the closed (state, event) -> new state table. Missing
// pairs are illegal.
var transitions = map[Status]map[Event]Status{
	StatusBooked: {
		EventCheckIn:     StatusInHouse,
		EventCancel:      StatusCancelled,
		EventNoShow:      StatusNoShow,
		EventChangeDates: StatusBooked,
	},
	StatusInHouse: {
		EventCheckOut: StatusCheckedOut,
		EventCancel:   StatusCancelled,
	},
}

// normalizeStatus maps the transient Changing-date marker onto Booked for
// every transition decision.
func normalizeStatus(s Status) Status {
	if s == StatusChangingDate {
		return StatusBooked
	}
	return s
}

// nextStatus resolves the transition table, or fails with TransitionError.
func nextStatus(r *Reservation, ev Event, reason string) (Status, error) {
	from := normalizeStatus(r.Status)
	if to, ok := transitions[from][ev]; ok {
		return to, nil
	}
	if reason == "" {
		reason = fmt.Sprintf("transition not allowed from %s", r.Status)
	}
	return "", &TransitionError{Locator: r.Locator, From: r.Status, Event: ev, Reason: reason}
}

// =============================================================================
// CREATE
// =============================================================================

// CreateReservation validates the input, prices the stay, assigns a locator,
// and saves the new record as Booked. Prepaid and 60-Day reservations
// collect the full total immediately.
func (e *Engine) CreateReservation(ctx context.Context, in CreateInput) (*Reservation, error) {
	if errs := e.validateCreate(&in); errs != nil {
		return nil, errs
	}

	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	span := StaySpan{Arrive: in.Arrive, Depart: in.Depart}
	quote, err := e.quote(state, span, in.Type, decimal.Zero, false, "")
	if err != nil {
		return nil, err
	}

	cleanedPhone, _, _ := CleanPhone(in.Guest.Phone)
	cleanedCard, _, _ := cleanCardNumber(in.CardNumber)
	today := e.Today()

	r := &Reservation{
		Locator: state.NextLocator(e.cfg.LocatorPrefix),
		Guest: Guest{
			Name:     TrimClean(in.Guest.Name),
			Email:    TrimClean(in.Guest.Email),
			Phone:    cleanedPhone,
			Address:  TrimClean(in.Guest.Address),
			Comments: TrimClean(in.Guest.Comments),
		},
		Card: Card{
			Type:     TrimClean(in.CardType),
			LastFour: lastFour(cleanedCard),
			Expiry:   TrimClean(in.CardExpiry),
		},
		Arrive:       in.Arrive,
		Depart:       in.Depart,
		RoomType:     in.RoomType,
		AssignedRoom: TrimClean(in.AssignedRoom),
		Type:         in.Type,
		Nightly:      quote.Nightly,
		TotalLocked:  quote.Total,
		PaidAdvance:  decimal.Zero,
		Fee:          decimal.Zero,
		Status:       StatusBooked,
		CreatedOn:    today,
		CreatedBy:    in.CreatedBy,
	}

	if in.Type.PaidUpFront() {
		r.PaidAdvance = quote.Total
		r.FullyPaid = true
		r.Payments = append(r.Payments, Payment{Date: today, Amount: quote.Total})
	}

	state.Reservations = append(state.Reservations, r)
	if err := e.save(ctx, state); err != nil {
		return nil, err
	}
	return r, nil
}

// =============================================================================
// ROOM ASSIGNMENT
// =============================================================================

// AssignRoom records the physical room for a reservation. Allowed while the
// reservation is still active; check-in requires it.
func (e *Engine) AssignRoom(ctx context.Context, locator, room string) (*Reservation, error) {
	room = TrimClean(room)
	if room == "" {
		return nil, &ValidationError{Field: "room", Reason: "room number is required"}
	}

	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}
	if r.Status.Terminal() {
		return nil, &TransitionError{Locator: locator, From: r.Status, Event: "assign room",
			Reason: "reservation is closed"}
	}

	r.AssignedRoom = room
	if err := e.save(ctx, state); err != nil {
		return nil, err
	}
	return r, nil
}

// =============================================================================
// CHECK-IN / CHECK-OUT
// =============================================================================

// CheckIn moves a Booked reservation In-House. A room must already be
// assigned.
func (e *Engine) CheckIn(ctx context.Context, locator string) (*Reservation, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}

	to, err := nextStatus(r, EventCheckIn, "")
	if err != nil {
		return nil, err
	}
	if !r.RoomAssigned() {
		return nil, &TransitionError{Locator: locator, From: r.Status, Event: EventCheckIn,
			Reason: "no room assigned"}
	}

	now := e.clock.Now()
	today := e.Today()
	r.Status = to
	r.CheckInAt = &now
	r.StatusChangedOn = &today

	if err := e.save(ctx, state); err != nil {
		return nil, err
	}
	return r, nil
}

// CheckOut settles and closes an In-House stay. Any remaining balance on
// types not paid up front is collected as a final payment, and the bill
// artifact is produced.
func (e *Engine) CheckOut(ctx context.Context, locator string) (*Reservation, *Bill, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}

	to, err := nextStatus(r, EventCheckOut, "")
	if err != nil {
		return nil, nil, err
	}

	now := e.clock.Now()
	today := e.Today()

	due := r.TotalLocked.Sub(r.PaidAdvance)
	if due.IsPositive() {
		r.Payments = append(r.Payments, Payment{Date: today, Amount: due})
		r.PaidAdvance = r.PaidAdvance.Add(due)
	}
	r.FullyPaid = true
	r.Status = to
	r.CheckOutAt = &now
	r.StatusChangedOn = &today

	if err := e.save(ctx, state); err != nil {
		return nil, nil, err
	}
	return r, NewBill(r, today), nil
}

// =============================================================================
// CANCEL / NO-SHOW
// =============================================================================

// Cancel closes a reservation before completion, applying the type's fee
// policy. Already-closed reservations cannot be cancelled again.
func (e *Engine) Cancel(ctx context.Context, locator string) (*Reservation, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}

	to, err := nextStatus(r, EventCancel, "")
	if err != nil {
		return nil, err
	}

	today := e.Today()
	if !r.Type.PaidUpFront() {
		// Late cancellation charges the first locked night. Prepaid/60-Day
		// carry no new fee: the advance payment is simply forfeited.
		daysOut := today.DaysUntil(r.Arrive)
		if daysOut < daysBeforeArrivalPenalty {
			e.chargeFee(r, r.FirstNightRate(), today)
		}
	}

	r.Status = to
	r.CancelledOn = &today
	r.StatusChangedOn = &today

	if err := e.save(ctx, state); err != nil {
		return nil, err
	}
	return r, nil
}

// MarkNoShow closes a Booked reservation whose guest never arrived.
func (e *Engine) MarkNoShow(ctx context.Context, locator string) (*Reservation, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}

	to, err := nextStatus(r, EventNoShow, "")
	if err != nil {
		return nil, err
	}

	today := e.Today()
	if r.Type.PaidUpFront() {
		// Full total, already collected at booking: a bookkeeping label,
		// not a new charge.
		r.Fee = r.TotalLocked
	} else {
		e.chargeFee(r, r.FirstNightRate(), today)
	}

	r.Status = to
	r.NoShowOn = &today
	r.StatusChangedOn = &today

	if err := e.save(ctx, state); err != nil {
		return nil, err
	}
	return r, nil
}

// chargeFee records a fee and collects it against the card on file by
// flooring PaidAdvance at the fee amount.
func (e *Engine) chargeFee(r *Reservation, fee decimal.Decimal, today Date) {
	if !fee.IsPositive() {
		return
	}
	r.Fee = fee
	if r.PaidAdvance.LessThan(fee) {
		delta := fee.Sub(r.PaidAdvance)
		r.Payments = append(r.Payments, Payment{Date: today, Amount: delta})
		r.PaidAdvance = fee
	}
}

// =============================================================================
// DATE CHANGE
// =============================================================================

// ChangeDates moves a Booked reservation to a new span. The new span must
// have room on every night (ignoring this reservation's own occupancy);
// otherwise the change is refused and nothing mutates. On success the
// dates, locked total, and nightly snapshot are replaced atomically and the
// repricing arithmetic is recorded on the record. Payment state is never
// touched here - any premium is billable separately.
func (e *Engine) ChangeDates(ctx context.Context, locator string, span StaySpan) (*Reservation, error) {
	if err := span.Validate(); err != nil {
		return nil, err
	}

	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}

	if _, err := nextStatus(r, EventChangeDates, ""); err != nil {
		return nil, err
	}

	avail := Availability(state.Active(), span, e.cfg.Capacity, locator)
	if !avail.Available {
		return nil, fmt.Errorf("span %s: %w", span, ErrAvailabilityConflict)
	}

	quote, err := e.quote(state, span, r.Type, r.TotalLocked, true, locator)
	if err != nil {
		return nil, err
	}

	r.Arrive = span.Arrive
	r.Depart = span.Depart
	r.Nightly = quote.Nightly
	r.TotalLocked = quote.Total
	r.ChangeNote = quote.ChangeNote
	r.Status = StatusBooked // clears the transient Changing-date marker

	// FullyPaid is derived from the new total; the payments themselves are
	// untouched.
	r.FullyPaid = r.PaidAdvance.GreaterThanOrEqual(r.TotalLocked)

	if err := e.save(ctx, state); err != nil {
		return nil, err
	}
	return r, nil
}
