/*
Package hotel implements the reservation pricing and lifecycle engine.

PURPOSE:
  This package contains the domain core for a small hotel's reservation
  system: nightly rate lookup, occupancy estimation, price quoting with
  incentive-rate eligibility, the reservation lifecycle state machine
  (booking, check-in, check-out, cancellation, no-show, date changes),
  the payment ledger, and the daily batch sweep.

KEY CONCEPTS IN THIS FILE (types.go):
  - Date: A calendar day (the engine's only time granularity)
  - StaySpan: A half-open [arrive, depart) night range
  - Reservation: The central entity with its locked pricing snapshot
  - ReservationType / RoomType / Status: Closed enumerations

DESIGN PRINCIPLES:
  1. Precision: All money is decimal.Decimal, rounded to cents per night
     BEFORE summing. Sum-of-rounded is the reproducible total.
  2. Immutability of the snapshot: Nightly rates and TotalLocked are frozen
     at save time; only the explicit date-change operation replaces them,
     atomically, with a recorded note.
  3. Type Safety: Statuses and reservation types are closed enums with an
     explicit transition table (see lifecycle.go).

SEE ALSO:
  - quote.go: Quote computation and incentive eligibility
  - lifecycle.go: Status transitions and their side effects
  - payment.go: Payment ledger
  - batch.go: Daily batch task runner
*/
package hotel

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// DATE - Calendar day (the engine never reasons below day granularity)
// =============================================================================

// Date is a calendar day in UTC. It is comparable and marshals as
// "2006-01-02", which is also the key format of the rate table.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

const dateLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) Date {
	// Normalize through time.Date so Feb 30 etc. roll over consistently.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// DateOf truncates a time.Time to its UTC calendar day.
func DateOf(t time.Time) Date {
	u := t.UTC()
	return Date{Year: u.Year(), Month: u.Month(), Day: u.Day()}
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date { return DateOf(d.Time().AddDate(0, 0, n)) }
func (d Date) Before(o Date) bool { return d.Time().Before(o.Time()) }
func (d Date) After(o Date) bool  { return d.Time().After(o.Time()) }
func (d Date) Equal(o Date) bool  { return d == o }
func (d Date) IsZero() bool       { return d == Date{} }

// String renders as YYYY-MM-DD; the zero Date renders empty rather than
// letting time.Date normalize it into "-0001-11-30".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(dateLayout)
}

func (d Date) Weekday() time.Weekday { return d.Time().Weekday() }

// DaysUntil returns the signed number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText accepts empty text as the zero Date so records with unset
// date fields survive a persistence round trip.
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// STAY SPAN - Half-open [Arrive, Depart) night range
// =============================================================================

// StaySpan is the night range of a stay. The departure day is NOT a night:
// a guest arriving on the 10th and departing on the 13th pays for 3 nights.
type StaySpan struct {
	Arrive Date
	Depart Date
}

// Validate rejects spans where departure is not strictly after arrival.
func (s StaySpan) Validate() error {
	if !s.Depart.After(s.Arrive) {
		return ErrInvalidDateRange
	}
	return nil
}

// Nights returns the number of nights in the span.
func (s StaySpan) Nights() int {
	return s.Arrive.DaysUntil(s.Depart)
}

// Dates returns every night in the span, in calendar order.
func (s StaySpan) Dates() []Date {
	var dates []Date
	for d := s.Arrive; d.Before(s.Depart); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// Contains reports whether night d falls within [Arrive, Depart).
func (s StaySpan) Contains(d Date) bool {
	return !d.Before(s.Arrive) && d.Before(s.Depart)
}

func (s StaySpan) String() string {
	return s.Arrive.String() + " -> " + s.Depart.String()
}

// =============================================================================
// ENUMERATIONS
// =============================================================================

// ReservationType selects the pricing multiplier and payment-timing policy.
type ReservationType string

const (
	TypePrepaid      ReservationType = "Prepaid"      // 0.75x, paid in full at booking
	TypeSixtyDay     ReservationType = "60-Day"       // 0.85x, paid in full at booking
	TypeConventional ReservationType = "Conventional" // 1.00x, settled at checkout
	TypeIncentive    ReservationType = "Incentive"    // 0.80x when eligible, else 1.00x
)

// ReservationTypes lists all valid types, in display order.
var ReservationTypes = []ReservationType{TypePrepaid, TypeSixtyDay, TypeConventional, TypeIncentive}

// Valid reports whether t is a known reservation type.
func (t ReservationType) Valid() bool {
	switch t {
	case TypePrepaid, TypeSixtyDay, TypeConventional, TypeIncentive:
		return true
	}
	return false
}

// PaidUpFront reports whether this type collects the full total at booking.
func (t ReservationType) PaidUpFront() bool {
	return t == TypePrepaid || t == TypeSixtyDay
}

// Multiplier returns the base pricing multiplier for the type. The incentive
// eligibility fallback (0.80 -> 1.00) is applied by the quote engine, not here.
func (t ReservationType) Multiplier() decimal.Decimal {
	switch t {
	case TypePrepaid:
		return decimal.NewFromFloat(0.75)
	case TypeSixtyDay:
		return decimal.NewFromFloat(0.85)
	case TypeIncentive:
		return decimal.NewFromFloat(0.80)
	default:
		return decimal.NewFromInt(1)
	}
}

// MinAdvanceDays returns how many days before arrival this type must be
// booked. Prepaid guarantees the discount by committing 90 days out,
// 60-Day by committing 60 days out.
func (t ReservationType) MinAdvanceDays() int {
	switch t {
	case TypePrepaid:
		return 90
	case TypeSixtyDay:
		return 60
	default:
		return 0
	}
}

// RoomType is the class of room requested at booking time.
type RoomType string

const (
	RoomStandard  RoomType = "Standard"
	RoomDeluxe    RoomType = "Deluxe"
	RoomSuite     RoomType = "Suite"
	RoomPenthouse RoomType = "Penthouse"
)

var RoomTypes = []RoomType{RoomStandard, RoomDeluxe, RoomSuite, RoomPenthouse}

func (r RoomType) Valid() bool {
	switch r {
	case RoomStandard, RoomDeluxe, RoomSuite, RoomPenthouse:
		return true
	}
	return false
}

// Status is the reservation lifecycle state. See lifecycle.go for the
// transition table.
type Status string

const (
	StatusBooked     Status = "Booked"
	StatusInHouse    Status = "In-House"
	StatusCheckedOut Status = "Checked-out"
	StatusCancelled  Status = "Cancelled"
	StatusNoShow     Status = "No-Show"

	// StatusChangingDate is a transient UI marker. The engine treats it as
	// Booked for every transition decision.
	StatusChangingDate Status = "Changing-date"
)

// Active reports whether the reservation still occupies inventory.
// Booked, In-House, and the transient Changing-date all count.
func (s Status) Active() bool {
	return s == StatusBooked || s == StatusInHouse || s == StatusChangingDate
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled || s == StatusNoShow
}

// =============================================================================
// RESERVATION - The central entity
// =============================================================================

// Guest holds the contact details captured at booking. The engine validates
// them on creation and treats them as immutable afterward.
type Guest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Comments string `json:"comments,omitempty"`
}

// Card is the stored payment instrument. Only the last four digits are ever
// persisted; the full PAN is validated at intake and discarded.
type Card struct {
	Type     string `json:"type"`
	LastFour string `json:"last_four"`
	Expiry   string `json:"expiry"` // MM-YYYY
}

// NightRate is one entry of the locked nightly snapshot.
type NightRate struct {
	Date Date            `json:"date"`
	Rate decimal.Decimal `json:"rate"`
}

// Payment is one entry of the payment history.
type Payment struct {
	Date   Date            `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// Reservation is the central record. TotalLocked and Nightly are frozen at
// save time; ChangeDates replaces both atomically and records ChangeNote.
type Reservation struct {
	Locator string `json:"locator"`
	Guest   Guest  `json:"guest"`
	Card    Card   `json:"card"`

	Arrive   Date     `json:"arrive"`
	Depart   Date     `json:"depart"`
	RoomType RoomType `json:"room_type"`

	// AssignedRoom is empty until the front desk assigns a physical room.
	// Check-in requires it.
	AssignedRoom string `json:"assigned_room,omitempty"`

	Type        ReservationType `json:"rtype"`
	Nightly     []NightRate     `json:"nightly"`
	TotalLocked decimal.Decimal `json:"total_locked"`
	PaidAdvance decimal.Decimal `json:"paid_advance"`
	FullyPaid   bool            `json:"fully_paid"`
	Payments    []Payment       `json:"payments,omitempty"`

	Status     Status          `json:"status"`
	Fee        decimal.Decimal `json:"fee"`
	ChangeNote string          `json:"change_note,omitempty"`

	CreatedOn Date   `json:"created_on"`
	CreatedBy string `json:"created_by,omitempty"`

	CheckInAt       *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt      *time.Time `json:"check_out_at,omitempty"`
	CancelledOn     *Date      `json:"cancelled_on,omitempty"`
	NoShowOn        *Date      `json:"no_show_on,omitempty"`
	StatusChangedOn *Date      `json:"status_changed_on,omitempty"`
}

// Span returns the reservation's stay span.
func (r *Reservation) Span() StaySpan {
	return StaySpan{Arrive: r.Arrive, Depart: r.Depart}
}

// Nights returns the night count of the stay.
func (r *Reservation) Nights() int { return r.Span().Nights() }

// RoomAssigned reports whether a physical room has been assigned.
func (r *Reservation) RoomAssigned() bool { return r.AssignedRoom != "" }

// FirstNightRate returns the first entry of the locked snapshot, or zero if
// the snapshot is empty. Cancellation and no-show penalties charge this rate.
func (r *Reservation) FirstNightRate() decimal.Decimal {
	if len(r.Nightly) == 0 {
		return decimal.Zero
	}
	return r.Nightly[0].Rate
}

// Balance is what the guest still owes: max(0, total - paid) plus any
// outstanding fee. For cancelled and no-show reservations the stay total is
// no longer owed; only a fee not covered by money already collected remains.
func (r *Reservation) Balance() decimal.Decimal {
	if r.Status == StatusCancelled || r.Status == StatusNoShow {
		due := r.Fee.Sub(r.PaidAdvance)
		if due.IsNegative() {
			return decimal.Zero
		}
		return due
	}
	due := r.TotalLocked.Sub(r.PaidAdvance)
	if due.IsNegative() {
		due = decimal.Zero
	}
	return due.Add(r.Fee)
}

// Clone returns a deep copy. Stores hand out clones so callers can never
// mutate persisted state behind the engine's back.
func (r *Reservation) Clone() *Reservation {
	c := *r
	c.Nightly = append([]NightRate(nil), r.Nightly...)
	c.Payments = append([]Payment(nil), r.Payments...)
	if r.CheckInAt != nil {
		t := *r.CheckInAt
		c.CheckInAt = &t
	}
	if r.CheckOutAt != nil {
		t := *r.CheckOutAt
		c.CheckOutAt = &t
	}
	if r.CancelledOn != nil {
		d := *r.CancelledOn
		c.CancelledOn = &d
	}
	if r.NoShowOn != nil {
		d := *r.NoShowOn
		c.NoShowOn = &d
	}
	if r.StatusChangedOn != nil {
		d := *r.StatusChangedOn
		c.StatusChangedOn = &d
	}
	return &c
}

// =============================================================================
// CLOCK - Injected time source
// =============================================================================

// Clock supplies the current instant. Every day-offset rule (incentive
// eligibility, cancellation penalties, batch triggers) reads time through
// it so tests can pin the calendar.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// SystemClock returns a clock backed by time.Now in UTC.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now().UTC() }

type fixedClock struct{ now time.Time }

// FixedClock returns a clock pinned to a single instant (for tests).
func FixedClock(t time.Time) Clock { return fixedClock{now: t.UTC()} }

func (f fixedClock) Now() time.Time { return f.now }

// =============================================================================
// MONEY HELPERS
// =============================================================================

// Cents rounds a decimal to two places. Nightly rates are rounded with this
// before summing, which makes sum-of-rounded the canonical total.
func Cents(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// Dollars builds a decimal from a float literal (test and config convenience).
func Dollars(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }
