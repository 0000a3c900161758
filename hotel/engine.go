/*
engine.go - The reservation engine and its configuration

PURPOSE:
  Engine is the single entry point for every operation: quoting, booking,
  lifecycle transitions, payments, rate management, reports, and the daily
  batch sweep. Each operation loads the whole store, works on it in memory,
  and writes it back - the copy-in/copy-out discipline the persistence
  contract requires.

CONSISTENCY:
  Every mutating operation validates fully before touching state, then
  mutates, then saves. A rejected operation performs no save; a failed save
  surfaces the error and the in-memory copy is discarded. There is no
  partial mutation.

SEE ALSO:
  - quote.go: Quote / QuoteChange
  - lifecycle.go: CheckIn / CheckOut / Cancel / MarkNoShow / ChangeDates
  - payment.go: ApplyPayment
  - batch.go: RunDailyTasks
*/
package hotel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Config carries the engine's fixed policy knobs.
type Config struct {
	// Capacity is the total room inventory.
	Capacity int

	// DefaultRate prices any date absent from the rate table.
	DefaultRate decimal.Decimal

	// LocatorPrefix is prepended to the locator counter (e.g. "OO" -> OO4001).
	LocatorPrefix string

	// MaxStayNights bounds the stay length accepted at booking.
	MaxStayNights int
}

// DefaultConfig returns the observed production policy: 45 rooms, $300
// default rate, "OO" locators, stays up to 60 nights.
func DefaultConfig() Config {
	return Config{
		Capacity:      45,
		DefaultRate:   DefaultNightlyRate,
		LocatorPrefix: "OO",
		MaxStayNights: 60,
	}
}

// Engine executes reservation operations against a Store.
type Engine struct {
	store Store
	clock Clock
	cfg   Config
}

// New creates an engine. A nil clock defaults to the system clock; zero
// config fields default to DefaultConfig values.
func New(store Store, clock Clock, cfg Config) *Engine {
	if clock == nil {
		clock = SystemClock()
	}
	def := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.DefaultRate.IsZero() {
		cfg.DefaultRate = def.DefaultRate
	}
	if cfg.LocatorPrefix == "" {
		cfg.LocatorPrefix = def.LocatorPrefix
	}
	if cfg.MaxStayNights <= 0 {
		cfg.MaxStayNights = def.MaxStayNights
	}
	return &Engine{store: store, clock: clock, cfg: cfg}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// Today returns the current calendar day per the injected clock.
func (e *Engine) Today() Date { return DateOf(e.clock.Now()) }

func (e *Engine) load(ctx context.Context) (*State, error) {
	state, err := e.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load store: %w", err)
	}
	state.Normalize(e.cfg.LocatorPrefix)
	return state, nil
}

func (e *Engine) save(ctx context.Context, state *State) error {
	if err := e.store.Save(ctx, state); err != nil {
		return fmt.Errorf("save store: %w", err)
	}
	return nil
}

// =============================================================================
// LOOKUPS
// =============================================================================

// Get returns the reservation with the given locator.
func (e *Engine) Get(ctx context.Context, locator string) (*Reservation, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	r := state.Find(locator)
	if r == nil {
		return nil, fmt.Errorf("locator %s: %w", locator, ErrNotFound)
	}
	return r, nil
}

// List returns every reservation in the store.
func (e *Engine) List(ctx context.Context) ([]*Reservation, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Reservations, nil
}

// CheckAvailability runs the availability sweep against current state.
// excludeLocator may be empty.
func (e *Engine) CheckAvailability(ctx context.Context, span StaySpan, excludeLocator string) (AvailabilityResult, error) {
	if err := span.Validate(); err != nil {
		return AvailabilityResult{}, err
	}
	state, err := e.load(ctx)
	if err != nil {
		return AvailabilityResult{}, err
	}
	return Availability(state.Active(), span, e.cfg.Capacity, excludeLocator), nil
}

// =============================================================================
// RATE TABLE MANAGEMENT
// =============================================================================

// Rates returns the configured rate entries in calendar order.
func (e *Engine) Rates(ctx context.Context) ([]NightRate, error) {
	state, err := e.load(ctx)
	if err != nil {
		return nil, err
	}
	return state.Rates.Entries(), nil
}

// SetRate adds or updates the base rate for a date.
func (e *Engine) SetRate(ctx context.Context, d Date, price decimal.Decimal) error {
	if !price.IsPositive() {
		return &ValidationError{Field: "rate", Reason: "base rate must be a positive value"}
	}
	state, err := e.load(ctx)
	if err != nil {
		return err
	}
	state.Rates.Set(d, price)
	return e.save(ctx, state)
}

// RemoveRate deletes the configured rate for a date, reverting it to the
// default.
func (e *Engine) RemoveRate(ctx context.Context, d Date) error {
	state, err := e.load(ctx)
	if err != nil {
		return err
	}
	state.Rates.Remove(d)
	return e.save(ctx, state)
}
