/*
store.go - Persistence interface and the whole-store State unit

PURPOSE:
  Defines the contract between the engine and persistence. The entire store
  (rate table, reservations, locator counter, reminder log) is one logical
  unit: operations read it fully, mutate it in memory, and write it back
  fully. Last write wins; the deployment assumption is a single writer at
  a time.

IMPLEMENTATIONS:
  - hotel/store: in-memory (tests, dev)
  - store/jsonfile: single JSON document on disk
  - store/sqlite: SQLite-backed

LOCATOR INVARIANT:
  The locator counter only increases. Loading a reservation whose numeric
  locator exceeds the counter bumps the counter forward, never backward,
  so manually imported records can never cause a reuse.
*/
package hotel

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// STATE - The full persisted unit
// =============================================================================

// State is everything the system persists, as one unit.
type State struct {
	Rates        RateTable      `json:"base_rates"`
	Reservations []*Reservation `json:"reservations"`
	LastLocator  int            `json:"last_locator"`

	// RemindersSent maps locator -> ISO date of the 60-day payment reminder.
	// The daily batch uses it to stay idempotent.
	RemindersSent map[string]string `json:"reminders_sent,omitempty"`
}

// NewState returns an empty store with the locator counter at its seed.
func NewState() *State {
	return &State{
		Rates:         RateTable{},
		LastLocator:   locatorSeed,
		RemindersSent: map[string]string{},
	}
}

// locatorSeed is where the counter starts for a brand-new store.
const locatorSeed = 4000

// Find returns the reservation with the given locator, or nil.
func (s *State) Find(locator string) *Reservation {
	for _, r := range s.Reservations {
		if r.Locator == locator {
			return r
		}
	}
	return nil
}

// Active returns the reservations that still occupy inventory.
func (s *State) Active() []*Reservation {
	var out []*Reservation
	for _, r := range s.Reservations {
		if r.Status.Active() {
			out = append(out, r)
		}
	}
	return out
}

// Normalize repairs invariants after a load: the reminder map exists, the
// rate table exists, and the locator counter sits at or above every stored
// locator.
func (s *State) Normalize(prefix string) {
	if s.Rates == nil {
		s.Rates = RateTable{}
	}
	if s.RemindersSent == nil {
		s.RemindersSent = map[string]string{}
	}
	if s.LastLocator < locatorSeed {
		s.LastLocator = locatorSeed
	}
	for _, r := range s.Reservations {
		if n, ok := locatorNumber(r.Locator, prefix); ok && n > s.LastLocator {
			s.LastLocator = n
		}
	}
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	c := &State{
		Rates:         make(RateTable, len(s.Rates)),
		Reservations:  make([]*Reservation, len(s.Reservations)),
		LastLocator:   s.LastLocator,
		RemindersSent: make(map[string]string, len(s.RemindersSent)),
	}
	for k, v := range s.Rates {
		c.Rates[k] = v
	}
	for i, r := range s.Reservations {
		c.Reservations[i] = r.Clone()
	}
	for k, v := range s.RemindersSent {
		c.RemindersSent[k] = v
	}
	return c
}

// =============================================================================
// LOCATORS
// =============================================================================

// NextLocator bumps the counter and formats the new locator token.
func (s *State) NextLocator(prefix string) string {
	s.LastLocator++
	return fmt.Sprintf("%s%d", prefix, s.LastLocator)
}

func locatorNumber(locator, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(locator, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// =============================================================================
// STORE - Whole-store load/save
// =============================================================================

// Store persists the State as one unit. Load on a fresh backend returns a
// default-initialized state, never an error.
type Store interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, state *State) error
}
