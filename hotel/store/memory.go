// Package store provides the in-memory Store implementation (tests/dev).
package store

import (
	"context"
	"sync"

	"github.com/omrtre/HotelReservation/hotel"
)

// =============================================================================
// MEMORY STORE - Whole-store copy-in, copy-out
// =============================================================================

// Memory keeps the State in memory. Load and Save deep-copy so callers can
// never alias the persisted state.
type Memory struct {
	mu    sync.RWMutex
	state *hotel.State
}

func NewMemory() *Memory {
	return &Memory{state: hotel.NewState()}
}

// Load returns a deep copy of the current state.
func (m *Memory) Load(_ context.Context) (*hotel.State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Clone(), nil
}

// Save replaces the whole state. Last write wins.
func (m *Memory) Save(_ context.Context, state *hotel.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state.Clone()
	return nil
}
