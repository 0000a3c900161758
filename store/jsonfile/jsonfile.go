/*
Package jsonfile persists the whole store as a single JSON document.

PURPOSE:
  The smallest real persistence that honors the whole-store contract: Load
  reads the entire file, Save rewrites it. A missing file loads as a fresh
  default state. Writes go through a temp file + rename so a crash mid-save
  never leaves a torn document.

CONCURRENCY:
  A process-local mutex serializes access. There is no cross-process
  locking - the deployment assumption is a single writer at a time, and
  concurrent writers get last-write-wins.

USAGE:
  st, err := jsonfile.New("./hrs_data.json")
  engine := hotel.New(st, nil, hotel.DefaultConfig())
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/omrtre/HotelReservation/hotel"
)

// Store reads and writes the State as one JSON file.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the given file path. The file is created on
// first Save; it does not need to exist yet.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile: path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("jsonfile: create directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Load reads the whole document. A missing file yields a fresh default
// state, never an error.
func (s *Store) Load(_ context.Context) (*hotel.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return hotel.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("jsonfile: read %s: %w", s.path, err)
	}

	state := hotel.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("jsonfile: parse %s: %w", s.path, err)
	}
	return state, nil
}

// Save rewrites the whole document atomically (temp file + rename).
func (s *Store) Save(_ context.Context, state *hotel.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", s.path, err)
	}
	return nil
}
