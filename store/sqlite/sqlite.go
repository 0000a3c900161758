/*
Package sqlite provides a SQLite-backed implementation of the Store contract.

PURPOSE:
  Persists the whole store in a SQLite database. The contract is still
  copy-in/copy-out: Load materializes the full State, Save rewrites it
  inside one transaction, so a failed save leaves the previous state
  intact.

KEY TABLES:
  reservations:  one row per reservation; the full record is a JSON
                 document, with locator/status/arrive/depart lifted into
                 columns for ad-hoc querying
  base_rates:    date -> nightly price
  reminders:     locator -> date the payment reminder went out
  meta:          the locator counter

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer and crash recovery is clean.

USAGE:
  st, err := sqlite.New("./data/hotel.db")   // ":memory:" for tests
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()

  engine := hotel.New(st, nil, hotel.DefaultConfig())

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - hotel/store.go: the Store contract
  - store/jsonfile: the single-document alternative
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/omrtre/HotelReservation/hotel"
)

// Store implements hotel.Store on SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// New opens (and migrates) a SQLite store at the given path. Use ":memory:"
// for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS reservations (
		locator TEXT PRIMARY KEY,
		status  TEXT NOT NULL,
		arrive  TEXT NOT NULL,
		depart  TEXT NOT NULL,
		record  TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reservations_status ON reservations(status);
	CREATE INDEX IF NOT EXISTS idx_reservations_arrive ON reservations(arrive);

	CREATE TABLE IF NOT EXISTS base_rates (
		date TEXT PRIMARY KEY,
		rate TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reminders (
		locator TEXT PRIMARY KEY,
		sent_on TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load materializes the full State from the database.
func (s *Store) Load(ctx context.Context) (*hotel.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := hotel.NewState()

	rows, err := s.db.QueryContext(ctx, `SELECT record FROM reservations ORDER BY locator`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query reservations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, fmt.Errorf("sqlite: scan reservation: %w", err)
		}
		var r hotel.Reservation
		if err := json.Unmarshal([]byte(record), &r); err != nil {
			return nil, fmt.Errorf("sqlite: decode reservation: %w", err)
		}
		state.Reservations = append(state.Reservations, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate reservations: %w", err)
	}

	rateRows, err := s.db.QueryContext(ctx, `SELECT date, rate FROM base_rates`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query rates: %w", err)
	}
	defer rateRows.Close()
	for rateRows.Next() {
		var date, rate string
		if err := rateRows.Scan(&date, &rate); err != nil {
			return nil, fmt.Errorf("sqlite: scan rate: %w", err)
		}
		price, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("sqlite: rate for %s: %w", date, err)
		}
		state.Rates[date] = price
	}
	if err := rateRows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate rates: %w", err)
	}

	remRows, err := s.db.QueryContext(ctx, `SELECT locator, sent_on FROM reminders`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query reminders: %w", err)
	}
	defer remRows.Close()
	for remRows.Next() {
		var locator, sentOn string
		if err := remRows.Scan(&locator, &sentOn); err != nil {
			return nil, fmt.Errorf("sqlite: scan reminder: %w", err)
		}
		state.RemindersSent[locator] = sentOn
	}
	if err := remRows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterate reminders: %w", err)
	}

	var counter string
	err = s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'last_locator'`).Scan(&counter)
	switch {
	case err == sql.ErrNoRows:
		// fresh database, NewState already seeded the counter
	case err != nil:
		return nil, fmt.Errorf("sqlite: read locator counter: %w", err)
	default:
		n, convErr := strconv.Atoi(counter)
		if convErr != nil {
			return nil, fmt.Errorf("sqlite: locator counter %q: %w", counter, convErr)
		}
		state.LastLocator = n
	}

	return state, nil
}

// Save rewrites the whole store inside one transaction.
func (s *Store) Save(ctx context.Context, state *hotel.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"reservations", "base_rates", "reminders"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("sqlite: clear %s: %w", table, err)
		}
	}

	for _, r := range state.Reservations {
		record, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("sqlite: encode reservation %s: %w", r.Locator, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO reservations (locator, status, arrive, depart, record) VALUES (?, ?, ?, ?, ?)`,
			r.Locator, string(r.Status), r.Arrive.String(), r.Depart.String(), string(record))
		if err != nil {
			return fmt.Errorf("sqlite: insert reservation %s: %w", r.Locator, err)
		}
	}

	for date, rate := range state.Rates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO base_rates (date, rate) VALUES (?, ?)`, date, rate.String()); err != nil {
			return fmt.Errorf("sqlite: insert rate %s: %w", date, err)
		}
	}

	for locator, sentOn := range state.RemindersSent {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO reminders (locator, sent_on) VALUES (?, ?)`, locator, sentOn); err != nil {
			return fmt.Errorf("sqlite: insert reminder %s: %w", locator, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES ('last_locator', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		strconv.Itoa(state.LastLocator)); err != nil {
		return fmt.Errorf("sqlite: save locator counter: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}
