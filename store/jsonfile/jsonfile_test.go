package jsonfile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omrtre/HotelReservation/hotel"
	"github.com/omrtre/HotelReservation/store/jsonfile"
)

func newTestStore(t *testing.T) *jsonfile.Store {
	t.Helper()
	st, err := jsonfile.New(filepath.Join(t.TempDir(), "hotel.json"))
	require.NoError(t, err)
	return st
}

func TestLoad_MissingFileYieldsFreshState(t *testing.T) {
	st := newTestStore(t)

	state, err := st.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, state.Reservations)
	assert.Equal(t, "OO4001", state.NextLocator("OO"))
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	state := hotel.NewState()
	arrive, err := hotel.ParseDate("2026-07-10")
	require.NoError(t, err)
	state.Rates["2026-07-10"] = hotel.Dollars(450)
	state.RemindersSent["OO4001"] = "2026-05-26"
	state.Reservations = append(state.Reservations, &hotel.Reservation{
		Locator:     state.NextLocator("OO"),
		Guest:       hotel.Guest{Name: "Pat Doyle", Email: "pat@example.com", Phone: "6025550188", Address: "1200 Desert View Rd"},
		Card:        hotel.Card{Type: "Visa", LastFour: "1111", Expiry: "12-2028"},
		Arrive:      arrive,
		Depart:      arrive.AddDays(2),
		RoomType:    hotel.RoomStandard,
		Type:        hotel.TypePrepaid,
		Nightly:     []hotel.NightRate{{Date: arrive, Rate: hotel.Dollars(337.50)}, {Date: arrive.AddDays(1), Rate: hotel.Dollars(225)}},
		TotalLocked: hotel.Dollars(562.50),
		PaidAdvance: hotel.Dollars(562.50),
		FullyPaid:   true,
		Status:      hotel.StatusBooked,
	})
	require.NoError(t, st.Save(ctx, state))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)

	require.Len(t, loaded.Reservations, 1)
	r := loaded.Reservations[0]
	assert.Equal(t, "OO4001", r.Locator)
	assert.Equal(t, "Pat Doyle", r.Guest.Name)
	assert.Equal(t, hotel.StatusBooked, r.Status)
	assert.True(t, hotel.Dollars(562.50).Equal(r.TotalLocked))
	require.Len(t, r.Nightly, 2)
	assert.Equal(t, arrive, r.Nightly[0].Date)

	assert.True(t, hotel.Dollars(450).Equal(loaded.Rates["2026-07-10"]))
	assert.Equal(t, "2026-05-26", loaded.RemindersSent["OO4001"])
	assert.Equal(t, state.LastLocator, loaded.LastLocator)

	// CreatedOn was never set above; it must come back as the zero Date.
	assert.True(t, r.CreatedOn.IsZero())
}

func TestSaveLoad_UnsetDatesSurvive(t *testing.T) {
	// GIVEN a seeded record whose optional date fields were never filled in
	st := newTestStore(t)
	ctx := context.Background()

	arrive, err := hotel.ParseDate("2026-07-10")
	require.NoError(t, err)

	state := hotel.NewState()
	state.Reservations = append(state.Reservations, &hotel.Reservation{
		Locator: state.NextLocator("OO"),
		Guest:   hotel.Guest{Name: "Lee Chen"},
		Arrive:  arrive,
		Depart:  arrive.AddDays(1),
		Type:    hotel.TypeConventional,
		Status:  hotel.StatusBooked,
	})

	// WHEN the state is saved and loaded back
	require.NoError(t, st.Save(ctx, state))
	loaded, err := st.Load(ctx)

	// THEN the round trip succeeds and the unset dates stay zero
	require.NoError(t, err)
	require.Len(t, loaded.Reservations, 1)
	assert.True(t, loaded.Reservations[0].CreatedOn.IsZero())
	assert.Equal(t, arrive, loaded.Reservations[0].Arrive)
}

func TestSave_OverwritesAtomically(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	first := hotel.NewState()
	first.Rates["2026-07-10"] = hotel.Dollars(450)
	require.NoError(t, st.Save(ctx, first))

	second := hotel.NewState()
	second.Rates["2026-08-01"] = hotel.Dollars(500)
	require.NoError(t, st.Save(ctx, second))

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded.Rates, "2026-07-10")
	assert.True(t, hotel.Dollars(500).Equal(loaded.Rates["2026-08-01"]))
}

func TestEngineOverJSONStore(t *testing.T) {
	// The engine runs unchanged over the file-backed store.
	st := newTestStore(t)
	e := hotel.New(st, nil, hotel.DefaultConfig())
	ctx := context.Background()

	arrive := e.Today().AddDays(10)
	q, err := e.Quote(ctx, hotel.StaySpan{Arrive: arrive, Depart: arrive.AddDays(2)}, hotel.TypeConventional)
	require.NoError(t, err)
	assert.True(t, hotel.Dollars(600).Equal(q.Total))
}
