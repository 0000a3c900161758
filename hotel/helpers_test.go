package hotel_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/omrtre/HotelReservation/hotel"
	memstore "github.com/omrtre/HotelReservation/hotel/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

// testToday is the pinned calendar date most tests run on.
const testToday = "2026-06-01"

func mustDate(t *testing.T, s string) hotel.Date {
	t.Helper()
	d, err := hotel.ParseDate(s)
	require.NoError(t, err)
	return d
}

// engineAt builds an engine over the given store with the clock pinned to
// noon on the given day. Sharing one store across engines with different
// clocks lets a test book on one day and act on another.
func engineAt(t *testing.T, st hotel.Store, today string, cfg hotel.Config) *hotel.Engine {
	t.Helper()
	d, err := hotel.ParseDate(today)
	require.NoError(t, err)
	clock := hotel.FixedClock(time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC))
	return hotel.New(st, clock, cfg)
}

// newTestEngine is the common case: fresh memory store, default config,
// clock pinned to testToday.
func newTestEngine(t *testing.T) (*hotel.Engine, *memstore.Memory) {
	t.Helper()
	st := memstore.NewMemory()
	return engineAt(t, st, testToday, hotel.DefaultConfig()), st
}

// validInput returns a CreateInput that passes validation, arriving the
// given number of days after testToday.
func validInput(t *testing.T, daysOut, nights int, rtype hotel.ReservationType) hotel.CreateInput {
	t.Helper()
	arrive := mustDate(t, testToday).AddDays(daysOut)
	return hotel.CreateInput{
		Guest: hotel.Guest{
			Name:    "Pat Doyle",
			Email:   "pat.doyle@example.com",
			Phone:   "602-555-0188",
			Address: "1200 Desert View Rd, Phoenix, AZ",
		},
		CardNumber: "4111 1111 1111 1111",
		CardType:   "Visa",
		CardExpiry: "12-2028",
		Arrive:     arrive,
		Depart:     arrive.AddDays(nights),
		RoomType:   hotel.RoomStandard,
		Type:       rtype,
	}
}

// seedBooked plants count overlapping Booked reservations directly into the
// store, for occupancy and batch scenarios that need state the engine
// would not normally produce.
func seedBooked(t *testing.T, st hotel.Store, count int, arrive, depart hotel.Date, mutate func(i int, r *hotel.Reservation)) {
	t.Helper()
	ctx := context.Background()
	state, err := st.Load(ctx)
	require.NoError(t, err)
	for i := 0; i < count; i++ {
		r := &hotel.Reservation{
			Locator: state.NextLocator("OO"),
			Guest: hotel.Guest{
				Name:  "Seed Guest",
				Email: "seed@example.com",
			},
			Arrive:      arrive,
			Depart:      depart,
			RoomType:    hotel.RoomStandard,
			Type:        hotel.TypeConventional,
			TotalLocked: hotel.Dollars(300).Mul(decimal.NewFromInt(int64(arrive.DaysUntil(depart)))),
			Status:      hotel.StatusBooked,
			CreatedOn:   arrive.AddDays(-60),
		}
		if mutate != nil {
			mutate(i, r)
		}
		state.Reservations = append(state.Reservations, r)
	}
	require.NoError(t, st.Save(ctx, state))
}

func money(f float64) decimal.Decimal { return hotel.Dollars(f) }

func requireMoney(t *testing.T, want float64, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	require.True(t, money(want).Equal(got), "expected $%s, got $%s %v",
		money(want).StringFixed(2), got.StringFixed(2), msgAndArgs)
}
