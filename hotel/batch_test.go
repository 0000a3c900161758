package hotel_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omrtre/HotelReservation/hotel"
	memstore "github.com/omrtre/HotelReservation/hotel/store"
)

func TestDailyTasks_SixtyDayReminderAtFortyFiveDays(t *testing.T) {
	// GIVEN: A 60-Day reservation arriving exactly 45 days out
	// WHEN: Running the daily sweep twice
	// THEN: One reminder the first run, nothing the second

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	arrive := mustDate(t, testToday).AddDays(45)
	seedBooked(t, st, 1, arrive, arrive.AddDays(2), func(_ int, r *hotel.Reservation) {
		r.Type = hotel.TypeSixtyDay
	})

	results, err := e.RunDailyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, hotel.TaskReminder, results[0].Kind)

	results, err = e.RunDailyTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDailyTasks_SixtyDayAutoCancelWhenUnpaid(t *testing.T) {
	// GIVEN: An unpaid 60-Day reservation arriving exactly 30 days out
	// WHEN: Running the daily sweep
	// THEN: Cancelled with no fee; the cancellation persists

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	arrive := mustDate(t, testToday).AddDays(30)
	seedBooked(t, st, 1, arrive, arrive.AddDays(2), func(_ int, r *hotel.Reservation) {
		r.Type = hotel.TypeSixtyDay
	})

	results, err := e.RunDailyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, hotel.TaskAutoCancel, results[0].Kind)

	state, err := st.Load(ctx)
	require.NoError(t, err)
	cancelled := state.Reservations[0]
	assert.Equal(t, hotel.StatusCancelled, cancelled.Status)
	require.True(t, cancelled.Fee.IsZero())
}

func TestDailyTasks_PaidSixtyDayNotCancelled(t *testing.T) {
	// GIVEN: A 60-Day reservation 30 days out with money collected
	// WHEN: Running the daily sweep
	// THEN: It stays Booked

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	arrive := mustDate(t, testToday).AddDays(30)
	seedBooked(t, st, 1, arrive, arrive.AddDays(2), func(_ int, r *hotel.Reservation) {
		r.Type = hotel.TypeSixtyDay
		r.PaidAdvance = r.TotalLocked
		r.FullyPaid = true
	})

	results, err := e.RunDailyTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)

	state, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, hotel.StatusBooked, state.Reservations[0].Status)
}

func TestDailyTasks_AutoNoShowForYesterdayArrival(t *testing.T) {
	// GIVEN: A Conventional guest who was due yesterday and never checked in
	// WHEN: Running the daily sweep
	// THEN: Marked No-Show with the first night's rate as fee

	st := memstore.NewMemory()
	booker := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	r, err := booker.CreateReservation(ctx, validInput(t, 5, 3, hotel.TypeConventional))
	require.NoError(t, err)

	// The morning after the missed arrival.
	sweeper := engineAt(t, st, "2026-06-07", hotel.DefaultConfig())
	results, err := sweeper.RunDailyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, hotel.TaskNoShow, results[0].Kind)
	assert.Equal(t, r.Locator, results[0].Locator)

	marked, err := sweeper.Get(ctx, r.Locator)
	require.NoError(t, err)
	assert.Equal(t, hotel.StatusNoShow, marked.Status)
	requireMoney(t, 300, marked.Fee)

	// A second sweep the same day is a no-op.
	results, err = sweeper.RunDailyTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDailyTasks_CheckedInGuestNotSweptAsNoShow(t *testing.T) {
	st := memstore.NewMemory()
	booker := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	r, err := booker.CreateReservation(ctx, validInput(t, 5, 3, hotel.TypeConventional))
	require.NoError(t, err)

	arrivalDay := engineAt(t, st, "2026-06-06", hotel.DefaultConfig())
	_, err = arrivalDay.AssignRoom(ctx, r.Locator, "310")
	require.NoError(t, err)
	_, err = arrivalDay.CheckIn(ctx, r.Locator)
	require.NoError(t, err)

	sweeper := engineAt(t, st, "2026-06-07", hotel.DefaultConfig())
	results, err := sweeper.RunDailyTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDailyTasks_SkipsMalformedRecords(t *testing.T) {
	// GIVEN: One record with no stay dates next to a sweepable one
	// WHEN: Running the daily sweep
	// THEN: The bad record is skipped, the good one is still processed

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	arrive := mustDate(t, testToday).AddDays(45)
	seedBooked(t, st, 1, arrive, arrive.AddDays(1), func(_ int, r *hotel.Reservation) {
		r.Type = hotel.TypeSixtyDay
	})
	seedBooked(t, st, 1, hotel.Date{}, hotel.Date{}, func(_ int, r *hotel.Reservation) {
		r.TotalLocked = decimal.Zero
	})

	results, err := e.RunDailyTasks(ctx)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, hotel.TaskReminder, results[0].Kind)
}
