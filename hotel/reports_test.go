package hotel_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omrtre/HotelReservation/hotel"
	memstore "github.com/omrtre/HotelReservation/hotel/store"
)

func TestDailyArrivals(t *testing.T) {
	// GIVEN: Two stays arriving on the 10th and one on the 11th
	// WHEN: Reporting arrivals for the 10th
	// THEN: Two rows, revenue sums their locked totals

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())
	ctx := context.Background()

	arrive := mustDate(t, "2026-06-10")
	seedBooked(t, st, 2, arrive, arrive.AddDays(2), nil)
	seedBooked(t, st, 1, arrive.AddDays(1), arrive.AddDays(3), nil)

	rep, err := e.DailyArrivals(ctx, arrive)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "2026-06-10", rep.Date)
	assert.Equal(t, "Total Arrivals", rep.Summary[0].Label)
	assert.Equal(t, "2", rep.Summary[0].Value)
	assert.Equal(t, "$1200.00", rep.Summary[1].Value)
}

func TestDailyArrivals_ExcludesCancelled(t *testing.T) {
	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())

	arrive := mustDate(t, "2026-06-10")
	seedBooked(t, st, 1, arrive, arrive.AddDays(1), func(_ int, r *hotel.Reservation) {
		r.Status = hotel.StatusCancelled
	})

	rep, err := e.DailyArrivals(context.Background(), arrive)
	require.NoError(t, err)
	assert.Empty(t, rep.Rows)
}

func TestDailyOccupancy(t *testing.T) {
	// GIVEN: Capacity 45 with three stays covering the report date
	// WHEN: Reporting occupancy
	// THEN: Three occupied, 42 available

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())

	on := mustDate(t, "2026-06-10")
	seedBooked(t, st, 3, on.AddDays(-1), on.AddDays(2), nil)

	rep, err := e.DailyOccupancy(context.Background(), on)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "45", rep.Summary[0].Value)
	assert.Equal(t, "3", rep.Summary[1].Value)
	assert.Equal(t, "42", rep.Summary[2].Value)
}

func TestExpectedIncome_SumsLockedNightlyRates(t *testing.T) {
	// GIVEN: One stay with a locked 2-night snapshot at $300/night
	// WHEN: Projecting income over those days
	// THEN: $300 revenue on each covered night, $600 total

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())

	start := mustDate(t, "2026-06-10")
	seedBooked(t, st, 1, start, start.AddDays(2), func(_ int, r *hotel.Reservation) {
		r.Nightly = []hotel.NightRate{
			{Date: start, Rate: money(300)},
			{Date: start.AddDays(1), Rate: money(300)},
		}
	})

	rep, err := e.ExpectedIncome(context.Background(), start, 3)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "$300.00", rep.Rows[0][1])
	assert.Equal(t, "$300.00", rep.Rows[1][1])
	assert.Equal(t, "$0.00", rep.Rows[2][1])
	assert.Equal(t, "Total Expected Revenue", rep.Summary[1].Label)
	assert.Equal(t, "$600.00", rep.Summary[1].Value)
}

func TestIncentiveImpact(t *testing.T) {
	// GIVEN: An Incentive stay locked at the 0.80 discount ($240/night)
	// WHEN: Reporting incentive impact
	// THEN: Full rate $600, discounted $480, savings $120

	st := memstore.NewMemory()
	e := engineAt(t, st, testToday, hotel.DefaultConfig())

	start := mustDate(t, "2026-06-10")
	seedBooked(t, st, 1, start, start.AddDays(2), func(_ int, r *hotel.Reservation) {
		r.Type = hotel.TypeIncentive
		r.Nightly = []hotel.NightRate{
			{Date: start, Rate: money(240)},
			{Date: start.AddDays(1), Rate: money(240)},
		}
		r.TotalLocked = money(480)
	})

	rep, err := e.IncentiveImpact(context.Background(), start, 30)
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "$600.00", rep.Rows[0][4])
	assert.Equal(t, "$480.00", rep.Rows[0][5])
	assert.Equal(t, "$120.00", rep.Rows[0][6])
	assert.Equal(t, "$120.00", rep.Summary[3].Value)
}

func TestCheckoutSummary(t *testing.T) {
	// GIVEN: A stay checked out within the window
	// WHEN: Summarizing checkouts
	// THEN: One row with its revenue

	st := memstore.NewMemory()
	ctx := context.Background()
	booker := engineAt(t, st, testToday, hotel.DefaultConfig())
	r, err := booker.CreateReservation(ctx, validInput(t, 5, 2, hotel.TypeConventional))
	require.NoError(t, err)

	arrival := engineAt(t, st, "2026-06-06", hotel.DefaultConfig())
	_, err = arrival.AssignRoom(ctx, r.Locator, "118")
	require.NoError(t, err)
	_, err = arrival.CheckIn(ctx, r.Locator)
	require.NoError(t, err)

	departure := engineAt(t, st, "2026-06-08", hotel.DefaultConfig())
	_, _, err = departure.CheckOut(ctx, r.Locator)
	require.NoError(t, err)

	rep, err := departure.CheckoutSummary(ctx, mustDate(t, "2026-06-01"), mustDate(t, "2026-06-30"))
	require.NoError(t, err)

	require.Len(t, rep.Rows, 1)
	assert.Equal(t, r.Locator, rep.Rows[0][0])
	assert.Equal(t, "$600.00", rep.Rows[0][5])
}
