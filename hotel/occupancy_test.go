package hotel_test

import (
	"testing"

	"github.com/omrtre/HotelReservation/hotel"
)

func span(t *testing.T, arrive, depart string) hotel.StaySpan {
	t.Helper()
	return hotel.StaySpan{Arrive: mustDate(t, arrive), Depart: mustDate(t, depart)}
}

func booked(t *testing.T, locator, arrive, depart string) *hotel.Reservation {
	t.Helper()
	return &hotel.Reservation{
		Locator: locator,
		Arrive:  mustDate(t, arrive),
		Depart:  mustDate(t, depart),
		Status:  hotel.StatusBooked,
	}
}

func TestOccupancyRatio_AveragesAcrossNights(t *testing.T) {
	// GIVEN: Capacity 10; 4 stays covering the first night, 2 of them
	//        continuing into the second
	// WHEN: Measuring a 2-night span
	// THEN: (4 + 2) / 2 nights / 10 rooms = 0.30

	active := []*hotel.Reservation{
		booked(t, "OO4001", "2026-07-01", "2026-07-02"),
		booked(t, "OO4002", "2026-07-01", "2026-07-02"),
		booked(t, "OO4003", "2026-07-01", "2026-07-03"),
		booked(t, "OO4004", "2026-07-01", "2026-07-03"),
	}

	got := hotel.OccupancyRatio(active, span(t, "2026-07-01", "2026-07-03"), 10, "")
	if got != 0.30 {
		t.Errorf("expected ratio 0.30, got %v", got)
	}
}

func TestOccupancyRatio_EmptyHotel(t *testing.T) {
	got := hotel.OccupancyRatio(nil, span(t, "2026-07-01", "2026-07-03"), 45, "")
	if got != 0 {
		t.Errorf("expected 0 for empty hotel, got %v", got)
	}
}

func TestOccupancyRatio_ExcludesLocator(t *testing.T) {
	// GIVEN: One stay holding the whole span
	// WHEN: Measuring with that stay excluded
	// THEN: Occupancy is zero

	active := []*hotel.Reservation{booked(t, "OO4001", "2026-07-01", "2026-07-03")}

	got := hotel.OccupancyRatio(active, span(t, "2026-07-01", "2026-07-03"), 45, "OO4001")
	if got != 0 {
		t.Errorf("expected 0 with self excluded, got %v", got)
	}
}

func TestOccupancyRatio_DepartureNightNotCounted(t *testing.T) {
	// Half-open span: a stay departing July 2 does not occupy the night
	// of July 2.
	active := []*hotel.Reservation{booked(t, "OO4001", "2026-07-01", "2026-07-02")}

	got := hotel.OccupancyRatio(active, span(t, "2026-07-02", "2026-07-03"), 1, "")
	if got != 0 {
		t.Errorf("expected 0 on the departure night, got %v", got)
	}
}

func TestAvailability_MinAcrossNights(t *testing.T) {
	// GIVEN: Capacity 3; night one holds 2 stays, night two holds 1
	// WHEN: Checking a 2-night span
	// THEN: Available with a minimum of 1 free room

	active := []*hotel.Reservation{
		booked(t, "OO4001", "2026-07-01", "2026-07-02"),
		booked(t, "OO4002", "2026-07-01", "2026-07-03"),
	}

	res := hotel.Availability(active, span(t, "2026-07-01", "2026-07-03"), 3, "")
	if !res.Available {
		t.Fatal("expected span to be available")
	}
	if res.MinRoomsFree != 1 {
		t.Errorf("expected min 1 free, got %d", res.MinRoomsFree)
	}
	if len(res.Nightly) != 2 {
		t.Fatalf("expected 2 nightly counts, got %d", len(res.Nightly))
	}
	if res.Nightly[0].RoomsFree != 1 || res.Nightly[1].RoomsFree != 2 {
		t.Errorf("unexpected nightly counts: %+v", res.Nightly)
	}
}

func TestAvailability_FullNightBlocksSpan(t *testing.T) {
	// GIVEN: Capacity 1 and one night of the span already taken
	// WHEN: Checking the span
	// THEN: Not available, even though other nights are free

	active := []*hotel.Reservation{booked(t, "OO4001", "2026-07-02", "2026-07-03")}

	res := hotel.Availability(active, span(t, "2026-07-01", "2026-07-04"), 1, "")
	if res.Available {
		t.Error("expected span to be unavailable")
	}
	if res.MinRoomsFree != 0 {
		t.Errorf("expected min 0 free, got %d", res.MinRoomsFree)
	}
}

func TestAvailability_TerminalStatusesReleaseInventory(t *testing.T) {
	// Cancelled and no-show stays no longer occupy rooms; State.Active
	// filters them before the sweep.
	state := hotel.NewState()
	cancelled := booked(t, "OO4001", "2026-07-01", "2026-07-03")
	cancelled.Status = hotel.StatusCancelled
	state.Reservations = append(state.Reservations, cancelled)

	res := hotel.Availability(state.Active(), span(t, "2026-07-01", "2026-07-03"), 1, "")
	if !res.Available {
		t.Error("expected cancelled stay to release its room")
	}
}
