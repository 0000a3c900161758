package hotel_test

import (
	"strings"
	"testing"

	"github.com/omrtre/HotelReservation/hotel"
)

func TestBillRender(t *testing.T) {
	r := &hotel.Reservation{
		Locator:      "OO4007",
		Guest:        hotel.Guest{Name: "Pat Doyle"},
		Arrive:       mustDate(t, "2026-07-10"),
		Depart:       mustDate(t, "2026-07-12"),
		RoomType:     hotel.RoomDeluxe,
		AssignedRoom: "204",
		Type:         hotel.TypeConventional,
		Nightly: []hotel.NightRate{
			{Date: mustDate(t, "2026-07-10"), Rate: money(300)},
			{Date: mustDate(t, "2026-07-11"), Rate: money(300)},
		},
		TotalLocked: money(600),
		PaidAdvance: money(600),
		FullyPaid:   true,
		Status:      hotel.StatusCheckedOut,
	}

	text := hotel.NewBill(r, mustDate(t, "2026-07-12")).Render()

	for _, want := range []string{
		"OPHELIA'S OASIS HOTEL",
		"Guest Accommodation Bill",
		"Bill ID:           OO4007",
		"Guest Name:        Pat Doyle",
		"Room Number:       204",
		"Nights Stayed:     2",
		"2026-07-10:    $300.00",
		"Total Amount:      $600.00",
		"Balance Due:       $0.00",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("bill missing %q\n%s", want, text)
		}
	}
	if strings.Contains(text, "Fees Assessed") {
		t.Error("fee line should be omitted when no fee was charged")
	}
}

func TestBillRender_UnassignedRoomAndFee(t *testing.T) {
	// A cancelled stay bills with N/A for the room and shows the fee line.
	r := &hotel.Reservation{
		Locator:     "OO4008",
		Guest:       hotel.Guest{Name: "Lee Chen"},
		Arrive:      mustDate(t, "2026-07-10"),
		Depart:      mustDate(t, "2026-07-11"),
		RoomType:    hotel.RoomStandard,
		Type:        hotel.TypeConventional,
		Nightly:     []hotel.NightRate{{Date: mustDate(t, "2026-07-10"), Rate: money(300)}},
		TotalLocked: money(300),
		PaidAdvance: money(300),
		Fee:         money(300),
		Status:      hotel.StatusCancelled,
	}

	text := hotel.NewBill(r, mustDate(t, "2026-07-09")).Render()

	if !strings.Contains(text, "Room Number:       N/A") {
		t.Error("expected N/A room for unassigned reservation")
	}
	if !strings.Contains(text, "Fees Assessed:     $300.00") {
		t.Error("expected fee line")
	}
	if !strings.Contains(text, "Balance Due:       $0.00") {
		t.Errorf("cancelled stay with fee collected should owe nothing\n%s", text)
	}
}
