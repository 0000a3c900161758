/*
receipt.go - Bill generation

The Bill is the checkout artifact: an itemized, fixed-width text document
built from a reservation snapshot. Checked-out and cancelled reservations
both produce one.
*/
package hotel

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Bill is a rendered-ready receipt for a reservation.
type Bill struct {
	BillID    string
	IssueDate Date

	GuestName  string
	RoomNumber string
	RoomType   RoomType

	Arrival   Date
	Departure Date
	Nights    int
	ResType   ReservationType

	Nightly []NightRate

	TotalAmount decimal.Decimal
	PaidAdvance decimal.Decimal
	Fee         decimal.Decimal
	BalanceDue  decimal.Decimal
}

// NewBill builds a bill from a reservation snapshot.
func NewBill(r *Reservation, issued Date) *Bill {
	room := r.AssignedRoom
	if room == "" {
		room = "N/A"
	}
	return &Bill{
		BillID:      r.Locator,
		IssueDate:   issued,
		GuestName:   r.Guest.Name,
		RoomNumber:  room,
		RoomType:    r.RoomType,
		Arrival:     r.Arrive,
		Departure:   r.Depart,
		Nights:      r.Nights(),
		ResType:     r.Type,
		Nightly:     append([]NightRate(nil), r.Nightly...),
		TotalAmount: r.TotalLocked,
		PaidAdvance: r.PaidAdvance,
		Fee:         r.Fee,
		BalanceDue:  r.Balance(),
	}
}

const billWidth = 50

// Render produces the formatted bill text.
func (b *Bill) Render() string {
	var sb strings.Builder
	bar := strings.Repeat("=", billWidth)
	rule := strings.Repeat("-", billWidth)

	line := func(format string, args ...any) {
		fmt.Fprintf(&sb, format+"\n", args...)
	}
	section := func(title string) {
		line(rule)
		line(title)
		line(rule)
	}

	line(bar)
	line("         OPHELIA'S OASIS HOTEL")
	line("        Guest Accommodation Bill")
	line(bar)
	line("")
	line("Bill ID:           %s", b.BillID)
	line("Bill Date:         %s", b.IssueDate)
	line("")
	section("GUEST INFORMATION")
	line("Guest Name:        %s", b.GuestName)
	line("Room Number:       %s", b.RoomNumber)
	line("Room Type:         %s", b.RoomType)
	line("")
	section("STAY DETAILS")
	line("Arrival Date:      %s", b.Arrival)
	line("Departure Date:    %s", b.Departure)
	line("Nights Stayed:     %d", b.Nights)
	line("Reservation Type:  %s", b.ResType)
	line("")
	section("NIGHTLY RATE BREAKDOWN")
	for _, n := range b.Nightly {
		line("  %s:    $%s", n.Date, n.Rate.StringFixed(2))
	}
	line("")
	section("PAYMENT SUMMARY")
	line("Total Amount:      $%s", b.TotalAmount.StringFixed(2))
	line("Paid in Advance:   $%s", b.PaidAdvance.StringFixed(2))
	if b.Fee.IsPositive() {
		line("Fees Assessed:     $%s", b.Fee.StringFixed(2))
	}
	line("Balance Due:       $%s", b.BalanceDue.StringFixed(2))
	line("")
	line(bar)
	line("     Thank you for staying with us!")
	line("        We hope to see you again.")
	sb.WriteString(bar)
	return sb.String()
}
