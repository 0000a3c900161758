/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Reservations:
    ReservationDTO, CreateReservationRequest, AssignRoomRequest,
    ChangeDatesRequest, PaymentRequest

  Pricing:
    QuoteRequest, QuoteDTO, RateDTO, SetRateRequest

  Availability:
    AvailabilityDTO

VALIDATION:
  Domain validation lives in the hotel package; handlers only check that
  the JSON parses and dates are well-formed. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - hotel/types.go: The domain model these project
*/
package api

import (
	"time"

	"github.com/omrtre/HotelReservation/hotel"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ReservationDTO represents a reservation in API responses.
type ReservationDTO struct {
	Locator string `json:"locator"`

	GuestName  string `json:"guest_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Comments   string `json:"comments,omitempty"`
	CardType   string `json:"card_type"`
	CardLast4  string `json:"card_last4"`
	CardExpiry string `json:"card_expiry"`

	Arrive       string `json:"arrive"`
	Depart       string `json:"depart"`
	Nights       int    `json:"nights"`
	RoomType     string `json:"room_type"`
	AssignedRoom string `json:"assigned_room,omitempty"`

	Type        string           `json:"rtype"`
	Nightly     []NightRateDTO   `json:"nightly"`
	TotalLocked string           `json:"total_locked"`
	PaidAdvance string           `json:"paid_advance"`
	Balance     string           `json:"balance"`
	FullyPaid   bool             `json:"fully_paid"`
	Payments    []PaymentHistDTO `json:"payments,omitempty"`

	Status     string `json:"status"`
	Fee        string `json:"fee"`
	ChangeNote string `json:"change_note,omitempty"`

	CreatedOn  string `json:"created_on"`
	CreatedBy  string `json:"created_by,omitempty"`
	CheckInAt  string `json:"check_in_at,omitempty"`
	CheckOutAt string `json:"check_out_at,omitempty"`
}

// NightRateDTO is one night of the locked rate snapshot.
type NightRateDTO struct {
	Date string `json:"date"`
	Rate string `json:"rate"`
}

// PaymentHistDTO is one payment history entry.
type PaymentHistDTO struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

// CreateReservationRequest is the request to create a reservation.
type CreateReservationRequest struct {
	GuestName string `json:"guest_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Comments  string `json:"comments,omitempty"`

	CardNumber string `json:"card_number"`
	CardType   string `json:"card_type"`
	CardExpiry string `json:"card_expiry"` // MM-YYYY

	Arrive   string `json:"arrive"` // YYYY-MM-DD
	Depart   string `json:"depart"`
	RoomType string `json:"room_type"`
	Type     string `json:"rtype"`

	AssignedRoom string `json:"assigned_room,omitempty"`
	CreatedBy    string `json:"created_by,omitempty"`
}

// AssignRoomRequest assigns a physical room to a reservation.
type AssignRoomRequest struct {
	Room string `json:"room"`
}

// ChangeDatesRequest moves a reservation to a new stay span.
type ChangeDatesRequest struct {
	Arrive string `json:"arrive"`
	Depart string `json:"depart"`
}

// PaymentRequest records a payment against a reservation.
type PaymentRequest struct {
	Amount float64 `json:"amount"`
}

// PaymentResultDTO is the response to a recorded payment.
type PaymentResultDTO struct {
	Locator string `json:"locator"`
	Balance string `json:"balance"`
}

// QuoteRequest asks for a price quote.
type QuoteRequest struct {
	Arrive string `json:"arrive"`
	Depart string `json:"depart"`
	Type   string `json:"rtype"`
}

// QuoteDTO is a priced stay.
type QuoteDTO struct {
	Arrive string `json:"arrive"`
	Depart string `json:"depart"`
	Type   string `json:"rtype"`

	Nightly []NightRateDTO `json:"nightly"`
	Total   string         `json:"total"`

	IncentiveEligible bool    `json:"incentive_eligible"`
	OccupancyRatio    float64 `json:"occupancy_ratio"`

	ChangeNote string `json:"change_note,omitempty"`
	Penalty    string `json:"penalty,omitempty"`
}

// RateDTO is one base-rate calendar entry.
type RateDTO struct {
	Date string `json:"date"`
	Rate string `json:"rate"`
}

// SetRateRequest sets the base rate for one night.
type SetRateRequest struct {
	Rate float64 `json:"rate"`
}

// AvailabilityDTO reports free rooms over a span.
type AvailabilityDTO struct {
	Arrive       string         `json:"arrive"`
	Depart       string         `json:"depart"`
	Available    bool           `json:"available"`
	MinRoomsFree int            `json:"min_rooms_free"`
	Nightly      []NightFreeDTO `json:"nightly"`
}

// NightFreeDTO is the free-room count for one night.
type NightFreeDTO struct {
	Date string `json:"date"`
	Free int    `json:"free"`
}

// TaskResultDTO is one action taken by the daily sweep.
type TaskResultDTO struct {
	Kind    string `json:"kind"`
	Locator string `json:"locator"`
	Detail  string `json:"detail"`
}

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details string   `json:"details,omitempty"`
	Fields  []string `json:"fields,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toReservationDTO(r *hotel.Reservation) ReservationDTO {
	dto := ReservationDTO{
		Locator:      r.Locator,
		GuestName:    r.Guest.Name,
		Email:        r.Guest.Email,
		Phone:        r.Guest.Phone,
		Address:      r.Guest.Address,
		Comments:     r.Guest.Comments,
		CardType:     r.Card.Type,
		CardLast4:    r.Card.LastFour,
		CardExpiry:   r.Card.Expiry,
		Arrive:       r.Arrive.String(),
		Depart:       r.Depart.String(),
		Nights:       r.Nights(),
		RoomType:     string(r.RoomType),
		AssignedRoom: r.AssignedRoom,
		Type:         string(r.Type),
		Nightly:      toNightRateDTOs(r.Nightly),
		TotalLocked:  r.TotalLocked.StringFixed(2),
		PaidAdvance:  r.PaidAdvance.StringFixed(2),
		Balance:      r.Balance().StringFixed(2),
		FullyPaid:    r.FullyPaid,
		Status:       string(r.Status),
		Fee:          r.Fee.StringFixed(2),
		ChangeNote:   r.ChangeNote,
		CreatedOn:    r.CreatedOn.String(),
		CreatedBy:    r.CreatedBy,
	}
	for _, p := range r.Payments {
		dto.Payments = append(dto.Payments, PaymentHistDTO{
			Date:   p.Date.String(),
			Amount: p.Amount.StringFixed(2),
		})
	}
	if r.CheckInAt != nil {
		dto.CheckInAt = r.CheckInAt.Format(time.RFC3339)
	}
	if r.CheckOutAt != nil {
		dto.CheckOutAt = r.CheckOutAt.Format(time.RFC3339)
	}
	return dto
}

func toNightRateDTOs(nights []hotel.NightRate) []NightRateDTO {
	dtos := make([]NightRateDTO, len(nights))
	for i, n := range nights {
		dtos[i] = NightRateDTO{Date: n.Date.String(), Rate: n.Rate.StringFixed(2)}
	}
	return dtos
}

func toQuoteDTO(q *hotel.Quote) QuoteDTO {
	dto := QuoteDTO{
		Arrive:            q.Span.Arrive.String(),
		Depart:            q.Span.Depart.String(),
		Type:              string(q.Type),
		Nightly:           toNightRateDTOs(q.Nightly),
		Total:             q.Total.StringFixed(2),
		IncentiveEligible: q.IncentiveEligible,
		OccupancyRatio:    q.OccupancyRatio,
		ChangeNote:        q.ChangeNote,
	}
	if !q.Penalty.IsZero() {
		dto.Penalty = q.Penalty.StringFixed(2)
	}
	return dto
}

func toAvailabilityDTO(span hotel.StaySpan, res hotel.AvailabilityResult) AvailabilityDTO {
	dto := AvailabilityDTO{
		Arrive:       span.Arrive.String(),
		Depart:       span.Depart.String(),
		Available:    res.Available,
		MinRoomsFree: res.MinRoomsFree,
	}
	for _, n := range res.Nightly {
		dto.Nightly = append(dto.Nightly, NightFreeDTO{Date: n.Date.String(), Free: n.RoomsFree})
	}
	return dto
}
