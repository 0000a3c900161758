/*
handlers.go - HTTP API handlers for the reservation system

PURPOSE:
  Exposes the reservation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Pricing:
    POST   /api/quotes                  Price a prospective stay
    GET    /api/availability            Free rooms over a span
    GET    /api/rates                   Base-rate calendar
    PUT    /api/rates/{date}            Set one night's base rate
    DELETE /api/rates/{date}            Revert one night to the default

  Reservations:
    GET    /api/reservations            List (optional ?status= filter)
    POST   /api/reservations            Create
    GET    /api/reservations/{locator}  Get one
    POST   /api/reservations/{locator}/room       Assign a room
    POST   /api/reservations/{locator}/check-in   Check in
    POST   /api/reservations/{locator}/check-out  Check out (returns bill)
    POST   /api/reservations/{locator}/cancel     Cancel
    POST   /api/reservations/{locator}/no-show    Mark no-show
    POST   /api/reservations/{locator}/dates      Change dates
    POST   /api/reservations/{locator}/payments   Record a payment
    GET    /api/reservations/{locator}/receipt    Text bill

  Reports:
    GET    /api/reports/{kind}          arrivals | departures | occupancy |
                                        expected-occupancy | expected-income |
                                        incentive-impact | checkout-summary

  Admin:
    POST   /api/admin/daily-tasks       Trigger the daily sweep now

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input shape (dates, amounts)
  3. Call domain logic (hotel.Engine)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed dates, bad amounts
  - 404: Unknown locator
  - 409: Lifecycle precondition or availability conflict
  - 500: Internal errors

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omrtre/HotelReservation/hotel"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *hotel.Engine
}

// NewHandler creates a new handler around the engine.
func NewHandler(engine *hotel.Engine) *Handler {
	return &Handler{Engine: engine}
}

// =============================================================================
// PRICING HANDLERS
// =============================================================================

// CreateQuote prices a prospective stay.
func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	span, ok := parseSpan(w, req.Arrive, req.Depart)
	if !ok {
		return
	}

	quote, err := h.Engine.Quote(r.Context(), span, hotel.ReservationType(req.Type))
	if err != nil {
		writeDomainError(w, "Failed to quote stay", err)
		return
	}

	writeJSON(w, http.StatusOK, toQuoteDTO(quote))
}

// GetAvailability reports free rooms over a span.
// Query: ?arrive=YYYY-MM-DD&depart=YYYY-MM-DD
func (h *Handler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	span, ok := parseSpan(w, r.URL.Query().Get("arrive"), r.URL.Query().Get("depart"))
	if !ok {
		return
	}

	res, err := h.Engine.CheckAvailability(r.Context(), span, "")
	if err != nil {
		writeDomainError(w, "Failed to check availability", err)
		return
	}

	writeJSON(w, http.StatusOK, toAvailabilityDTO(span, res))
}

// ListRates returns the base-rate calendar, sorted by date.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Engine.Rates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rates", err)
		return
	}

	dtos := make([]RateDTO, len(rates))
	for i, nr := range rates {
		dtos[i] = RateDTO{Date: nr.Date.String(), Rate: nr.Rate.StringFixed(2)}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// SetRate sets the base rate for one night.
func (h *Handler) SetRate(w http.ResponseWriter, r *http.Request) {
	date, err := hotel.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	var req SetRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.Engine.SetRate(r.Context(), date, hotel.Dollars(req.Rate)); err != nil {
		writeDomainError(w, "Failed to set rate", err)
		return
	}

	writeJSON(w, http.StatusOK, RateDTO{Date: date.String(), Rate: hotel.Dollars(req.Rate).StringFixed(2)})
}

// RemoveRate reverts one night to the default rate.
func (h *Handler) RemoveRate(w http.ResponseWriter, r *http.Request) {
	date, err := hotel.ParseDate(chi.URLParam(r, "date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return
	}

	if err := h.Engine.RemoveRate(r.Context(), date); err != nil {
		writeDomainError(w, "Failed to remove rate", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// RESERVATION HANDLERS
// =============================================================================

// ListReservations returns all reservations, optionally filtered by status.
func (h *Handler) ListReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Engine.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list reservations", err)
		return
	}

	statusFilter := r.URL.Query().Get("status")

	dtos := []ReservationDTO{}
	for _, res := range reservations {
		if statusFilter != "" && string(res.Status) != statusFilter {
			continue
		}
		dtos = append(dtos, toReservationDTO(res))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetReservation returns a single reservation by locator.
func (h *Handler) GetReservation(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.Get(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeDomainError(w, "Failed to get reservation", err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(res))
}

// CreateReservation books a new stay.
func (h *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	span, ok := parseSpan(w, req.Arrive, req.Depart)
	if !ok {
		return
	}

	res, err := h.Engine.CreateReservation(r.Context(), hotel.CreateInput{
		Guest: hotel.Guest{
			Name:     req.GuestName,
			Email:    req.Email,
			Phone:    req.Phone,
			Address:  req.Address,
			Comments: req.Comments,
		},
		CardNumber:   req.CardNumber,
		CardType:     req.CardType,
		CardExpiry:   req.CardExpiry,
		Arrive:       span.Arrive,
		Depart:       span.Depart,
		RoomType:     hotel.RoomType(req.RoomType),
		Type:         hotel.ReservationType(req.Type),
		AssignedRoom: req.AssignedRoom,
		CreatedBy:    req.CreatedBy,
	})
	if err != nil {
		writeDomainError(w, "Failed to create reservation", err)
		return
	}

	writeJSON(w, http.StatusCreated, toReservationDTO(res))
}

// AssignRoom assigns a physical room.
func (h *Handler) AssignRoom(w http.ResponseWriter, r *http.Request) {
	var req AssignRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	res, err := h.Engine.AssignRoom(r.Context(), chi.URLParam(r, "locator"), req.Room)
	if err != nil {
		writeDomainError(w, "Failed to assign room", err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(res))
}

// CheckIn moves a booked reservation in-house.
func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.CheckIn(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeDomainError(w, "Failed to check in", err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(res))
}

// CheckOut settles the balance and closes the stay. The response carries
// the reservation plus the rendered bill.
func (h *Handler) CheckOut(w http.ResponseWriter, r *http.Request) {
	res, bill, err := h.Engine.CheckOut(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeDomainError(w, "Failed to check out", err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Reservation ReservationDTO `json:"reservation"`
		Bill        string         `json:"bill"`
	}{toReservationDTO(res), bill.Render()})
}

// Cancel cancels a reservation, applying the type's fee policy.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.Cancel(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeDomainError(w, "Failed to cancel", err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(res))
}

// MarkNoShow records a no-show, applying the type's fee policy.
func (h *Handler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.MarkNoShow(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeDomainError(w, "Failed to mark no-show", err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(res))
}

// ChangeDates moves the reservation to a new span, repricing per the
// reservation type's change policy.
func (h *Handler) ChangeDates(w http.ResponseWriter, r *http.Request) {
	var req ChangeDatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	span, ok := parseSpan(w, req.Arrive, req.Depart)
	if !ok {
		return
	}

	res, err := h.Engine.ChangeDates(r.Context(), chi.URLParam(r, "locator"), span)
	if err != nil {
		writeDomainError(w, "Failed to change dates", err)
		return
	}
	writeJSON(w, http.StatusOK, toReservationDTO(res))
}

// RecordPayment applies a payment and returns the remaining balance.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	locator := chi.URLParam(r, "locator")
	balance, err := h.Engine.ApplyPayment(r.Context(), locator, hotel.Dollars(req.Amount), h.Engine.Today())
	if err != nil {
		writeDomainError(w, "Failed to record payment", err)
		return
	}

	writeJSON(w, http.StatusOK, PaymentResultDTO{Locator: locator, Balance: balance.StringFixed(2)})
}

// GetReceipt renders the guest bill as plain text.
func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	res, err := h.Engine.Get(r.Context(), chi.URLParam(r, "locator"))
	if err != nil {
		writeDomainError(w, "Failed to get reservation", err)
		return
	}

	bill := hotel.NewBill(res, h.Engine.Today())
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, bill.Render())
}

// =============================================================================
// REPORT HANDLERS
// =============================================================================

// GetReport dispatches on {kind}.
// Query: ?date= for daily reports, ?start=&days= for projections,
// ?from=&to= for the checkout summary. All dates default to today.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	today := h.Engine.Today()

	date, ok := parseDateParam(w, r.URL.Query().Get("date"), today)
	if !ok {
		return
	}

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 365 {
			writeError(w, http.StatusBadRequest, "Invalid days (1-365)", err)
			return
		}
		days = n
	}

	var (
		report *hotel.Report
		err    error
	)
	switch kind := chi.URLParam(r, "kind"); kind {
	case "arrivals":
		report, err = h.Engine.DailyArrivals(ctx, date)
	case "departures":
		report, err = h.Engine.DailyDepartures(ctx, date)
	case "occupancy":
		report, err = h.Engine.DailyOccupancy(ctx, date)
	case "expected-occupancy":
		start, ok := parseDateParam(w, r.URL.Query().Get("start"), today)
		if !ok {
			return
		}
		report, err = h.Engine.ExpectedOccupancy(ctx, start, days)
	case "expected-income":
		start, ok := parseDateParam(w, r.URL.Query().Get("start"), today)
		if !ok {
			return
		}
		report, err = h.Engine.ExpectedIncome(ctx, start, days)
	case "incentive-impact":
		start, ok := parseDateParam(w, r.URL.Query().Get("start"), today)
		if !ok {
			return
		}
		report, err = h.Engine.IncentiveImpact(ctx, start, days)
	case "checkout-summary":
		from, ok := parseDateParam(w, r.URL.Query().Get("from"), today.AddDays(-30))
		if !ok {
			return
		}
		to, ok := parseDateParam(w, r.URL.Query().Get("to"), today)
		if !ok {
			return
		}
		report, err = h.Engine.CheckoutSummary(ctx, from, to)
	default:
		writeError(w, http.StatusNotFound, "Unknown report kind: "+kind, nil)
		return
	}

	if err != nil {
		writeDomainError(w, "Failed to build report", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// =============================================================================
// ADMIN HANDLERS
// =============================================================================

// RunDailyTasks triggers the daily sweep immediately.
func (h *Handler) RunDailyTasks(w http.ResponseWriter, r *http.Request) {
	results, err := h.Engine.RunDailyTasks(r.Context())
	if err != nil {
		writeDomainError(w, "Daily tasks failed", err)
		return
	}

	dtos := make([]TaskResultDTO, len(results))
	for i, t := range results {
		dtos[i] = TaskResultDTO{Kind: string(t.Kind), Locator: t.Locator, Detail: t.Detail}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func parseSpan(w http.ResponseWriter, arrive, depart string) (hotel.StaySpan, bool) {
	a, err := hotel.ParseDate(arrive)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid arrive date (use YYYY-MM-DD)", err)
		return hotel.StaySpan{}, false
	}
	d, err := hotel.ParseDate(depart)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid depart date (use YYYY-MM-DD)", err)
		return hotel.StaySpan{}, false
	}
	return hotel.StaySpan{Arrive: a, Depart: d}, true
}

func parseDateParam(w http.ResponseWriter, raw string, fallback hotel.Date) (hotel.Date, bool) {
	if raw == "" {
		return fallback, true
	}
	d, err := hotel.ParseDate(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date (use YYYY-MM-DD)", err)
		return hotel.Date{}, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps domain errors onto HTTP statuses.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	status := http.StatusInternalServerError
	switch {
	case hotel.IsValidation(err):
		status = http.StatusBadRequest
	case hotel.IsNotFound(err):
		status = http.StatusNotFound
	case hotel.IsConflict(err):
		status = http.StatusConflict
	}

	resp := ErrorResponse{Error: message, Details: err.Error()}
	var verrs hotel.ValidationErrors
	if errors.As(err, &verrs) {
		for _, ve := range verrs {
			resp.Fields = append(resp.Fields, ve.Field)
		}
	}
	writeJSON(w, status, resp)
}
