/*
validate.go - Input validation boundary

PURPOSE:
  Everything the engine must reject before acting. Validation runs eagerly,
  before any mutation, and reports every failing field at once so the front
  desk can fix a whole form in one pass.

FIELD RULES:
  guest name   non-empty, <= 35 chars, at least one letter
  email        local@domain.tld shape, <= 40 chars
  phone        10-11 digits after stripping spaces/dashes/dots/parens
  address      non-empty, 5-75 chars
  comments     optional, <= 100 chars
  dates        YYYY-MM-DD, departure strictly after arrival
  stay length  1..MaxStayNights nights
  card number  13-16 digits (validated then discarded; only last 4 kept)
  card expiry  MM-YYYY, current month or later
  arrival      in the future; Prepaid >= 90 days out, 60-Day >= 60 days out
*/
package hotel

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	maxGuestName = 35
	maxEmail     = 40
	maxAddress   = 75
	minAddress   = 5
	maxComments  = 100
	minPhone     = 10
	maxPhone     = 11
	minCardNum   = 13
	maxCardNum   = 16
	maxCardType  = 15
)

var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStripper   = regexp.MustCompile(`[\s\-\(\)\.]`)
	cardStripper    = regexp.MustCompile(`[\s\-]`)
	nonDigitPattern = regexp.MustCompile(`\D`)
)

// CreateInput is everything captured at booking time. The card number
// arrives in full for validation but only its last four digits survive
// onto the record.
type CreateInput struct {
	Guest Guest

	CardNumber string
	CardType   string
	CardExpiry string

	Arrive   Date
	Depart   Date
	RoomType RoomType
	Type     ReservationType

	AssignedRoom string
	CreatedBy    string
}

// Validate checks every field and returns the full list of failures, or nil.
func (e *Engine) validateCreate(in *CreateInput) ValidationErrors {
	var errs ValidationErrors
	add := func(field, reason string) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	if reason, ok := checkGuestName(in.Guest.Name); !ok {
		add("guest name", reason)
	}
	if reason, ok := checkEmail(in.Guest.Email); !ok {
		add("email", reason)
	}
	if _, reason, ok := CleanPhone(in.Guest.Phone); !ok {
		add("phone", reason)
	}
	if reason, ok := checkAddress(in.Guest.Address); !ok {
		add("address", reason)
	}
	if len(in.Guest.Comments) > maxComments {
		add("comments", fmt.Sprintf("cannot exceed %d characters", maxComments))
	}

	if !in.Type.Valid() {
		add("reservation type", fmt.Sprintf("unknown type %q", in.Type))
	}
	if !in.RoomType.Valid() {
		add("room type", fmt.Sprintf("unknown room type %q", in.RoomType))
	}

	if in.Arrive.IsZero() || in.Depart.IsZero() {
		add("dates", "arrival and departure dates are required")
	} else if !in.Depart.After(in.Arrive) {
		add("dates", "departure must be after arrival")
	} else {
		nights := StaySpan{Arrive: in.Arrive, Depart: in.Depart}.Nights()
		if nights > e.cfg.MaxStayNights {
			add("dates", fmt.Sprintf("stay cannot exceed %d nights (requested %d)", e.cfg.MaxStayNights, nights))
		}

		today := e.Today()
		daysOut := today.DaysUntil(in.Arrive)
		if daysOut <= 0 {
			add("arrival date", "must be in the future")
		} else if min := in.Type.MinAdvanceDays(); daysOut < min {
			add("arrival date", fmt.Sprintf("%s reservations must be booked at least %d days in advance (%d selected)", in.Type, min, daysOut))
		}
	}

	if _, reason, ok := cleanCardNumber(in.CardNumber); !ok {
		add("card number", reason)
	}
	if reason, ok := checkCardExpiry(in.CardExpiry, e.Today()); !ok {
		add("card expiry", reason)
	}
	if ct := strings.TrimSpace(in.CardType); ct == "" {
		add("card type", "is required")
	} else if len(ct) > maxCardType {
		add("card type", fmt.Sprintf("cannot exceed %d characters", maxCardType))
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func checkGuestName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "is required", false
	}
	if len(name) > maxGuestName {
		return fmt.Sprintf("cannot exceed %d characters", maxGuestName), false
	}
	for _, r := range name {
		if unicode.IsLetter(r) {
			return "", true
		}
	}
	return "must contain at least one letter", false
}

func checkEmail(email string) (string, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "is required", false
	}
	if len(email) > maxEmail {
		return fmt.Sprintf("cannot exceed %d characters", maxEmail), false
	}
	if !emailPattern.MatchString(email) {
		return "must look like name@example.com", false
	}
	return "", true
}

func checkAddress(address string) (string, bool) {
	address = strings.TrimSpace(address)
	if address == "" {
		return "is required", false
	}
	if len(address) > maxAddress {
		return fmt.Sprintf("cannot exceed %d characters", maxAddress), false
	}
	if len(address) < minAddress {
		return "must be a complete street, city, state address", false
	}
	return "", true
}

// CleanPhone strips formatting and validates digit count. It returns the
// cleaned digits, which are what the record stores.
func CleanPhone(phone string) (cleaned, reason string, ok bool) {
	cleaned = phoneStripper.ReplaceAllString(strings.TrimSpace(phone), "")
	if cleaned == "" {
		return "", "is required", false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", "must contain only digits", false
		}
	}
	if len(cleaned) < minPhone || len(cleaned) > maxPhone {
		return "", fmt.Sprintf("must be %d-%d digits (got %d)", minPhone, maxPhone, len(cleaned)), false
	}
	return cleaned, "", true
}

func cleanCardNumber(number string) (cleaned, reason string, ok bool) {
	cleaned = cardStripper.ReplaceAllString(strings.TrimSpace(number), "")
	if cleaned == "" {
		return "", "is required", false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return "", "must contain only digits", false
		}
	}
	if len(cleaned) < minCardNum || len(cleaned) > maxCardNum {
		return "", fmt.Sprintf("must be %d-%d digits", minCardNum, maxCardNum), false
	}
	return cleaned, "", true
}

// checkCardExpiry accepts MM-YYYY or MM/YYYY, current month or later.
func checkCardExpiry(expiry string, today Date) (string, bool) {
	expiry = strings.ReplaceAll(strings.TrimSpace(expiry), "/", "-")
	parts := strings.Split(expiry, "-")
	if len(parts) != 2 {
		return "must be in MM-YYYY format", false
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return "month must be between 01 and 12", false
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return "must be in MM-YYYY format", false
	}
	if year < 100 {
		year += 2000
	}
	if year < today.Year || (year == today.Year && month < int(today.Month)) {
		return "card has expired", false
	}
	return "", true
}

// TrimClean collapses internal whitespace and trims the ends.
func TrimClean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// MaskCard masks all but the last four digits for display.
func MaskCard(number string) string {
	digits := nonDigitPattern.ReplaceAllString(number, "")
	if len(digits) <= 4 {
		return strings.Repeat("*", len(digits))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// lastFour returns the final four digits of a cleaned card number.
func lastFour(cleaned string) string {
	if len(cleaned) < 4 {
		return ""
	}
	return cleaned[len(cleaned)-4:]
}
