package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Amount is a monetary value as stored in the bookings sheet. The sheet
// returns numbers either as JSON numbers or as numeric strings.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	raw := bytes.TrimSpace(b)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*a = 0
		return nil
	}

	s := string(raw)
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return err
		}
		s = strings.ReplaceAll(strings.TrimSpace(str), ",", "")
		if s == "" {
			*a = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid amount %q: not a finite number", s)
	}
	*a = Amount(f)
	return nil
}

func (a Amount) Float64() float64 {
	return float64(a)
}

// BookingRecord is one row of the bookings store.
type BookingRecord struct {
	ID            string `json:"id,omitempty"`
	TransactionID string `json:"transaction_id,omitempty"`
	BookingID     string `json:"booking_id"`
	PNR           string `json:"pnr"`

	UserEmail       string `json:"user_email,omitempty"`
	Email           string `json:"email,omitempty"`
	PassengerName   string `json:"passenger_name"`
	ContactNumber   string `json:"contact_number,omitempty"`
	FrequentFlyerID string `json:"frequent_flyer_id,omitempty"`

	FlightNumber     string `json:"flight_number"`
	DepartureAirport string `json:"departure_airport"`
	ArrivalAirport   string `json:"arrival_airport"`
	DepartureTime    string `json:"departure_time"`
	ArrivalTime      string `json:"arrival_time"`
	TravelDate       string `json:"travel_date,omitempty"`
	BookingDate      string `json:"booking_date,omitempty"`
	TravelClass      string `json:"travel_class,omitempty"`
	SeatNumber       string `json:"seat_number,omitempty"`
	SeatType         string `json:"seat_type,omitempty"`
	MealSelected     string `json:"meal_selected,omitempty"`
	BaggageAllowance string `json:"baggage_allowance,omitempty"`
	BaggageAddon     string `json:"baggage_addon,omitempty"`
	WifiAddon        string `json:"wifi_addon,omitempty"`

	TicketPrice       Amount `json:"ticket_price,omitempty"`
	Taxes             Amount `json:"taxes,omitempty"`
	TotalAmountPaid   Amount `json:"total_amount_paid"`
	PaymentInstrument string `json:"payment_instrument,omitempty"`
	Currency          string `json:"currency,omitempty"`

	Status        string `json:"status"`
	CheckinStatus string `json:"checkin_status,omitempty"`
	BoardingGroup string `json:"boarding_group,omitempty"`

	RefundID     string `json:"refund_id,omitempty"`
	RefundStatus string `json:"refund_status,omitempty"`
	RefundAmount Amount `json:"refund_amount,omitempty"`
	RefundDate   string `json:"refund_date,omitempty"`
	RefundMode   string `json:"refund_mode,omitempty"`
}

// HasActiveRefund reports whether a refund attempt exists. Both the id and
// a positive amount are required; a zero-amount row is a placeholder.
func (b BookingRecord) HasActiveRefund() bool {
	return strings.TrimSpace(b.RefundID) != "" && b.RefundAmount > 0
}

// ContactEmail returns whichever email column the store populated.
func (b BookingRecord) ContactEmail() string {
	if b.UserEmail != "" {
		return b.UserEmail
	}
	return b.Email
}

// IsCheckedIn reports whether the passenger completed check-in.
func (b BookingRecord) IsCheckedIn() bool {
	switch strings.ToLower(strings.TrimSpace(b.CheckinStatus)) {
	case "checked in", "checked-in", "checkedin", "completed", "done", "yes":
		return true
	}
	return false
}

// DepartureAt resolves the scheduled departure instant. departure_time may
// be a full timestamp or a clock time paired with travel_date.
func (b BookingRecord) DepartureAt() (time.Time, bool) {
	if t, ok := ParseTimestamp(b.DepartureTime); ok {
		return t, true
	}
	clock, ok := ParseClock(b.DepartureTime)
	if !ok {
		return time.Time{}, false
	}
	day, ok := ParseTimestamp(b.TravelDate)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, day.Location()), true
}

// Validate lists the problems that make a record unusable for answering
// questions.
func (b BookingRecord) Validate() []string {
	var problems []string
	if strings.TrimSpace(b.BookingID) == "" {
		problems = append(problems, "booking ID is missing")
	}
	if strings.TrimSpace(b.PNR) == "" {
		problems = append(problems, "PNR is missing")
	}
	if strings.TrimSpace(b.FlightNumber) == "" {
		problems = append(problems, "flight number is missing")
	}
	if strings.TrimSpace(b.PassengerName) == "" {
		problems = append(problems, "passenger name is missing")
	}
	if b.TotalAmountPaid <= 0 {
		problems = append(problems, "invalid payment amount")
	}
	return problems
}
