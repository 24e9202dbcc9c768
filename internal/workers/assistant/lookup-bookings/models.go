// internal/workers/assistant/lookup-bookings/models.go
package lookupbookings

import "airline-assist/internal/models"

type Input struct {
	SessionID string `json:"sessionId,omitempty"`
	Email     string `json:"email"`
}

type Output struct {
	SessionID    string           `json:"sessionId"`
	Stage        string           `json:"stage"`
	ValidEmail   bool             `json:"validEmail"`
	BookingCount int              `json:"bookingCount"`
	Bookings     []BookingSummary `json:"bookings"`
	Message      string           `json:"message"`
}

// BookingSummary is what the chat shows in the booking picker.
type BookingSummary struct {
	BookingID    string `json:"bookingId"`
	FlightNumber string `json:"flightNumber"`
	Route        string `json:"route"`
	TravelDate   string `json:"travelDate,omitempty"`
	Status       string `json:"status"`
}

func summarize(records []models.BookingRecord) []BookingSummary {
	out := make([]BookingSummary, 0, len(records))
	for _, r := range records {
		out = append(out, BookingSummary{
			BookingID:    r.BookingID,
			FlightNumber: r.FlightNumber,
			Route:        r.DepartureAirport + " → " + r.ArrivalAirport,
			TravelDate:   r.TravelDate,
			Status:       r.Status,
		})
	}
	return out
}

const (
	MessageNoBookings = "Sorry, we couldn't find any transactions associated with this email. " +
		"Please verify your email address or contact customer support."
	messageFoundFormat = "Found %d transaction(s) for your email. Please select a transaction to continue:"
)
