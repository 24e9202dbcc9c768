// internal/workers/assistant/select-booking/models.go
package selectbooking

import "airline-assist/internal/assistant/intent"

type Input struct {
	SessionID string `json:"sessionId"`
	BookingID string `json:"bookingId"`
}

type Output struct {
	SessionID      string              `json:"sessionId"`
	Stage          string              `json:"stage"`
	BookingID      string              `json:"bookingId"`
	Message        string              `json:"message"`
	RefundEligible bool                `json:"refundEligible"`
	Warnings       []string            `json:"warnings,omitempty"`
	Suggestions    []intent.Suggestion `json:"suggestions"`
}

const messageSelectedFormat = "Selected booking %s. What would you like to know about this transaction?"
