// internal/workers/assistant/initiate-refund/models.go
package initiaterefund

import (
	"context"

	"airline-assist/internal/bookings"
	"airline-assist/internal/models"
	"airline-assist/internal/notify"
)

type Input struct {
	SessionID string `json:"sessionId"`
}

type Output struct {
	SessionID          string        `json:"sessionId"`
	BookingID          string        `json:"bookingId"`
	RefundID           string        `json:"refundId"`
	Message            string        `json:"message"`
	Amount             models.Amount `json:"amount"`
	Mode               string        `json:"mode"`
	Status             string        `json:"status"`
	RefundDate         string        `json:"refundDate"`
	NotificationStatus string        `json:"notificationStatus"`
}

// Notifier tells the passenger a refund was opened.
type Notifier interface {
	RefundInitiated(ctx context.Context, record models.BookingRecord, refundID, message string) (*notify.Result, error)
}

// CacheInvalidator drops cached lookups for an email.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// RefundInitiator allocates a refund id and persists the initiation built
// from it as one step.
type RefundInitiator interface {
	Initiate(ctx context.Context, build bookings.BuildRefund) (models.RefundInitiation, error)
}
