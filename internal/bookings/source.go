// Package bookings loads booking records for a customer email and persists
// refund initiations back to the store.
package bookings

import (
	"context"
	"strings"

	"airline-assist/internal/models"
)

// Source finds the bookings made under an email address.
type Source interface {
	FindByEmail(ctx context.Context, email string) ([]models.BookingRecord, error)
}

// RefundRepository allocates refund ids and writes refund columns.
type RefundRepository interface {
	NextRefundID(ctx context.Context) (string, error)
	SaveRefund(ctx context.Context, r models.RefundInitiation) error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
