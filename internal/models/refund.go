package models

// Refund statuses written by the assistant.
const (
	RefundStatusInitiated = "Initiated"

	DefaultRefundMode = "Original Payment Method"
)

// RefundInitiation is the set of refund columns written back to a booking
// when the assistant opens a refund.
type RefundInitiation struct {
	TransactionID string `json:"transaction_id"`
	BookingID     string `json:"booking_id"`
	RefundID      string `json:"refund_id"`
	RefundStatus  string `json:"refund_status"`
	RefundAmount  Amount `json:"refund_amount"`
	RefundDate    string `json:"refund_date"`
	RefundMode    string `json:"refund_mode"`
}

// Apply copies the refund columns onto a booking record.
func (r RefundInitiation) Apply(b *BookingRecord) {
	b.RefundID = r.RefundID
	b.RefundStatus = r.RefundStatus
	b.RefundAmount = r.RefundAmount
	b.RefundDate = r.RefundDate
	b.RefundMode = r.RefundMode
}
