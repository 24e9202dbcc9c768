// Package refund holds the rules for opening a refund automatically when a
// booking never received a PNR.
package refund

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"airline-assist/internal/assistant/response"
	"airline-assist/internal/models"
)

const (
	refundIDPrefix = "RFND"
	firstRefundNum = 10001
	refundDateFmt  = "2006-01-02"
)

var digits = regexp.MustCompile(`\d+`)

// ShouldInitiate reports whether the booking failed PNR generation and has
// no refund in flight yet.
func ShouldInitiate(r models.BookingRecord) bool {
	pnr := strings.ToLower(strings.TrimSpace(r.PNR))
	pnrFailed := pnr == "" || pnr == "failed" || pnr == "not generated"
	return pnrFailed && strings.TrimSpace(r.RefundStatus) == ""
}

// NextRefundID returns the id following the highest numbered id in
// existing. The sequence starts at RFND10001.
func NextRefundID(existing []string) string {
	highest := 0
	for _, id := range existing {
		m := digits.FindString(id)
		if m == "" {
			continue
		}
		if n, err := strconv.Atoi(m); err == nil && n > highest {
			highest = n
		}
	}
	if highest == 0 {
		return refundIDPrefix + strconv.Itoa(firstRefundNum)
	}
	return refundIDPrefix + strconv.Itoa(highest+1)
}

// NewInitiation builds the refund columns for a new refund of the full
// amount paid.
func NewInitiation(r models.BookingRecord, refundID string, today time.Time) models.RefundInitiation {
	mode := strings.TrimSpace(r.PaymentInstrument)
	if mode == "" {
		mode = models.DefaultRefundMode
	}
	return models.RefundInitiation{
		TransactionID: r.TransactionID,
		BookingID:     r.BookingID,
		RefundID:      refundID,
		RefundStatus:  models.RefundStatusInitiated,
		RefundAmount:  r.TotalAmountPaid,
		RefundDate:    today.Format(refundDateFmt),
		RefundMode:    mode,
	}
}

// InitiationMessage tells the passenger a refund was opened for them.
func InitiationMessage(r models.BookingRecord, refundID, currency string) string {
	if strings.TrimSpace(r.Currency) != "" {
		currency = r.Currency
	}
	instrument := strings.TrimSpace(r.PaymentInstrument)
	if instrument == "" {
		instrument = strings.ToLower(models.DefaultRefundMode)
	}
	return fmt.Sprintf("I've reviewed your booking %s and noticed the PNR generation failed. "+
		"I know this is frustrating when you're ready to travel, so I've automatically initiated a refund for you.\n\n"+
		"Your refund reference is %s, and we're processing %s back to your %s. "+
		"You should see this in your account within 5-7 business days, and you'll get an email confirmation shortly.\n\n"+
		"No further action needed from you - I've got this handled! Is there anything else I can help with?",
		r.BookingID, refundID, response.FormatCurrency(r.TotalAmountPaid.Float64(), currency), instrument)
}
