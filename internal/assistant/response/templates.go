// Package response renders answers from booking records and wraps them in
// sentiment-aware phrasing.
package response

import (
	"fmt"
	"strings"
	"time"

	"airline-assist/internal/assistant/intent"
	"airline-assist/internal/models"
)

const DefaultCurrency = "INR"

type template func(s *Synthesizer, r models.BookingRecord) string

var intentTemplates = map[string]template{
	intent.IntentRefundStatusCheck: refundStatusCheck,
	intent.IntentRefundTiming:      refundTiming,
	intent.IntentRefundAmount:      refundAmount,

	intent.IntentFlightDetails: flightDetails,
	intent.IntentDepartureTime: departureTime,
	intent.IntentArrivalTime:   arrivalTime,

	intent.IntentBookingDetails: bookingDetails,
	intent.IntentSeatInfo:       seatInfo,
	intent.IntentMealInfo:       mealInfo,
	intent.IntentBaggageInfo:    baggageInfo,

	intent.IntentAmountPaid:       amountPaid,
	intent.IntentPaymentMethod:    paymentMethod,
	intent.IntentPaymentBreakdown: paymentBreakdown,

	intent.IntentCheckinStatus: checkinStatus,
	intent.IntentBoardingGroup: boardingGroup,

	intent.IntentBookingStatus: bookingStatus,
	intent.IntentPNRInfo:       pnrInfo,
	intent.IntentContactInfo:   contactInfo,
}

var categoryTemplates = map[string]template{
	intent.CategoryRefund:        refundStatusCheck,
	intent.CategoryFlight:        flightDetails,
	intent.CategoryBooking:       bookingDetails,
	intent.CategoryPayment:       paymentSummary,
	intent.CategoryCheckIn:       checkinStatus,
	intent.CategoryBookingStatus: statusSummary,
}

// Synthesizer renders intent and category answers. It holds no per-call
// state and is safe for concurrent use.
type Synthesizer struct {
	currency string
	now      func() time.Time
}

// NewSynthesizer returns a Synthesizer. currency is used when a record has
// none; clock defaults to time.Now.
func NewSynthesizer(currency string, clock func() time.Time) *Synthesizer {
	if strings.TrimSpace(currency) == "" {
		currency = DefaultCurrency
	}
	if clock == nil {
		clock = time.Now
	}
	return &Synthesizer{currency: currency, now: clock}
}

// ForIntent renders the answer tied to a single intent.
func (s *Synthesizer) ForIntent(intentID string, r models.BookingRecord) (string, bool) {
	t, ok := intentTemplates[intentID]
	if !ok {
		return "", false
	}
	return t(s, r), true
}

// ForCategory renders the broader answer used when only a category matched.
func (s *Synthesizer) ForCategory(categoryID string, r models.BookingRecord) (string, bool) {
	t, ok := categoryTemplates[categoryID]
	if !ok {
		return "", false
	}
	return t(s, r), true
}

// Missing returns the intents that have no template.
func Missing(intents []string) []string {
	var out []string
	for _, id := range intents {
		if _, ok := intentTemplates[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

var refundDays = map[string]int{
	"credit card":             7,
	"debit card":              10,
	"bank transfer":           14,
	"manual":                  5,
	"travel credit":           3,
	"original source":         10,
	"original payment method": 10,
}

const defaultRefundDays = 7

// RefundDays is the processing time in days for a refund mode.
func RefundDays(mode string) int {
	if d, ok := refundDays[strings.ToLower(strings.TrimSpace(mode))]; ok {
		return d
	}
	return defaultRefundDays
}

// ExpectedRefundCompletion adds the mode's processing days to the refund
// start date.
func ExpectedRefundCompletion(refundDate, mode string) (time.Time, bool) {
	start, ok := models.ParseTimestamp(refundDate)
	if !ok {
		return time.Time{}, false
	}
	return start.AddDate(0, 0, RefundDays(mode)), true
}

func (s *Synthesizer) money(r models.BookingRecord, a models.Amount) string {
	currency := r.Currency
	if strings.TrimSpace(currency) == "" {
		currency = s.currency
	}
	return FormatCurrency(a.Float64(), currency)
}

func (s *Synthesizer) withAdvisory(text string, r models.BookingRecord) string {
	if advisory := DepartureAdvisory(r, s.now()); advisory != "" {
		return text + "\n\n" + advisory
	}
	return text
}

func bookingRef(r models.BookingRecord) string {
	if id := strings.TrimSpace(r.BookingID); id != "" {
		return id
	}
	return NotAvailable
}

func refundMode(r models.BookingRecord) string {
	if m := strings.TrimSpace(r.RefundMode); m != "" {
		return m
	}
	return models.DefaultRefundMode
}

func expectedCompletion(r models.BookingRecord) string {
	t, ok := ExpectedRefundCompletion(r.RefundDate, r.RefundMode)
	if !ok {
		return NotAvailable
	}
	return t.Format(dateLayout)
}

func noRefund(r models.BookingRecord) string {
	return fmt.Sprintf("There is no refund on record for booking %s. "+
		"If you were expecting one, I can check your booking status or you can reach our support team for help.",
		bookingRef(r))
}

// ==========================
// Refund
// ==========================

func refundStatusCheck(s *Synthesizer, r models.BookingRecord) string {
	if !r.HasActiveRefund() {
		return noRefund(r)
	}
	return fmt.Sprintf("Your refund %s for booking %s is %s.\nAmount: %s\nProcessing date: %s\nExpected completion: %s via %s",
		strings.TrimSpace(r.RefundID), bookingRef(r), FormatStatus(r.RefundStatus),
		s.money(r, r.RefundAmount), FormatDate(r.RefundDate), expectedCompletion(r), refundMode(r))
}

func refundTiming(s *Synthesizer, r models.BookingRecord) string {
	if !r.HasActiveRefund() {
		return noRefund(r)
	}
	return fmt.Sprintf("The refund will be processed to your %s. It was started on %s and is expected to complete by %s. "+
		"Refunds usually reach your account within 5-7 business days.",
		refundMode(r), FormatDate(r.RefundDate), expectedCompletion(r))
}

func refundAmount(s *Synthesizer, r models.BookingRecord) string {
	if !r.HasActiveRefund() {
		return noRefund(r)
	}
	return fmt.Sprintf("We will refund %s for booking %s under refund ID %s. You'll receive it via %s.",
		s.money(r, r.RefundAmount), bookingRef(r), strings.TrimSpace(r.RefundID), refundMode(r))
}

// ==========================
// Flight
// ==========================

func flightDetails(s *Synthesizer, r models.BookingRecord) string {
	text := fmt.Sprintf("Flight: %s\nFrom: %s at %s\nTo: %s at %s\nClass: %s\nSeat: %s (%s)",
		FormatFlightNumber(r.FlightNumber),
		FormatAirport(r.DepartureAirport), FormatTime(r.DepartureTime),
		FormatAirport(r.ArrivalAirport), FormatTime(r.ArrivalTime),
		FormatTravelClass(r.TravelClass),
		orNA(r.SeatNumber), FormatSeatType(r.SeatType))
	return s.withAdvisory(text, r)
}

func departureTime(s *Synthesizer, r models.BookingRecord) string {
	when := FormatTime(r.DepartureTime)
	if departure, ok := r.DepartureAt(); ok {
		when = departure.Format(dateLayout) + " at " + departure.Format(timeLayout)
	}
	text := fmt.Sprintf("Flight %s departs from %s on %s.",
		FormatFlightNumber(r.FlightNumber), FormatAirport(r.DepartureAirport), when)
	return s.withAdvisory(text, r)
}

func arrivalTime(s *Synthesizer, r models.BookingRecord) string {
	text := fmt.Sprintf("Flight %s arrives at %s at %s.",
		FormatFlightNumber(r.FlightNumber), FormatAirport(r.ArrivalAirport), FormatTime(r.ArrivalTime))
	return s.withAdvisory(text, r)
}

// ==========================
// Booking
// ==========================

func bookingDetails(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("Booking ID: %s\nPNR: %s\nPassenger: %s\nAmount Paid: %s\nAdd-ons: %s, %s\nMeal: %s",
		bookingRef(r), FormatPNR(r.PNR), FormatName(r.PassengerName), s.money(r, r.TotalAmountPaid),
		orNA(r.BaggageAddon), orNA(r.WifiAddon), FormatMeal(r.MealSelected))
}

func seatInfo(s *Synthesizer, r models.BookingRecord) string {
	if strings.TrimSpace(r.SeatNumber) == "" {
		return fmt.Sprintf("No seat has been assigned on flight %s yet. You can pick one during check-in.",
			FormatFlightNumber(r.FlightNumber))
	}
	return fmt.Sprintf("Your seat on flight %s is %s (%s), %s.",
		FormatFlightNumber(r.FlightNumber), strings.TrimSpace(r.SeatNumber),
		FormatSeatType(r.SeatType), FormatTravelClass(r.TravelClass))
}

func mealInfo(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("Meal selected for booking %s: %s.", bookingRef(r), FormatMeal(r.MealSelected))
}

func baggageInfo(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("Baggage allowance: %s\nExtra baggage add-on: %s",
		orNA(r.BaggageAllowance), orNA(r.BaggageAddon))
}

// ==========================
// Payment
// ==========================

func amountPaid(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("You paid %s for booking %s.", s.money(r, r.TotalAmountPaid), bookingRef(r))
}

func paymentMethod(s *Synthesizer, r models.BookingRecord) string {
	instrument := strings.TrimSpace(r.PaymentInstrument)
	if instrument == "" {
		instrument = NotAvailable
	}
	return fmt.Sprintf("Booking %s was paid using: %s.", bookingRef(r), instrument)
}

func paymentBreakdown(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("Ticket price: %s\nTaxes and fees: %s\nTotal paid: %s",
		s.money(r, r.TicketPrice), s.money(r, r.Taxes), s.money(r, r.TotalAmountPaid))
}

func paymentSummary(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("Total Amount Paid: %s\nPayment Status: %s\nBooking Reference: %s",
		s.money(r, r.TotalAmountPaid), FormatStatus(r.Status), bookingRef(r))
}

// ==========================
// Check-in
// ==========================

func checkinStatus(s *Synthesizer, r models.BookingRecord) string {
	flight := FormatFlightNumber(r.FlightNumber)
	if r.IsCheckedIn() {
		text := fmt.Sprintf("You're checked in for flight %s.", flight)
		if g := strings.TrimSpace(r.BoardingGroup); g != "" {
			text += fmt.Sprintf(" Your boarding group is %s.", g)
		}
		return text
	}
	text := fmt.Sprintf("You haven't checked in for flight %s yet. Online check-in opens 24 hours before departure.", flight)
	return s.withAdvisory(text, r)
}

func boardingGroup(s *Synthesizer, r models.BookingRecord) string {
	g := strings.TrimSpace(r.BoardingGroup)
	if g == "" {
		return fmt.Sprintf("A boarding group hasn't been assigned to booking %s yet. It is usually assigned at check-in.",
			bookingRef(r))
	}
	return fmt.Sprintf("Your boarding group for flight %s is %s.", FormatFlightNumber(r.FlightNumber), g)
}

// ==========================
// Booking status
// ==========================

func bookingStatus(s *Synthesizer, r models.BookingRecord) string {
	text := fmt.Sprintf("Booking %s is %s.", bookingRef(r), FormatStatus(r.Status))
	if !strings.EqualFold(strings.TrimSpace(r.Status), "confirmed") {
		text += " We will let you know as soon as anything changes."
	}
	return text
}

func pnrInfo(s *Synthesizer, r models.BookingRecord) string {
	if strings.TrimSpace(r.PNR) == "" {
		return fmt.Sprintf("A PNR has not been generated for booking %s yet.", bookingRef(r))
	}
	return fmt.Sprintf("Your PNR for booking %s is %s.", bookingRef(r), FormatPNR(r.PNR))
}

func contactInfo(s *Synthesizer, r models.BookingRecord) string {
	return fmt.Sprintf("Passenger: %s\nEmail: %s\nPhone: %s\nFrequent flyer ID: %s",
		FormatName(r.PassengerName), FormatEmail(r.ContactEmail()),
		FormatPhone(r.ContactNumber), orNA(r.FrequentFlyerID))
}

func statusSummary(s *Synthesizer, r models.BookingRecord) string {
	return bookingStatus(s, r) + "\n" + pnrInfo(s, r)
}
