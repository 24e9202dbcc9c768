// Package intent classifies utterances against a keyword taxonomy and ranks
// the canonical questions offered as suggestions.
package intent

// Category identifiers.
const (
	CategoryRefund        = "refundStatus"
	CategoryFlight        = "flightDetails"
	CategoryBooking       = "bookingDetails"
	CategoryPayment       = "paymentDetails"
	CategoryCheckIn       = "checkIn"
	CategoryBookingStatus = "bookingStatus"
)

// Intent identifiers. Each one has exactly one answer template.
const (
	IntentRefundStatusCheck = "refundStatusCheck"
	IntentRefundTiming      = "refundTiming"
	IntentRefundAmount      = "refundAmount"

	IntentFlightDetails = "flightDetails"
	IntentDepartureTime = "departureTime"
	IntentArrivalTime   = "arrivalTime"

	IntentBookingDetails = "bookingDetails"
	IntentSeatInfo       = "seatInfo"
	IntentMealInfo       = "mealInfo"
	IntentBaggageInfo    = "baggageInfo"

	IntentAmountPaid       = "amountPaid"
	IntentPaymentMethod    = "paymentMethod"
	IntentPaymentBreakdown = "paymentBreakdown"

	IntentCheckinStatus = "checkinStatus"
	IntentBoardingGroup = "boardingGroup"

	IntentBookingStatus = "bookingStatus"
	IntentPNRInfo       = "pnrInfo"
	IntentContactInfo   = "contactInfo"

	// IntentUnknown is recorded in memory when nothing matched.
	IntentUnknown = "unknown"
)

// Question is a canonical suggested question tied to one intent.
type Question struct {
	Display string `json:"display"`
	Intent  string `json:"intent"`
}

// Category groups intents that share a keyword set.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Keywords  []string   `json:"keywords"`
	Questions []Question `json:"questions"`
}

// Taxonomy is an immutable ordered set of categories. Order matters: it is
// the tie-break order for classification and ranking.
type Taxonomy struct {
	categories []Category
}

func NewTaxonomy(categories ...Category) Taxonomy {
	return Taxonomy{categories: cloneCategories(categories)}
}

// Categories returns a copy of the categories in declaration order.
func (t Taxonomy) Categories() []Category {
	return cloneCategories(t.categories)
}

func (t Taxonomy) Category(id string) (Category, bool) {
	for _, c := range t.categories {
		if c.ID == id {
			return cloneCategories([]Category{c})[0], true
		}
	}
	return Category{}, false
}

// Names returns the display names in declaration order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t.categories))
	for i, c := range t.categories {
		names[i] = c.Name
	}
	return names
}

// Intents returns every intent referenced by a question.
func (t Taxonomy) Intents() []string {
	var out []string
	seen := map[string]bool{}
	for _, c := range t.categories {
		for _, q := range c.Questions {
			if !seen[q.Intent] {
				seen[q.Intent] = true
				out = append(out, q.Intent)
			}
		}
	}
	return out
}

func cloneCategories(in []Category) []Category {
	out := make([]Category, len(in))
	for i, c := range in {
		out[i] = Category{
			ID:        c.ID,
			Name:      c.Name,
			Keywords:  append([]string(nil), c.Keywords...),
			Questions: append([]Question(nil), c.Questions...),
		}
	}
	return out
}

// DefaultTaxonomy returns the airline support taxonomy.
func DefaultTaxonomy() Taxonomy {
	return NewTaxonomy(
		Category{
			ID:       CategoryRefund,
			Name:     "refund status",
			Keywords: []string{"refund", "money", "return", "payment back", "refunded", "reimbursement"},
			Questions: []Question{
				{Display: "What's my refund status?", Intent: IntentRefundStatusCheck},
				{Display: "When will I get my refund?", Intent: IntentRefundTiming},
				{Display: "How much will I be refunded?", Intent: IntentRefundAmount},
			},
		},
		Category{
			ID:       CategoryFlight,
			Name:     "flight details",
			Keywords: []string{"flight", "departure", "arrival", "plane", "time", "airport", "delay", "terminal"},
			Questions: []Question{
				{Display: "What are my flight details?", Intent: IntentFlightDetails},
				{Display: "What's my departure time?", Intent: IntentDepartureTime},
				{Display: "What's my arrival time?", Intent: IntentArrivalTime},
			},
		},
		Category{
			ID:       CategoryBooking,
			Name:     "booking details",
			Keywords: []string{"booking", "reservation", "seat", "ticket", "meal", "addon", "baggage", "luggage"},
			Questions: []Question{
				{Display: "Show my booking details", Intent: IntentBookingDetails},
				{Display: "What's my seat number?", Intent: IntentSeatInfo},
				{Display: "What meals did I select?", Intent: IntentMealInfo},
				{Display: "What's my baggage allowance?", Intent: IntentBaggageInfo},
			},
		},
		Category{
			ID:       CategoryPayment,
			Name:     "payment details",
			Keywords: []string{"payment", "paid", "cost", "price", "amount", "total", "fare", "tax"},
			Questions: []Question{
				{Display: "How much did I pay?", Intent: IntentAmountPaid},
				{Display: "What was my payment method?", Intent: IntentPaymentMethod},
				{Display: "Show payment breakdown", Intent: IntentPaymentBreakdown},
			},
		},
		Category{
			ID:       CategoryCheckIn,
			Name:     "check-in",
			Keywords: []string{"check-in", "checkin", "check in", "checked in", "boarding", "gate"},
			Questions: []Question{
				{Display: "Have I checked in?", Intent: IntentCheckinStatus},
				{Display: "What's my boarding group?", Intent: IntentBoardingGroup},
			},
		},
		Category{
			ID:       CategoryBookingStatus,
			Name:     "booking status",
			Keywords: []string{"status", "pnr", "confirmed", "confirmation", "cancelled", "contact"},
			Questions: []Question{
				{Display: "Is my booking confirmed?", Intent: IntentBookingStatus},
				{Display: "What's my PNR?", Intent: IntentPNRInfo},
				{Display: "What contact details are on my booking?", Intent: IntentContactInfo},
			},
		},
	)
}
