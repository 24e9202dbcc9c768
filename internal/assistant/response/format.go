package response

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"airline-assist/internal/models"
)

// Placeholders substituted for missing record fields.
const (
	NotAvailable  = "Not available"
	NotApplicable = "N/A"
)

const (
	dateLayout     = "Monday, 2 January 2006"
	timeLayout     = "03:04 PM"
	dateTimeLayout = "Mon, 2 Jan 2006, 03:04 PM"
)

var (
	usPrinter  = message.NewPrinter(language.AmericanEnglish)
	titleCaser = cases.Title(language.Und)
)

// FormatCurrency renders an amount with its ISO code. INR uses Indian digit
// grouping with up to two decimals; other currencies always show two.
func FormatCurrency(amount float64, currency string) string {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "INR"
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return currency + " 0"
	}
	// Round first so amounts under half a paisa lose their sign.
	amount = math.Round(amount*100) / 100
	if amount == 0 {
		amount = 0
	}
	if currency == "INR" {
		return currency + " " + indianGrouping(amount)
	}
	return currency + " " + usPrinter.Sprintf("%.2f", amount)
}

// indianGrouping groups the last three integer digits, then pairs. amount
// must already be rounded to paise.
func indianGrouping(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	s := strconv.FormatFloat(math.Abs(amount), 'f', -1, 64)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}

	if len(intPart) > 3 {
		head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		intPart = strings.Join(append(groups, tail), ",")
	}
	return sign + intPart + frac
}

// FormatDate renders a date such as "Thursday, 15 October 2026". Values
// that do not parse are returned unchanged.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	t, ok := models.ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format(dateLayout)
}

// FormatTime renders a 12-hour clock time from a clock value or timestamp.
func FormatTime(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	if t, ok := models.ParseClock(s); ok {
		return t.Format(timeLayout)
	}
	if t, ok := models.ParseTimestamp(s); ok {
		return t.Format(timeLayout)
	}
	return s
}

func FormatDateTime(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	t, ok := models.ParseTimestamp(s)
	if !ok {
		return s
	}
	return t.Format(dateTimeLayout)
}

// FormatPhone renders Indian numbers as "+91 XXXXX XXXXX". Anything else is
// returned as given.
func FormatPhone(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)

	switch {
	case len(digits) == 10:
		return "+91 " + digits[:5] + " " + digits[5:]
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+91 " + digits[2:7] + " " + digits[7:]
	}
	return s
}

// FormatPNR upper-cases a PNR and splits six-character codes as "ABC 123".
func FormatPNR(s string) string {
	clean := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if clean == "" {
		return NotAvailable
	}
	if len(clean) == 6 {
		return clean[:3] + " " + clean[3:]
	}
	return clean
}

func FormatStatus(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Unknown"
	}
	return capitalize(s)
}

func FormatName(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return titleCaser.String(strings.ToLower(strings.TrimSpace(s)))
}

func FormatEmail(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return NotAvailable
	}
	return s
}

func FormatFlightNumber(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return NotAvailable
	}
	return strings.ToUpper(s)
}

func FormatAirport(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	return strings.ToUpper(s)
}

var travelClasses = map[string]string{
	"economy":         "Economy Class",
	"eco":             "Economy Class",
	"premium economy": "Premium Economy",
	"business":        "Business Class",
	"bus":             "Business Class",
	"first":           "First Class",
}

func FormatTravelClass(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotAvailable
	}
	if name, ok := travelClasses[strings.ToLower(s)]; ok {
		return name
	}
	return capitalize(s)
}

var seatTypes = map[string]string{
	"window":   "Window",
	"aisle":    "Aisle",
	"middle":   "Middle",
	"exit":     "Exit Row",
	"premium":  "Premium",
	"standard": "Standard",
}

func FormatSeatType(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "Standard"
	}
	if name, ok := seatTypes[strings.ToLower(s)]; ok {
		return name
	}
	return s
}

var meals = map[string]string{
	"veg":      "Vegetarian",
	"non-veg":  "Non-Vegetarian",
	"vegan":    "Vegan",
	"jain":     "Jain Meal",
	"diabetic": "Diabetic Meal",
	"kosher":   "Kosher",
	"halal":    "Halal",
	"hindu":    "Hindu Meal",
}

func FormatMeal(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return "No special meal"
	}
	if name, ok := meals[strings.ToLower(s)]; ok {
		return name
	}
	return s
}

// orNA substitutes the short placeholder for optional fields.
func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotApplicable
	}
	return strings.TrimSpace(s)
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
