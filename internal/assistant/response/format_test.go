package response

import (
	"math"
	"testing"
	"time"

	"airline-assist/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Currency
// ==========================

func TestFormatCurrency_INR(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"whole rupees", 500, "INR", "INR 500"},
		{"thousands", 1000, "INR", "INR 1,000"},
		{"lakh grouping", 100000, "INR", "INR 1,00,000"},
		{"fraction kept", 123456.5, "INR", "INR 1,23,456.5"},
		{"rounded to paise", 1234567.891, "INR", "INR 12,34,567.89"},
		{"empty currency defaults to INR", 999, "", "INR 999"},
		{"lower-case code", 2500, "inr", "INR 2,500"},
		{"negative", -1500, "INR", "INR -1,500"},
		{"negative below half a paisa", -0.001, "INR", "INR 0"},
		{"negative rounds to paise", -0.456, "INR", "INR -0.46"},
		{"not a number", math.NaN(), "INR", "INR 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(tt.amount, tt.currency))
		})
	}
}

func TestFormatCurrency_OtherCurrencies(t *testing.T) {
	got := FormatCurrency(1234.5, "usd")
	assert.Regexp(t, `^USD 1,?234\.50$`, got)
	assert.Equal(t, "USD 0.00", FormatCurrency(-0.001, "USD"))
}

// ==========================
// Dates and times
// ==========================

func TestFormatDateAndTime(t *testing.T) {
	assert.Equal(t, "Thursday, 15 October 2026", FormatDate("2026-10-15"))
	assert.Equal(t, NotAvailable, FormatDate(""))
	assert.Equal(t, "soon", FormatDate("soon"))

	assert.Equal(t, "02:30 PM", FormatTime("14:30"))
	assert.Equal(t, "09:05 AM", FormatTime("9:05 am"))
	assert.Equal(t, "09:05 AM", FormatTime("2026-10-15T09:05:00Z"))
	assert.Equal(t, NotAvailable, FormatTime(" "))
	assert.Equal(t, "later", FormatTime("later"))

	assert.Equal(t, "Thu, 15 Oct 2026, 06:45 PM", FormatDateTime("2026-10-15T18:45:00"))
	assert.Equal(t, NotAvailable, FormatDateTime(""))
}

// ==========================
// Identifiers and enumerations
// ==========================

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "+91 98765 43210", FormatPhone("9876543210"))
	assert.Equal(t, "+91 98765 43210", FormatPhone("+91-98765-43210"))
	assert.Equal(t, "12345", FormatPhone("12345"))
	assert.Equal(t, NotAvailable, FormatPhone(""))
}

func TestFormatPNR(t *testing.T) {
	assert.Equal(t, "ABC 123", FormatPNR("abc 123"))
	assert.Equal(t, "ABC 123", FormatPNR("abc123"))
	assert.Equal(t, "AB12", FormatPNR("ab12"))
	assert.Equal(t, NotAvailable, FormatPNR(""))
}

func TestFormatEnumerations(t *testing.T) {
	assert.Equal(t, "Confirmed", FormatStatus("confirmed"))
	assert.Equal(t, "Unknown", FormatStatus(""))

	assert.Equal(t, "Priya Sharma", FormatName("priya SHARMA"))
	assert.Equal(t, NotAvailable, FormatName(""))

	assert.Equal(t, "priya@example.com", FormatEmail(" Priya@Example.com "))
	assert.Equal(t, "AI 202", FormatFlightNumber("ai   202"))
	assert.Equal(t, "DEL", FormatAirport("del"))

	assert.Equal(t, "Economy Class", FormatTravelClass("eco"))
	assert.Equal(t, "Premium Economy", FormatTravelClass("PREMIUM ECONOMY"))
	assert.Equal(t, "Charter", FormatTravelClass("charter"))
	assert.Equal(t, NotAvailable, FormatTravelClass(""))

	assert.Equal(t, "Standard", FormatSeatType(""))
	assert.Equal(t, "Window", FormatSeatType("WINDOW"))
	assert.Equal(t, "bulkhead", FormatSeatType("bulkhead"))

	assert.Equal(t, "No special meal", FormatMeal("none"))
	assert.Equal(t, "No special meal", FormatMeal(""))
	assert.Equal(t, "Vegetarian", FormatMeal("veg"))
	assert.Equal(t, "Chef special", FormatMeal("Chef special"))
}

// ==========================
// Departure advisory
// ==========================

func TestDepartureUrgency(t *testing.T) {
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) models.BookingRecord {
		return models.BookingRecord{DepartureTime: now.Add(d).Format(time.RFC3339)}
	}

	tests := []struct {
		name   string
		record models.BookingRecord
		want   DepartureLevel
	}{
		{"within the hour", at(time.Hour), DepartureCritical},
		{"exactly two hours", at(2 * time.Hour), DepartureCritical},
		{"two and a half hours", at(150 * time.Minute), DepartureHigh},
		{"one day", at(24 * time.Hour), DepartureHigh},
		{"two days", at(48 * time.Hour), DepartureMedium},
		{"next week", at(100 * time.Hour), DepartureLow},
		{"departed", at(-time.Hour), DepartureLow},
		{"unparseable", models.BookingRecord{DepartureTime: "tbd"}, DepartureLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DepartureUrgency(tt.record, now))
		})
	}

	assert.Contains(t, DepartureAdvisory(at(48*time.Hour), now), "check in 24 hours before departure")
	assert.Empty(t, DepartureAdvisory(at(100*time.Hour), now))
}
