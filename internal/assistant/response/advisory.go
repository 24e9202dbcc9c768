package response

import (
	"math"
	"time"

	"airline-assist/internal/models"
)

// DepartureLevel grades how close a flight is to leaving.
type DepartureLevel string

const (
	DepartureLow      DepartureLevel = "low"
	DepartureMedium   DepartureLevel = "medium"
	DepartureHigh     DepartureLevel = "high"
	DepartureCritical DepartureLevel = "critical"
)

// DepartureUrgency grades the record's departure relative to now, counting
// whole hours rounded up. Departed or unparseable flights are low.
func DepartureUrgency(r models.BookingRecord, now time.Time) DepartureLevel {
	departure, ok := r.DepartureAt()
	if !ok {
		return DepartureLow
	}
	hours := math.Ceil(departure.Sub(now).Hours())
	switch {
	case hours < 0:
		return DepartureLow
	case hours <= 2:
		return DepartureCritical
	case hours <= 24:
		return DepartureHigh
	case hours <= 72:
		return DepartureMedium
	}
	return DepartureLow
}

var advisories = map[DepartureLevel]string{
	DepartureCritical: "Your flight is departing very soon! For urgent assistance, please call customer support immediately.",
	DepartureHigh:     "Your flight is within 24 hours. Make sure you're checked in and ready to go!",
	DepartureMedium:   "Your flight is coming up soon. Don't forget to check in 24 hours before departure.",
}

// DepartureAdvisory returns the reminder for the record's departure level,
// or "" when none applies.
func DepartureAdvisory(r models.BookingRecord, now time.Time) string {
	return advisories[DepartureUrgency(r, now)]
}
