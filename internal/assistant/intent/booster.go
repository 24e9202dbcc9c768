package intent

import (
	"strings"
	"time"
	"unicode"

	"airline-assist/internal/assistant/memory"
	"airline-assist/internal/models"
)

const (
	boostDepartureDay   = 3
	boostDepartureWeek  = 2
	boostDepartureMonth = 1
	boostCheckInWindow  = 3
	boostActiveRefund   = 2
	boostUnconfirmed    = 2
	boostContinuity     = 2
	boostNovelty        = 1

	checkInWindow = 24 * time.Hour
	day           = 24 * time.Hour
)

// Booster adds flat priority boosts from booking state and session memory.
type Booster struct {
	now func() time.Time
}

func NewBooster(clock func() time.Time) *Booster {
	if clock == nil {
		clock = time.Now
	}
	return &Booster{now: clock}
}

// Boost returns base plus every boost that applies to the question. A nil
// record or memory contributes nothing.
func (b *Booster) Boost(category string, q Question, base int, record *models.BookingRecord, mem *memory.Memory) int {
	priority := base
	if record != nil {
		priority += b.recordBoost(category, q.Intent, *record)
	}
	if mem != nil {
		if mem.LastIntent != "" && stem(mem.LastIntent) == stem(q.Intent) {
			priority += boostContinuity
		}
		if !mem.HasAsked(q.Intent) {
			priority += boostNovelty
		}
	}
	return priority
}

func (b *Booster) recordBoost(category, intentID string, record models.BookingRecord) int {
	boost := 0
	lower := strings.ToLower(intentID)

	if departure, ok := record.DepartureAt(); ok {
		until := departure.Sub(b.now())
		if until >= 0 && mentionsFlight(lower) {
			switch {
			case until <= day:
				boost += boostDepartureDay
			case until <= 7*day:
				boost += boostDepartureWeek
			case until <= 30*day:
				boost += boostDepartureMonth
			}
		}
		if until >= 0 && until <= checkInWindow && category == CategoryCheckIn {
			boost += boostCheckInWindow
		}
	}

	if category == CategoryRefund && record.HasActiveRefund() {
		boost += boostActiveRefund
	}

	if category == CategoryBookingStatus && !strings.EqualFold(strings.TrimSpace(record.Status), "confirmed") {
		boost += boostUnconfirmed
	}

	return boost
}

func mentionsFlight(intentID string) bool {
	return strings.Contains(intentID, "flight") ||
		strings.Contains(intentID, "departure") ||
		strings.Contains(intentID, "arrival")
}

// stem is the leading lower-case word of a camelCase identifier.
func stem(id string) string {
	for i, r := range id {
		if i > 0 && unicode.IsUpper(r) {
			return strings.ToLower(id[:i])
		}
	}
	return strings.ToLower(id)
}
