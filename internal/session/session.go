// Package session tracks where each chat is in the email, booking and
// question flow.
package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"airline-assist/internal/assistant/memory"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/models"
)

type Stage string

const (
	StageEmailCollection  Stage = "email_collection"
	StageBookingSelection Stage = "booking_selection"
	StageQueryHandling    Stage = "query_handling"
)

type Session struct {
	ID        string                 `json:"id"`
	Stage     Stage                  `json:"stage"`
	Email     string                 `json:"email,omitempty"`
	Bookings  []models.BookingRecord `json:"bookings,omitempty"`
	Selected  *models.BookingRecord  `json:"selected,omitempty"`
	Memory    *memory.Memory         `json:"memory"`
	CreatedAt time.Time              `json:"createdAt"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// New starts a session awaiting the customer's email.
func New(historyLimit, topicLimit int, now time.Time) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Stage:     StageEmailCollection,
		Memory:    memory.NewWithLimits(historyLimit, topicLimit),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AttachBookings records the bookings found for email. With none found the
// session stays in email collection so the customer can try another address.
func (s *Session) AttachBookings(email string, bookings []models.BookingRecord, now time.Time) {
	s.Email = strings.TrimSpace(email)
	s.Bookings = bookings
	s.Selected = nil
	if len(bookings) == 0 {
		s.Stage = StageEmailCollection
	} else {
		s.Stage = StageBookingSelection
	}
	s.UpdatedAt = now
}

// SelectBooking binds the booking with bookingID and moves on to questions.
func (s *Session) SelectBooking(bookingID string, now time.Time) (*models.BookingRecord, error) {
	if s.Stage != StageBookingSelection && s.Stage != StageQueryHandling {
		return nil, apperrors.NewInvalidSessionStageError(string(StageBookingSelection), string(s.Stage))
	}
	for i := range s.Bookings {
		if s.Bookings[i].BookingID == bookingID {
			selected := s.Bookings[i]
			s.Selected = &selected
			s.Stage = StageQueryHandling
			s.UpdatedAt = now
			return s.Selected, nil
		}
	}
	return nil, apperrors.NewBookingNotFoundError(bookingID)
}

// UpdateSelected replaces the bound booking and its entry in Bookings.
func (s *Session) UpdateSelected(rec models.BookingRecord, now time.Time) {
	s.Selected = &rec
	for i := range s.Bookings {
		if s.Bookings[i].BookingID == rec.BookingID {
			s.Bookings[i] = rec
		}
	}
	s.UpdatedAt = now
}

// RequireQueryHandling fails unless a booking is bound.
func (s *Session) RequireQueryHandling() error {
	if s.Stage != StageQueryHandling || s.Selected == nil {
		return apperrors.NewInvalidSessionStageError(string(StageQueryHandling), string(s.Stage))
	}
	return nil
}

// Reset returns to email collection with a fresh memory.
func (s *Session) Reset(now time.Time) {
	limitH, limitT := memory.DefaultHistoryLimit, memory.DefaultTopicLimit
	if s.Memory != nil {
		limitH, limitT = s.Memory.HistoryLimit, s.Memory.TopicLimit
	}
	s.Stage = StageEmailCollection
	s.Email = ""
	s.Bookings = nil
	s.Selected = nil
	s.Memory = memory.NewWithLimits(limitH, limitT)
	s.UpdatedAt = now
}
