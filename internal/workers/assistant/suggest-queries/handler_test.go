package suggestqueries

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-assist/internal/assistant"
	"airline-assist/internal/assistant/intent"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/models"
	"airline-assist/internal/session"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestStore(t *testing.T) *session.RedisStore {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return session.NewRedisStore(rdb, 30*time.Minute, 10*time.Second, nil)
}

func newTestHandler(t *testing.T, store session.Store, grouped bool) *Handler {
	asst := assistant.New(intent.DefaultTaxonomy(), assistant.Options{})
	return NewHandler(&Config{Timeout: time.Second, Grouped: grouped}, store, asst, logger.NewTestLogger(t), nil)
}

func selectedSession(t *testing.T, store session.Store, rec models.BookingRecord) *session.Session {
	s := session.New(10, 20, time.Now())
	s.AttachBookings("asha@example.com", []models.BookingRecord{rec}, time.Now())
	_, err := s.SelectBooking(rec.BookingID, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), s))
	return s
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_KeywordNarrowsSuggestions(t *testing.T) {
	store := newTestStore(t)
	s := selectedSession(t, store, models.BookingRecord{BookingID: "BK1001", PNR: "XYZ123"})
	h := newTestHandler(t, store, true)

	out, err := h.Execute(context.Background(), &Input{SessionID: s.ID, Query: "where is my seat"})
	require.NoError(t, err)

	require.NotEmpty(t, out.Suggestions)
	assert.Equal(t, intent.CategoryBooking, out.Suggestions[0].Category)
	require.NotEmpty(t, out.Groups)
	assert.Equal(t, intent.CategoryBooking, out.Groups[0].Category)
	assert.Equal(t, "booking details", out.Groups[0].Name)
}

func TestHandler_Execute_RefundQuestionsNeedActiveRefund(t *testing.T) {
	tests := []struct {
		name       string
		rec        models.BookingRecord
		wantRefund bool
	}{
		{
			name: "no refund on record",
			rec:  models.BookingRecord{BookingID: "BK1001", PNR: "XYZ123"},
		},
		{
			name:       "refund in flight",
			rec:        models.BookingRecord{BookingID: "BK1001", RefundID: "RFND10001", RefundAmount: 4500, RefundStatus: "Initiated"},
			wantRefund: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			s := selectedSession(t, store, tt.rec)

			out, err := newTestHandler(t, store, false).Execute(context.Background(), &Input{SessionID: s.ID, Query: "refund"})
			require.NoError(t, err)
			assert.Nil(t, out.Groups)

			found := false
			for _, sg := range out.Suggestions {
				if sg.Category == intent.CategoryRefund {
					found = true
				}
			}
			assert.Equal(t, tt.wantRefund, found)
		})
	}
}

func TestHandler_Execute_WithoutSelectedBooking(t *testing.T) {
	store := newTestStore(t)
	s := session.New(10, 20, time.Now())
	require.NoError(t, store.Save(context.Background(), s))

	out, err := newTestHandler(t, store, false).Execute(context.Background(), &Input{SessionID: s.ID})
	require.NoError(t, err)
	assert.Len(t, out.Suggestions, intent.DefaultMaxSuggestions)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_MissingSession(t *testing.T) {
	h := newTestHandler(t, newTestStore(t), false)

	_, err := h.Execute(context.Background(), &Input{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeValidation))

	_, err = h.Execute(context.Background(), &Input{SessionID: "gone"})
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}
