package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-assist/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

type MockSource struct {
	FindByEmailFunc func(ctx context.Context, email string) ([]models.BookingRecord, error)
	calls           int
}

func (m *MockSource) FindByEmail(ctx context.Context, email string) ([]models.BookingRecord, error) {
	m.calls++
	return m.FindByEmailFunc(ctx, email)
}

func staticSource(records ...models.BookingRecord) *MockSource {
	return &MockSource{FindByEmailFunc: func(context.Context, string) ([]models.BookingRecord, error) {
		return records, nil
	}}
}

// ==========================
// Read-through behaviour
// ==========================

func TestCachedSource_ReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	next := staticSource(models.BookingRecord{BookingID: "BK1001", TotalAmountPaid: 12500})
	cache := NewCachedSource(next, rdb, 5*time.Minute, nil)

	first, err := cache.FindByEmail(context.Background(), "Asha@Example.com")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.True(t, mr.Exists("bookings:email:asha@example.com"))
	assert.Equal(t, 5*time.Minute, mr.TTL("bookings:email:asha@example.com"))

	second, err := cache.FindByEmail(context.Background(), "asha@example.com ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, next.calls)

	cache.Invalidate(context.Background(), "asha@example.com")
	assert.False(t, mr.Exists("bookings:email:asha@example.com"))
}

func TestCachedSource_EmptyResultsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	next := staticSource()
	cache := NewCachedSource(next, rdb, time.Minute, nil)

	_, err := cache.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	_, err = cache.FindByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
	assert.False(t, mr.Exists("bookings:email:nobody@example.com"))
}

// ==========================
// Failure paths
// ==========================

func TestCachedSource_RedisFailureFallsThrough(t *testing.T) {
	db, mock := redismock.NewClientMock()

	records := []models.BookingRecord{{BookingID: "BK1001"}}
	payload, _ := json.Marshal(records)

	mock.ExpectGet("bookings:email:asha@example.com").SetErr(errors.New("connection refused"))
	mock.ExpectSet("bookings:email:asha@example.com", payload, time.Minute).SetErr(errors.New("connection refused"))

	cache := NewCachedSource(staticSource(records...), db, time.Minute, nil)
	got, err := cache.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.Equal(t, records, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSource_MissThenStore(t *testing.T) {
	db, mock := redismock.NewClientMock()

	records := []models.BookingRecord{{BookingID: "BK1001"}}
	payload, _ := json.Marshal(records)

	mock.ExpectGet("bookings:email:asha@example.com").RedisNil()
	mock.ExpectSet("bookings:email:asha@example.com", payload, time.Minute).SetVal("OK")

	cache := NewCachedSource(staticSource(records...), db, time.Minute, nil)
	_, err := cache.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedSource_UpstreamErrorPropagates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	boom := errors.New("sheet unavailable")
	next := &MockSource{FindByEmailFunc: func(context.Context, string) ([]models.BookingRecord, error) {
		return nil, boom
	}}

	_, err := NewCachedSource(next, rdb, time.Minute, nil).FindByEmail(context.Background(), "a@b.co")
	assert.ErrorIs(t, err, boom)
}
