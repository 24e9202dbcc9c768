package bookings

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airline-assist/internal/assistant/refund"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/models"
)

// ==========================
// Mock Implementations
// ==========================

// gatedRepository holds the first NextRefundID call open until release is
// closed, so a second initiation can be started in between.
type gatedRepository struct {
	mu      sync.Mutex
	ids     []string
	reads   int
	entered chan struct{}
	release chan struct{}
}

func newGatedRepository(ids ...string) *gatedRepository {
	return &gatedRepository{ids: ids, entered: make(chan struct{}), release: make(chan struct{})}
}

func (r *gatedRepository) NextRefundID(context.Context) (string, error) {
	r.mu.Lock()
	r.reads++
	first := r.reads == 1
	ids := append([]string(nil), r.ids...)
	r.mu.Unlock()

	if first {
		close(r.entered)
		<-r.release
	}
	return refund.NextRefundID(ids), nil
}

func (r *gatedRepository) SaveRefund(_ context.Context, in models.RefundInitiation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, in.RefundID)
	return nil
}

func (r *gatedRepository) readCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads
}

func buildFor(bookingID string) BuildRefund {
	return func(id string) models.RefundInitiation {
		return models.RefundInitiation{BookingID: bookingID, RefundID: id, RefundStatus: models.RefundStatusInitiated}
	}
}

func newAllocator(t *testing.T, repo RefundRepository) (*RefundAllocator, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	a := NewRefundAllocator(repo, rdb, 10*time.Second, nil)
	a.retryEvery = 5 * time.Millisecond
	return a, mr
}

// ==========================
// Allocation
// ==========================

func TestRefundAllocator_InterleavedInitiationsGetDistinctIDs(t *testing.T) {
	repo := newGatedRepository("RFND10004")
	a, _ := newAllocator(t, repo)

	type result struct {
		in  models.RefundInitiation
		err error
	}
	first := make(chan result, 1)
	second := make(chan result, 1)

	go func() {
		in, err := a.Initiate(context.Background(), buildFor("BK1"))
		first <- result{in, err}
	}()
	<-repo.entered

	go func() {
		in, err := a.Initiate(context.Background(), buildFor("BK2"))
		second <- result{in, err}
	}()

	// The second initiation must wait for the first to save before reading.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, repo.readCount())
	close(repo.release)

	r1, r2 := <-first, <-second
	require.NoError(t, r1.err)
	require.NoError(t, r2.err)
	assert.Equal(t, "RFND10005", r1.in.RefundID)
	assert.Equal(t, "RFND10006", r2.in.RefundID)
	assert.Equal(t, []string{"RFND10004", "RFND10005", "RFND10006"}, repo.ids)
}

func TestRefundAllocator_ReleasesLock(t *testing.T) {
	repo := newGatedRepository()
	close(repo.release)
	a, mr := newAllocator(t, repo)

	in, err := a.Initiate(context.Background(), buildFor("BK1"))
	require.NoError(t, err)
	assert.Equal(t, "RFND10001", in.RefundID)
	assert.False(t, mr.Exists(refundLockKey))
}

func TestRefundAllocator_SaveFailureReleasesLock(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := &failingRepository{err: errors.New("sheet unavailable")}
	a := NewRefundAllocator(repo, rdb, 10*time.Second, nil)

	_, err := a.Initiate(context.Background(), buildFor("BK1"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRefundPersistFailed))
	assert.False(t, mr.Exists(refundLockKey))
}

// ==========================
// Error Handling Tests
// ==========================

func TestRefundAllocator_BusyUntilDeadline(t *testing.T) {
	repo := newGatedRepository()
	close(repo.release)
	a, mr := newAllocator(t, repo)
	require.NoError(t, mr.Set(refundLockKey, "other-worker"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := a.Initiate(ctx, buildFor("BK1"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRefundIDBusy))
	assert.Equal(t, 0, repo.readCount())

	// A lock held by someone else is left in place.
	got, _ := mr.Get(refundLockKey)
	assert.Equal(t, "other-worker", got)
}

func TestRefundAllocator_RedisDown(t *testing.T) {
	repo := newGatedRepository()
	a, mr := newAllocator(t, repo)
	mr.Close()

	_, err := a.Initiate(context.Background(), buildFor("BK1"))
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeRefundPersistFailed))
	assert.Equal(t, 0, repo.readCount())
}

type failingRepository struct {
	err error
}

func (r *failingRepository) NextRefundID(context.Context) (string, error) {
	return "RFND10001", nil
}

func (r *failingRepository) SaveRefund(_ context.Context, in models.RefundInitiation) error {
	return apperrors.NewRefundPersistFailedError(in.RefundID, r.err)
}
