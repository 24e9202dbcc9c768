package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/models"
)

const refundLockKey = "bookings:refund-id:lock"

// BuildRefund turns an allocated refund id into the initiation to persist.
type BuildRefund func(refundID string) models.RefundInitiation

// RefundAllocator serialises refund id allocation across every worker that
// shares the Redis instance, so NextRefundID and SaveRefund run as one unit.
type RefundAllocator struct {
	repo       RefundRepository
	rdb        redis.Cmdable
	lockTTL    time.Duration
	retryEvery time.Duration
	logger     logger.Logger
}

func NewRefundAllocator(repo RefundRepository, rdb redis.Cmdable, lockTTL time.Duration, log logger.Logger) *RefundAllocator {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	return &RefundAllocator{
		repo:       repo,
		rdb:        rdb,
		lockTTL:    lockTTL,
		retryEvery: 50 * time.Millisecond,
		logger:     log.WithFields(map[string]interface{}{"component": "refund-allocator"}),
	}
}

// Initiate allocates the next refund id and saves the initiation built from
// it while holding the global refund lock. It waits for the lock until ctx
// is done.
func (a *RefundAllocator) Initiate(ctx context.Context, build BuildRefund) (models.RefundInitiation, error) {
	unlock, err := a.lock(ctx)
	if err != nil {
		return models.RefundInitiation{}, err
	}
	defer unlock()

	refundID, err := a.repo.NextRefundID(ctx)
	if err != nil {
		return models.RefundInitiation{}, err
	}
	initiation := build(refundID)
	if err := a.repo.SaveRefund(ctx, initiation); err != nil {
		return models.RefundInitiation{}, err
	}
	return initiation, nil
}

// releaseRefundLock deletes the lock only if it still carries our token.
var releaseRefundLock = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (a *RefundAllocator) lock(ctx context.Context) (func(), error) {
	token := uuid.New().String()
	ticker := time.NewTicker(a.retryEvery)
	defer ticker.Stop()

	for {
		ok, err := a.rdb.SetNX(ctx, refundLockKey, token, a.lockTTL).Result()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
			return nil, apperrors.NewRefundPersistFailedError("", err)
		}
		if ok {
			break
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, apperrors.NewRefundIDBusyError(ctx.Err())
		}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseRefundLock.Run(ctx, a.rdb, []string{refundLockKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			a.logger.Warn("refund lock release failed", map[string]interface{}{"error": err})
		}
	}, nil
}
