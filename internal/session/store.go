package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
)

const (
	sessionKeyPrefix = "assistant:session:"
	lockKeySuffix    = ":lock"
)

// ErrSessionBusy matches the error returned when another turn holds the
// session lock.
var ErrSessionBusy = &apperrors.StandardError{Code: apperrors.ErrCodeSessionBusy}

// ErrSessionNotFound matches a load of an unknown or expired session.
var ErrSessionNotFound = &apperrors.StandardError{Code: apperrors.ErrCodeSessionNotFound}

// Store persists sessions between jobs.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) (func(), error)
}

// RedisStore keeps each session as a JSON value with a sliding TTL.
type RedisStore struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	lockTTL time.Duration
	logger  logger.Logger
}

func NewRedisStore(rdb redis.Cmdable, ttl, lockTTL time.Duration, log logger.Logger) *RedisStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &RedisStore{
		rdb:     rdb,
		ttl:     ttl,
		lockTTL: lockTTL,
		logger:  log.WithFields(map[string]interface{}{"component": "session-store"}),
	}
}

func Key(id string) string {
	return sessionKeyPrefix + id
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.rdb.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperrors.NewSessionNotFoundError(id)
	}
	if err != nil {
		return nil, apperrors.NewSessionStoreFailedError("load", err)
	}

	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, apperrors.NewSessionStoreFailedError("decode", err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return apperrors.NewSessionStoreFailedError("encode", err)
	}
	if err := r.rdb.Set(ctx, Key(s.ID), payload, r.ttl).Err(); err != nil {
		return apperrors.NewSessionStoreFailedError("save", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, Key(id), Key(id)+lockKeySuffix).Err(); err != nil {
		return apperrors.NewSessionStoreFailedError("delete", err)
	}
	return nil
}

// releaseScript deletes the lock only if it still carries our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock takes the per-session turn lock. The returned func releases it; the
// lock also expires on its own after the lock TTL.
func (r *RedisStore) Lock(ctx context.Context, id string) (func(), error) {
	key := Key(id) + lockKeySuffix
	token := uuid.New().String()

	ok, err := r.rdb.SetNX(ctx, key, token, r.lockTTL).Result()
	if err != nil {
		return nil, apperrors.NewSessionStoreFailedError("lock", err)
	}
	if !ok {
		return nil, apperrors.NewSessionBusyError(id)
	}

	return func() {
		// The job context may already be done when the unlock runs.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, r.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			r.logger.Warn("session unlock failed", map[string]interface{}{"sessionId": id, "error": err})
		}
	}, nil
}
