// internal/workers/assistant/initiate-refund/handler.go
package initiaterefund

import (
	"context"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"airline-assist/internal/assistant/refund"
	"airline-assist/internal/common/camunda"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/observability"
	"airline-assist/internal/models"
	"airline-assist/internal/notify"
	"airline-assist/internal/session"
)

const (
	TaskType = "initiate-refund"
)

type Handler struct {
	config   *Config
	sessions session.Store
	refunds  RefundInitiator
	notifier Notifier
	cache    CacheInvalidator
	logger   logger.Logger
	runner   *camunda.JobRunner
	now      func() time.Time
}

// NewHandler builds the refund worker. notifier and cache may be nil.
func NewHandler(config *Config, sessions session.Store, refunds RefundInitiator, notifier Notifier, cache CacheInvalidator, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		sessions: sessions,
		refunds:  refunds,
		notifier: notifier,
		cache:    cache,
		logger:   log,
		runner:   camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
		now:      time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.SessionID) == "" {
		return nil, apperrors.NewValidationError("sessionId is required")
	}

	unlock, err := h.sessions.Lock(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	sess, err := h.sessions.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.RequireQueryHandling(); err != nil {
		return nil, err
	}

	rec := *sess.Selected
	if !refund.ShouldInitiate(rec) {
		return nil, apperrors.NewRefundNotEligibleError(rec.BookingID)
	}

	now := h.now()
	initiation, err := h.refunds.Initiate(ctx, func(refundID string) models.RefundInitiation {
		return refund.NewInitiation(rec, refundID, now)
	})
	if err != nil {
		return nil, err
	}
	refundID := initiation.RefundID

	initiation.Apply(&rec)
	sess.UpdateSelected(rec, now)
	// The refund row is already written; a failed session save must not
	// make the job retry and open a second refund.
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.logger.Error("failed to save session after refund", map[string]interface{}{
			"sessionId": sess.ID,
			"refundId":  refundID,
			"error":     err,
		})
	}

	if h.cache != nil && sess.Email != "" {
		h.cache.Invalidate(ctx, sess.Email)
	}

	message := refund.InitiationMessage(rec, refundID, h.config.Currency)
	notificationStatus := notify.StatusDisabled
	if h.notifier != nil {
		res, err := h.notifier.RefundInitiated(ctx, rec, refundID, message)
		if err != nil {
			h.logger.Warn("refund notification failed", map[string]interface{}{
				"refundId": refundID,
				"error":    err,
			})
		}
		if res != nil {
			notificationStatus = res.Status
		}
	}

	h.logger.Info("refund initiated", map[string]interface{}{
		"sessionId": sess.ID,
		"bookingId": rec.BookingID,
		"refundId":  refundID,
		"amount":    initiation.RefundAmount.Float64(),
	})

	return &Output{
		SessionID:          sess.ID,
		BookingID:          rec.BookingID,
		RefundID:           refundID,
		Message:            message,
		Amount:             initiation.RefundAmount,
		Mode:               initiation.RefundMode,
		Status:             initiation.RefundStatus,
		RefundDate:         initiation.RefundDate,
		NotificationStatus: notificationStatus,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
