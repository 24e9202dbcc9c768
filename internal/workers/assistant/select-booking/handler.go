// internal/workers/assistant/select-booking/handler.go
package selectbooking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"airline-assist/internal/assistant"
	"airline-assist/internal/assistant/refund"
	"airline-assist/internal/common/camunda"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/metrics"
	"airline-assist/internal/common/observability"
	"airline-assist/internal/common/validation"
	"airline-assist/internal/session"
)

const (
	TaskType = "select-booking"
)

type Handler struct {
	config    *Config
	sessions  session.Store
	assistant *assistant.Assistant
	logger    logger.Logger
	runner    *camunda.JobRunner
	now       func() time.Time
}

func NewHandler(config *Config, sessions session.Store, asst *assistant.Assistant, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		sessions:  sessions,
		assistant: asst,
		logger:    log,
		runner:    camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
		now:       time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	var input Input
	h.runner.Run(client, job, &input, func(ctx context.Context) (interface{}, error) {
		return h.execute(ctx, &input)
	})
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.SessionID) == "" || strings.TrimSpace(input.BookingID) == "" {
		return nil, apperrors.NewValidationError("sessionId and bookingId are required")
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

	rec, err := sess.SelectBooking(strings.TrimSpace(input.BookingID), h.now())
	if err != nil {
		return nil, err
	}

	if res := validation.BookingRecordSchema.Validate(rec); !res.Valid {
		return nil, apperrors.NewInvalidBookingRecordError(res.GetErrorMessages())
	}

	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	suggestions := h.assistant.Suggest("", rec, sess.Memory)
	metrics.AssistantSuggestionsServed.Add(float64(len(suggestions)))

	h.logger.Info("booking selected", map[string]interface{}{
		"sessionId": sess.ID,
		"bookingId": rec.BookingID,
	})

	return &Output{
		SessionID:      sess.ID,
		Stage:          string(sess.Stage),
		BookingID:      rec.BookingID,
		Message:        fmt.Sprintf(messageSelectedFormat, rec.BookingID),
		RefundEligible: refund.ShouldInitiate(*rec),
		Warnings:       rec.Validate(),
		Suggestions:    suggestions,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
