// internal/workers/assistant/lookup-bookings/handler.go
package lookupbookings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"airline-assist/internal/bookings"
	"airline-assist/internal/common/camunda"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/observability"
	"airline-assist/internal/common/validation"
	"airline-assist/internal/session"
)

const (
	TaskType = "lookup-bookings"
)

type Handler struct {
	config   *Config
	source   bookings.Source
	sessions session.Store
	logger   logger.Logger
	runner   *camunda.JobRunner
	now      func() time.Time
}

func NewHandler(config *Config, source bookings.Source, sessions session.Store, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		source:   source,
		sessions: sessions,
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
	sess, unlock, err := h.openSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	email := strings.TrimSpace(input.Email)
	if !validation.ValidateEmail(email) {
		// A new session is stored here too so the retry can name it.
		if err := h.sessions.Save(ctx, sess); err != nil {
			return nil, err
		}
		return &Output{
			SessionID: sess.ID,
			Stage:     string(sess.Stage),
			Bookings:  []BookingSummary{},
			Message:   apperrors.NewInvalidEmailError(email).Message,
		}, nil
	}

	records, err := h.source.FindByEmail(ctx, email)
	if err != nil {
		h.logger.Warn("booking lookup failed", map[string]interface{}{
			"sessionId": sess.ID,
			"error":     err,
		})
		records = nil
	}

	sess.AttachBookings(email, records, h.now())
	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	out := &Output{
		SessionID:    sess.ID,
		Stage:        string(sess.Stage),
		ValidEmail:   true,
		BookingCount: len(records),
		Bookings:     summarize(records),
	}
	if len(records) == 0 {
		out.Message = MessageNoBookings
	} else {
		out.Message = fmt.Sprintf(messageFoundFormat, len(records))
	}

	h.logger.Info("bookings looked up", map[string]interface{}{
		"sessionId":    sess.ID,
		"bookingCount": len(records),
	})
	return out, nil
}

// openSession starts a new session when id is empty, otherwise loads and
// locks the existing one.
func (h *Handler) openSession(ctx context.Context, id string) (*session.Session, func(), error) {
	if id == "" {
		return session.New(h.config.HistoryLimit, h.config.TopicLimit, h.now()), func() {}, nil
	}

	unlock, err := h.sessions.Lock(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	sess, err := h.sessions.Load(ctx, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	return sess, unlock, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
