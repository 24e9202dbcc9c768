// internal/workers/assistant/respond-to-query/handler.go
package respondtoquery

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"airline-assist/internal/assistant"
	"airline-assist/internal/common/camunda"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/metrics"
	"airline-assist/internal/common/observability"
	"airline-assist/internal/session"
)

const (
	TaskType = "respond-to-query"
)

type Handler struct {
	config    *Config
	sessions  session.Store
	assistant *assistant.Assistant
	logger    logger.Logger
	obs       *observability.Observability
	runner    *camunda.JobRunner
}

func NewHandler(config *Config, sessions session.Store, asst *assistant.Assistant, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	if obs == nil {
		obs = observability.Noop()
	}
	return &Handler{
		config:    config,
		sessions:  sessions,
		assistant: asst,
		logger:    log,
		obs:       obs,
		runner:    camunda.NewJobRunner(TaskType, config.Timeout, log, obs),
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

	turn := h.assistant.Turn(input.Message, *sess.Selected, sess.Memory)
	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, err
	}

	outcome := metrics.TurnOutcome(turn.Exact, turn.Fallback)
	emotion := string(turn.Analysis.Emotion)
	metrics.AssistantTurns.WithLabelValues(turn.Category, outcome).Inc()
	metrics.AssistantEmotions.WithLabelValues(emotion).Inc()
	h.obs.RecordTurn(ctx, turn.Category, outcome, emotion)

	suggestions := h.assistant.Suggest("", sess.Selected, sess.Memory)
	if h.config.FollowUps > 0 && len(suggestions) > h.config.FollowUps {
		suggestions = suggestions[:h.config.FollowUps]
	}
	metrics.AssistantSuggestionsServed.Add(float64(len(suggestions)))

	h.logger.Info("query answered", map[string]interface{}{
		"sessionId": sess.ID,
		"bookingId": sess.Selected.BookingID,
		"intent":    turn.Intent,
		"outcome":   outcome,
		"emotion":   emotion,
	})

	return &Output{
		SessionID:   sess.ID,
		Response:    turn.Response,
		Intent:      turn.Intent,
		Category:    turn.Category,
		Exact:       turn.Exact,
		Fallback:    turn.Fallback,
		Emotion:     emotion,
		Urgency:     string(turn.Analysis.Urgency),
		Suggestions: suggestions,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
