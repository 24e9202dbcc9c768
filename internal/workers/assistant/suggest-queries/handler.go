// internal/workers/assistant/suggest-queries/handler.go
package suggestqueries

import (
	"context"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"airline-assist/internal/assistant"
	"airline-assist/internal/assistant/intent"
	"airline-assist/internal/common/camunda"
	apperrors "airline-assist/internal/common/errors"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/common/metrics"
	"airline-assist/internal/common/observability"
	"airline-assist/internal/session"
)

const (
	TaskType = "suggest-queries"
)

// Handler serves the type-ahead list. It reads the session without taking
// the turn lock; suggestions never modify it.
type Handler struct {
	config    *Config
	sessions  session.Store
	assistant *assistant.Assistant
	logger    logger.Logger
	runner    *camunda.JobRunner
}

func NewHandler(config *Config, sessions session.Store, asst *assistant.Assistant, log logger.Logger, obs *observability.Observability) *Handler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:    config,
		sessions:  sessions,
		assistant: asst,
		logger:    log,
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

	sess, err := h.sessions.Load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	suggestions := h.assistant.Suggest(input.Query, sess.Selected, sess.Memory)
	metrics.AssistantSuggestionsServed.Add(float64(len(suggestions)))

	out := &Output{SessionID: sess.ID, Suggestions: suggestions}
	if h.config.Grouped {
		out.Groups = intent.Group(h.assistant.Taxonomy(), suggestions)
	}

	h.logger.Debug("suggestions served", map[string]interface{}{
		"sessionId": sess.ID,
		"count":     len(suggestions),
	})
	return out, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
