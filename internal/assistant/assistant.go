// Package assistant is the decision core of the airline support chat: it
// suggests questions and answers them from a booking record, adapting the
// reply to the user's mood.
package assistant

import (
	"fmt"
	"strings"
	"time"

	"airline-assist/internal/assistant/intent"
	"airline-assist/internal/assistant/memory"
	"airline-assist/internal/assistant/response"
	"airline-assist/internal/assistant/sentiment"
	"airline-assist/internal/common/logger"
	"airline-assist/internal/models"
)

// Options tune an Assistant. Zero values select the defaults.
type Options struct {
	MaxSuggestions int
	Currency       string
	Clock          func() time.Time
	Logger         logger.Logger
}

// Assistant is stateless between calls; all per-session state lives in the
// Memory the caller passes in.
type Assistant struct {
	taxonomy    intent.Taxonomy
	classifier  *intent.Classifier
	suggester   *intent.Suggester
	synthesizer *response.Synthesizer
	logger      logger.Logger
}

// Turn is the outcome of answering one utterance.
type Turn struct {
	Response string             `json:"response"`
	Intent   string             `json:"intent"`
	Category string             `json:"category,omitempty"`
	Exact    bool               `json:"exact"`
	Fallback bool               `json:"fallback"`
	Analysis sentiment.Analysis `json:"sentiment"`
}

func New(t intent.Taxonomy, opts Options) *Assistant {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Assistant{
		taxonomy:    t,
		classifier:  intent.NewClassifier(t),
		suggester:   intent.NewSuggester(t, opts.Clock, opts.MaxSuggestions),
		synthesizer: response.NewSynthesizer(opts.Currency, opts.Clock),
		logger:      log,
	}
}

// Suggest returns ranked question suggestions. record and mem are optional.
func (a *Assistant) Suggest(utterance string, record *models.BookingRecord, mem *memory.Memory) []intent.Suggestion {
	return a.suggester.Suggest(utterance, record, mem)
}

// Taxonomy returns the categories this assistant answers.
func (a *Assistant) Taxonomy() intent.Taxonomy {
	return a.taxonomy
}

func (a *Assistant) SuggestGrouped(utterance string, record *models.BookingRecord, mem *memory.Memory) []intent.SuggestionGroup {
	return a.suggester.SuggestGrouped(utterance, record, mem)
}

// Respond answers an utterance and returns only the text.
func (a *Assistant) Respond(utterance string, record models.BookingRecord, mem *memory.Memory) string {
	return a.Turn(utterance, record, mem).Response
}

// Turn answers an utterance. A suggestion clicked verbatim resolves to its
// own intent; otherwise the best keyword category answers; otherwise the
// user gets guidance listing what can be asked. When mem is non-nil the
// turn is recorded after the answer is built.
func (a *Assistant) Turn(utterance string, record models.BookingRecord, mem *memory.Memory) Turn {
	analysis := sentiment.Analyze(utterance)
	turn := Turn{Analysis: analysis}

	if res, ok := intent.ResolveExact(a.taxonomy, utterance); ok {
		if body, found := a.synthesizer.ForIntent(res.Intent, record); found {
			turn.Intent, turn.Category, turn.Exact = res.Intent, res.Category, true
			turn.Response = response.Compose(body, analysis)
		}
	}

	if turn.Response == "" {
		if c, ok := a.classifier.Detect(utterance); ok {
			if body, found := a.synthesizer.ForCategory(c.ID, record); found {
				turn.Intent, turn.Category = c.ID, c.ID
				turn.Response = response.Compose(body, analysis)
			}
		}
	}

	if turn.Response == "" {
		turn.Intent = intent.IntentUnknown
		turn.Fallback = true
		turn.Response = a.guidance()
	}

	a.logger.Debug("turn resolved", map[string]interface{}{
		"intent":   turn.Intent,
		"exact":    turn.Exact,
		"fallback": turn.Fallback,
		"emotion":  string(analysis.Emotion),
		"urgency":  string(analysis.Urgency),
	})

	if mem != nil {
		mem.Record(turn.Intent, utterance)
	}
	return turn
}

func (a *Assistant) guidance() string {
	return fmt.Sprintf("I'm sorry, I didn't quite understand that. I can help you with %s. "+
		"Try asking something like \"What's my refund status?\" or pick one of the suggestions below.",
		joinNames(a.taxonomy.Names()))
}

func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return "your booking"
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
