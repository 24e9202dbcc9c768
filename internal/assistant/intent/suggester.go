package intent

import (
	"time"

	"airline-assist/internal/assistant/memory"
	"airline-assist/internal/models"
)

// Suggester runs classification, boosting and ranking for the suggestion
// list shown under the chat input.
type Suggester struct {
	taxonomy   Taxonomy
	classifier *Classifier
	booster    *Booster
	limit      int
}

func NewSuggester(t Taxonomy, clock func() time.Time, limit int) *Suggester {
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}
	return &Suggester{
		taxonomy:   t,
		classifier: NewClassifier(t),
		booster:    NewBooster(clock),
		limit:      limit,
	}
}

// Suggest returns at most limit suggestions, best first. When a record is
// given and it carries no active refund, refund questions are dropped.
func (s *Suggester) Suggest(utterance string, record *models.BookingRecord, mem *memory.Memory) []Suggestion {
	hideRefunds := record != nil && !record.HasActiveRefund()

	var all []Suggestion
	for _, m := range s.classifier.Candidates(utterance) {
		if hideRefunds && m.Category.ID == CategoryRefund {
			continue
		}
		for _, q := range m.Category.Questions {
			all = append(all, Suggestion{
				Display:  q.Display,
				Intent:   q.Intent,
				Category: m.Category.ID,
				Priority: s.booster.Boost(m.Category.ID, q, m.Count, record, mem),
			})
		}
	}
	return Rank(all, s.limit)
}

// SuggestGrouped is Suggest regrouped by category for display.
func (s *Suggester) SuggestGrouped(utterance string, record *models.BookingRecord, mem *memory.Memory) []SuggestionGroup {
	return Group(s.taxonomy, s.Suggest(utterance, record, mem))
}
