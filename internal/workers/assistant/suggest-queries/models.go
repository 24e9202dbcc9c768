// internal/workers/assistant/suggest-queries/models.go
package suggestqueries

import "airline-assist/internal/assistant/intent"

type Input struct {
	SessionID string `json:"sessionId"`
	Query     string `json:"query"`
}

type Output struct {
	SessionID   string                   `json:"sessionId"`
	Suggestions []intent.Suggestion      `json:"suggestions"`
	Groups      []intent.SuggestionGroup `json:"groups,omitempty"`
}
