// internal/workers/assistant/respond-to-query/models.go
package respondtoquery

import "airline-assist/internal/assistant/intent"

type Input struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type Output struct {
	SessionID   string              `json:"sessionId"`
	Response    string              `json:"response"`
	Intent      string              `json:"intent"`
	Category    string              `json:"category,omitempty"`
	Exact       bool                `json:"exact"`
	Fallback    bool                `json:"fallback"`
	Emotion     string              `json:"emotion"`
	Urgency     string              `json:"urgency"`
	Suggestions []intent.Suggestion `json:"suggestions"`
}
