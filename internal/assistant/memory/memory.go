// Package memory holds the per-session conversation record consulted when
// ranking suggestions.
package memory

const (
	DefaultHistoryLimit = 10
	DefaultTopicLimit   = 20
)

// Memory is owned by a single session. Record is the only mutation.
type Memory struct {
	LastIntent          string                 `json:"lastIntent,omitempty"`
	AskedTopics         []string               `json:"askedTopics"`
	ConversationHistory []string               `json:"conversationHistory"`
	UserPreferences     map[string]string      `json:"userPreferences"`
	ContextData         map[string]interface{} `json:"contextData"`

	HistoryLimit int `json:"historyLimit,omitempty"`
	TopicLimit   int `json:"topicLimit,omitempty"`
}

func New() *Memory {
	return NewWithLimits(DefaultHistoryLimit, DefaultTopicLimit)
}

func NewWithLimits(historyLimit, topicLimit int) *Memory {
	return &Memory{
		AskedTopics:         []string{},
		ConversationHistory: []string{},
		UserPreferences:     map[string]string{},
		ContextData:         map[string]interface{}{},
		HistoryLimit:        historyLimit,
		TopicLimit:          topicLimit,
	}
}

// Record notes a handled turn: the intent becomes the last intent, the
// utterance joins the history and the intent joins the asked topics if new.
// Oldest entries are dropped once a list exceeds its limit.
func (m *Memory) Record(intent, utterance string) {
	m.LastIntent = intent

	m.ConversationHistory = append(m.ConversationHistory, utterance)
	m.ConversationHistory = trim(m.ConversationHistory, limitOr(m.HistoryLimit, DefaultHistoryLimit))

	if !m.HasAsked(intent) {
		m.AskedTopics = append(m.AskedTopics, intent)
		m.AskedTopics = trim(m.AskedTopics, limitOr(m.TopicLimit, DefaultTopicLimit))
	}
}

// HasAsked reports whether the intent is among the asked topics.
func (m *Memory) HasAsked(intent string) bool {
	for _, t := range m.AskedTopics {
		if t == intent {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (m *Memory) Clone() *Memory {
	c := *m
	c.AskedTopics = append([]string{}, m.AskedTopics...)
	c.ConversationHistory = append([]string{}, m.ConversationHistory...)
	c.UserPreferences = make(map[string]string, len(m.UserPreferences))
	for k, v := range m.UserPreferences {
		c.UserPreferences[k] = v
	}
	c.ContextData = make(map[string]interface{}, len(m.ContextData))
	for k, v := range m.ContextData {
		c.ContextData[k] = v
	}
	return &c
}

func trim(list []string, limit int) []string {
	if len(list) <= limit {
		return list
	}
	return append([]string{}, list[len(list)-limit:]...)
}

// limitOr applies limit when it is positive and within the fallback cap.
func limitOr(limit, fallback int) int {
	if limit <= 0 || limit > fallback {
		return fallback
	}
	return limit
}
