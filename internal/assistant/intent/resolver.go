package intent

import "strings"

// Resolution pins an utterance to a single intent.
type Resolution struct {
	Category string
	Intent   string
}

// ResolveExact looks for a canonical question whose display text equals the
// trimmed utterance, case-sensitively. The first match wins.
func ResolveExact(t Taxonomy, utterance string) (Resolution, bool) {
	text := strings.TrimSpace(utterance)
	if text == "" {
		return Resolution{}, false
	}
	for _, c := range t.categories {
		for _, q := range c.Questions {
			if q.Display == text {
				return Resolution{Category: c.ID, Intent: q.Intent}, true
			}
		}
	}
	return Resolution{}, false
}
