package intent

import "sort"

// DefaultMaxSuggestions caps the ranked list.
const DefaultMaxSuggestions = 6

// Suggestion is a ranked canonical question.
type Suggestion struct {
	Display  string `json:"display"`
	Intent   string `json:"intent"`
	Category string `json:"category"`
	Priority int    `json:"priority"`
}

// SuggestionGroup is a display grouping of ranked suggestions.
type SuggestionGroup struct {
	Category    string       `json:"category"`
	Name        string       `json:"name"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Rank orders suggestions by priority, highest first, keeping input order
// among equals, and truncates to limit.
func Rank(suggestions []Suggestion, limit int) []Suggestion {
	ranked := append([]Suggestion{}, suggestions...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Priority > ranked[j].Priority
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Group buckets ranked suggestions by category. Groups are ordered by the
// mean priority of their members; equal means keep first-appearance order.
func Group(t Taxonomy, ranked []Suggestion) []SuggestionGroup {
	index := map[string]int{}
	var groups []SuggestionGroup
	for _, s := range ranked {
		i, ok := index[s.Category]
		if !ok {
			name := s.Category
			if c, found := t.Category(s.Category); found {
				name = c.Name
			}
			i = len(groups)
			index[s.Category] = i
			groups = append(groups, SuggestionGroup{Category: s.Category, Name: name})
		}
		groups[i].Suggestions = append(groups[i].Suggestions, s)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return meanPriority(groups[i]) > meanPriority(groups[j])
	})
	return groups
}

func meanPriority(g SuggestionGroup) float64 {
	if len(g.Suggestions) == 0 {
		return 0
	}
	total := 0
	for _, s := range g.Suggestions {
		total += s.Priority
	}
	return float64(total) / float64(len(g.Suggestions))
}
