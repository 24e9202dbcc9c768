package intent

import "strings"

// minReverseMatchLen gates the utterance-inside-keyword check so one or two
// typed characters do not light up every category.
const minReverseMatchLen = 3

// Match is one category's keyword overlap with an utterance.
type Match struct {
	Category Category
	Count    int
}

type Classifier struct {
	taxonomy Taxonomy
}

func NewClassifier(t Taxonomy) *Classifier {
	return &Classifier{taxonomy: t}
}

// Score counts keyword overlap for every category, in taxonomy order.
func (c *Classifier) Score(utterance string) []Match {
	text := normalize(utterance)
	out := make([]Match, 0, len(c.taxonomy.categories))
	for _, cat := range c.taxonomy.Categories() {
		out = append(out, Match{Category: cat, Count: countMatches(text, cat.Keywords)})
	}
	return out
}

// Candidates returns the categories eligible for suggestions. An empty
// utterance matches every category with a zero count.
func (c *Classifier) Candidates(utterance string) []Match {
	scores := c.Score(utterance)
	if normalize(utterance) == "" {
		return scores
	}
	out := scores[:0]
	for _, m := range scores {
		if m.Count > 0 {
			out = append(out, m)
		}
	}
	return out
}

// Detect returns the category with the strictly highest count. Ties keep the
// earlier category. Nothing is detected when no keyword matched.
func (c *Classifier) Detect(utterance string) (Category, bool) {
	var best Match
	for _, m := range c.Score(utterance) {
		if m.Count > best.Count {
			best = m
		}
	}
	if best.Count == 0 {
		return Category{}, false
	}
	return best.Category, true
}

func countMatches(text string, keywords []string) int {
	if text == "" {
		return 0
	}
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) || (len(text) >= minReverseMatchLen && strings.Contains(kw, text)) {
			n++
		}
	}
	return n
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
