// Package sentiment scores an utterance for emotion, urgency and tone using
// fixed keyword tables.
package sentiment

import (
	"math"
	"strings"
)

type Emotion string

const (
	EmotionAngry      Emotion = "angry"
	EmotionFrustrated Emotion = "frustrated"
	EmotionWorried    Emotion = "worried"
	EmotionSad        Emotion = "sad"
	EmotionNeutral    Emotion = "neutral"
	EmotionHopeful    Emotion = "hopeful"
	EmotionSatisfied  Emotion = "satisfied"
	EmotionHappy      Emotion = "happy"
)

type Level string

const (
	LevelVeryNegative Level = "very-negative"
	LevelNegative     Level = "negative"
	LevelNeutral      Level = "neutral"
	LevelPositive     Level = "positive"
	LevelVeryPositive Level = "very-positive"
)

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
	UrgencyUrgent Urgency = "urgent"
)

type Tone string

const (
	ToneFormal     Tone = "formal"
	ToneCasual     Tone = "casual"
	ToneDistressed Tone = "distressed"
	TonePolite     Tone = "polite"
	ToneDemanding  Tone = "demanding"
)

const (
	minConfidence = 0.3
	maxConfidence = 0.9
)

// Analysis is the result of scoring one utterance.
type Analysis struct {
	Sentiment       Level    `json:"sentiment"`
	Emotion         Emotion  `json:"emotion"`
	Urgency         Urgency  `json:"urgency"`
	Tone            Tone     `json:"tone"`
	Confidence      float64  `json:"confidence"`
	MatchedKeywords []string `json:"matchedKeywords"`
}

// Distressed reports whether the emotion calls for an apology-led reply.
func (a Analysis) Distressed() bool {
	return a.Emotion == EmotionAngry || a.Emotion == EmotionFrustrated
}

// Pressing reports whether the user signalled the matter cannot wait.
func (a Analysis) Pressing() bool {
	return a.Urgency == UrgencyUrgent || a.Urgency == UrgencyHigh
}

// Sentiment maps an emotion to its polarity level.
func (e Emotion) Sentiment() Level {
	switch e {
	case EmotionAngry:
		return LevelVeryNegative
	case EmotionFrustrated, EmotionWorried, EmotionSad:
		return LevelNegative
	case EmotionHopeful, EmotionSatisfied:
		return LevelPositive
	case EmotionHappy:
		return LevelVeryPositive
	default:
		return LevelNeutral
	}
}

// Analyze scores text against the emotion, urgency and tone tables. Ties
// between emotions or urgency levels go to the one declared first.
func Analyze(text string) Analysis {
	text = strings.ToLower(strings.TrimSpace(text))

	emotion := EmotionNeutral
	best := 0
	total := 0
	var keywords []string
	for _, b := range emotionBuckets {
		found := matches(text, b.keywords)
		total += len(found)
		if len(found) > best {
			best = len(found)
			emotion = b.emotion
			keywords = found
		}
	}
	if keywords == nil {
		keywords = []string{}
	}

	urgency := UrgencyLow
	bestUrgency := 0
	for _, u := range urgencyLevels {
		if n := len(matches(text, u.keywords)); n > bestUrgency {
			bestUrgency = n
			urgency = u.urgency
		}
	}

	return Analysis{
		Sentiment:       emotion.Sentiment(),
		Emotion:         emotion,
		Urgency:         urgency,
		Tone:            toneOf(text, emotion),
		Confidence:      confidence(total, len(strings.Fields(text))),
		MatchedKeywords: keywords,
	}
}

func toneOf(text string, emotion Emotion) Tone {
	if emotion == EmotionAngry || emotion == EmotionFrustrated {
		return ToneDistressed
	}
	polite := len(matches(text, politeMarkers))
	demanding := len(matches(text, demandingMarkers))
	switch {
	case polite > 0:
		return TonePolite
	case demanding > 1:
		return ToneDemanding
	case len(matches(text, casualMarkers)) > 0:
		return ToneCasual
	default:
		return ToneFormal
	}
}

// confidence is a keyword density score, not a probability.
func confidence(totalMatches, words int) float64 {
	c := float64(totalMatches) / math.Max(1, float64(words)*0.1)
	return math.Min(maxConfidence, math.Max(minConfidence, c))
}

func matches(text string, keywords []string) []string {
	if text == "" {
		return nil
	}
	var found []string
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}
