package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Emotion, urgency and tone
// ==========================

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		emotion   Emotion
		sentiment Level
		urgency   Urgency
		tone      Tone
		keywords  []string
	}{
		{
			name:      "angry outranks frustrated on a tie",
			text:      "I AM SO ANGRY about this ridiculous delay",
			emotion:   EmotionAngry,
			sentiment: LevelVeryNegative,
			urgency:   UrgencyLow,
			tone:      ToneDistressed,
			keywords:  []string{"angry"},
		},
		{
			name:      "frustrated outranks sad on a shared keyword",
			text:      "I am disappointed",
			emotion:   EmotionFrustrated,
			sentiment: LevelNegative,
			urgency:   UrgencyLow,
			tone:      ToneDistressed,
			keywords:  []string{"disappointed"},
		},
		{
			name:      "worried with urgency stays polite",
			text:      "I'm worried, this is urgent, please help",
			emotion:   EmotionWorried,
			sentiment: LevelNegative,
			urgency:   UrgencyUrgent,
			tone:      TonePolite,
			keywords:  []string{"worried", "urgent", "please help"},
		},
		{
			name:      "happy and polite",
			text:      "Thank you so much, this is perfect",
			emotion:   EmotionHappy,
			sentiment: LevelVeryPositive,
			urgency:   UrgencyLow,
			tone:      TonePolite,
			keywords:  []string{"perfect", "thank you so much"},
		},
		{
			name:      "casual neutral question",
			text:      "hey, when does my flight leave?",
			emotion:   EmotionNeutral,
			sentiment: LevelNeutral,
			urgency:   UrgencyMedium,
			tone:      ToneCasual,
			keywords:  []string{},
		},
		{
			name:      "demanding needs two markers",
			text:      "I need to know and I want the answer",
			emotion:   EmotionNeutral,
			sentiment: LevelNeutral,
			urgency:   UrgencyLow,
			tone:      ToneDemanding,
			keywords:  []string{},
		},
		{
			name:      "single demanding marker is formal",
			text:      "I need my booking reference",
			emotion:   EmotionNeutral,
			sentiment: LevelNeutral,
			urgency:   UrgencyLow,
			tone:      ToneFormal,
			keywords:  []string{},
		},
		{
			name:      "empty text",
			text:      "",
			emotion:   EmotionNeutral,
			sentiment: LevelNeutral,
			urgency:   UrgencyLow,
			tone:      ToneFormal,
			keywords:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			assert.Equal(t, tt.emotion, got.Emotion)
			assert.Equal(t, tt.sentiment, got.Sentiment)
			assert.Equal(t, tt.urgency, got.Urgency)
			assert.Equal(t, tt.tone, got.Tone)
			assert.Equal(t, tt.keywords, got.MatchedKeywords)
		})
	}
}

func TestAnalyze_EmptyText(t *testing.T) {
	got := Analyze("   ")
	assert.Equal(t, Analysis{
		Sentiment:       LevelNeutral,
		Emotion:         EmotionNeutral,
		Urgency:         UrgencyLow,
		Tone:            ToneFormal,
		Confidence:      0.3,
		MatchedKeywords: []string{},
	}, got)
}

// ==========================
// Confidence
// ==========================

func TestAnalyze_Confidence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"no matches floors", "where is my seat", 0.3},
		{"dense matches cap", "I am furious", 0.9},
		{
			name: "sparse match in long text",
			text: "the flight was mostly okay but I would like to check a few small details about my seat and meal today",
			want: 1 / 2.1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Analyze(tt.text).Confidence, 0.0001)
		})
	}
}

// ==========================
// Sentiment lookup
// ==========================

func TestEmotion_Sentiment(t *testing.T) {
	want := map[Emotion]Level{
		EmotionAngry:      LevelVeryNegative,
		EmotionFrustrated: LevelNegative,
		EmotionWorried:    LevelNegative,
		EmotionSad:        LevelNegative,
		EmotionNeutral:    LevelNeutral,
		EmotionHopeful:    LevelPositive,
		EmotionSatisfied:  LevelPositive,
		EmotionHappy:      LevelVeryPositive,
	}
	for emotion, level := range want {
		assert.Equal(t, level, emotion.Sentiment(), string(emotion))
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	texts := []string{
		"This is unacceptable and I want a refund immediately",
		"hopefully my flight is on time",
		"",
	}
	for _, text := range texts {
		first := Analyze(text)
		second := Analyze(text)
		assert.Equal(t, first, second)
		assert.Equal(t, first.Emotion.Sentiment(), first.Sentiment)
	}
}

func TestAnalysis_Flags(t *testing.T) {
	assert.True(t, Analysis{Emotion: EmotionFrustrated}.Distressed())
	assert.False(t, Analysis{Emotion: EmotionSad}.Distressed())
	assert.True(t, Analysis{Urgency: UrgencyHigh}.Pressing())
	assert.False(t, Analysis{Urgency: UrgencyMedium}.Pressing())
}
