package response

import (
	"strings"

	"airline-assist/internal/assistant/sentiment"
)

// Opener picks the sentence that leads a reply. Urgency overrides emotion;
// tone only matters for happy and neutral users.
func Opener(a sentiment.Analysis) string {
	if a.Pressing() {
		if a.Emotion == sentiment.EmotionWorried || a.Emotion == sentiment.EmotionFrustrated {
			return "I understand this is urgent and you're concerned. Let me help you right away."
		}
		return "I can see this needs immediate attention. Let me prioritize this for you."
	}

	switch a.Emotion {
	case sentiment.EmotionAngry:
		return "I completely understand your frustration, and I sincerely apologize for the inconvenience you've experienced."
	case sentiment.EmotionFrustrated:
		return "I can hear how frustrating this situation must be for you, and I'm here to help make this right."
	case sentiment.EmotionWorried:
		return "I understand your concern, and I want to reassure you that we'll work together to resolve this."
	case sentiment.EmotionSad:
		return "I'm really sorry to hear about this situation. Let me see how I can help turn this around for you."
	case sentiment.EmotionHappy:
		if a.Tone == sentiment.ToneCasual {
			return "I'm so glad to hear that! How can I help make your day even better?"
		}
		return "It's wonderful to hear from you! How may I assist you today?"
	case sentiment.EmotionSatisfied:
		return "I'm pleased you're having a good experience. What can I help you with?"
	case sentiment.EmotionHopeful:
		return "I appreciate your positive outlook! Let me do my best to help you."
	}

	switch a.Tone {
	case sentiment.TonePolite:
		return "Thank you for reaching out. I'm here to help you with whatever you need."
	case sentiment.ToneCasual:
		return "Hey there! What can I help you with today?"
	}
	return "Hello! I'm here to assist you."
}

// Closer returns the trailing sentence for the emotion, or "".
func Closer(a sentiment.Analysis) string {
	switch a.Emotion {
	case sentiment.EmotionAngry, sentiment.EmotionFrustrated:
		return "I'm committed to resolving this for you. If there's anything else I can do, just let me know."
	case sentiment.EmotionWorried:
		return "Please don't worry, I'll keep you informed every step of the way."
	case sentiment.EmotionHappy, sentiment.EmotionSatisfied:
		return "It's been a pleasure helping you. Have a wonderful trip!"
	}
	return ""
}

var (
	ownershipPhrasing = strings.NewReplacer(
		"We will", "I'll personally ensure we",
		"The refund will", "Your refund will",
		"You'll receive", "You should receive",
		"5-7 business days", "5-7 business days (I'll monitor this for you)",
	)
	expeditedPhrasing = strings.NewReplacer(
		"will be processed", "will be expedited and processed",
		"5-7 business days", "3-5 business days (expedited processing)",
	)
	casualPhrasing = strings.NewReplacer(
		"I am ", "I'm ",
		"You will ", "You'll ",
		"We will ", "We'll ",
		"regarding this refund", "about your refund",
	)
)

// AdjustTone rewrites finished answer text for the user's state. It runs
// after templating and never changes the facts in the text.
func AdjustTone(body string, a sentiment.Analysis) string {
	if a.Emotion == sentiment.EmotionAngry || a.Emotion == sentiment.EmotionFrustrated {
		body = ownershipPhrasing.Replace(body)
	}
	if a.Pressing() {
		body = expeditedPhrasing.Replace(body)
	}
	if a.Tone == sentiment.ToneCasual {
		body = casualPhrasing.Replace(body)
	}
	return body
}

// Compose wraps an answer with an opener and, when one applies, a closer.
func Compose(body string, a sentiment.Analysis) string {
	var b strings.Builder
	b.WriteString(Opener(a))
	b.WriteString("\n\n")
	b.WriteString(AdjustTone(body, a))
	if closer := Closer(a); closer != "" {
		b.WriteString("\n\n")
		b.WriteString(closer)
	}
	return b.String()
}
