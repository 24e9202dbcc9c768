package sentiment

// Declaration order is the tie-break order.
var emotionBuckets = []struct {
	emotion  Emotion
	keywords []string
}{
	{EmotionAngry, []string{
		"angry", "furious", "outraged", "mad", "pissed", "livid", "enraged", "disgusted", "appalled",
		"this is bs", "bullshit", "scam", "fraud", "sue", "lawsuit", "complaint", "report you",
	}},
	{EmotionFrustrated, []string{
		"frustrated", "annoyed", "irritated", "fed up", "sick of", "tired of", "ridiculous", "unacceptable",
		"pathetic", "terrible", "awful", "horrible", "waste of time", "useless", "incompetent", "disappointed",
	}},
	{EmotionWorried, []string{
		"worried", "concerned", "anxious", "nervous", "scared", "afraid", "panicking", "stressed",
		"urgent", "emergency", "asap", "immediately", "what if", "hope not", "please help",
	}},
	{EmotionSad, []string{
		"sad", "disappointed", "heartbroken", "devastated", "upset", "crying", "depressed", "miserable",
		"ruined", "lost hope", "give up",
	}},
	{EmotionHopeful, []string{
		"hope", "hopefully", "fingers crossed", "optimistic", "confident", "looking forward", "excited",
		"can't wait",
	}},
	{EmotionSatisfied, []string{
		"satisfied", "content", "okay", "fine", "acceptable", "reasonable", "good enough", "works for me",
	}},
	{EmotionHappy, []string{
		"happy", "great", "excellent", "fantastic", "wonderful", "amazing", "perfect", "love", "thrilled",
		"delighted", "pleased", "thank you so much",
	}},
}

var urgencyLevels = []struct {
	urgency  Urgency
	keywords []string
}{
	{UrgencyUrgent, []string{"urgent", "emergency", "asap", "immediately", "right now", "critical"}},
	{UrgencyHigh, []string{"soon", "quickly", "fast", "hurry", "rush", "time sensitive", "deadline"}},
	{UrgencyMedium, []string{"when", "how long", "timeline", "schedule", "plan"}},
	{UrgencyLow, []string{"eventually", "whenever", "no rush", "take your time"}},
}

var (
	politeMarkers    = []string{"please", "thank you", "thanks", "appreciate", "grateful", "kindly", "if possible"}
	demandingMarkers = []string{"need", "want", "must", "have to", "require", "demand", "insist", "should"}
	casualMarkers    = []string{"hey", "hi", "yo", "sup", "yeah", "yep", "nah", "gonna", "wanna"}
)
