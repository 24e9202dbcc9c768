package intent

import (
	"testing"
	"time"

	"airline-assist/internal/assistant/memory"
	"airline-assist/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func departingIn(d time.Duration) *models.BookingRecord {
	return &models.BookingRecord{
		BookingID:     "BK1001",
		Status:        "confirmed",
		DepartureTime: testNow.Add(d).Format(time.RFC3339),
	}
}

func displays(list []Suggestion) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = s.Display
	}
	return out
}

func indexOf(list []Suggestion, display string) int {
	for i, s := range list {
		if s.Display == display {
			return i
		}
	}
	return -1
}

// ==========================
// Taxonomy
// ==========================

func TestTaxonomy_IsImmutable(t *testing.T) {
	tax := DefaultTaxonomy()
	cats := tax.Categories()
	cats[0].Keywords[0] = "mutated"
	cats[0].Questions[0].Display = "mutated"

	again := tax.Categories()
	assert.Equal(t, "refund", again[0].Keywords[0])
	assert.Equal(t, "What's my refund status?", again[0].Questions[0].Display)
}

func TestTaxonomy_Lookups(t *testing.T) {
	tax := DefaultTaxonomy()

	c, ok := tax.Category(CategoryCheckIn)
	require.True(t, ok)
	assert.Equal(t, "check-in", c.Name)

	_, ok = tax.Category("nope")
	assert.False(t, ok)

	assert.Len(t, tax.Names(), 6)
	assert.Contains(t, tax.Intents(), IntentRefundAmount)
	assert.NotContains(t, tax.Intents(), IntentUnknown)
}

// ==========================
// Classifier
// ==========================

func TestClassifier_Detect(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	tests := []struct {
		name      string
		utterance string
		want      string
		wantOK    bool
	}{
		{"single keyword", "where is my refund?", CategoryRefund, true},
		{"most keywords win", "When is my flight departure time?", CategoryFlight, true},
		{"tie keeps earlier category", "refund status", CategoryRefund, true},
		{"case insensitive", "SEAT please", CategoryBooking, true},
		{"check-in phrasing", "can I check in online", CategoryCheckIn, true},
		{"no keywords", "xyz123", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Detect(tt.utterance)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.ID)
		})
	}
}

func TestClassifier_Score(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())
	scores := c.Score("When is my flight departure time?")
	require.Len(t, scores, 6)
	assert.Equal(t, CategoryFlight, scores[1].Category.ID)
	assert.Equal(t, 3, scores[1].Count)
}

func TestClassifier_Candidates(t *testing.T) {
	c := NewClassifier(DefaultTaxonomy())

	t.Run("empty utterance is a wildcard", func(t *testing.T) {
		got := c.Candidates("")
		assert.Len(t, got, 6)
		for _, m := range got {
			assert.Zero(t, m.Count)
		}
	})

	t.Run("partial word matches inside keyword", func(t *testing.T) {
		got := c.Candidates("sea")
		require.Len(t, got, 1)
		assert.Equal(t, CategoryBooking, got[0].Category.ID)
	})

	t.Run("two characters do not match inside keywords", func(t *testing.T) {
		assert.Empty(t, c.Candidates("se"))
	})
}

// ==========================
// Exact resolver
// ==========================

func TestResolveExact(t *testing.T) {
	tax := DefaultTaxonomy()

	tests := []struct {
		name      string
		utterance string
		want      Resolution
		wantOK    bool
	}{
		{"exact text", "What's my refund status?", Resolution{CategoryRefund, IntentRefundStatusCheck}, true},
		{"surrounding whitespace", "  How much will I be refunded?  ", Resolution{CategoryRefund, IntentRefundAmount}, true},
		{"specific booking intent", "What's my seat number?", Resolution{CategoryBooking, IntentSeatInfo}, true},
		{"case sensitive", "what's my refund status?", Resolution{}, false},
		{"empty", "", Resolution{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveExact(tax, tt.utterance)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ==========================
// Booster
// ==========================

func TestBooster_RecordBoosts(t *testing.T) {
	b := NewBooster(fixedClock)
	departure := Question{Display: "What's my departure time?", Intent: IntentDepartureTime}
	checkin := Question{Display: "Have I checked in?", Intent: IntentCheckinStatus}
	refund := Question{Display: "What's my refund status?", Intent: IntentRefundStatusCheck}
	status := Question{Display: "Is my booking confirmed?", Intent: IntentBookingStatus}
	meal := Question{Display: "What meals did I select?", Intent: IntentMealInfo}

	withRefund := &models.BookingRecord{Status: "confirmed", RefundID: "RFND1", RefundAmount: 500}
	pending := &models.BookingRecord{Status: "Pending"}
	confirmed := &models.BookingRecord{Status: "CONFIRMED"}

	tests := []struct {
		name     string
		category string
		q        Question
		base     int
		record   *models.BookingRecord
		want     int
	}{
		{"departure within a day", CategoryFlight, departure, 0, departingIn(12 * time.Hour), 3},
		{"departure within a week", CategoryFlight, departure, 1, departingIn(72 * time.Hour), 3},
		{"departure within a month", CategoryFlight, departure, 0, departingIn(20 * 24 * time.Hour), 1},
		{"departure far away", CategoryFlight, departure, 0, departingIn(40 * 24 * time.Hour), 0},
		{"flight already departed", CategoryFlight, departure, 0, departingIn(-2 * time.Hour), 0},
		{"check-in window", CategoryCheckIn, checkin, 0, departingIn(12 * time.Hour), 3},
		{"before check-in window", CategoryCheckIn, checkin, 0, departingIn(30 * time.Hour), 0},
		{"non-flight intent ignores departure", CategoryBooking, meal, 0, departingIn(12 * time.Hour), 0},
		{"active refund", CategoryRefund, refund, 0, withRefund, 2},
		{"unconfirmed booking", CategoryBookingStatus, status, 0, pending, 2},
		{"confirmed booking", CategoryBookingStatus, status, 0, confirmed, 0},
		{"no record", CategoryFlight, departure, 2, nil, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Boost(tt.category, tt.q, tt.base, tt.record, nil))
		})
	}
}

func TestBooster_MemoryBoosts(t *testing.T) {
	b := NewBooster(fixedClock)
	timing := Question{Display: "When will I get my refund?", Intent: IntentRefundTiming}

	t.Run("continuity and novelty", func(t *testing.T) {
		mem := memory.New()
		mem.Record(IntentRefundAmount, "How much will I be refunded?")
		assert.Equal(t, 3, b.Boost(CategoryRefund, timing, 0, nil, mem))
	})

	t.Run("already asked loses novelty", func(t *testing.T) {
		mem := memory.New()
		mem.Record(IntentRefundTiming, "When will I get my refund?")
		assert.Equal(t, 2, b.Boost(CategoryRefund, timing, 0, nil, mem))
	})

	t.Run("fresh memory gives novelty only", func(t *testing.T) {
		assert.Equal(t, 1, b.Boost(CategoryRefund, timing, 0, nil, memory.New()))
	})
}

func TestStem(t *testing.T) {
	assert.Equal(t, "refund", stem(IntentRefundStatusCheck))
	assert.Equal(t, "checkin", stem(IntentCheckinStatus))
	assert.Equal(t, "pnr", stem(IntentPNRInfo))
	assert.Equal(t, "unknown", stem(IntentUnknown))
}

// ==========================
// Ranker
// ==========================

func TestRank(t *testing.T) {
	in := []Suggestion{
		{Display: "a", Priority: 1},
		{Display: "b", Priority: 3},
		{Display: "c", Priority: 1},
		{Display: "d", Priority: 3},
		{Display: "e", Priority: 0},
	}

	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, displays(Rank(in, 10)))
	assert.Equal(t, []string{"b", "d", "a"}, displays(Rank(in, 3)))
	assert.Equal(t, "a", in[0].Display, "input must not be reordered")
}

func TestGroup(t *testing.T) {
	ranked := []Suggestion{
		{Display: "x1", Category: CategoryFlight, Priority: 3},
		{Display: "y1", Category: CategoryCheckIn, Priority: 5},
		{Display: "x2", Category: CategoryFlight, Priority: 1},
		{Display: "z1", Category: CategoryBooking, Priority: 2},
	}

	groups := Group(DefaultTaxonomy(), ranked)
	require.Len(t, groups, 3)
	assert.Equal(t, "check-in", groups[0].Name)
	assert.Equal(t, CategoryFlight, groups[1].Category)
	assert.Equal(t, []string{"x1", "x2"}, displays(groups[1].Suggestions))
	assert.Equal(t, CategoryBooking, groups[2].Category)
}

// ==========================
// Suggester
// ==========================

func TestSuggester_EmptyUtteranceNearDeparture(t *testing.T) {
	s := NewSuggester(DefaultTaxonomy(), fixedClock, 0)
	got := s.Suggest("", departingIn(12*time.Hour), nil)

	assert.Equal(t, []string{
		"What are my flight details?",
		"What's my departure time?",
		"What's my arrival time?",
		"Have I checked in?",
		"What's my boarding group?",
		"Show my booking details",
	}, displays(got))
	assert.Equal(t, -1, indexOf(got, "Show payment breakdown"))

	categories := map[string]bool{}
	for _, sg := range got {
		categories[sg.Category] = true
	}
	assert.Greater(t, len(categories), 1)
}

func TestSuggester_RefundGating(t *testing.T) {
	s := NewSuggester(DefaultTaxonomy(), fixedClock, 0)

	t.Run("no refund hides refund questions", func(t *testing.T) {
		noRefund := &models.BookingRecord{RefundID: "", RefundAmount: 0}
		assert.Empty(t, s.Suggest("refund", noRefund, nil))

		for _, sg := range s.Suggest("", noRefund, nil) {
			assert.NotEqual(t, CategoryRefund, sg.Category)
		}
	})

	t.Run("id without amount still hides", func(t *testing.T) {
		placeholder := &models.BookingRecord{RefundID: "RFND1", RefundAmount: 0}
		assert.Empty(t, s.Suggest("refund", placeholder, nil))
	})

	t.Run("active refund shows and boosts", func(t *testing.T) {
		active := &models.BookingRecord{Status: "confirmed", RefundID: "RFND1", RefundAmount: 500}
		got := s.Suggest("refund", active, nil)
		require.Len(t, got, 3)
		for _, sg := range got {
			assert.Equal(t, CategoryRefund, sg.Category)
			assert.Equal(t, 4, sg.Priority)
		}
	})

	t.Run("no record means no gating", func(t *testing.T) {
		got := s.Suggest("", nil, nil)
		assert.Equal(t, CategoryRefund, got[0].Category)
	})
}

func TestSuggester_MemoryShapesOrder(t *testing.T) {
	s := NewSuggester(DefaultTaxonomy(), fixedClock, 0)
	mem := memory.New()
	mem.Record(IntentSeatInfo, "What's my seat number?")

	got := s.Suggest("", nil, mem)
	assert.Equal(t, []string{
		"What's my seat number?",
		"What's my refund status?",
		"When will I get my refund?",
		"How much will I be refunded?",
		"What are my flight details?",
		"What's my departure time?",
	}, displays(got))
}

func TestSuggester_PriorityMonotonic(t *testing.T) {
	s := NewSuggester(DefaultTaxonomy(), fixedClock, 0)
	record := &models.BookingRecord{Status: "confirmed"}

	before := s.Suggest("flight seat", record, nil)
	after := s.Suggest("flight seat meal", record, nil)

	assert.GreaterOrEqual(t, indexOf(before, "Show my booking details"), indexOf(after, "Show my booking details"))
	assert.Equal(t, 0, indexOf(after, "Show my booking details"))
}

func TestSuggester_Deterministic(t *testing.T) {
	s := NewSuggester(DefaultTaxonomy(), fixedClock, 0)
	record := departingIn(5 * 24 * time.Hour)
	mem := memory.New()
	mem.Record(IntentAmountPaid, "How much did I pay?")

	first := s.Suggest("", record, mem)
	second := s.Suggest("", record, mem)
	assert.Equal(t, first, second)
	assert.Len(t, first, DefaultMaxSuggestions)

	grouped := s.SuggestGrouped("", record, mem)
	total := 0
	for _, g := range grouped {
		total += len(g.Suggestions)
	}
	assert.Equal(t, len(first), total)
}
