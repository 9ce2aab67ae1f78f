package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azure/ad-insights-bot/internal/models"
)

func scored(id, text string, score float64) models.ScoredItem {
	return models.ScoredItem{
		TextItem:          models.TextItem{ID: id, Text: text},
		SentimentScore:    score,
		SentimentCategory: models.CategoryFor(score),
	}
}

func TestSignalExtractor_Benefits(t *testing.T) {
	extractor := NewSignalExtractor(DefaultSignalThreshold, DefaultMaxPhrases)

	items := []models.ScoredItem{
		scored("1", "The camera is great. Shipping took a week.", 0.8),
		scored("2", "Best purchase this year!", 0.6),
		scored("3", "Great, but only slightly.", 0.1),
		scored("4", "I hate the great wall of ads.", -0.7),
	}

	phrases := extractor.Benefits(items)
	require.Len(t, phrases, 2)
	assert.Equal(t, models.ExtractedPhrase{Text: "The camera is great.", Kind: models.SignalBenefit, ItemID: "1"}, phrases[0])
	assert.Equal(t, models.ExtractedPhrase{Text: "Best purchase this year!", Kind: models.SignalBenefit, ItemID: "2"}, phrases[1])

	assert.Equal(t, []string{"The camera is great.", "Best purchase this year!"}, extractor.ExtractBenefits(items))
}

func TestSignalExtractor_PainPoints(t *testing.T) {
	extractor := NewSignalExtractor(DefaultSignalThreshold, DefaultMaxPhrases)

	items := []models.ScoredItem{
		scored("1", "Setup was difficult\nThe support team was kind", -0.4),
		scored("2", "Worst update ever", -0.9),
		scored("3", "A small problem", -0.1),
		scored("4", "Whatever, it works", -0.5),
	}

	assert.Equal(t, []string{"Setup was difficult", "Worst update ever"}, extractor.ExtractPainPoints(items))
}

func TestSignalExtractor_Fallbacks(t *testing.T) {
	extractor := NewSignalExtractor(-1, 0)

	tests := []struct {
		name  string
		items []models.ScoredItem
	}{
		{name: "empty batch", items: []models.ScoredItem{}},
		{name: "nil batch", items: nil},
		{name: "weak scores only", items: []models.ScoredItem{scored("1", "great problem", 0.1)}},
		{name: "no cue words", items: []models.ScoredItem{scored("1", "wonderful", 0.9), scored("2", "awful", -0.9)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{FallbackBenefit}, extractor.ExtractBenefits(tt.items))
			assert.Equal(t, []string{FallbackPainPoint}, extractor.ExtractPainPoints(tt.items))
			assert.Empty(t, extractor.Benefits(tt.items))
		})
	}
}

func TestSignalExtractor_MaxPhrases(t *testing.T) {
	extractor := NewSignalExtractor(DefaultSignalThreshold, 2)

	items := []models.ScoredItem{
		scored("1", "Love it. Love it. Love it.", 0.9),
		scored("2", "Perfect fit", 0.9),
	}

	phrases := extractor.ExtractBenefits(items)
	assert.Len(t, phrases, 2)
	assert.Equal(t, []string{"Love it.", "Love it."}, phrases)
}

func TestSignalExtractor_Threshold(t *testing.T) {
	strict := NewSignalExtractor(0.5, DefaultMaxPhrases)
	items := []models.ScoredItem{scored("1", "Great value", 0.4)}

	assert.Equal(t, []string{FallbackBenefit}, strict.ExtractBenefits(items))
	assert.Equal(t, []string{"Great value"}, NewSignalExtractor(0.3, DefaultMaxPhrases).ExtractBenefits(items))
}

func TestSignalExtractor_ZeroThreshold(t *testing.T) {
	extractor := NewSignalExtractor(0, DefaultMaxPhrases)
	items := []models.ScoredItem{
		scored("1", "Great value", 0.1),
		scored("2", "Best price", 0),
		scored("3", "Bad timing", -0.1),
	}

	assert.Equal(t, []string{"Great value"}, extractor.ExtractBenefits(items))
	assert.Equal(t, []string{"Bad timing"}, extractor.ExtractPainPoints(items))
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "terminal punctuation", text: "Love it. Hate the price! Why?", expected: []string{"Love it.", "Hate the price!", "Why?"}},
		{name: "decimal point", text: "Version 2.0 is great", expected: []string{"Version 2.0 is great"}},
		{name: "domain name", text: "Order at shop.example.com. Fast shipping", expected: []string{"Order at shop.example.com.", "Fast shipping"}},
		{name: "ellipsis", text: "Great...really great", expected: []string{"Great...", "really great"}},
		{name: "newlines", text: "first line\nsecond line", expected: []string{"first line", "second line"}},
		{name: "period at end", text: "Best app 2.0.", expected: []string{"Best app 2.0."}},
		{name: "empty", text: "  ", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitSentences(tt.text))
		})
	}
}

func TestKeywordMatcher_WholeWords(t *testing.T) {
	m := newKeywordMatcher("hate", "issue")

	assert.True(t, m.matches("I hate this"))
	assert.True(t, m.matches("HATE"))
	assert.True(t, m.matches("so many issues"))
	assert.False(t, m.matches("whatever"))
	assert.False(t, m.matches("hatred"))
}
