package analysis

import (
	"github.com/azure/ad-insights-bot/internal/models"
)

// Fallback phrases used when a batch carries no usable signal
const (
	FallbackBenefit   = "improved experience"
	FallbackPainPoint = "common challenges"
)

const (
	// DefaultSignalThreshold is the minimum |score| an item needs to contribute phrases
	DefaultSignalThreshold = 0.2
	// DefaultMaxPhrases caps how many phrases each extraction returns
	DefaultMaxPhrases = 5
)

var (
	benefitCues   = newKeywordMatcher("great", "amazing", "love", "perfect", "best", "excellent")
	painPointCues = newKeywordMatcher("bad", "hate", "problem", "issue", "difficult", "poor", "terrible", "worst")
)

// SignalExtractor pulls benefit and pain-point sentences out of strongly
// signed items
type SignalExtractor struct {
	threshold  float64
	maxPhrases int
}

// NewSignalExtractor creates an extractor. A negative threshold or a
// non-positive cap falls back to the default; a zero threshold admits any
// signed score.
func NewSignalExtractor(threshold float64, maxPhrases int) *SignalExtractor {
	if threshold < 0 {
		threshold = DefaultSignalThreshold
	}
	if maxPhrases <= 0 {
		maxPhrases = DefaultMaxPhrases
	}
	return &SignalExtractor{threshold: threshold, maxPhrases: maxPhrases}
}

// Benefits returns cue-matching sentences from items scoring above the threshold
func (e *SignalExtractor) Benefits(items []models.ScoredItem) []models.ExtractedPhrase {
	return e.extract(items, models.SignalBenefit, benefitCues, func(score float64) bool {
		return score > e.threshold
	})
}

// PainPoints returns cue-matching sentences from items scoring below -threshold
func (e *SignalExtractor) PainPoints(items []models.ScoredItem) []models.ExtractedPhrase {
	return e.extract(items, models.SignalPainPoint, painPointCues, func(score float64) bool {
		return score < -e.threshold
	})
}

// ExtractBenefits returns benefit phrases, or the fallback when none are found
func (e *SignalExtractor) ExtractBenefits(items []models.ScoredItem) []string {
	return phraseTexts(e.Benefits(items), FallbackBenefit)
}

// ExtractPainPoints returns pain-point phrases, or the fallback when none are found
func (e *SignalExtractor) ExtractPainPoints(items []models.ScoredItem) []string {
	return phraseTexts(e.PainPoints(items), FallbackPainPoint)
}

func (e *SignalExtractor) extract(items []models.ScoredItem, kind models.SignalKind, cues keywordMatcher, eligible func(float64) bool) []models.ExtractedPhrase {
	phrases := make([]models.ExtractedPhrase, 0, e.maxPhrases)

	for _, item := range items {
		if !eligible(item.SentimentScore) {
			continue
		}
		for _, sentence := range splitSentences(item.Text) {
			if !cues.matches(sentence) {
				continue
			}
			phrases = append(phrases, models.ExtractedPhrase{
				Text:   sentence,
				Kind:   kind,
				ItemID: item.ID,
			})
			if len(phrases) == e.maxPhrases {
				return phrases
			}
		}
	}

	return phrases
}

func phraseTexts(phrases []models.ExtractedPhrase, fallback string) []string {
	if len(phrases) == 0 {
		return []string{fallback}
	}
	texts := make([]string, len(phrases))
	for i, p := range phrases {
		texts[i] = p.Text
	}
	return texts
}
