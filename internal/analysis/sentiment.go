package analysis

import (
	"math"
	"strings"

	"github.com/azure/ad-insights-bot/internal/models"
)

const (
	negationScalar     = -0.74
	exclamationBoost   = 0.292
	maxExclamations    = 4
	normalizationAlpha = 15.0
	windowSize         = 3
)

// boosterDecay weakens a booster the further it sits from the word it modifies
var boosterDecay = [windowSize]float64{1.0, 0.95, 0.9}

// Sentiment is the polarity of a piece of text
type Sentiment struct {
	Score    float64                  `json:"score"`
	Category models.SentimentCategory `json:"category"`
}

// Scorer assigns a polarity to text
type Scorer interface {
	Score(text string) Sentiment
}

// LexiconScorer computes a compound polarity from a word valence table
type LexiconScorer struct {
	lexicon map[string]float64
}

// Ensure LexiconScorer implements Scorer
var _ Scorer = (*LexiconScorer)(nil)

// NewLexiconScorer creates a scorer backed by the built-in lexicon
func NewLexiconScorer() *LexiconScorer {
	return &LexiconScorer{lexicon: defaultLexicon}
}

// NewLexiconScorerWith creates a scorer backed by a caller-supplied lexicon.
// Keys must be lower-case.
func NewLexiconScorerWith(lexicon map[string]float64) *LexiconScorer {
	return &LexiconScorer{lexicon: lexicon}
}

// Categorize maps a compound score to its category
func Categorize(score float64) models.SentimentCategory {
	return models.CategoryFor(score)
}

// Score returns the compound polarity of text in [-1, 1].
// Empty text scores 0 (neutral).
func (s *LexiconScorer) Score(text string) Sentiment {
	tokens := sentimentTokens(text)
	if len(tokens) == 0 {
		return Sentiment{Score: 0, Category: models.SentimentNeutral}
	}

	valences := make([]float64, len(tokens))
	for i, token := range tokens {
		valence, ok := s.lexicon[token]
		if !ok {
			continue
		}

		for d := 1; d <= windowSize && i-d >= 0; d++ {
			scalar, ok := boosters[tokens[i-d]]
			if !ok {
				continue
			}
			scalar *= boosterDecay[d-1]
			if valence < 0 {
				scalar = -scalar
			}
			valence += scalar
		}

		if negatedBefore(tokens, i) {
			valence *= negationScalar
		}

		valences[i] = valence
	}

	applyContrast(tokens, valences)

	sum := 0.0
	for _, v := range valences {
		sum += v
	}

	if sum != 0 {
		bangs := math.Min(float64(strings.Count(text, "!")), maxExclamations)
		if sum > 0 {
			sum += bangs * exclamationBoost
		} else {
			sum -= bangs * exclamationBoost
		}
	}

	score := normalize(sum)
	return Sentiment{Score: score, Category: Categorize(score)}
}

// ScoreItem attaches sentiment to a single item without touching its text
func ScoreItem(scorer Scorer, item models.TextItem) models.ScoredItem {
	sentiment := scorer.Score(item.Text)
	return models.ScoredItem{
		TextItem:          item,
		SentimentScore:    sentiment.Score,
		SentimentCategory: sentiment.Category,
	}
}

// ScoreBatch scores every item independently, preserving order
func ScoreBatch(scorer Scorer, items []models.TextItem) []models.ScoredItem {
	scored := make([]models.ScoredItem, len(items))
	for i, item := range items {
		scored[i] = ScoreItem(scorer, item)
	}
	return scored
}

func negatedBefore(tokens []string, i int) bool {
	for d := 1; d <= windowSize && i-d >= 0; d++ {
		if _, ok := negations[tokens[i-d]]; ok {
			return true
		}
	}
	return false
}

// applyContrast lowers sentiment before the first "but" and raises it after
func applyContrast(tokens []string, valences []float64) {
	pivot := -1
	for i, token := range tokens {
		if token == "but" {
			pivot = i
			break
		}
	}
	if pivot < 0 {
		return
	}

	for i := range valences {
		switch {
		case i < pivot:
			valences[i] *= 0.5
		case i > pivot:
			valences[i] *= 1.5
		}
	}
}

func normalize(sum float64) float64 {
	if sum == 0 {
		return 0
	}
	score := sum / math.Sqrt(sum*sum+normalizationAlpha)
	return math.Max(-1, math.Min(1, score))
}

// sentimentTokens splits on whitespace and trims surrounding punctuation,
// keeping inner apostrophes so contractions stay intact
func sentimentTokens(text string) []string {
	text = strings.ReplaceAll(text, "’", "'")
	fields := strings.Fields(strings.ToLower(text))

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimFunc(field, func(r rune) bool {
			return !isWordRune(r)
		})
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}
