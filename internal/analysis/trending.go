package analysis

import (
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/azure/ad-insights-bot/internal/models"
)

// DefaultTopN is the number of trending terms returned when none is requested
const DefaultTopN = 5

// minTermLength is the shortest token kept in word mode; shorter ones are noise
const minTermLength = 4

// TermMode selects how a batch is tokenized for trend ranking
type TermMode int

const (
	// ModeWords ranks every non-stopword token longer than three runes
	ModeWords TermMode = iota
	// ModeHashtags ranks only #hashtag matches
	ModeHashtags
)

// TrendingOptions controls a trending extraction
type TrendingOptions struct {
	TopN int
	Mode TermMode
}

var (
	hashtagPattern = regexp.MustCompile(`#([\p{L}\p{M}\p{N}_]+)`)
	urlPattern     = regexp.MustCompile(`https?://\S+|www\.\S+`)
	handlePattern  = regexp.MustCompile(`@[\p{L}\p{M}\p{N}_]+`)
)

// TrendingExtractor ranks terms by frequency across a batch
type TrendingExtractor struct {
	stopwords map[string]struct{}
}

// NewTrendingExtractor creates an extractor using the built-in stopword set
func NewTrendingExtractor() *TrendingExtractor {
	return &TrendingExtractor{stopwords: defaultStopwords}
}

// Extract returns the most frequent terms in the batch, ties broken by
// first appearance. It never returns nil.
func (e *TrendingExtractor) Extract(items []models.ScoredItem, opts TrendingOptions) []models.TrendingTerm {
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	counts := make(map[string]int)
	var order []string

	for _, item := range items {
		for _, term := range e.terms(item.Text, opts.Mode) {
			if _, seen := counts[term]; !seen {
				order = append(order, term)
			}
			counts[term]++
		}
	}

	ranked := make([]models.TrendingTerm, 0, len(order))
	for _, term := range order {
		ranked = append(ranked, models.TrendingTerm{Term: term, Count: counts[term]})
	}

	// order is first-seen, so a stable sort keeps the tie-break
	slices.SortStableFunc(ranked, func(a, b models.TrendingTerm) int {
		return b.Count - a.Count
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// Terms returns just the ranked term strings
func (e *TrendingExtractor) Terms(items []models.ScoredItem, opts TrendingOptions) []string {
	ranked := e.Extract(items, opts)
	terms := make([]string, len(ranked))
	for i, t := range ranked {
		terms[i] = t.Term
	}
	return terms
}

func (e *TrendingExtractor) terms(text string, mode TermMode) []string {
	if mode == ModeHashtags {
		matches := hashtagPattern.FindAllStringSubmatch(text, -1)
		tags := make([]string, 0, len(matches))
		for _, m := range matches {
			tags = append(tags, strings.ToLower(m[1]))
		}
		return tags
	}

	text = urlPattern.ReplaceAllString(text, " ")
	text = handlePattern.ReplaceAllString(text, " ")

	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	kept := tokens[:0]
	for _, token := range tokens {
		if utf8.RuneCountInString(token) < minTermLength {
			continue
		}
		if _, stop := e.stopwords[token]; stop {
			continue
		}
		kept = append(kept, token)
	}
	return kept
}

var defaultStopwords = toSet(
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "is", "are",
	"about", "above", "after", "again", "against", "also", "been", "before", "being",
	"below", "between", "both", "could", "does", "doing", "down", "during", "each",
	"even", "ever", "every", "from", "further", "have", "having", "here", "hers",
	"herself", "himself", "into", "itself", "just", "like", "more", "most", "much",
	"myself", "only", "other", "ours", "ourselves", "over", "same", "should", "some",
	"such", "than", "that", "their", "theirs", "them", "themselves", "then", "there",
	"these", "they", "this", "those", "through", "under", "until", "very", "want",
	"was", "were", "what", "when", "where", "which", "while", "whom", "will", "with",
	"would", "your", "yours", "yourself", "yourselves", "because", "cannot", "didn",
	"doesn", "don", "hadn", "hasn", "haven", "isn", "shouldn", "wasn", "weren",
	"won", "wouldn", "really", "still", "going", "gonna", "thing", "things", "make",
	"made", "know", "think", "today", "back", "well", "many", "come", "came", "take",
	"http", "https", "amp",
)

// isWordRune keeps combining marks so scripts with vowel signs stay whole
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r)
}

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
