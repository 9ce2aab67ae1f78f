package analysis

import (
	"regexp"
	"strings"
)

// keywordMatcher tests text for whole-word, case-insensitive keyword hits.
// A trailing plural "s" is accepted so "issues" matches "issue".
type keywordMatcher struct {
	pattern *regexp.Regexp
}

func newKeywordMatcher(keywords ...string) keywordMatcher {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(strings.ToLower(kw))
	}
	expr := `(?i)\b(?:` + strings.Join(escaped, "|") + `)s?\b`
	return keywordMatcher{pattern: regexp.MustCompile(expr)}
}

func (m keywordMatcher) matches(text string) bool {
	return m.pattern.MatchString(text)
}

// a period only ends a sentence before whitespace or the end of text, so
// "2.0" and "example.com" stay whole
var sentencePattern = regexp.MustCompile(`(?:[^.!?\n]|\.[^\s.!?])+[.!?]*`)

// splitSentences breaks text on terminal punctuation and newlines
func splitSentences(text string) []string {
	raw := sentencePattern.FindAllString(text, -1)
	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}
