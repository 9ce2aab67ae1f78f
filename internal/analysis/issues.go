package analysis

import (
	"github.com/azure/ad-insights-bot/internal/models"
)

// IssueClassifier tags negative text with categories from a fixed taxonomy
type IssueClassifier struct {
	taxonomy []issueRule
}

type issueRule struct {
	tag     models.IssueTag
	matcher keywordMatcher
}

// NewIssueClassifier creates a classifier with the built-in taxonomy, in
// canonical tag order
func NewIssueClassifier() *IssueClassifier {
	return &IssueClassifier{
		taxonomy: []issueRule{
			{tag: models.IssueToxicity, matcher: newKeywordMatcher("hate", "hated", "hateful", "awful", "terrible", "worst", "stupid")},
			{tag: models.IssueMisinformation, matcher: newKeywordMatcher("fake", "hoax", "conspiracy", "false")},
			{tag: models.IssueCriticalIssues, matcher: newKeywordMatcher("urgent", "urgently", "emergency", "emergencies", "crisis", "crises", "failure", "failed")},
		},
	}
}

// Classify returns every matching tag in canonical order, or
// general_negative when nothing matches. The result is never empty.
// Keywords match whole words with an optional plural "s"; other
// inflections only match when listed in the taxonomy.
func (c *IssueClassifier) Classify(text string) []models.IssueTag {
	var tags []models.IssueTag
	for _, rule := range c.taxonomy {
		if rule.matcher.matches(text) {
			tags = append(tags, rule.tag)
		}
	}

	if len(tags) == 0 {
		return []models.IssueTag{models.IssueGeneralNegative}
	}
	return tags
}
