package analysis

import (
	"github.com/azure/ad-insights-bot/internal/models"
)

// damageControlActions is the static catalogue of recommended responses
var damageControlActions = map[models.IssueTag][]string{
	models.IssueToxicity: {
		"Prepare a professional response addressing concerns",
		"Create positive content to counter negative narratives",
		"Engage with credible industry experts",
	},
	models.IssueMisinformation: {
		"Publish fact-based content with verified sources",
		"Create an educational campaign",
		"Partner with trusted authorities in the field",
	},
	models.IssueCriticalIssues: {
		"Develop a crisis communication plan",
		"Prepare detailed FAQ and response documents",
		"Monitor related news and social media coverage",
	},
	models.IssueGeneralNegative: {
		"Create content addressing common concerns",
		"Highlight positive aspects and improvements",
		"Develop proactive communication strategy",
	},
}

// Advisor maps issue tags to recommended damage-control actions
type Advisor struct{}

// NewAdvisor creates an advisor backed by the static action table
func NewAdvisor() *Advisor {
	return &Advisor{}
}

// Advise concatenates the actions of every tag present, in canonical tag
// order regardless of the order tags were given in. Unknown and repeated
// tags are ignored.
func (a *Advisor) Advise(tags []models.IssueTag) []string {
	present := make(map[models.IssueTag]bool, len(tags))
	for _, tag := range tags {
		present[tag] = true
	}

	actions := make([]string, 0, len(present)*3)
	for _, tag := range models.IssueTagOrder {
		if present[tag] {
			actions = append(actions, damageControlActions[tag]...)
		}
	}
	return actions
}
