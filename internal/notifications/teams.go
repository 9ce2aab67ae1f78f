package notifications

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/azure/ad-insights-bot/internal/models"
)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type       string         `json:"@type"`
	Context    string         `json:"@context"`
	ThemeColor string         `json:"themeColor,omitempty"`
	Title      string         `json:"title"`
	Text       string         `json:"text"`
	Sections   []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

const (
	teamsColorInfo     = "0078D4"
	teamsColorCritical = "D13438"
)

func (s *Service) postToTeams(message *TeamsMessage) error {
	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsReport(report *models.Report) *TeamsMessage {
	summary := report.Summary

	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: teamsColorInfo,
		Title:      fmt.Sprintf("Ad Insights Report - %s", report.Batch),
		Text:       fmt.Sprintf("Analyzed %d items, average sentiment %.2f", summary.TotalItems, summary.AverageSentiment),
	}

	facts := []TeamsFact{
		{Name: "Total Items", Value: fmt.Sprintf("%d", summary.TotalItems)},
		{Name: "Generated", Value: report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")},
	}
	for _, category := range []models.SentimentCategory{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		facts = append(facts, TeamsFact{
			Name:  fmt.Sprintf("%s Items", titleCaser.String(string(category))),
			Value: fmt.Sprintf("%d", summary.CategoryCounts[category]),
		})
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if trending := trendingLine(report); trending != "" {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Trending",
			ActivityText:  trending,
			Markdown:      true,
		})
	}

	if len(report.AdIdeas) > 0 {
		var ideas []string
		if report.FeaturedAdIdea != nil {
			ideas = append(ideas, fmt.Sprintf("**Featured (%s):** %s", report.FeaturedAdIdea.Type, report.FeaturedAdIdea.Content))
		}
		for _, idea := range report.AdIdeas {
			ideas = append(ideas, fmt.Sprintf("- *%s* (%s): %s", idea.Type, idea.TargetEmotion, idea.Content))
		}
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Ad Ideas",
			ActivityText:  strings.Join(ideas, "\n\n"),
			Markdown:      true,
		})
	}

	if len(report.DamageControl) > 0 {
		var entries []string
		limit := 5
		if len(report.DamageControl) < limit {
			limit = len(report.DamageControl)
		}

		for i := 0; i < limit; i++ {
			dc := report.DamageControl[i]
			entries = append(entries, fmt.Sprintf("**%s** (%s): %s",
				issueList(dc.Issues), dc.Item.Source, truncate(dc.Item.Text, 140)))
		}

		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle:    "Damage Control",
			ActivitySubtitle: fmt.Sprintf("%d negative items need attention", len(report.DamageControl)),
			ActivityText:     strings.Join(entries, "\n\n"),
			Markdown:         true,
		})
	}

	return message
}

func (s *Service) buildTeamsAlert(alert *models.Alert) *TeamsMessage {
	message := &TeamsMessage{
		Type:       "MessageCard",
		Context:    "https://schema.org/extensions",
		ThemeColor: teamsColorCritical,
		Title:      alert.Title,
		Text:       alert.Message,
	}

	if alert.Item != nil {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle:    alert.Item.Source,
			ActivitySubtitle: alert.Item.URL,
			ActivityText:     truncate(alert.Item.Text, 300),
			Facts: []TeamsFact{
				{Name: "Sentiment", Value: fmt.Sprintf("%.2f", alert.Item.SentimentScore)},
				{Name: "Raised", Value: alert.CreatedAt.Format("2006-01-02 15:04:05 UTC")},
			},
			Markdown: true,
		})
	}

	if len(alert.Actions) > 0 {
		var actions []string
		for _, action := range alert.Actions {
			actions = append(actions, "- "+action)
		}
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Recommended Actions",
			ActivityText:  strings.Join(actions, "\n"),
			Markdown:      true,
		})
	}

	return message
}

func trendingLine(report *models.Report) string {
	var parts []string
	if len(report.TrendingHashtags) > 0 {
		parts = append(parts, "**Hashtags:** "+termList(report.TrendingHashtags, "#"))
	}
	if len(report.TrendingTerms) > 0 {
		parts = append(parts, "**Terms:** "+termList(report.TrendingTerms, ""))
	}
	return strings.Join(parts, "\n\n")
}

func termList(terms []models.TrendingTerm, prefix string) string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = fmt.Sprintf("%s%s (%d)", prefix, t.Term, t.Count)
	}
	return strings.Join(out, ", ")
}

func issueList(tags []models.IssueTag) string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = string(tag)
	}
	return strings.Join(out, ", ")
}
