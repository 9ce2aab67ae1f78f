package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/azure/ad-insights-bot/internal/models"
)

const emailTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Ad Insights Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #0078d4; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        .idea { border-left: 4px solid #0078d4; padding: 10px; margin: 10px 0; background-color: #fafafa; }
        .idea-type { font-weight: bold; margin-bottom: 5px; }
        .meta { color: #666; font-size: 0.9em; }
        .negative { border-left: 4px solid #d13438; padding: 10px; margin: 10px 0; background-color: #fafafa; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Ad Insights Report</h1>
        <p>Batch {{.Batch}} analyzed on {{.GeneratedAt.Format "January 2, 2006 at 3:04 PM UTC"}}</p>
    </div>

    <div class="summary">
        <h2>Summary</h2>
        <p><strong>Total Items:</strong> {{.Summary.TotalItems}}</p>
        <p><strong>Average Sentiment:</strong> {{printf "%.2f" .Summary.AverageSentiment}}</p>
        {{range $category, $count := .Summary.CategoryCounts}}
            <p><strong>{{$category | title}} Items:</strong> {{$count}}</p>
        {{end}}
        {{if .TrendingHashtags}}
            <p><strong>Trending Hashtags:</strong>{{range .TrendingHashtags}} #{{.Term}} ({{.Count}}){{end}}</p>
        {{end}}
        {{if .TrendingTerms}}
            <p><strong>Trending Terms:</strong>{{range .TrendingTerms}} {{.Term}} ({{.Count}}){{end}}</p>
        {{end}}
    </div>

    {{if .AdIdeas}}
    <h2>Ad Ideas</h2>
    {{range .AdIdeas}}
        <div class="idea">
            <div class="idea-type">{{.Type}}</div>
            <p>{{.Content}}</p>
            <div class="meta">Emotion: {{.TargetEmotion}} | Topic: {{.TrendingTopic}} | Signal: {{.SupportingSignal | truncate 120}}</div>
        </div>
    {{end}}
    {{end}}

    {{if .DamageControl}}
    <h2>Damage Control</h2>
    {{range $index, $case := .DamageControl}}
        {{if lt $index 10}}
        <div class="negative">
            <div class="meta">{{$case.Item.Source}} | Score: {{printf "%.2f" $case.Item.SentimentScore}} | Issues: {{range $case.Issues}}{{.}} {{end}}</div>
            <p>{{$case.Item.Text | truncate 200}}</p>
            <ul>
            {{range $case.Actions}}<li>{{.}}</li>{{end}}
            </ul>
        </div>
        {{end}}
    {{end}}
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the Ad Insights Bot.</small></p>
</body>
</html>
`

func (s *Service) sendEmail(report *models.Report) error {
	subject := fmt.Sprintf("Ad Insights Report - %s (%d items)", report.Batch, report.Summary.TotalItems)

	htmlBody, err := buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	textBody := buildEmailText(report)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func buildEmailHTML(report *models.Report) (string, error) {
	t := template.New("email").Funcs(template.FuncMap{
		"title": func(c models.SentimentCategory) string {
			return titleCaser.String(string(c))
		},
		"truncate": func(length int, s string) string {
			return truncate(s, length)
		},
	})

	t, err := t.Parse(emailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func buildEmailText(report *models.Report) string {
	var text strings.Builder

	text.WriteString(fmt.Sprintf("Ad Insights Report - %s\n", report.Batch))
	text.WriteString(fmt.Sprintf("Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))

	text.WriteString("SUMMARY\n")
	text.WriteString("=======\n")
	text.WriteString(fmt.Sprintf("Total Items: %d\n", report.Summary.TotalItems))
	text.WriteString(fmt.Sprintf("Average Sentiment: %.2f\n", report.Summary.AverageSentiment))
	for _, category := range []models.SentimentCategory{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		text.WriteString(fmt.Sprintf("%s Items: %d\n", titleCaser.String(string(category)), report.Summary.CategoryCounts[category]))
	}

	if len(report.TrendingHashtags) > 0 {
		text.WriteString(fmt.Sprintf("Trending Hashtags: %s\n", termList(report.TrendingHashtags, "#")))
	}
	if len(report.TrendingTerms) > 0 {
		text.WriteString(fmt.Sprintf("Trending Terms: %s\n", termList(report.TrendingTerms, "")))
	}

	if len(report.AdIdeas) > 0 {
		text.WriteString("\nAD IDEAS\n")
		text.WriteString("========\n")
		for i, idea := range report.AdIdeas {
			text.WriteString(fmt.Sprintf("\n%d. [%s] %s\n", i+1, idea.Type, idea.Content))
			text.WriteString(fmt.Sprintf("   Emotion: %s | Topic: %s\n", idea.TargetEmotion, idea.TrendingTopic))
		}
	}

	if len(report.DamageControl) > 0 {
		text.WriteString("\nDAMAGE CONTROL\n")
		text.WriteString("==============\n")

		limit := 10
		if len(report.DamageControl) < limit {
			limit = len(report.DamageControl)
		}

		for i := 0; i < limit; i++ {
			dc := report.DamageControl[i]
			text.WriteString(fmt.Sprintf("\n%d. %s\n", i+1, truncate(dc.Item.Text, 200)))
			text.WriteString(fmt.Sprintf("   Source: %s | Score: %.2f | Issues: %s\n",
				dc.Item.Source, dc.Item.SentimentScore, issueList(dc.Issues)))
			for _, action := range dc.Actions {
				text.WriteString(fmt.Sprintf("   - %s\n", action))
			}
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the Ad Insights Bot.\n")

	return text.String()
}
