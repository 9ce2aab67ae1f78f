package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/azure/ad-insights-bot/internal/models"
)

// TerminalNotifier prints reports and alerts, optionally saving each report as JSON
type TerminalNotifier struct {
	out       io.Writer
	outputDir string
}

func (t *TerminalNotifier) SendReport(report *models.Report) error {
	w := t.out
	summary := report.Summary

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	fmt.Fprintln(w, "📊 AD INSIGHTS REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 70))
	fmt.Fprintf(w, "📦 Batch: %s\n", report.Batch)
	fmt.Fprintf(w, "🕒 Generated: %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "📈 Total Items: %s\n", humanize.Comma(int64(summary.TotalItems)))
	fmt.Fprintf(w, "💭 Average Sentiment: %.3f\n", summary.AverageSentiment)

	fmt.Fprintln(w, "\n💭 Sentiment Breakdown:")
	for _, category := range []models.SentimentCategory{models.SentimentPositive, models.SentimentNeutral, models.SentimentNegative} {
		emoji := "😐"
		switch category {
		case models.SentimentPositive:
			emoji = "😊"
		case models.SentimentNegative:
			emoji = "😞"
		}
		fmt.Fprintf(w, "   %s %-10s %d items\n", emoji, string(category)+":", summary.CategoryCounts[category])
	}

	if len(summary.SourceCounts) > 0 {
		fmt.Fprintln(w, "\n📍 Sources:")
		for _, source := range sortedKeys(summary.SourceCounts) {
			fmt.Fprintf(w, "   • %-15s %d items, avg %.2f\n", source+":", summary.SourceCounts[source], summary.SourceSentiment[source])
		}
	}

	if len(summary.Engagement) > 0 {
		fmt.Fprintln(w, "\n👍 Engagement:")
		for _, name := range sortedKeys(summary.Engagement) {
			fmt.Fprintf(w, "   • %-15s %s\n", name+":", humanize.Comma(int64(summary.Engagement[name])))
		}
	}

	printTerms(w, "🔥 Trending Hashtags:", report.TrendingHashtags, "#")
	printTerms(w, "🔤 Trending Terms:", report.TrendingTerms, "")

	fmt.Fprintln(w, "\n✅ Benefits:")
	for _, b := range report.Benefits {
		fmt.Fprintf(w, "   • %s\n", b)
	}
	fmt.Fprintln(w, "\n⚠️  Pain Points:")
	for _, p := range report.PainPoints {
		fmt.Fprintf(w, "   • %s\n", p)
	}

	if len(report.AdIdeas) > 0 {
		fmt.Fprintln(w, "\n💡 Ad Ideas:")
		for i, idea := range report.AdIdeas {
			fmt.Fprintf(w, "\n   %d. [%s] %s\n", i+1, idea.Type, idea.Content)
			fmt.Fprintf(w, "      🎯 Emotion: %s | Topic: %s\n", idea.TargetEmotion, idea.TrendingTopic)
		}
		if report.FeaturedAdIdea != nil {
			fmt.Fprintf(w, "\n   ⭐ Featured: %s\n", report.FeaturedAdIdea.Content)
		}
	}

	if len(report.DamageControl) > 0 {
		fmt.Fprintln(w, "\n🛡️  Damage Control:")
		for i, dc := range report.DamageControl {
			if i >= 5 {
				fmt.Fprintf(w, "   ... and %d more negative items\n", len(report.DamageControl)-5)
				break
			}
			issues := make([]string, len(dc.Issues))
			for j, tag := range dc.Issues {
				issues[j] = string(tag)
			}
			fmt.Fprintf(w, "\n   %d. %s\n", i+1, dc.Item.Text)
			fmt.Fprintf(w, "      📍 %s | Score: %.2f | Issues: %s\n", dc.Item.Source, dc.Item.SentimentScore, strings.Join(issues, ", "))
			for _, action := range dc.Actions {
				fmt.Fprintf(w, "      → %s\n", action)
			}
		}
	}

	fmt.Fprintln(w, "\n📝 Generation Prompt:")
	for _, line := range strings.Split(report.GenerationContext.Prompt, "\n") {
		fmt.Fprintf(w, "   %s\n", line)
	}

	if t.outputDir != "" {
		if err := t.saveReportToFile(report); err != nil {
			fmt.Fprintf(w, "\n⚠️  Warning: Could not save to file: %v\n", err)
		}
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 70))
	return nil
}

func (t *TerminalNotifier) SendAlert(alert *models.Alert) error {
	fmt.Fprintln(t.out, "\n🚨 ALERT")
	fmt.Fprintf(t.out, "Type: %s\n", alert.Type)
	fmt.Fprintf(t.out, "Title: %s\n", alert.Title)
	fmt.Fprintf(t.out, "Message: %s\n", alert.Message)
	return nil
}

func (t *TerminalNotifier) saveReportToFile(report *models.Report) error {
	if err := os.MkdirAll(t.outputDir, 0755); err != nil {
		return err
	}

	timestamp := report.GeneratedAt.Format("2006-01-02_15-04-05")
	filename := filepath.Join(t.outputDir, fmt.Sprintf("ad_insights_report_%s.json", timestamp))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	fmt.Fprintf(t.out, "\n💾 Report saved to: %s\n", filename)
	return nil
}

func printTerms(w io.Writer, heading string, terms []models.TrendingTerm, prefix string) {
	if len(terms) == 0 {
		return
	}
	fmt.Fprintln(w, "\n"+heading)
	for _, term := range terms {
		fmt.Fprintf(w, "   • %s%-20s %d\n", prefix, term.Term, term.Count)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
