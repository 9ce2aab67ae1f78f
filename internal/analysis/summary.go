package analysis

import (
	"github.com/azure/ad-insights-bot/internal/models"
)

const unknownSource = "unknown"

// Summarize aggregates category counts, average sentiment overall and per
// source, and engagement totals
func Summarize(items []models.ScoredItem) models.BatchSummary {
	summary := models.BatchSummary{
		TotalItems: len(items),
		CategoryCounts: map[models.SentimentCategory]int{
			models.SentimentPositive: 0,
			models.SentimentNeutral:  0,
			models.SentimentNegative: 0,
		},
		SourceSentiment: make(map[string]float64),
		SourceCounts:    make(map[string]int),
		Engagement:      make(map[string]int),
	}

	if len(items) == 0 {
		return summary
	}

	total := 0.0
	sourceTotals := make(map[string]float64)

	for _, item := range items {
		summary.CategoryCounts[item.SentimentCategory]++
		total += item.SentimentScore

		source := item.Source
		if source == "" {
			source = unknownSource
		}
		summary.SourceCounts[source]++
		sourceTotals[source] += item.SentimentScore

		for name, value := range item.Engagement {
			summary.Engagement[name] += value
		}
	}

	summary.AverageSentiment = total / float64(len(items))
	for source, sum := range sourceTotals {
		summary.SourceSentiment[source] = sum / float64(summary.SourceCounts[source])
	}

	return summary
}
