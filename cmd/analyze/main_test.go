package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azure/ad-insights-bot/internal/analysis"
	"github.com/azure/ad-insights-bot/internal/models"
)

func TestTerminalNotifier_SendReport(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	notifier := &TerminalNotifier{out: &out, outputDir: dir}

	items := []models.TextItem{
		{ID: "1", Text: "I love this amazing product #launch", Source: "twitter", Engagement: map[string]int{"like_count": 1200}},
		{ID: "2", Text: "This is terrible and awful", Source: "news"},
	}
	result, err := analysis.NewPipeline().Run(items)
	require.NoError(t, err)

	report := &models.Report{
		ID:                "r1",
		Batch:             "sample.json",
		GeneratedAt:       time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC),
		Summary:           result.Summary,
		Items:             result.Items,
		TrendingHashtags:  result.TrendingHashtags,
		TrendingTerms:     result.TrendingTerms,
		Benefits:          result.Benefits,
		PainPoints:        result.PainPoints,
		AdIdeas:           result.AdIdeas,
		DamageControl:     result.DamageControl,
		GenerationContext: result.GenerationContext,
	}

	require.NoError(t, notifier.SendReport(report))

	printed := out.String()
	assert.Contains(t, printed, "📦 Batch: sample.json")
	assert.Contains(t, printed, "like_count:     1,200")
	assert.Contains(t, printed, "#launch")
	assert.Contains(t, printed, "[problem_solution]")
	assert.Contains(t, printed, "Issues: toxicity")
	assert.Contains(t, printed, "Generate creative ad copy")

	saved := filepath.Join(dir, "ad_insights_report_2024-05-01_08-30-00.json")
	data, err := os.ReadFile(saved)
	require.NoError(t, err)

	var decoded models.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "sample.json", decoded.Batch)
	assert.Len(t, decoded.AdIdeas, len(report.AdIdeas))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "batch.json")
	require.NoError(t, os.WriteFile(input, []byte(`[{"id":"1","text":"Urgent crisis, total failure"}]`), 0o644))

	assert.NoError(t, run(input, "", "", 5, 0.2, 1))
	assert.Error(t, run(filepath.Join(dir, "missing.json"), "", "", 5, 0.2, 1))

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":"","text":"x"}]`), 0o644))
	assert.Error(t, run(bad, "", "", 5, 0.2, 1))
}
