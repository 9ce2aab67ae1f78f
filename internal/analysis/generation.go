package analysis

import (
	"fmt"
	"strings"

	"github.com/azure/ad-insights-bot/internal/models"
)

// NewGenerationContext assembles the hand-off for an external copywriting
// model. Prompt is rendered from the other fields.
func NewGenerationContext(trending []string, averageSentiment float64, benefits, painPoints []string, profile *models.CompanyProfile) models.GenerationContext {
	gc := models.GenerationContext{
		TrendingTopics:   nonNil(trending),
		AverageSentiment: averageSentiment,
		Benefits:         nonNil(benefits),
		PainPoints:       nonNil(painPoints),
		Profile:          profile,
	}
	gc.Prompt = BuildPrompt(gc)
	return gc
}

// BuildPrompt renders the generation context as model instructions
func BuildPrompt(gc models.GenerationContext) string {
	var b strings.Builder

	b.WriteString("Generate creative ad copy based on the following context:\n")
	fmt.Fprintf(&b, "Trending Topics: %s\n", joinOr(gc.TrendingTopics, FallbackTrendingTopic))
	fmt.Fprintf(&b, "Sentiment: %.2f\n", gc.AverageSentiment)
	fmt.Fprintf(&b, "Key Benefits: %s\n", joinOr(gc.Benefits, FallbackBenefit))
	fmt.Fprintf(&b, "Pain Points: %s\n", joinOr(gc.PainPoints, FallbackPainPoint))

	if p := gc.Profile; p != nil {
		if p.Name != "" {
			fmt.Fprintf(&b, "Company: %s", p.Name)
			if p.Type != "" {
				fmt.Fprintf(&b, " (%s)", p.Type)
			}
			b.WriteString("\n")
		}
		if p.TargetAudience != "" {
			fmt.Fprintf(&b, "Target Audience: %s\n", p.TargetAudience)
		}
		if len(p.KeyPoints) > 0 {
			fmt.Fprintf(&b, "Key Selling Points: %s\n", strings.Join(p.KeyPoints, ", "))
		}
		if len(p.Platforms) > 0 {
			fmt.Fprintf(&b, "Platforms: %s\n", strings.Join(p.Platforms, ", "))
		}
	}

	b.WriteString("Generate 3 different ad variations that incorporate these insights.")
	return b.String()
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, "; ")
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
