package analysis

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"sync"

	"github.com/azure/ad-insights-bot/internal/models"
)

// Template placeholders
const (
	placeholderPainPoint     = "{pain_point}"
	placeholderBenefit       = "{benefit}"
	placeholderTrendingTopic = "{trending_topic}"
)

// Fallbacks for an empty trending list
const (
	FallbackTrendingContent = "this trending topic"
	FallbackTrendingTopic   = "general"
)

// AdTemplate is one parametrized ad-copy skeleton
type AdTemplate struct {
	Type          string
	Text          string
	TargetEmotion string
	// Signal names which bound phrase is reported as the supporting signal
	Signal models.SignalKind
}

// DefaultCatalogue is the ordered template catalogue
var DefaultCatalogue = []AdTemplate{
	{
		Type:          "problem_solution",
		Text:          "Tired of {pain_point}? Discover how {benefit} can transform your experience!",
		TargetEmotion: "problem-aware",
		Signal:        models.SignalPainPoint,
	},
	{
		Type:          "benefit_focused",
		Text:          "Experience {benefit} like never before! Join thousands of satisfied customers.",
		TargetEmotion: "positive",
		Signal:        models.SignalBenefit,
	},
	{
		Type:          "trending",
		Text:          "Join the conversation about {trending_topic}! See why everyone's talking about {benefit}.",
		TargetEmotion: "positive",
		Signal:        models.SignalBenefit,
	},
	{
		Type:          "positive_message",
		Text:          "Why people love us: {benefit}",
		TargetEmotion: "positive",
		Signal:        models.SignalBenefit,
	},
	{
		Type:          "pain_point_response",
		Text:          "We hear you! That's why we provide better solutions for {pain_point}.",
		TargetEmotion: "solution-oriented",
		Signal:        models.SignalPainPoint,
	},
}

var placeholderPattern = regexp.MustCompile(`\{[a-z_]+\}`)

// Synthesizer binds extracted signals into the template catalogue
type Synthesizer struct {
	catalogue []AdTemplate
}

// NewSynthesizer creates a synthesizer over the default catalogue
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{catalogue: DefaultCatalogue}
}

// NewSynthesizerWith creates a synthesizer over a custom catalogue, rejecting
// templates that use unknown placeholders
func NewSynthesizerWith(catalogue []AdTemplate) (*Synthesizer, error) {
	if len(catalogue) == 0 {
		return nil, fmt.Errorf("template catalogue is empty")
	}
	for _, tmpl := range catalogue {
		for _, ph := range placeholderPattern.FindAllString(tmpl.Text, -1) {
			switch ph {
			case placeholderPainPoint, placeholderBenefit, placeholderTrendingTopic:
			default:
				return nil, fmt.Errorf("template %s: unknown placeholder %s", tmpl.Type, ph)
			}
		}
	}
	return &Synthesizer{catalogue: catalogue}, nil
}

// Catalogue returns the templates in order
func (s *Synthesizer) Catalogue() []AdTemplate {
	return s.catalogue
}

// Synthesize produces one ad idea per template, in catalogue order
func (s *Synthesizer) Synthesize(trending []models.TrendingTerm, benefits, painPoints []string) []models.AdIdea {
	benefit := firstOr(benefits, FallbackBenefit)
	painPoint := firstOr(painPoints, FallbackPainPoint)

	topicContent, topic := FallbackTrendingContent, FallbackTrendingTopic
	if len(trending) > 0 {
		topicContent, topic = trending[0].Term, trending[0].Term
	}

	replacer := strings.NewReplacer(
		placeholderPainPoint, painPoint,
		placeholderBenefit, benefit,
		placeholderTrendingTopic, topicContent,
	)

	ideas := make([]models.AdIdea, 0, len(s.catalogue))
	for _, tmpl := range s.catalogue {
		signal := benefit
		if tmpl.Signal == models.SignalPainPoint {
			signal = painPoint
		}
		ideas = append(ideas, models.AdIdea{
			Type:             tmpl.Type,
			Content:          replacer.Replace(tmpl.Text),
			TargetEmotion:    tmpl.TargetEmotion,
			TrendingTopic:    topic,
			SupportingSignal: signal,
		})
	}
	return ideas
}

func firstOr(values []string, fallback string) string {
	if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
		return fallback
	}
	return values[0]
}

// TemplatePicker chooses an index in [0, n)
type TemplatePicker interface {
	Pick(n int) int
}

// SeededPicker is a reproducible random picker, safe for concurrent use
type SeededPicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededPicker creates a picker whose sequence is fixed by seed
func NewSeededPicker(seed int64) *SeededPicker {
	return &SeededPicker{rng: rand.New(rand.NewSource(seed))}
}

// Pick returns a pseudo-random index in [0, n), or 0 when n <= 1
func (p *SeededPicker) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(n)
}

// Feature selects one idea with the given picker; nil when there are none
func Feature(ideas []models.AdIdea, picker TemplatePicker) *models.AdIdea {
	if len(ideas) == 0 || picker == nil {
		return nil
	}
	idx := picker.Pick(len(ideas))
	if idx < 0 || idx >= len(ideas) {
		idx = 0
	}
	idea := ideas[idx]
	return &idea
}
