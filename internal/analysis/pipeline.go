package analysis

import (
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/azure/ad-insights-bot/internal/models"
)

// DefaultWorkers bounds the scoring fan-out
const DefaultWorkers = 4

// Pipeline runs the full insight pass over one batch. It holds no
// per-batch state and is safe for concurrent use.
type Pipeline struct {
	scorer      Scorer
	trending    *TrendingExtractor
	signals     *SignalExtractor
	classifier  *IssueClassifier
	advisor     *Advisor
	synthesizer *Synthesizer
	profile     *models.CompanyProfile

	topN       int
	threshold  float64
	maxPhrases int
	workers    int
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithScorer replaces the lexicon scorer
func WithScorer(scorer Scorer) Option {
	return func(p *Pipeline) { p.scorer = scorer }
}

// WithTopN sets how many trending terms and hashtags are kept
func WithTopN(n int) Option {
	return func(p *Pipeline) { p.topN = n }
}

// WithSignalThreshold sets the |score| an item needs to contribute phrases
func WithSignalThreshold(threshold float64) Option {
	return func(p *Pipeline) { p.threshold = threshold }
}

// WithMaxPhrases caps benefit and pain-point extraction
func WithMaxPhrases(n int) Option {
	return func(p *Pipeline) { p.maxPhrases = n }
}

// WithWorkers bounds concurrent scoring; 1 scores sequentially
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.workers = n }
}

// WithSynthesizer replaces the default template catalogue
func WithSynthesizer(s *Synthesizer) Option {
	return func(p *Pipeline) { p.synthesizer = s }
}

// WithProfile attaches the advertiser profile to the generation context
func WithProfile(profile *models.CompanyProfile) Option {
	return func(p *Pipeline) { p.profile = profile }
}

// NewPipeline creates a pipeline with the built-in components
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		scorer:      NewLexiconScorer(),
		trending:    NewTrendingExtractor(),
		classifier:  NewIssueClassifier(),
		advisor:     NewAdvisor(),
		synthesizer: NewSynthesizer(),
		topN:        DefaultTopN,
		threshold:   DefaultSignalThreshold,
		maxPhrases:  DefaultMaxPhrases,
		workers:     DefaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.signals = NewSignalExtractor(p.threshold, p.maxPhrases)
	return p
}

// Result is everything derived from one batch
type Result struct {
	Items             []models.ScoredItem        `json:"items"`
	Summary           models.BatchSummary        `json:"summary"`
	TrendingTerms     []models.TrendingTerm      `json:"trending_terms"`
	TrendingHashtags  []models.TrendingTerm      `json:"trending_hashtags"`
	BenefitPhrases    []models.ExtractedPhrase   `json:"benefit_phrases"`
	PainPointPhrases  []models.ExtractedPhrase   `json:"pain_point_phrases"`
	Benefits          []string                   `json:"benefits"`
	PainPoints        []string                   `json:"pain_points"`
	AdIdeas           []models.AdIdea            `json:"ad_ideas"`
	DamageControl     []models.DamageControlCase `json:"damage_control"`
	GenerationContext models.GenerationContext   `json:"generation_context"`
}

// Run validates, scores and analyzes the batch. The first invalid item
// aborts the run with an error wrapping models.ErrInvalidItem.
func (p *Pipeline) Run(batch []models.TextItem) (*Result, error) {
	for i, item := range batch {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
	}

	scored := p.score(batch)
	return p.analyze(scored), nil
}

// Analyze runs every stage after scoring on an already scored batch
func (p *Pipeline) Analyze(scored []models.ScoredItem) (*Result, error) {
	for i, item := range scored {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
	}
	return p.analyze(scored), nil
}

func (p *Pipeline) analyze(scored []models.ScoredItem) *Result {
	summary := Summarize(scored)

	if len(scored) == 0 {
		return &Result{
			Items:             []models.ScoredItem{},
			Summary:           summary,
			TrendingTerms:     []models.TrendingTerm{},
			TrendingHashtags:  []models.TrendingTerm{},
			BenefitPhrases:    []models.ExtractedPhrase{},
			PainPointPhrases:  []models.ExtractedPhrase{},
			Benefits:          []string{},
			PainPoints:        []string{},
			AdIdeas:           []models.AdIdea{},
			DamageControl:     []models.DamageControlCase{},
			GenerationContext: NewGenerationContext(nil, 0, nil, nil, p.profile),
		}
	}

	terms := p.trending.Extract(scored, TrendingOptions{TopN: p.topN, Mode: ModeWords})
	hashtags := p.trending.Extract(scored, TrendingOptions{TopN: p.topN, Mode: ModeHashtags})

	benefitPhrases := p.signals.Benefits(scored)
	painPhrases := p.signals.PainPoints(scored)
	benefits := phraseTexts(benefitPhrases, FallbackBenefit)
	painPoints := phraseTexts(painPhrases, FallbackPainPoint)

	// hashtags are what the audience chose to label; fall back to words
	topics := hashtags
	if len(topics) == 0 {
		topics = terms
	}

	ideas := p.synthesizer.Synthesize(topics, benefits, painPoints)

	topicNames := make([]string, len(topics))
	for i, t := range topics {
		topicNames[i] = t.Term
	}

	return &Result{
		Items:             scored,
		Summary:           summary,
		TrendingTerms:     terms,
		TrendingHashtags:  hashtags,
		BenefitPhrases:    benefitPhrases,
		PainPointPhrases:  painPhrases,
		Benefits:          benefits,
		PainPoints:        painPoints,
		AdIdeas:           ideas,
		DamageControl:     p.damageControl(scored),
		GenerationContext: NewGenerationContext(topicNames, summary.AverageSentiment, benefits, painPoints, p.profile),
	}
}

// DamageControlFor classifies one negative item and suggests actions
func (p *Pipeline) DamageControlFor(item models.ScoredItem) models.DamageControlCase {
	issues := p.classifier.Classify(item.Text)
	return models.DamageControlCase{
		Item:    item,
		Issues:  issues,
		Actions: p.advisor.Advise(issues),
	}
}

func (p *Pipeline) damageControl(scored []models.ScoredItem) []models.DamageControlCase {
	cases := make([]models.DamageControlCase, 0)
	for _, item := range scored {
		if item.SentimentCategory != models.SentimentNegative {
			continue
		}
		cases = append(cases, p.DamageControlFor(item))
	}
	return cases
}

// score fans out over a bounded group; results land by index so batch
// order is preserved
func (p *Pipeline) score(batch []models.TextItem) []models.ScoredItem {
	if p.workers <= 1 || len(batch) < 2 {
		return ScoreBatch(p.scorer, batch)
	}

	scored := make([]models.ScoredItem, len(batch))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range batch {
		i := i
		g.Go(func() error {
			scored[i] = ScoreItem(p.scorer, batch[i])
			return nil
		})
	}
	_ = g.Wait()

	return scored
}

// Timeline returns the timestamped items ordered oldest first
func (r *Result) Timeline() []models.ScoredItem {
	timeline := make([]models.ScoredItem, 0, len(r.Items))
	for _, item := range r.Items {
		if item.Timestamp != nil {
			timeline = append(timeline, item)
		}
	}
	slices.SortStableFunc(timeline, func(a, b models.ScoredItem) int {
		return a.Timestamp.Compare(*b.Timestamp)
	})
	return timeline
}

// ByCategory returns the items with the given sentiment category, in batch order
func (r *Result) ByCategory(category models.SentimentCategory) []models.ScoredItem {
	matched := make([]models.ScoredItem, 0)
	for _, item := range r.Items {
		if item.SentimentCategory == category {
			matched = append(matched, item)
		}
	}
	return matched
}
