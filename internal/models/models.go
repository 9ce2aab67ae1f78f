package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidItem is returned when a batch item violates the data contract
var ErrInvalidItem = errors.New("invalid item")

// TextItem represents one unit of analyzable content handed over by a fetcher
type TextItem struct {
	ID         string         `json:"id"`
	Text       string         `json:"text"`
	Source     string         `json:"source"`           // "twitter", "news", etc.
	Title      string         `json:"title,omitempty"`
	Author     string         `json:"author,omitempty"`
	URL        string         `json:"url,omitempty"`
	Timestamp  *time.Time     `json:"timestamp,omitempty"`
	Engagement map[string]int `json:"engagement,omitempty"` // like_count, retweet_count, ...
}

// Validate checks the fields every pipeline stage relies on
func (t TextItem) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidItem)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%w: item %s has empty text", ErrInvalidItem, t.ID)
	}
	return nil
}

// SentimentCategory is the coarse polarity label derived from a score
type SentimentCategory string

const (
	SentimentPositive SentimentCategory = "positive"
	SentimentNeutral  SentimentCategory = "neutral"
	SentimentNegative SentimentCategory = "negative"
)

// Thresholds separating the three sentiment categories
const (
	PositiveThreshold = 0.05
	NegativeThreshold = -0.05
)

// CategoryFor maps a compound score to its category
func CategoryFor(score float64) SentimentCategory {
	switch {
	case score >= PositiveThreshold:
		return SentimentPositive
	case score <= NegativeThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ScoredItem is a TextItem with its sentiment analysis attached
type ScoredItem struct {
	TextItem
	SentimentScore    float64           `json:"sentiment_score"`
	SentimentCategory SentimentCategory `json:"sentiment_category"`
}

// Validate rejects records whose analysis fields are missing or inconsistent
func (s ScoredItem) Validate() error {
	if err := s.TextItem.Validate(); err != nil {
		return err
	}
	if s.SentimentScore < -1 || s.SentimentScore > 1 {
		return fmt.Errorf("%w: item %s score %.4f out of range", ErrInvalidItem, s.ID, s.SentimentScore)
	}
	if s.SentimentCategory != CategoryFor(s.SentimentScore) {
		return fmt.Errorf("%w: item %s category %q does not match score %.4f", ErrInvalidItem, s.ID, s.SentimentCategory, s.SentimentScore)
	}
	return nil
}

// TrendingTerm is a ranked term or hashtag with its frequency in a batch
type TrendingTerm struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// SignalKind tags an extracted phrase with the cue family it matched
type SignalKind string

const (
	SignalBenefit   SignalKind = "benefit"
	SignalPainPoint SignalKind = "pain_point"
)

// ExtractedPhrase is a sentence pulled from an item's text
type ExtractedPhrase struct {
	Text   string     `json:"text"`
	Kind   SignalKind `json:"kind"`
	ItemID string     `json:"item_id"`
}

// AdIdea is one synthesized ad-copy candidate
type AdIdea struct {
	Type             string `json:"type"`
	Content          string `json:"content"`
	TargetEmotion    string `json:"target_emotion"`
	TrendingTopic    string `json:"trending_topic"`
	SupportingSignal string `json:"supporting_signal"`
}

// IssueTag categorizes what is wrong with a negative item
type IssueTag string

const (
	IssueToxicity        IssueTag = "toxicity"
	IssueMisinformation  IssueTag = "misinformation"
	IssueCriticalIssues  IssueTag = "critical_issues"
	IssueGeneralNegative IssueTag = "general_negative"
)

// IssueTagOrder is the canonical iteration order for issue tags
var IssueTagOrder = []IssueTag{
	IssueToxicity,
	IssueMisinformation,
	IssueCriticalIssues,
	IssueGeneralNegative,
}

// DamageControlCase pairs a negative item with its issues and suggested actions
type DamageControlCase struct {
	Item    ScoredItem `json:"item"`
	Issues  []IssueTag `json:"issues"`
	Actions []string   `json:"actions"`
}

// HasIssue reports whether the case was tagged with the given issue
func (d DamageControlCase) HasIssue(tag IssueTag) bool {
	for _, issue := range d.Issues {
		if issue == tag {
			return true
		}
	}
	return false
}

// BatchSummary holds aggregate statistics for one analyzed batch
type BatchSummary struct {
	TotalItems       int                       `json:"total_items"`
	CategoryCounts   map[SentimentCategory]int `json:"category_counts"`
	AverageSentiment float64                   `json:"average_sentiment"`
	SourceSentiment  map[string]float64        `json:"source_sentiment"`
	SourceCounts     map[string]int            `json:"source_counts"`
	Engagement       map[string]int            `json:"engagement"`
}

// CompanyProfile describes the advertiser the ad ideas are generated for
type CompanyProfile struct {
	Name           string   `json:"name" yaml:"name"`
	Type           string   `json:"type" yaml:"type"`
	TargetAudience string   `json:"target_audience" yaml:"target_audience"`
	KeyPoints      []string `json:"key_points" yaml:"key_points"`
	Platforms      []string `json:"platforms" yaml:"platforms"`
}

// GenerationContext is the structured hand-off for an external copywriting model
type GenerationContext struct {
	TrendingTopics   []string        `json:"trending_topics"`
	AverageSentiment float64         `json:"average_sentiment"`
	Benefits         []string        `json:"benefits"`
	PainPoints       []string        `json:"pain_points"`
	Profile          *CompanyProfile `json:"profile,omitempty"`
	Prompt           string          `json:"prompt"`
}

// Report represents the outcome of analyzing one batch
type Report struct {
	ID                string              `json:"id"`
	Batch             string              `json:"batch"`
	GeneratedAt       time.Time           `json:"generated_at"`
	Summary           BatchSummary        `json:"summary"`
	Items             []ScoredItem        `json:"items"`
	TrendingTerms     []TrendingTerm      `json:"trending_terms"`
	TrendingHashtags  []TrendingTerm      `json:"trending_hashtags"`
	Benefits          []string            `json:"benefits"`
	PainPoints        []string            `json:"pain_points"`
	AdIdeas           []AdIdea            `json:"ad_ideas"`
	FeaturedAdIdea    *AdIdea             `json:"featured_ad_idea,omitempty"`
	DamageControl     []DamageControlCase `json:"damage_control"`
	GenerationContext GenerationContext   `json:"generation_context"`
}

// Alert represents an urgent notification about a single item
type Alert struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"` // "critical", "urgent", "info"
	Title     string      `json:"title"`
	Message   string      `json:"message"`
	Item      *ScoredItem `json:"item,omitempty"`
	Actions   []string    `json:"actions,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
