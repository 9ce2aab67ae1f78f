package insights

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/azure/ad-insights-bot/internal/analysis"
	"github.com/azure/ad-insights-bot/internal/config"
	"github.com/azure/ad-insights-bot/internal/models"
	"github.com/azure/ad-insights-bot/internal/notifications"
	"github.com/azure/ad-insights-bot/internal/storage"
)

const batchSuffix = ".json"

// Service turns inbox batches into reports and alerts
type Service struct {
	config              *config.Config
	storage             storage.BatchStore
	notificationService notifications.NotificationInterface
	pipeline            *analysis.Pipeline
	picker              analysis.TemplatePicker
	processed           map[string]bool
	metrics             *Metrics
	mu                  sync.RWMutex
	runMu               sync.Mutex
}

// Metrics holds run metrics accumulated since start
type Metrics struct {
	BatchesProcessed   int            `json:"batches_processed"`
	ItemsAnalyzed      int            `json:"items_analyzed"`
	AlertsSent         int            `json:"alerts_sent"`
	LastRun            time.Time      `json:"last_run"`
	LastRunDuration    string         `json:"last_run_duration"`
	SourceMetrics      map[string]int `json:"source_metrics"`
	SentimentBreakdown map[string]int `json:"sentiment_breakdown"`
	TopSources         []string       `json:"top_sources"`
	ErrorCount         int            `json:"error_count"`
}

// PipelineOptions maps configuration onto analysis options
func PipelineOptions(cfg *config.Config, profile *models.CompanyProfile) []analysis.Option {
	return []analysis.Option{
		analysis.WithTopN(cfg.TrendingTopN),
		analysis.WithSignalThreshold(cfg.SignalThreshold),
		analysis.WithMaxPhrases(cfg.MaxPhrases),
		analysis.WithWorkers(cfg.ScoringWorkers),
		analysis.WithProfile(profile),
	}
}

// NewService creates a new insights service
func NewService(cfg *config.Config, store storage.BatchStore, notificationService notifications.NotificationInterface, pipeline *analysis.Pipeline) *Service {
	return &Service{
		config:              cfg,
		storage:             store,
		notificationService: notificationService,
		pipeline:            pipeline,
		picker:              analysis.NewSeededPicker(cfg.TemplateSeed),
		processed:           make(map[string]bool),
		metrics: &Metrics{
			SourceMetrics:      make(map[string]int),
			SentimentBreakdown: make(map[string]int),
			TopSources:         []string{},
		},
	}
}

// Analyze runs the pipeline over one batch and builds its report. Nothing is
// sent and no metrics are recorded.
func (s *Service) Analyze(name string, items []models.TextItem) (*models.Report, error) {
	result, err := s.pipeline.Run(items)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze batch %s: %w", name, err)
	}
	return s.buildReport(name, result), nil
}

// Process analyzes a batch, delivers the report and any critical alerts, and
// records metrics
func (s *Service) Process(name string, items []models.TextItem) (*models.Report, error) {
	report, err := s.Analyze(name, items)
	if err != nil {
		return nil, err
	}

	var errors []string

	if err := s.notificationService.SendReport(report); err != nil {
		errors = append(errors, fmt.Sprintf("report: %v", err))
	}

	alertsSent := 0
	for _, alert := range s.criticalAlerts(report) {
		if err := s.notificationService.SendAlert(alert); err != nil {
			errors = append(errors, fmt.Sprintf("alert %s: %v", alert.ID, err))
			continue
		}
		alertsSent++
	}

	s.recordBatch(report, alertsSent)

	if len(errors) > 0 {
		return report, fmt.Errorf("delivery errors for batch %s: %s", name, strings.Join(errors, "; "))
	}

	logrus.Infof("Processed batch %s: %d items, %d ad ideas, %d damage control cases, %d alerts",
		name, report.Summary.TotalItems, len(report.AdIdeas), len(report.DamageControl), alertsSent)
	return report, nil
}

// RunInbox processes every batch under the inbox prefix that has not been
// seen yet. A failing batch is logged and counted without stopping the run.
func (s *Service) RunInbox() error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	logrus.Info("Starting inbox run")

	names, err := s.storage.List(s.config.InboxPrefix)
	if err != nil {
		s.recordRun(time.Since(start), 1)
		return fmt.Errorf("failed to list inbox: %w", err)
	}

	pending := 0
	failed := 0
	for _, name := range names {
		if !strings.HasSuffix(name, batchSuffix) || s.isProcessed(name) {
			continue
		}
		pending++

		if err := s.processBatch(name); err != nil {
			logrus.Errorf("Batch %s failed: %v", name, err)
			failed++
		}
	}

	s.recordRun(time.Since(start), failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d batches failed", failed, pending)
	}

	logrus.Infof("Inbox run completed in %v (%d batches)", time.Since(start), pending)
	return nil
}

func (s *Service) processBatch(name string) error {
	data, err := s.storage.Retrieve(name)
	if err != nil {
		// retried on the next run
		return err
	}

	items, err := DecodeBatch(data)
	if err != nil {
		s.markProcessed(name)
		return err
	}

	// invalid batches and partial deliveries are not retried
	_, err = s.Process(name, items)
	s.markProcessed(name)
	return err
}

// DecodeBatch accepts either a bare JSON array of items or an object with an
// "items" array
func DecodeBatch(data []byte) ([]models.TextItem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty batch document", models.ErrInvalidItem)
	}

	if trimmed[0] == '[' {
		var items []models.TextItem
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("failed to decode batch: %w", err)
		}
		return items, nil
	}

	var envelope struct {
		Items []models.TextItem `json:"items"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode batch: %w", err)
	}
	if envelope.Items == nil {
		return []models.TextItem{}, nil
	}
	return envelope.Items, nil
}

func (s *Service) buildReport(name string, result *analysis.Result) *models.Report {
	return &models.Report{
		ID:                uuid.NewString(),
		Batch:             name,
		GeneratedAt:       time.Now().UTC(),
		Summary:           result.Summary,
		Items:             result.Items,
		TrendingTerms:     result.TrendingTerms,
		TrendingHashtags:  result.TrendingHashtags,
		Benefits:          result.Benefits,
		PainPoints:        result.PainPoints,
		AdIdeas:           result.AdIdeas,
		FeaturedAdIdea:    analysis.Feature(result.AdIdeas, s.picker),
		DamageControl:     result.DamageControl,
		GenerationContext: result.GenerationContext,
	}
}

// criticalAlerts raises one alert per damage control case tagged critical
func (s *Service) criticalAlerts(report *models.Report) []*models.Alert {
	if !s.config.EnableCriticalAlerts {
		return nil
	}

	var alerts []*models.Alert
	for i := range report.DamageControl {
		dc := &report.DamageControl[i]
		if !dc.HasIssue(models.IssueCriticalIssues) {
			continue
		}

		source := dc.Item.Source
		if source == "" {
			source = "unknown source"
		}

		alerts = append(alerts, &models.Alert{
			ID:        uuid.NewString(),
			Type:      "critical",
			Title:     fmt.Sprintf("Critical issue detected on %s", source),
			Message:   fmt.Sprintf("Item %s in batch %s needs an immediate response", dc.Item.ID, report.Batch),
			Item:      &dc.Item,
			Actions:   dc.Actions,
			CreatedAt: time.Now().UTC(),
		})
	}
	return alerts
}

func (s *Service) isProcessed(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.processed[name]
}

func (s *Service) markProcessed(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed[name] = true
}

func (s *Service) recordBatch(report *models.Report, alertsSent int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.BatchesProcessed++
	s.metrics.ItemsAnalyzed += report.Summary.TotalItems
	s.metrics.AlertsSent += alertsSent

	for source, count := range report.Summary.SourceCounts {
		s.metrics.SourceMetrics[source] += count
	}
	for category, count := range report.Summary.CategoryCounts {
		s.metrics.SentimentBreakdown[string(category)] += count
	}
	s.metrics.TopSources = getTopSources(s.metrics.SourceMetrics)
}

func (s *Service) recordRun(duration time.Duration, errorCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.LastRun = time.Now()
	s.metrics.LastRunDuration = duration.String()
	s.metrics.ErrorCount += errorCount
}

func getTopSources(sourceCount map[string]int) []string {
	type sourceScore struct {
		source string
		count  int
	}

	scores := make([]sourceScore, 0, len(sourceCount))
	for source, count := range sourceCount {
		scores = append(scores, sourceScore{source, count})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].count != scores[j].count {
			return scores[i].count > scores[j].count
		}
		return scores[i].source < scores[j].source
	})

	topSources := []string{}
	for i, score := range scores {
		if i >= 5 { // Top 5 sources
			break
		}
		topSources = append(topSources, fmt.Sprintf("%s (%d)", score.source, score.count))
	}

	return topSources
}

// GetMetrics returns current metrics as JSON
func (s *Service) GetMetrics() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.metrics, "", "  ")
	return string(data)
}
