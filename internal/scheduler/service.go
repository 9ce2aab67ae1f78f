package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/azure/ad-insights-bot/internal/config"
)

// InboxRunner processes whatever batches are waiting in the inbox
type InboxRunner interface {
	RunInbox() error
}

// Service handles scheduling of inbox runs
type Service struct {
	config *config.Config
	runner InboxRunner
	cron   *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, runner InboxRunner) *Service {
	location, err := time.LoadLocation(cfg.TimeZone)
	if err != nil || cfg.TimeZone == "" {
		location = time.UTC
	}

	return &Service{
		config: cfg,
		runner: runner,
		cron:   cron.New(cron.WithSeconds(), cron.WithLocation(location)),
	}
}

// Expression returns the cron expression for a report schedule
func Expression(schedule string) (string, error) {
	switch schedule {
	case "hourly":
		// Top of every hour
		return "0 0 * * * *", nil
	case "daily":
		// Daily at 9 AM
		return "0 0 9 * * *", nil
	case "weekly":
		// Monday at 9 AM
		return "0 0 9 * * MON", nil
	default:
		return "", fmt.Errorf("unknown report schedule %q", schedule)
	}
}

// Start begins the scheduled inbox runs
func (s *Service) Start() error {
	cronExpression, err := Expression(s.config.ReportSchedule)
	if err != nil {
		return err
	}

	if _, err := s.cron.AddFunc(cronExpression, s.run); err != nil {
		return fmt.Errorf("failed to schedule inbox run: %w", err)
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule", s.config.ReportSchedule)
	return nil
}

// Next reports when the next run fires; zero before Start
func (s *Service) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *Service) run() {
	logrus.Info("Starting scheduled inbox run")
	if err := s.runner.RunInbox(); err != nil {
		logrus.Errorf("Scheduled inbox run failed: %v", err)
	}
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Service) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
		logrus.Info("Scheduler stopped")
	}
}
