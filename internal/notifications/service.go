package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/azure/ad-insights-bot/internal/config"
	"github.com/azure/ad-insights-bot/internal/models"
)

// Service handles sending notifications via various channels
type Service struct {
	config   *config.Config
	client   *resty.Client
	telegram TelegramSender
}

// Ensure Service implements NotificationInterface
var _ NotificationInterface = (*Service)(nil)

var titleCaser = cases.Title(language.English)

// NewService creates a new notification service. telegram may be nil when
// the Telegram channel is not configured.
func NewService(cfg *config.Config, telegram TelegramSender) *Service {
	return &Service{
		config:   cfg,
		client:   resty.New().SetTimeout(30 * time.Second),
		telegram: telegram,
	}
}

// SendReport sends a report via configured notification channels
func (s *Service) SendReport(report *models.Report) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsReport(report)); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent report to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent report via email")
		}
	}

	if s.telegram != nil {
		if err := s.telegram.SendHTML(s.config.TelegramChatID, FormatTelegramReport(report)); err != nil {
			logrus.Errorf("Failed to send Telegram notification: %v", err)
			errors = append(errors, fmt.Sprintf("Telegram: %v", err))
		} else {
			logrus.Info("Successfully sent report to Telegram")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

// SendAlert pushes an urgent alert to the instant channels. Email is
// reserved for reports.
func (s *Service) SendAlert(alert *models.Alert) error {
	var errors []string
	sent := false

	if s.config.TeamsWebhookURL != "" {
		if err := s.postToTeams(s.buildTeamsAlert(alert)); err != nil {
			logrus.Errorf("Failed to send Teams alert: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			sent = true
		}
	}

	if s.telegram != nil {
		if err := s.telegram.SendHTML(s.config.TelegramChatID, FormatTelegramAlert(alert)); err != nil {
			logrus.Errorf("Failed to send Telegram alert: %v", err)
			errors = append(errors, fmt.Sprintf("Telegram: %v", err))
		} else {
			sent = true
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("alert errors: %s", strings.Join(errors, "; "))
	}

	if !sent {
		logrus.Warnf("No instant channel configured, alert dropped: %s - %s", alert.Type, alert.Title)
		return nil
	}

	logrus.Infof("Sent %s alert: %s", alert.Type, alert.Title)
	return nil
}

func truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
