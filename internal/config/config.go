package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/azure/ad-insights-bot/internal/models"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	ReportSchedule string // "hourly", "daily" or "weekly"
	TimeZone       string

	// Inbox configuration
	StorageBackend   string // "azure" or "local"
	StorageAccount   string
	StorageContainer string
	LocalInboxDir    string
	InboxPrefix      string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
	TelegramToken     string
	TelegramChatID    int64

	// Analysis tuning
	TrendingTopN    int
	SignalThreshold float64
	MaxPhrases      int
	ScoringWorkers  int
	TemplateSeed    int64

	// Advertiser profile
	ProfilePath string

	// Critical alerts
	EnableCriticalAlerts bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "daily"),
		TimeZone:       getEnv("TIMEZONE", "UTC"),

		StorageBackend:   getEnv("STORAGE_BACKEND", "azure"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "batches"),
		LocalInboxDir:    getEnv("LOCAL_INBOX_DIR", "./inbox"),
		InboxPrefix:      getEnv("INBOX_PREFIX", "inbox/"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		TelegramToken:     getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramChatID:    getInt64Env("TELEGRAM_CHAT_ID", 0),

		TrendingTopN:    getIntEnv("TRENDING_TOP_N", 5),
		SignalThreshold: getFloatEnv("SIGNAL_THRESHOLD", 0.2),
		MaxPhrases:      getIntEnv("MAX_PHRASES", 5),
		ScoringWorkers:  getIntEnv("SCORING_WORKERS", 4),
		TemplateSeed:    getInt64Env("TEMPLATE_SEED", 1),

		ProfilePath: getEnv("COMPANY_PROFILE", ""),

		EnableCriticalAlerts: getBoolEnv("ENABLE_CRITICAL_ALERTS", true),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.ReportSchedule {
	case "hourly", "daily", "weekly":
	default:
		return fmt.Errorf("REPORT_SCHEDULE must be 'hourly', 'daily' or 'weekly'")
	}

	switch c.StorageBackend {
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
		}
	case "local":
		if c.LocalInboxDir == "" {
			return fmt.Errorf("LOCAL_INBOX_DIR is required when STORAGE_BACKEND is 'local'")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be 'azure' or 'local'")
	}

	if c.TeamsWebhookURL == "" && c.NotificationEmail == "" && c.TelegramToken == "" {
		return fmt.Errorf("at least one notification method must be configured (TEAMS_WEBHOOK_URL, NOTIFICATION_EMAIL or TELEGRAM_BOT_TOKEN)")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}

	if c.SignalThreshold < 0 || c.SignalThreshold >= 1 {
		return fmt.Errorf("SIGNAL_THRESHOLD must be in [0, 1)")
	}

	return nil
}

// LoadProfile reads an advertiser profile from a YAML file. An empty path
// yields a nil profile.
func LoadProfile(path string) (*models.CompanyProfile, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read company profile: %w", err)
	}

	var profile models.CompanyProfile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse company profile: %w", err)
	}

	if strings.TrimSpace(profile.Name) == "" {
		return nil, fmt.Errorf("company profile %s has no name", path)
	}

	return &profile, nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
