package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AZURE_STORAGE_ACCOUNT", "insightsdev")
	t.Setenv("TEAMS_WEBHOOK_URL", "https://example.webhook.office.com/hook")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "daily", cfg.ReportSchedule)
	assert.Equal(t, "azure", cfg.StorageBackend)
	assert.Equal(t, "batches", cfg.StorageContainer)
	assert.Equal(t, 5, cfg.TrendingTopN)
	assert.Equal(t, 0.2, cfg.SignalThreshold)
	assert.Equal(t, 4, cfg.ScoringWorkers)
	assert.True(t, cfg.EnableCriticalAlerts)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOCAL_INBOX_DIR", "/tmp/inbox")
	t.Setenv("REPORT_SCHEDULE", "hourly")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200300")
	t.Setenv("TRENDING_TOP_N", "10")
	t.Setenv("SIGNAL_THRESHOLD", "0.35")
	t.Setenv("TEMPLATE_SEED", "99")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hourly", cfg.ReportSchedule)
	assert.Equal(t, "/tmp/inbox", cfg.LocalInboxDir)
	assert.Equal(t, int64(-100200300), cfg.TelegramChatID)
	assert.Equal(t, 10, cfg.TrendingTopN)
	assert.Equal(t, 0.35, cfg.SignalThreshold)
	assert.Equal(t, int64(99), cfg.TemplateSeed)
}

func TestConfig_validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			ReportSchedule:  "weekly",
			StorageBackend:  "local",
			LocalInboxDir:   "./inbox",
			TeamsWebhookURL: "https://example.com/hook",
			SignalThreshold: 0.2,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "bad schedule", mutate: func(c *Config) { c.ReportSchedule = "monthly" }, wantErr: "REPORT_SCHEDULE"},
		{name: "bad backend", mutate: func(c *Config) { c.StorageBackend = "s3" }, wantErr: "STORAGE_BACKEND"},
		{name: "azure without account", mutate: func(c *Config) { c.StorageBackend = "azure" }, wantErr: "AZURE_STORAGE_ACCOUNT"},
		{name: "no notifications", mutate: func(c *Config) { c.TeamsWebhookURL = "" }, wantErr: "notification method"},
		{name: "email without smtp", mutate: func(c *Config) { c.NotificationEmail = "team@example.com" }, wantErr: "SMTP"},
		{name: "telegram without chat", mutate: func(c *Config) { c.TelegramToken = "123:abc" }, wantErr: "TELEGRAM_CHAT_ID"},
		{name: "threshold out of range", mutate: func(c *Config) { c.SignalThreshold = 1.5 }, wantErr: "SIGNAL_THRESHOLD"},
		{name: "negative threshold", mutate: func(c *Config) { c.SignalThreshold = -0.1 }, wantErr: "SIGNAL_THRESHOLD"},
		{name: "zero threshold", mutate: func(c *Config) { c.SignalThreshold = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadProfile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid profile", func(t *testing.T) {
		path := filepath.Join(dir, "profile.yaml")
		content := `name: Acme
type: retail
target_audience: young professionals
key_points:
  - fast delivery
  - fair prices
platforms:
  - instagram
  - tiktok
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		profile, err := LoadProfile(path)
		require.NoError(t, err)
		assert.Equal(t, "Acme", profile.Name)
		assert.Equal(t, "young professionals", profile.TargetAudience)
		assert.Equal(t, []string{"fast delivery", "fair prices"}, profile.KeyPoints)
		assert.Equal(t, []string{"instagram", "tiktok"}, profile.Platforms)
	})

	t.Run("empty path", func(t *testing.T) {
		profile, err := LoadProfile("")
		assert.NoError(t, err)
		assert.Nil(t, profile)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfile(filepath.Join(dir, "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		path := filepath.Join(dir, "anon.yaml")
		require.NoError(t, os.WriteFile(path, []byte("type: retail\n"), 0o644))
		_, err := LoadProfile(path)
		assert.Error(t, err)
	})
}
