package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/azure/ad-insights-bot/internal/config"
	"github.com/azure/ad-insights-bot/internal/models"
)

type fakeTelegram struct {
	mu       sync.Mutex
	chatIDs  []int64
	messages []string
	err      error
}

func (f *fakeTelegram) SendHTML(chatID int64, htmlText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.chatIDs = append(f.chatIDs, chatID)
	f.messages = append(f.messages, htmlText)
	return f.err
}

func teamsServer(t *testing.T, status int) (*httptest.Server, *[]TeamsMessage) {
	t.Helper()
	var received []TeamsMessage
	var mu sync.Mutex

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var msg TeamsMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&msg))

		mu.Lock()
		received = append(received, msg)
		mu.Unlock()

		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)
	return server, &received
}

func sampleReport() *models.Report {
	negative := models.ScoredItem{
		TextItem:          models.TextItem{ID: "2", Text: "This is terrible & awful", Source: "news"},
		SentimentScore:    -0.73,
		SentimentCategory: models.SentimentNegative,
	}
	ideas := []models.AdIdea{
		{Type: "benefit_focused", Content: "Experience speed like never before!", TargetEmotion: "positive", TrendingTopic: "launch"},
		{Type: "problem_solution", Content: "Tired of lag?", TargetEmotion: "problem-aware", TrendingTopic: "launch"},
	}

	return &models.Report{
		ID:          "report-1",
		Batch:       "inbox/2024-06-01.json",
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Summary: models.BatchSummary{
			TotalItems:       3,
			AverageSentiment: 0.04,
			CategoryCounts: map[models.SentimentCategory]int{
				models.SentimentPositive: 1,
				models.SentimentNeutral:  1,
				models.SentimentNegative: 1,
			},
		},
		TrendingHashtags: []models.TrendingTerm{{Term: "launch", Count: 2}},
		TrendingTerms:    []models.TrendingTerm{{Term: "product", Count: 3}},
		AdIdeas:          ideas,
		FeaturedAdIdea:   &ideas[0],
		DamageControl: []models.DamageControlCase{{
			Item:    negative,
			Issues:  []models.IssueTag{models.IssueToxicity},
			Actions: []string{"Prepare a professional response addressing concerns"},
		}},
	}
}

func TestService_SendReport_Teams(t *testing.T) {
	server, received := teamsServer(t, http.StatusOK)

	svc := NewService(&config.Config{TeamsWebhookURL: server.URL}, nil)
	require.NoError(t, svc.SendReport(sampleReport()))

	require.Len(t, *received, 1)
	msg := (*received)[0]
	assert.Equal(t, "MessageCard", msg.Type)
	assert.Equal(t, "Ad Insights Report - inbox/2024-06-01.json", msg.Title)

	titles := make([]string, len(msg.Sections))
	for i, section := range msg.Sections {
		titles[i] = section.ActivityTitle
	}
	assert.Equal(t, []string{"Summary", "Trending", "Ad Ideas", "Damage Control"}, titles)
	assert.Contains(t, msg.Sections[0].Facts, TeamsFact{Name: "Negative Items", Value: "1"})
	assert.Contains(t, msg.Sections[2].ActivityText, "**Featured (benefit_focused):**")
}

func TestService_SendReport_TeamsFailure(t *testing.T) {
	server, _ := teamsServer(t, http.StatusBadRequest)
	telegram := &fakeTelegram{}

	svc := NewService(&config.Config{TeamsWebhookURL: server.URL, TelegramChatID: 42}, telegram)
	err := svc.SendReport(sampleReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Teams")
	// other channels still run
	assert.Len(t, telegram.messages, 1)
	assert.Equal(t, []int64{42}, telegram.chatIDs)
}

func TestService_SendReport_TelegramFailure(t *testing.T) {
	telegram := &fakeTelegram{err: errors.New("chat not found")}

	svc := NewService(&config.Config{TelegramChatID: 42}, telegram)
	err := svc.SendReport(sampleReport())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Telegram: chat not found")
}

func TestService_SendAlert(t *testing.T) {
	server, received := teamsServer(t, http.StatusOK)
	telegram := &fakeTelegram{}

	item := sampleReport().DamageControl[0].Item
	alert := &models.Alert{
		ID:        "alert-1",
		Type:      "critical",
		Title:     "Critical issue detected",
		Message:   "A negative item mentions a crisis",
		Item:      &item,
		Actions:   []string{"Develop a crisis communication plan"},
		CreatedAt: time.Now().UTC(),
	}

	svc := NewService(&config.Config{TeamsWebhookURL: server.URL, TelegramChatID: 7}, telegram)
	require.NoError(t, svc.SendAlert(alert))

	require.Len(t, *received, 1)
	assert.Equal(t, teamsColorCritical, (*received)[0].ThemeColor)
	assert.Equal(t, "Recommended Actions", (*received)[0].Sections[1].ActivityTitle)

	require.Len(t, telegram.messages, 1)
	assert.Contains(t, telegram.messages[0], "<b>Critical issue detected</b>")
	assert.Contains(t, telegram.messages[0], "• Develop a crisis communication plan")
}

func TestService_SendAlert_NoChannels(t *testing.T) {
	svc := NewService(&config.Config{NotificationEmail: "team@example.com"}, nil)
	assert.NoError(t, svc.SendAlert(&models.Alert{Type: "critical", Title: "x"}))
}

func TestBuildEmail(t *testing.T) {
	report := sampleReport()

	htmlBody, err := buildEmailHTML(report)
	require.NoError(t, err)
	assert.Contains(t, htmlBody, "Batch inbox/2024-06-01.json")
	assert.Contains(t, htmlBody, "Negative Items:</strong> 1")
	assert.Contains(t, htmlBody, "#launch (2)")
	// html/template escapes item text
	assert.Contains(t, htmlBody, "This is terrible &amp; awful")

	text := buildEmailText(report)
	assert.Contains(t, text, "Total Items: 3")
	assert.Contains(t, text, "Trending Hashtags: #launch (2)")
	assert.Contains(t, text, "1. [benefit_focused] Experience speed like never before!")
	assert.Contains(t, text, "Issues: toxicity")
	assert.Contains(t, text, "   - Prepare a professional response addressing concerns")
}

func TestFormatTelegramReport(t *testing.T) {
	msg := FormatTelegramReport(sampleReport())

	assert.Contains(t, msg, "<b>Ad Insights Report</b>")
	assert.Contains(t, msg, "3 items | avg 0.04")
	assert.Contains(t, msg, "#launch (2)")
	assert.Contains(t, msg, "<i>Experience speed like never before!</i>")
	assert.Contains(t, msg, "1 negative items need attention")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "héé...", truncate("héééé", 3))
}
