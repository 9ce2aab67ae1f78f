package notifications

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/azure/ad-insights-bot/internal/models"
)

// TelegramSender delivers HTML formatted messages to a chat
type TelegramSender interface {
	SendHTML(chatID int64, htmlText string) error
}

// BotSender implements TelegramSender using tgbotapi
type BotSender struct {
	api *tgbotapi.BotAPI
}

// NewBotSender connects to the Bot API with the given token
func NewBotSender(token string) (*BotSender, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}
	return &BotSender{api: api}, nil
}

// SendHTML sends an HTML message
func (s *BotSender) SendHTML(chatID int64, htmlText string) error {
	msg := tgbotapi.NewMessage(chatID, htmlText)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := s.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram message: %w", err)
	}
	return nil
}

// FormatTelegramReport renders a compact report digest
func FormatTelegramReport(report *models.Report) string {
	summary := report.Summary

	var b strings.Builder
	b.WriteString("📊 <b>Ad Insights Report</b> ")
	b.WriteString(html.EscapeString(report.Batch))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d items | avg %.2f | 👍 %d 😐 %d 👎 %d\n",
		summary.TotalItems, summary.AverageSentiment,
		summary.CategoryCounts[models.SentimentPositive],
		summary.CategoryCounts[models.SentimentNeutral],
		summary.CategoryCounts[models.SentimentNegative]))

	if len(report.TrendingHashtags) > 0 {
		b.WriteString("\n🔥 ")
		b.WriteString(html.EscapeString(termList(report.TrendingHashtags, "#")))
		b.WriteString("\n")
	}

	if idea := report.FeaturedAdIdea; idea != nil {
		b.WriteString("\n💡 <i>")
		b.WriteString(html.EscapeString(idea.Content))
		b.WriteString("</i>\n")
	}

	if n := len(report.DamageControl); n > 0 {
		b.WriteString(fmt.Sprintf("\n⚠️ %d negative items need attention\n", n))
	}

	return b.String()
}

// FormatTelegramAlert renders an urgent alert
func FormatTelegramAlert(alert *models.Alert) string {
	var b strings.Builder
	b.WriteString("🚨 <b>")
	b.WriteString(html.EscapeString(alert.Title))
	b.WriteString("</b>\n")
	b.WriteString(html.EscapeString(alert.Message))
	b.WriteString("\n")

	if alert.Item != nil && alert.Item.URL != "" {
		b.WriteString(fmt.Sprintf("<a href=\"%s\">Source</a>\n", html.EscapeString(alert.Item.URL)))
	}

	for _, action := range alert.Actions {
		b.WriteString("• ")
		b.WriteString(html.EscapeString(action))
		b.WriteString("\n")
	}

	return b.String()
}
