package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/azure/ad-insights-bot/internal/analysis"
	"github.com/azure/ad-insights-bot/internal/config"
	"github.com/azure/ad-insights-bot/internal/httpserver"
	"github.com/azure/ad-insights-bot/internal/insights"
	"github.com/azure/ad-insights-bot/internal/notifications"
	"github.com/azure/ad-insights-bot/internal/scheduler"
	"github.com/azure/ad-insights-bot/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logrus.SetLevel(logrus.InfoLevel)
	if cfg.Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	logrus.Info("Starting Ad Insights Bot")

	profile, err := config.LoadProfile(cfg.ProfilePath)
	if err != nil {
		logrus.Fatalf("Failed to load company profile: %v", err)
	}

	inbox, err := openInbox(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}

	var telegram notifications.TelegramSender
	if cfg.TelegramToken != "" {
		sender, err := notifications.NewBotSender(cfg.TelegramToken)
		if err != nil {
			logrus.Fatalf("Failed to initialize Telegram: %v", err)
		}
		telegram = sender
	}
	notificationService := notifications.NewService(cfg, telegram)

	pipeline := analysis.NewPipeline(insights.PipelineOptions(cfg, profile)...)
	insightsService := insights.NewService(cfg, inbox, notificationService, pipeline)

	schedulerService := scheduler.NewService(cfg, insightsService)
	if err := schedulerService.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()
	logrus.Infof("Next inbox run at %s", schedulerService.Next().Format(time.RFC3339))

	server := httpserver.NewServer(cfg.Port, insightsService)
	go func() {
		if err := server.Start(); err != nil {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}

func openInbox(cfg *config.Config) (storage.BatchStore, error) {
	if cfg.StorageBackend == "local" {
		return storage.NewLocalStorage(cfg.LocalInboxDir)
	}
	return storage.NewAzureStorage(cfg.StorageAccount, cfg.StorageContainer)
}
