package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/azure/ad-insights-bot/internal/insights"
	"github.com/azure/ad-insights-bot/internal/models"
)

const maxBatchBytes = 10 << 20

// InsightsService is what the HTTP surface needs from the insights service
type InsightsService interface {
	Analyze(name string, items []models.TextItem) (*models.Report, error)
	RunInbox() error
	GetMetrics() string
}

// Server exposes health, metrics, ad hoc analysis and manual inbox runs
type Server struct {
	service    InsightsService
	router     *mux.Router
	httpServer *http.Server
}

// NewServer creates a new HTTP server listening on port
func NewServer(port string, service InsightsService) *Server {
	s := &Server{
		service: service,
		router:  mux.NewRouter(),
	}

	s.router.Use(withLogging)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics).Methods(http.MethodGet)
	s.router.HandleFunc("/analyze", s.handleAnalyze).Methods(http.MethodPost)
	s.router.HandleFunc("/trigger", s.handleTrigger).Methods(http.MethodPost)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Handler returns the routed handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving requests until Shutdown
func (s *Server) Start() error {
	logrus.Infof("HTTP server starting on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, s.service.GetMetrics())
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBatchBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "batch exceeds the size limit")
		return
	}

	items, err := insights.DecodeBatch(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidBatch", err.Error())
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "adhoc-" + time.Now().UTC().Format("20060102T150405Z")
	}

	report, err := s.service.Analyze(name, items)
	if err != nil {
		if errors.Is(err, models.ErrInvalidItem) {
			writeError(w, http.StatusBadRequest, "InvalidItem", err.Error())
			return
		}
		logrus.Errorf("Analysis of %s failed: %v", name, err)
		writeError(w, http.StatusInternalServerError, "InternalError", "failed to analyze batch")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTrigger(w http.ResponseWriter, _ *http.Request) {
	go func() {
		if err := s.service.RunInbox(); err != nil {
			logrus.Errorf("Manual inbox trigger failed: %v", err)
		}
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"message": "Inbox run triggered"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType, message string) {
	writeJSON(w, status, map[string]string{
		"error":   errType,
		"message": message,
	})
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   wrapped.status,
			"duration": time.Since(start).String(),
		}).Debug("http request")
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
