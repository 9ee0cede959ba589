package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dgallion1/docfreq/internal/config"
	"github.com/dgallion1/docfreq/internal/metrics"
	"github.com/dgallion1/docfreq/internal/pipeline"
	"github.com/dgallion1/docfreq/internal/render"
)

// Server is the HTTP API server for docfreq.
type Server struct {
	router   chi.Router
	analyzer *pipeline.Analyzer
	log      *slog.Logger
	cfg      config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(analyzer *pipeline.Analyzer, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		analyzer: analyzer,
		log:      log,
		cfg:      cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(metrics.Middleware())

	// Public endpoints.
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", s.handleIndex)
	r.Post("/", s.handleUploadPage)

	r.Group(func(r chi.Router) {
		if s.cfg.APIKey != "" {
			r.Use(AuthMiddleware(s.cfg.APIKey, s.log))
		}

		r.Post("/api/analyze", s.handleAnalyze)
		r.Post("/api/analyze/wordcloud", s.handleWordCloud)
		r.Post("/api/analyze/chart", s.handleChart)
		r.Post("/api/analyze/report", s.handleReport)
		r.Get("/api/stats", s.handleStats)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) cloudOptions() render.CloudOptions {
	return render.CloudOptions{
		Width:         s.cfg.CloudWidth,
		Height:        s.cfg.CloudHeight,
		MaxWords:      s.cfg.CloudMaxWords,
		VerticalRatio: render.DefaultVerticalRatio,
	}
}

func (s *Server) chartOptions() render.ChartOptions {
	return render.ChartOptions{Width: s.cfg.ChartWidth}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
