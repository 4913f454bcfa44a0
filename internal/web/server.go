package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vbonduro/gardenlog/internal/service"
)

// Services are the application services the handlers call into.
type Services struct {
	Cultures   *service.CultureService
	Journal    *service.JournalService
	Statistics *service.StatisticsService
}

type Server struct {
	services    *Services
	corsOrigins []string
	router      *chi.Mux
	logger      *slog.Logger
}

func NewServer(services *Services, corsOrigins []string, logger *slog.Logger) *Server {
	s := &Server{
		services:    services,
		corsOrigins: corsOrigins,
		router:      chi.NewRouter(),
		logger:      logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(func(next http.Handler) http.Handler { return requestLogger(s.logger, next) })
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/cultures", func(r chi.Router) {
			r.Get("/", s.handleListCultures)
			r.Post("/", s.handleCreateCulture)
			r.Get("/{id}", s.handleGetCulture)
			r.Put("/{id}", s.handleUpdateCulture)
			r.Delete("/{id}", s.handleDeleteCulture)
			r.Get("/{id}/notes", s.handleListCultureNotes)
			r.Post("/{id}/harvests", s.handleRecordHarvest)
		})

		r.Route("/notes", func(r chi.Router) {
			r.Post("/", s.handleCreateNote)
			r.Put("/{id}", s.handleUpdateNote)
			r.Delete("/{id}", s.handleDeleteNote)
		})

		r.Route("/harvests", func(r chi.Router) {
			r.Get("/", s.handleListHarvests)
			r.Post("/", s.handleCreateHarvest)
			r.Put("/{id}", s.handleUpdateHarvest)
			r.Delete("/{id}", s.handleDeleteHarvest)
		})

		r.Get("/statistics", s.handleStatistics)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// NewHTTPServer returns an http.Server for s with the usual timeouts. The
// caller starts it and shuts it down.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}
