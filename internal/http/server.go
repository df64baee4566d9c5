package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"habits/internal/core"
	"habits/internal/log"
	"habits/internal/middleware/ratelimit"
	"habits/internal/middleware/security"
	"habits/internal/middleware/trace"
)

// HabitEngine is the set of engine operations served over HTTP.
type HabitEngine interface {
	GetDefaults(ctx context.Context) ([]core.DefaultHabitEntry, error)
	SetDefaults(ctx context.Context, defaults []core.DefaultHabitEntry) error
	AddDefault(ctx context.Context, entry core.DefaultHabitEntry) ([]core.DefaultHabitEntry, error)
	DeleteDefault(ctx context.Context, index int) ([]core.DefaultHabitEntry, error)
	Recommendations(ctx context.Context) []core.RecommendationCandidate
	GetMonth(ctx context.Context, id core.MonthID) (core.MonthRecord, error)
	SetMonth(ctx context.Context, id core.MonthID, record core.MonthRecord) error
	AddHabit(ctx context.Context, id core.MonthID, name, color string) (core.MonthRecord, error)
	DeleteHabit(ctx context.Context, id core.MonthID, habitID string) (core.MonthRecord, error)
	ToggleHabit(ctx context.Context, id core.MonthID, day int, habitID string) (core.MonthRecord, error)
	UpdateReflection(ctx context.Context, id core.MonthID, field, value string) (core.MonthRecord, error)
	Summary(ctx context.Context, id core.MonthID) (core.MonthSummary, error)
}

// Options tunes the HTTP surface. Zero values fall back to defaults.
type Options struct {
	CORSAllowedOrigins []string
	RateLimitPerMinute int
	Logger             *log.Logger
}

// Server is the API server. It embeds http.Server so callers can
// ListenAndServe directly.
type Server struct {
	http.Server

	engine    HabitEngine
	validate  *validator.Validate
	limiter   *ratelimit.Limiter
	logger    *log.Logger
	startedAt time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, engine HabitEngine, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		engine:    engine,
		validate:  newValidator(),
		limiter:   ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		logger:    logger,
		startedAt: time.Now(),
	}
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(opts),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(opts Options) http.Handler {
	ipResolver := security.NewIPResolver()
	tracer := trace.NewMiddleware(ipResolver.ClientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}

	r := chi.NewRouter()
	r.Use(tracer.Handler)
	r.Use(chimiddleware.Recoverer)
	r.Use(headers.Handler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", trace.HeaderRequestID},
		ExposedHeaders: []string{trace.HeaderRequestID, "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(log.Middleware(s.logger))
	r.Use(log.ComponentMiddleware(log.ComponentHTTP))
	r.Use(log.RequestIDMiddleware(trace.RequestIDFromRequest))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(s.limiter.Middleware(ipResolver.ClientIP, s.handleRateLimited))

		r.Route("/defaults", func(r chi.Router) {
			r.Get("/", s.handleGetDefaults)
			r.Post("/", s.handleSetDefaults)
			r.Post("/entries", s.handleAddDefault)
			r.Delete("/entries/{index}", s.handleDeleteDefault)
		})

		r.Get("/recommendations", s.handleRecommendations)

		r.Route("/data/{monthId}", func(r chi.Router) {
			r.Get("/", s.handleGetMonth)
			r.Post("/", s.handleSetMonth)
			r.Post("/habits", s.handleAddHabit)
			r.Delete("/habits/{habitId}", s.handleDeleteHabit)
			r.Post("/toggle", s.handleToggleHabit)
			r.Put("/reflection", s.handleUpdateReflection)
			r.Get("/summary", s.handleSummary)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, apiResponse{Success: false, Message: "not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, apiResponse{Success: false, Message: "method not allowed"})
	})

	return r
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	writeJSON(w, http.StatusTooManyRequests, apiResponse{
		Success: false,
		Message: "Rate limit exceeded. Please try again later.",
	})
}

// events returns the structured logger for the request, carrying its id.
func events(r *http.Request) *log.StructuredLogger {
	return log.NewStructuredLogger(log.FromContext(r.Context()))
}

// Shutdown stops the rate limiter and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
