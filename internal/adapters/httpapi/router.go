package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Metrics is what the routers need from the metrics collector.
type Metrics interface {
	RequestObserver
	Handler() http.Handler
}

// RouterOptions carries the cross-cutting pieces shared by both routers.
type RouterOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	Metrics        Metrics                         // Optional
	Health         func(ctx context.Context) error // Optional storage probe
}

// NewBankRouter mounts the bank service's routes.
func NewBankRouter(h *BankHandler, opts RouterOptions, baseLogger *zerolog.Logger) *chi.Mux {
	r := newRouter(opts, baseLogger)
	r.Route("/api/banks", h.routes)
	return r
}

// NewAccountRouter mounts the account service's routes.
func NewAccountRouter(h *AccountHandler, opts RouterOptions, baseLogger *zerolog.Logger) *chi.Mux {
	r := newRouter(opts, baseLogger)
	r.Route("/api/accounts", h.routes)
	return r
}

func newRouter(opts RouterOptions, baseLogger *zerolog.Logger) *chi.Mux {
	log := baseLogger.With().Str("component", "http").Logger()

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Setup middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	var observer RequestObserver
	if opts.Metrics != nil {
		observer = opts.Metrics
	}
	r.Use(requestLogger(log, observer))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300, // Maximum value not ignored by any major browsers
	}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if opts.Health != nil {
			if err := opts.Health(req.Context()); err != nil {
				log.Warn().Err(err).Msg("Health check failed")
				respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "DOWN"})
				return
			}
		}
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "UP"})
	})

	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	return r
}
