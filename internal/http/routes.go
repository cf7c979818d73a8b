package httpapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cesargomez89/fullstack/internal/config"
	apperrors "github.com/cesargomez89/fullstack/internal/errors"
	"github.com/cesargomez89/fullstack/internal/logger"
	"github.com/cesargomez89/fullstack/internal/metrics"
	"github.com/cesargomez89/fullstack/internal/store"
)

// RouteRegistrar mounts one app's routes.
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// Deps is what every app router shares.
type Deps struct {
	Config *config.Config
	Logger *logger.Logger
	Store  *store.DB

	// Registerer and Gatherer default to the prometheus globals.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the middleware stack, the ambient endpoints and the
// app's own routes.
func NewRouter(d Deps, app RouteRegistrar) http.Handler {
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	log := d.Logger.WithComponent("http")
	h := &base{Logger: log}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(RequestLogger(log))
	r.Use(Recoverer(log))
	r.Use(metrics.NewHTTPMetrics(d.Registerer, d.Config.App).Middleware)
	r.Use(corsHandler(d.Config.CORSOrigins))
	r.Use(rateLimiter(log, d.Config.RateLimit, d.Config.RateWindow))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, apperrors.NotFound("no route for "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.writeError(w, r, apperrors.MethodNotAllowed())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := d.Store.Ping(r.Context()); err != nil {
			h.writeError(w, r, apperrors.Unavailable("database unreachable", err))
			return
		}
		h.respond(w, http.StatusOK, envelope{"status": "ok", "app": d.Config.App})
	})
	r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	app.RegisterRoutes(r)
	return r
}
