package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"hradmin/internal/domain/users"
	"hradmin/internal/platform/config"
	"hradmin/internal/platform/db"
	"hradmin/internal/platform/metrics"
	"hradmin/internal/transport/http/api"
	attendancehandler "hradmin/internal/transport/http/handlers/attendance"
	employeehandler "hradmin/internal/transport/http/handlers/employee"
	journalhandler "hradmin/internal/transport/http/handlers/journal"
	leavehandler "hradmin/internal/transport/http/handlers/leave"
	orghandler "hradmin/internal/transport/http/handlers/org"
	payrollhandler "hradmin/internal/transport/http/handlers/payroll"
	rosterhandler "hradmin/internal/transport/http/handlers/roster"
	usershandler "hradmin/internal/transport/http/handlers/users"
	"hradmin/internal/transport/http/middleware"
)

// loginAttemptsPerMinute bounds login attempts per client IP and per email.
const loginAttemptsPerMinute = 10

// Deps are the collaborators the router hands to the handlers.
type Deps struct {
	Config   config.Config
	DB       db.DB
	Ready    func(ctx context.Context) error
	Metrics  *metrics.Collector
	Users    *users.Service
	Roster   rosterhandler.Calendars
	Payroll  payrollhandler.Summaries
	Syncer   attendancehandler.DeviceSyncer
	Jobs     attendancehandler.Queue
	Articles journalhandler.Articles
	Covers   journalhandler.CoverFiles
	// Idempotency is nil when Redis is not configured.
	Idempotency *middleware.IdempotencyStore
}

func NewRouter(d Deps) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	if d.Config.TrustProxyHeaders {
		router.Use(chimiddleware.RealIP)
	}
	router.Use(middleware.Logger(d.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(d.Config.Environment == "production"))
	router.Use(middleware.BodyLimit(d.Config.MaxBodyBytes, d.Config.MaxUploadBytes))
	router.Use(middleware.Auth(d.Config.JWTSecret))
	router.Use(middleware.RateLimit(d.Config.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if d.Ready != nil {
			if err := d.Ready(ctx); err != nil {
				api.Fail(w, http.StatusServiceUnavailable, "not_ready", "database not ready", middleware.GetRequestID(r.Context()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if d.Config.MetricsEnabled && d.Metrics != nil {
		router.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		usersHandler := usershandler.NewHandler(d.Users)
		r.With(middleware.LoginRateLimit(loginAttemptsPerMinute, time.Minute)).
			Post("/hr/user/login", usersHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Use(middleware.Idempotency(d.Idempotency))

			usersHandler.RegisterRoutes(r)
			orghandler.NewHandler(d.DB).RegisterRoutes(r)
			employeehandler.NewHandler(d.DB, d.Config.Location()).RegisterRoutes(r)
			leavehandler.NewHandler(d.DB).RegisterRoutes(r)
			rosterhandler.NewHandler(d.DB, d.Roster).RegisterRoutes(r)
			attendancehandler.NewHandler(d.DB, d.Syncer, d.Jobs).RegisterRoutes(r)
			payrollhandler.NewHandler(d.DB, d.Payroll).RegisterRoutes(r)
			journalhandler.NewHandler(d.DB, d.Articles, d.Covers).RegisterRoutes(r)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		api.Fail(w, http.StatusNotFound, "not_found", "route not found", middleware.GetRequestID(r.Context()))
	})
	return router
}
