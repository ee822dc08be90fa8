package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/masjid-digital/admin-backend/api/controllers"
	"github.com/masjid-digital/admin-backend/api/middleware"
	"github.com/masjid-digital/admin-backend/internal/auth"
	"github.com/masjid-digital/admin-backend/internal/categories"
	"github.com/masjid-digital/admin-backend/internal/donations"
	"github.com/masjid-digital/admin-backend/internal/programs"
	"github.com/masjid-digital/admin-backend/internal/transactions"
	"github.com/masjid-digital/admin-backend/pkg/auth/session"
	"github.com/masjid-digital/admin-backend/pkg/config"
	"github.com/masjid-digital/admin-backend/pkg/db"
	"github.com/masjid-digital/admin-backend/pkg/enums"
	"github.com/masjid-digital/admin-backend/pkg/logger"
	"github.com/masjid-digital/admin-backend/pkg/metrics"
	"github.com/masjid-digital/admin-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config *config.Config
	Logger *logger.Logger

	DB    db.Pinger
	Redis redis.Pinger

	SessionManager *session.Manager
	SessionChecker session.AccessSessionChecker

	AuthService        auth.Service
	DonationService    donations.Service
	ProgramService     programs.Service
	CategoryService    categories.Service
	TransactionService transactions.Service

	MetricsRegistry     *prometheus.Registry
	VerificationMetrics *metrics.VerificationMetrics
}

// NewRouter wires middleware, health endpoints and the versioned API.
//
// Route map:
//
//	GET  /health/live, /health/ready
//	GET  /metrics
//	POST /api/v1/auth/login | /refresh | /logout
//	POST /api/v1/donations                    (public donor form)
//	GET  /api/v1/programs, /programs/{id}     (public campaign listing)
//	(admin) donations list/get/verify, program and category management,
//	        ledger entries and the monthly summary
func NewRouter(params RouterParams) http.Handler {
	logg := params.Logger
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS())

	r.Get("/health/live", controllers.HealthLive())
	r.Get("/health/ready", controllers.HealthReady(params.DB, params.Redis, logg))

	if params.MetricsRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(params.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	requireAuth := middleware.Auth(params.Config.JWT, params.SessionChecker, logg)
	requireAdmin := middleware.RequireRole(enums.UserRoleAdmin, logg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(params.AuthService, logg))
			r.Post("/refresh", controllers.AuthRefresh(params.Config.JWT, params.SessionManager, logg))
			r.Post("/logout", controllers.AuthLogout(params.Config.JWT, params.SessionManager, logg))
		})

		// Donor-facing surface, unauthenticated.
		r.Post("/donations", controllers.DonationSubmit(params.DonationService, logg))
		r.Get("/programs", controllers.ProgramsList(params.ProgramService, logg))
		r.Get("/programs/{programID}", controllers.ProgramGet(params.ProgramService, logg))

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			// Any authenticated staff member can read.
			r.Get("/donations", controllers.DonationsList(params.DonationService, logg))
			r.Get("/donations/{donationID}", controllers.DonationGet(params.DonationService, logg))
			r.Get("/categories", controllers.CategoriesList(params.CategoryService, logg))
			r.Get("/transactions", controllers.TransactionsList(params.TransactionService, logg))
			r.Get("/transactions/{transactionID}", controllers.TransactionGet(params.TransactionService, logg))
			r.Get("/transactions/summary", controllers.TransactionsSummary(params.TransactionService, logg))

			// Mutations are admin-only.
			r.Group(func(r chi.Router) {
				r.Use(requireAdmin)
				r.Post("/donations/{donationID}/verify", controllers.DonationVerify(params.DonationService, params.VerificationMetrics, logg))
				r.Post("/programs", controllers.ProgramCreate(params.ProgramService, logg))
				r.Put("/programs/{programID}", controllers.ProgramUpdate(params.ProgramService, logg))
				r.Post("/categories", controllers.CategoryCreate(params.CategoryService, logg))
				r.Put("/categories/{categoryID}", controllers.CategoryUpdate(params.CategoryService, logg))
				r.Post("/transactions", controllers.TransactionCreate(params.TransactionService, logg))
			})
		})
	})

	return r
}
