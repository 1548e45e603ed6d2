package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/handlers"
	custommiddleware "github.com/AHMerrill/Basic-Dividend-Discount/internal/api/middleware"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	marketService *service.MarketService,
	valuationService *service.ValuationService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	rateLimiter := custommiddleware.NewRateLimiter(cfg.Server.RateLimitPerSecond)

	// Dashboard
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Handler)
		dashboardHandler := handlers.NewDashboardHandler(valuationService, cfg.Valuation.DefaultTicker)
		r.Get("/", dashboardHandler.Index)
		r.Get("/dashboard", dashboardHandler.Dashboard)
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// CORS middleware
		corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
		r.Use(corsMiddleware.Handler)

		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.Handler)

			r.Route("/valuation", func(r chi.Router) {
				valuationHandler := handlers.NewValuationHandler(valuationService)
				r.Post("/", valuationHandler.Value)
				r.With(custommiddleware.ValidateTickerMiddleware).Get("/{ticker}", valuationHandler.ValueTicker)
			})

			r.Route("/market", func(r chi.Router) {
				marketHandler := handlers.NewMarketHandler(marketService)
				r.Get("/rates", marketHandler.Rates)
				r.With(custommiddleware.ValidateTickerMiddleware).Get("/fundamentals/{ticker}", marketHandler.Fundamentals)
			})
		})
	})

	return r
}
