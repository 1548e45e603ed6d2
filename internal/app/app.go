// Package app wires configuration, the market data client, the services and
// the HTTP server together. Both the server binary and the CLI's serve
// command start through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/scheduler"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/yahoo"
)

const (
	// shutdownTimeout bounds graceful shutdown of the server and scheduler.
	shutdownTimeout = 30 * time.Second
	// refreshTimeout bounds one market rate refresh.
	refreshTimeout = 2 * time.Minute
)

// App holds the wired services.
type App struct {
	Config           *config.Config
	MarketService    *service.MarketService
	ValuationService *service.ValuationService
	SystemService    *service.SystemService
}

// New creates the Yahoo client and the services from cfg.
func New(cfg *config.Config) *App {
	return NewWithClient(cfg, yahoo.NewFinanceClient(yahoo.Options{
		BaseURL:           cfg.Yahoo.BaseURL,
		Timeout:           cfg.Yahoo.Timeout,
		RequestsPerSecond: cfg.Yahoo.RequestsPerSecond,
		MaxRetries:        cfg.Yahoo.MaxRetries,
	}))
}

// NewWithClient wires the services around an existing market data client.
func NewWithClient(cfg *config.Config, client yahoo.Client) *App {
	marketService := service.NewMarketService(client, cfg.Market)
	return &App{
		Config:           cfg,
		MarketService:    marketService,
		ValuationService: service.NewValuationService(marketService, cfg.Valuation.DefaultLongTermGrowth),
		SystemService:    service.NewSystemService(marketService),
	}
}

// Serve runs the HTTP server and the rate refresh schedule until ctx is
// cancelled, then shuts both down gracefully.
func (a *App) Serve(ctx context.Context) error {
	var sched *scheduler.Scheduler
	if spec := a.Config.Market.RefreshSchedule; spec != "" {
		var err error
		sched, err = scheduler.New(a.MarketService, spec, refreshTimeout)
		if err != nil {
			return err
		}
		// Warm the cache so the first valuation does not pay for the fetch.
		sched.RefreshRates()
		sched.Start()
	} else {
		log.Println("Market rate refresh schedule disabled; rates are fetched on demand")
	}

	server := &http.Server{
		Addr:         a.Config.Server.Addr,
		Handler:      api.NewRouter(a.SystemService, a.MarketService, a.ValuationService, a.Config),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s", a.Config.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			runErr = fmt.Errorf("server failed: %w", err)
		}
	}

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if sched != nil {
		sched.Stop(shutdownCtx)
	}
	if err := server.Shutdown(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited")
	return runErr
}
