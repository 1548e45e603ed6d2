// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
)

// RatesRefresher replaces the cached market rate snapshot.
// service.MarketService implements it.
type RatesRefresher interface {
	RefreshMarketRates(ctx context.Context) (model.MarketSnapshot, error)
}

// Scheduler refreshes the cached market rates on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	refresher RatesRefresher
	timeout   time.Duration
}

// New creates a Scheduler that runs the rate refresh on spec, which accepts
// standard five-field cron expressions and descriptors such as "@every 1h".
// Overlapping runs are skipped and a panicking job is recovered.
func New(refresher RatesRefresher, spec string, timeout time.Duration) (*Scheduler, error) {
	logger := cron.PrintfLogger(log.Default())
	s := &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		)),
		refresher: refresher,
		timeout:   timeout,
	}
	if _, err := s.cron.AddFunc(spec, s.RefreshRates); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Printf("Market rate refresh scheduled, next run at %s", s.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop halts the schedule and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		log.Printf("Scheduler stop timed out: %v", ctx.Err())
	}
}

// RefreshRates runs one refresh. It is the scheduled job and can also be
// called directly to warm the cache at startup.
func (s *Scheduler) RefreshRates() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	snapshot, err := s.refresher.RefreshMarketRates(ctx)
	if err != nil {
		log.Printf("Market rate refresh failed: %v", err)
		return
	}
	log.Printf("Market rates refreshed: risk-free=%.4f (%s) equity=%.4f (%s)",
		snapshot.RiskFreeRate, snapshot.RiskFreeSource, snapshot.EquityReturn, snapshot.EquityReturnSource)
}
