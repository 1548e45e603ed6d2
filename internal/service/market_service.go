package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/yahoo"
)

const ratesCacheKey = "market:rates"

// MarketService is the market data provider. It fetches per-ticker
// fundamentals and the ticker-independent rate snapshot, substituting the
// configured fallback constant when a rate proxy cannot be fetched.
type MarketService struct {
	yahooClient yahoo.Client
	cfg         config.MarketConfig
	cache       *cache.Cache
	now         func() time.Time
}

// NewMarketService creates a new MarketService. The rate snapshot is cached
// for cfg.RatesTTL; a non-positive TTL disables caching.
func NewMarketService(yahooClient yahoo.Client, cfg config.MarketConfig) *MarketService {
	ttl := cfg.RatesTTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &MarketService{
		yahooClient: yahooClient,
		cfg:         cfg,
		cache:       cache.New(ttl, 2*ttl),
		now:         time.Now,
	}
}

// GetFundamentals fetches the per-ticker snapshot the engine values.
//
// Returns:
//   - ddm.Fundamentals: Provider figures, optional ones left nil when absent
//   - error: apperrors.ErrSymbolNotFound for unknown tickers, otherwise
//     wrapped in apperrors.ErrFailedToRetrieveFundamentals
func (s *MarketService) GetFundamentals(ctx context.Context, ticker string) (ddm.Fundamentals, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return ddm.Fundamentals{}, apperrors.ErrInvalidSymbol
	}

	raw, err := s.yahooClient.QuoteSummary(ctx, ticker)
	if err != nil {
		if errors.Is(err, apperrors.ErrSymbolNotFound) {
			return ddm.Fundamentals{}, err
		}
		return ddm.Fundamentals{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveFundamentals, err)
	}
	f, err := yahoo.ParseFundamentals(raw)
	if err != nil {
		return ddm.Fundamentals{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveFundamentals, err)
	}
	return f, nil
}

// GetMarketRates returns the cached rate snapshot, fetching it on a miss.
func (s *MarketService) GetMarketRates(ctx context.Context) (model.MarketSnapshot, error) {
	if cached, ok := s.cache.Get(ratesCacheKey); ok {
		return cached.(model.MarketSnapshot), nil
	}
	return s.RefreshMarketRates(ctx)
}

// RefreshMarketRates fetches both rate proxies in parallel and replaces the
// cached snapshot. A proxy that fails falls back to its configured constant
// and is logged as a warning; only context cancellation fails the call.
// Snapshots containing a fallback are not cached, so the next request retries.
func (s *MarketService) RefreshMarketRates(ctx context.Context) (model.MarketSnapshot, error) {
	snapshot := model.MarketSnapshot{
		RiskFreeSymbol:    s.cfg.RiskFreeSymbol,
		EquityIndexSymbol: s.cfg.EquityIndexSymbol,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rf, err := s.fetchRiskFreeRate(gctx)
		if err != nil {
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Printf("WARNING: risk-free rate from %s unavailable, using fallback %.4f: %v",
				s.cfg.RiskFreeSymbol, s.cfg.RiskFreeFallback, err)
			snapshot.RiskFreeRate = s.cfg.RiskFreeFallback
			snapshot.RiskFreeSource = model.SourceFallback
			return nil
		}
		snapshot.RiskFreeRate = rf
		snapshot.RiskFreeSource = model.SourceProvider
		return nil
	})

	g.Go(func() error {
		eq, err := s.fetchEquityReturn(gctx)
		if err != nil {
			if ctxErr := gctx.Err(); ctxErr != nil {
				return ctxErr
			}
			log.Printf("WARNING: equity return from %s unavailable, using fallback %.4f: %v",
				s.cfg.EquityIndexSymbol, s.cfg.EquityReturnFallback, err)
			snapshot.EquityReturn = s.cfg.EquityReturnFallback
			snapshot.EquityReturnSource = model.SourceFallback
			return nil
		}
		snapshot.EquityReturn = eq
		snapshot.EquityReturnSource = model.SourceProvider
		return nil
	})

	if err := g.Wait(); err != nil {
		return model.MarketSnapshot{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveMarketRates, err)
	}

	snapshot.RiskPremium = snapshot.MarketRates.RiskPremium()
	snapshot.FetchedAt = s.now().UTC()

	if !snapshot.UsedFallback() {
		s.cache.SetDefault(ratesCacheKey, snapshot)
	}
	return snapshot, nil
}

// fetchRiskFreeRate reads the latest close of the risk-free proxy. ^TNX
// quotes the 10-year yield in percent, so the close is divided by 100.
func (s *MarketService) fetchRiskFreeRate(ctx context.Context) (float64, error) {
	raw, err := s.yahooClient.QueryYahooFiveDaySymbol(ctx, s.cfg.RiskFreeSymbol)
	if err != nil {
		return 0, err
	}
	chart, err := s.yahooClient.ParseChart(raw)
	if err != nil {
		return 0, err
	}
	rf := chart.Last().PriceClose / 100
	if math.IsNaN(rf) || math.IsInf(rf, 0) {
		return 0, fmt.Errorf("non-numeric close for %s", s.cfg.RiskFreeSymbol)
	}
	return rf, nil
}

// fetchEquityReturn computes the CAGR of the equity index over its full history.
func (s *MarketService) fetchEquityReturn(ctx context.Context) (float64, error) {
	raw, err := s.yahooClient.QueryYahooMaxHistory(ctx, s.cfg.EquityIndexSymbol)
	if err != nil {
		return 0, err
	}
	chart, err := s.yahooClient.ParseChart(raw)
	if err != nil {
		return 0, err
	}
	return CAGR(chart)
}

// CAGR is the compound annual growth rate between the first and last close
// of a chart, with the holding period measured in tropical years.
func CAGR(chart yahoo.PriceChart) (float64, error) {
	if len(chart.Indicators) < 2 {
		return 0, fmt.Errorf("need at least two closes, got %d", len(chart.Indicators))
	}
	first, last := chart.First(), chart.Last()
	if first.PriceClose <= 0 {
		return 0, fmt.Errorf("non-positive starting close %g", first.PriceClose)
	}
	years := float64(last.Date.Sub(first.Date)) / float64(ddm.TropicalYear)
	if years <= 0 {
		return 0, fmt.Errorf("chart spans no time")
	}
	cagr := math.Pow(last.PriceClose/first.PriceClose, 1/years) - 1
	if math.IsNaN(cagr) || math.IsInf(cagr, 0) {
		return 0, fmt.Errorf("non-numeric growth rate")
	}
	return cagr, nil
}
