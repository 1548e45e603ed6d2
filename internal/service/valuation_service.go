package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
)

// ValuationOptions are the caller's choices for one valuation run.
// Nil overrides select the configured defaults.
type ValuationOptions struct {
	Ticker                 string
	Policy                 ddm.Policy
	LongTermGrowth         *float64
	CostOfEquity           *float64
	ValuationDate          time.Time
	ProceedWithoutDividend bool
}

// ValuationService orchestrates a valuation: fetch inputs, run the engine,
// stamp the report.
type ValuationService struct {
	marketService         *MarketService
	defaultLongTermGrowth float64
	now                   func() time.Time
}

// NewValuationService creates a new ValuationService.
func NewValuationService(marketService *MarketService, defaultLongTermGrowth float64) *ValuationService {
	return &ValuationService{
		marketService:         marketService,
		defaultLongTermGrowth: defaultLongTermGrowth,
		now:                   time.Now,
	}
}

// Value runs a full valuation for one ticker.
//
// The workflow:
//  1. Fetches fundamentals for the ticker
//  2. Reads the (possibly cached) market rate snapshot
//  3. Builds an immutable ddm.Request from the options
//  4. Runs the engine and wraps the result in a report with a fresh ID
//
// Returns:
//   - model.ValuationReport: The complete run
//   - error: provider errors from MarketService, or engine errors wrapped in
//     apperrors.ErrFailedToValue (the ddm sentinel stays matchable with errors.Is)
func (s *ValuationService) Value(ctx context.Context, opts ValuationOptions) (model.ValuationReport, error) {
	ticker := strings.ToUpper(strings.TrimSpace(opts.Ticker))

	fundamentals, err := s.marketService.GetFundamentals(ctx, ticker)
	if err != nil {
		return model.ValuationReport{}, err
	}

	rates, err := s.marketService.GetMarketRates(ctx)
	if err != nil {
		return model.ValuationReport{}, err
	}

	policy := opts.Policy
	if policy == nil {
		policy = ddm.DefaultGrowth{}
	}
	ltg := opts.LongTermGrowth
	if ltg == nil {
		v := s.defaultLongTermGrowth
		ltg = &v
	}
	valuationDate := opts.ValuationDate
	if valuationDate.IsZero() {
		valuationDate = s.now()
	}

	result, err := ddm.Value(ddm.Request{
		Fundamentals:           fundamentals,
		Rates:                  rates.MarketRates,
		Policy:                 policy,
		LongTermGrowth:         ltg,
		CostOfEquity:           opts.CostOfEquity,
		ValuationDate:          valuationDate,
		ProceedWithoutDividend: opts.ProceedWithoutDividend,
	})
	if err != nil {
		return model.ValuationReport{}, fmt.Errorf("%w %s: %w", apperrors.ErrFailedToValue, ticker, err)
	}

	report := model.ValuationReport{
		ID:           uuid.New().String(),
		Ticker:       ticker,
		GeneratedAt:  s.now().UTC(),
		Fundamentals: fundamentals,
		Rates:        rates,
		Result:       result,
	}
	log.Printf("valuation %s: ticker=%s policy=%s intrinsic=%.2f price=%.2f recommendation=%s",
		report.ID, ticker, result.Policy, result.IntrinsicValue, result.LastPrice, result.Recommendation)
	if result.NonDividendPayer {
		log.Printf("WARNING: valuation %s: %s has no upcoming dividend; run proceeded on request", report.ID, ticker)
	}
	return report, nil
}
