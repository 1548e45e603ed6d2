package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/testutil"
)

func ptr(v float64) *float64 { return &v }

// TestValuationService_Value tests the end-to-end valuation orchestration.
//
// WHY: The service is where provider data, market rates and caller options
// meet the engine. It must apply the configured defaults, keep engine errors
// matchable and stamp every report with its own ID.
func TestValuationService_Value(t *testing.T) {
	t.Run("values a dividend payer with defaults", func(t *testing.T) {
		// Setup
		svc := testutil.NewTestValuationService(t, testutil.NewMockYahooClient())

		// Execute
		report, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "wmt"})

		// Assert
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		if _, err := uuid.Parse(report.ID); err != nil {
			t.Errorf("Expected a UUID report ID, got %q", report.ID)
		}
		if report.Ticker != "WMT" {
			t.Errorf("Expected ticker WMT, got %s", report.Ticker)
		}
		if report.Result.Policy != ddm.KindDefaultGrowth {
			t.Errorf("Expected default policy, got %s", report.Result.Policy)
		}
		if report.Result.LongTermGrowth != 0.035 {
			t.Errorf("Expected long-term growth 0.035, got %f", report.Result.LongTermGrowth)
		}
		if report.Result.CostOfEquitySource != "capm" {
			t.Errorf("Expected CAPM cost of equity, got %s", report.Result.CostOfEquitySource)
		}
		if report.Result.IntrinsicValue <= 0 {
			t.Errorf("Expected positive intrinsic value, got %f", report.Result.IntrinsicValue)
		}
		if report.Rates.UsedFallback() {
			t.Error("Expected provider rates")
		}
	})

	t.Run("each run gets its own ID", func(t *testing.T) {
		svc := testutil.NewTestValuationService(t, testutil.NewMockYahooClient())

		a, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "WMT"})
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		b, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "WMT"})
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		if a.ID == b.ID {
			t.Error("Expected distinct report IDs")
		}
	})

	t.Run("a fixed valuation date is deterministic", func(t *testing.T) {
		svc := testutil.NewTestValuationService(t, testutil.NewMockYahooClient())
		opts := service.ValuationOptions{
			Ticker:        "WMT",
			Policy:        ddm.CustomShortTermGrowth{Rate: 0.05},
			ValuationDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		}

		a, err := svc.Value(context.Background(), opts)
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		b, err := svc.Value(context.Background(), opts)
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		if a.Result.IntrinsicValue != b.Result.IntrinsicValue {
			t.Errorf("Expected identical intrinsic values, got %f and %f", a.Result.IntrinsicValue, b.Result.IntrinsicValue)
		}
		if a.Result.Schedule[0].DividendDate.Year() != 2026 {
			t.Errorf("Expected first dividend in 2026, got %s", a.Result.Schedule[0].DividendDate)
		}
	})

	t.Run("refuses a non-dividend payer", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().WithSummary(testutil.CreateMockNonPayerSummary())
		svc := testutil.NewTestValuationService(t, mock)

		_, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "BRK-B"})
		if !errors.Is(err, ddm.ErrNonDividendPayingEquity) {
			t.Errorf("Expected ErrNonDividendPayingEquity, got %v", err)
		}
		if !errors.Is(err, apperrors.ErrFailedToValue) {
			t.Errorf("Expected ErrFailedToValue, got %v", err)
		}
	})

	t.Run("proceeds for a non-dividend payer on request", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().WithSummary(testutil.CreateMockNonPayerSummary())
		svc := testutil.NewTestValuationService(t, mock)

		report, err := svc.Value(context.Background(), service.ValuationOptions{
			Ticker:                 "BRK-B",
			Policy:                 ddm.CustomShortTermGrowth{Rate: 0.05},
			ProceedWithoutDividend: true,
		})
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		if !report.Result.NonDividendPayer {
			t.Error("Expected the result to be flagged")
		}
	})

	t.Run("rejects a cost of equity at or below long-term growth", func(t *testing.T) {
		svc := testutil.NewTestValuationService(t, testutil.NewMockYahooClient())

		_, err := svc.Value(context.Background(), service.ValuationOptions{
			Ticker:       "WMT",
			CostOfEquity: ptr(0.03),
		})
		if !errors.Is(err, ddm.ErrTerminalValueUndefined) {
			t.Errorf("Expected ErrTerminalValueUndefined, got %v", err)
		}
	})

	t.Run("missing beta needs a cost of equity override", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().WithSummary(testutil.NewSummary().WithoutBeta().Build())
		svc := testutil.NewTestValuationService(t, mock)

		_, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "WMT"})
		if !errors.Is(err, ddm.ErrInsufficientFundamentals) {
			t.Errorf("Expected ErrInsufficientFundamentals, got %v", err)
		}

		report, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "WMT", CostOfEquity: ptr(0.08)})
		if err != nil {
			t.Fatalf("Value() returned unexpected error: %v", err)
		}
		if report.Result.CostOfEquitySource != "custom" {
			t.Errorf("Expected custom cost of equity, got %s", report.Result.CostOfEquitySource)
		}
	})

	t.Run("passes symbol not found through", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().WithError(apperrors.ErrSymbolNotFound)
		svc := testutil.NewTestValuationService(t, mock)

		_, err := svc.Value(context.Background(), service.ValuationOptions{Ticker: "NOPE"})
		if !errors.Is(err, apperrors.ErrSymbolNotFound) {
			t.Errorf("Expected ErrSymbolNotFound, got %v", err)
		}
	})
}

func TestSummarize(t *testing.T) {
	s := service.Summarize(ddm.Result{
		IntrinsicValue: 52.34567,
		LastPrice:      40.004,
		Difference:     12.34167,
		Ratio:          1.308511,
		ImpliedReturn:  ptr(0.0552749),
		Recommendation: ddm.Buy,
	})

	if s.TotalPresentValue != 52.35 || s.MarketPrice != 40.00 || s.ValuationDifference != 12.34 {
		t.Errorf("Expected 52.35/40.00/12.34, got %v/%v/%v", s.TotalPresentValue, s.MarketPrice, s.ValuationDifference)
	}
	if s.ValuationRatio != 1.3085 || s.ImpliedReturn == nil || *s.ImpliedReturn != 0.0553 {
		t.Errorf("Expected 1.3085/0.0553, got %v/%v", s.ValuationRatio, s.ImpliedReturn)
	}
	if s.Recommendation != "BUY" {
		t.Errorf("Expected BUY, got %s", s.Recommendation)
	}

	if s := service.Summarize(ddm.Result{IntrinsicValue: -0.14, LastPrice: 40}); s.ImpliedReturn != nil {
		t.Errorf("Expected no implied return, got %v", *s.ImpliedReturn)
	}
}
