package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/request"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
)

func ptr(v float64) *float64 { return &v }

// TestValidateValuation tests request validation and conversion to service options.
//
// WHY: Bad input must be rejected at the boundary with a message per field,
// and accepted input must map onto exactly one projection policy.
func TestValidateValuation(t *testing.T) {
	t.Run("defaults to the default growth policy", func(t *testing.T) {
		opts, err := ValidateValuation(request.ValuationRequest{Ticker: " wmt "})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if opts.Ticker != "WMT" {
			t.Errorf("Expected ticker WMT, got %s", opts.Ticker)
		}
		if _, ok := opts.Policy.(ddm.DefaultGrowth); !ok {
			t.Errorf("Expected DefaultGrowth, got %T", opts.Policy)
		}
		if !opts.ValuationDate.IsZero() {
			t.Errorf("Expected zero valuation date, got %s", opts.ValuationDate)
		}
	})

	t.Run("maps custom cash flows", func(t *testing.T) {
		opts, err := ValidateValuation(request.ValuationRequest{
			Ticker:    "KO",
			Policy:    "customCashFlows",
			CashFlows: []float64{1, 2, 3, 4, 5},
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		p, ok := opts.Policy.(ddm.CustomCashFlows)
		if !ok || len(p.Dividends) != 5 {
			t.Errorf("Expected CustomCashFlows with 5 dividends, got %#v", opts.Policy)
		}
	})

	t.Run("maps custom short-term growth and the valuation date", func(t *testing.T) {
		opts, err := ValidateValuation(request.ValuationRequest{
			Ticker:          "PG",
			Policy:          "customShortTermGrowth",
			ShortTermGrowth: ptr(0.06),
			ValuationDate:   "2026-07-02",
			CostOfEquity:    ptr(0.08),
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if p, ok := opts.Policy.(ddm.CustomShortTermGrowth); !ok || p.Rate != 0.06 {
			t.Errorf("Expected CustomShortTermGrowth 0.06, got %#v", opts.Policy)
		}
		if !opts.ValuationDate.Equal(time.Date(2026, time.July, 2, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("Expected 2026-07-02, got %s", opts.ValuationDate)
		}
		if opts.CostOfEquity == nil || *opts.CostOfEquity != 0.08 {
			t.Errorf("Expected cost of equity 0.08, got %v", opts.CostOfEquity)
		}
	})

	tests := []struct {
		name  string
		req   request.ValuationRequest
		field string
	}{
		{"missing ticker", request.ValuationRequest{}, "ticker"},
		{"malformed ticker", request.ValuationRequest{Ticker: "W M T"}, "ticker"},
		{"unknown policy", request.ValuationRequest{Ticker: "WMT", Policy: "magic"}, "policy"},
		{"four cash flows", request.ValuationRequest{Ticker: "WMT", Policy: "customCashFlows", CashFlows: []float64{1, 2, 3, 4}}, "cashFlows"},
		{"negative cash flow", request.ValuationRequest{Ticker: "WMT", Policy: "customCashFlows", CashFlows: []float64{1, 2, -3, 4, 5}}, "cashFlows"},
		{"cash flows with default policy", request.ValuationRequest{Ticker: "WMT", CashFlows: []float64{1, 2, 3, 4, 5}}, "cashFlows"},
		{"missing short-term growth", request.ValuationRequest{Ticker: "WMT", Policy: "customShortTermGrowth"}, "shortTermGrowth"},
		{"negative short-term growth", request.ValuationRequest{Ticker: "WMT", Policy: "customShortTermGrowth", ShortTermGrowth: ptr(-0.01)}, "shortTermGrowth"},
		{"percentage long-term growth", request.ValuationRequest{Ticker: "WMT", LongTermGrowth: ptr(3.5)}, "longTermGrowth"},
		{"zero cost of equity", request.ValuationRequest{Ticker: "WMT", CostOfEquity: ptr(0)}, "costOfEquity"},
		{"bad date", request.ValuationRequest{Ticker: "WMT", ValuationDate: "07/02/2026"}, "valuationDate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateValuation(tt.req)

			var vErr *Error
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected *validation.Error, got %v", err)
			}
			if _, ok := vErr.Fields[tt.field]; !ok {
				t.Errorf("Expected error on field %q, got %v", tt.field, vErr.Fields)
			}
		})
	}
}

func TestValidateTicker(t *testing.T) {
	for _, ticker := range []string{"WMT", "brk-b", "^TNX", "RDS.A", "EURUSD=X"} {
		if err := ValidateTicker(ticker); err != nil {
			t.Errorf("Expected %q to be valid, got %v", ticker, err)
		}
	}
	for _, ticker := range []string{"", "W MT", "WMT;DROP", "ABCDEFGHIJKLMNOPQ", "<script>"} {
		if err := ValidateTicker(ticker); !errors.Is(err, ErrInvalidTicker) {
			t.Errorf("Expected %q to be invalid, got %v", ticker, err)
		}
	}
}

func TestError(t *testing.T) {
	var verr Error
	if verr.Err() != nil {
		t.Fatal("Expected nil error with no fields")
	}

	verr.Add("ticker", "ticker is required")
	verr.Add("cashFlows", "cash flows cannot be negative")
	verr.Add("ticker", "second message is ignored")

	if got, want := verr.Err().Error(), "cashFlows: cash flows cannot be negative; ticker: ticker is required"; got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
