package request

import (
	"errors"
	"net/url"
	"testing"
)

func TestValuationRequestFromQuery(t *testing.T) {
	t.Run("parses every parameter", func(t *testing.T) {
		q := url.Values{}
		q.Set("policy", "customCashFlows")
		q.Set("cashFlows", "2.1, 2.2,2.3,2.4,2.5")
		q.Set("longTermGrowth", "0.03")
		q.Set("costOfEquity", "0.08")
		q.Set("valuationDate", "2026-07-02")
		q.Set("proceedWithoutDividend", "true")

		req, err := ValuationRequestFromQuery("WMT", q)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if req.Ticker != "WMT" || req.Policy != "customCashFlows" {
			t.Errorf("Expected WMT/customCashFlows, got %s/%s", req.Ticker, req.Policy)
		}
		if len(req.CashFlows) != 5 || req.CashFlows[1] != 2.2 {
			t.Errorf("Expected five cash flows, got %v", req.CashFlows)
		}
		if req.LongTermGrowth == nil || *req.LongTermGrowth != 0.03 {
			t.Errorf("Expected long-term growth 0.03, got %v", req.LongTermGrowth)
		}
		if req.CostOfEquity == nil || *req.CostOfEquity != 0.08 {
			t.Errorf("Expected cost of equity 0.08, got %v", req.CostOfEquity)
		}
		if req.ShortTermGrowth != nil {
			t.Errorf("Expected no short-term growth, got %v", *req.ShortTermGrowth)
		}
		if !req.ProceedWithoutDividend {
			t.Error("Expected proceedWithoutDividend to be true")
		}
	})

	t.Run("empty query leaves everything unset", func(t *testing.T) {
		req, err := ValuationRequestFromQuery("KO", url.Values{})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if req.Policy != "" || req.CashFlows != nil || req.LongTermGrowth != nil || req.ProceedWithoutDividend {
			t.Errorf("Expected zero request, got %+v", req)
		}
	})

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bad cash flow", "cashFlows", "1,two,3"},
		{"bad growth", "shortTermGrowth", "fast"},
		{"bad long-term growth", "longTermGrowth", "3%"},
		{"bad cost of equity", "costOfEquity", "x"},
		{"bad boolean", "proceedWithoutDividend", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := url.Values{}
			q.Set(tt.key, tt.value)

			_, err := ValuationRequestFromQuery("WMT", q)
			if !errors.Is(err, ErrMalformedQuery) {
				t.Errorf("Expected ErrMalformedQuery, got %v", err)
			}
		})
	}
}
