package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/handlers"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/response"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/apperrors"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/testutil"
)

func newValuationHandler(t *testing.T, mock *testutil.MockYahooClient) *handlers.ValuationHandler {
	t.Helper()
	return handlers.NewValuationHandler(testutil.NewTestValuationService(t, mock))
}

func postValuation(t *testing.T, handler *handlers.ValuationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/valuation", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.Value(w, req)
	return w
}

// TestValuationHandler_Value tests POST /api/valuation.
//
// WHY: This is the primary API. Each failure class must surface with its own
// status so clients can tell bad input from an unvaluable equity from an
// upstream outage.
//
//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestValuationHandler_Value(t *testing.T) {
	t.Run("values a ticker with the default policy", func(t *testing.T) {
		// Setup
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		// Execute
		w := postValuation(t, handler, `{"ticker":"wmt","valuationDate":"2026-07-02"}`)

		// Assert
		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", ct)
		}

		var resp handlers.ValuationResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Ticker != "WMT" {
			t.Errorf("Expected ticker WMT, got %s", resp.Ticker)
		}
		if resp.ID == "" {
			t.Error("Expected a report ID")
		}
		if resp.Result.Policy != ddm.KindDefaultGrowth {
			t.Errorf("Expected default policy, got %s", resp.Result.Policy)
		}
		if len(resp.Result.Schedule) != ddm.Periods {
			t.Errorf("Expected %d periods, got %d", ddm.Periods, len(resp.Result.Schedule))
		}
		if resp.Result.Schedule[0].DividendDate.Format("2006-01-02") != "2026-12-31" {
			t.Errorf("Expected first dividend on 2026-12-31, got %s", resp.Result.Schedule[0].DividendDate)
		}
		if resp.Summary.MarketPrice != 40.00 {
			t.Errorf("Expected market price 40.00, got %f", resp.Summary.MarketPrice)
		}
		if resp.Summary.Recommendation != string(resp.Result.Recommendation) {
			t.Errorf("Expected summary recommendation %s, got %s", resp.Result.Recommendation, resp.Summary.Recommendation)
		}
	})

	t.Run("values with custom cash flows", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		w := postValuation(t, handler, `{
			"ticker": "WMT",
			"policy": "customCashFlows",
			"cashFlows": [2.1, 2.2, 2.3, 2.4, 2.5],
			"costOfEquity": 0.08
		}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp handlers.ValuationResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Result.Schedule[4].Dividend != 2.5 {
			t.Errorf("Expected last dividend 2.5, got %f", resp.Result.Schedule[4].Dividend)
		}
		if resp.Result.CostOfEquitySource != "custom" {
			t.Errorf("Expected custom cost of equity, got %s", resp.Result.CostOfEquitySource)
		}
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		w := postValuation(t, handler, `{"ticker":`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 with field details when validation fails", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		w := postValuation(t, handler, `{"ticker":"WMT","policy":"customCashFlows","cashFlows":[1,2,3]}`)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected status 400, got %d", w.Code)
		}
		var resp struct {
			Error   string            `json:"error"`
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if _, ok := resp.Details["cashFlows"]; !ok {
			t.Errorf("Expected cashFlows field error, got %v", resp.Details)
		}
	})

	t.Run("returns 404 for an unknown ticker", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient().WithError(apperrors.ErrSymbolNotFound))

		w := postValuation(t, handler, `{"ticker":"NOPE"}`)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 422 for a non-dividend payer", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().WithSummary(testutil.CreateMockNonPayerSummary())
		handler := newValuationHandler(t, mock)

		w := postValuation(t, handler, `{"ticker":"BRK-B"}`)

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("Expected status 422, got %d: %s", w.Code, w.Body.String())
		}
		var resp response.ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Error != apperrors.ErrFailedToValue.Error() {
			t.Errorf("Expected error %q, got %q", apperrors.ErrFailedToValue.Error(), resp.Error)
		}
	})

	t.Run("values a non-dividend payer when asked to proceed", func(t *testing.T) {
		mock := testutil.NewMockYahooClient().WithSummary(testutil.CreateMockNonPayerSummary())
		handler := newValuationHandler(t, mock)

		w := postValuation(t, handler, `{"ticker":"BRK-B","policy":"customShortTermGrowth","shortTermGrowth":0.05,"proceedWithoutDividend":true}`)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp handlers.ValuationResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.Result.NonDividendPayer {
			t.Error("Expected nonDividendPayer to be flagged")
		}
	})

	t.Run("returns 422 when cost of equity does not exceed long-term growth", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		w := postValuation(t, handler, `{"ticker":"WMT","costOfEquity":0.03,"longTermGrowth":0.035}`)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 502 when fundamentals cannot be retrieved", func(t *testing.T) {
		mock := testutil.NewMockYahooClient()
		mock.MockError = errTestUpstream
		handler := newValuationHandler(t, mock)

		w := postValuation(t, handler, `{"ticker":"WMT"}`)

		if w.Code != http.StatusBadGateway {
			t.Errorf("Expected status 502, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestValuationHandler_ValueTicker(t *testing.T) {
	t.Run("reads options from the query string", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/valuation/KO", map[string]string{
			"policy":          "customShortTermGrowth",
			"shortTermGrowth": "0.05",
			"valuationDate":   "2026-03-01",
		})
		req = testutil.WithURLParams(req, map[string]string{"ticker": "KO"})
		w := httptest.NewRecorder()

		handler.ValueTicker(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		var resp handlers.ValuationResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Ticker != "KO" || resp.Result.Policy != ddm.KindCustomShortTermGrowth {
			t.Errorf("Expected KO/customShortTermGrowth, got %s/%s", resp.Ticker, resp.Result.Policy)
		}
		if resp.Result.Schedule[1].GrowthFromPrevious != 0.05 {
			t.Errorf("Expected growth 0.05, got %f", resp.Result.Schedule[1].GrowthFromPrevious)
		}
	})

	t.Run("returns 400 for a malformed query parameter", func(t *testing.T) {
		handler := newValuationHandler(t, testutil.NewMockYahooClient())

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/valuation/KO", map[string]string{
			"longTermGrowth": "three percent",
		})
		req = testutil.WithURLParams(req, map[string]string{"ticker": "KO"})
		w := httptest.NewRecorder()

		handler.ValueTicker(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

// TestValuationHandler_NegativeIntrinsicValue tests a default-growth run
// whose payout ratio drives growth below -100%.
//
// WHY: The negative intrinsic value makes the implied return undefined. The
// response must still be a complete 200 body with the field omitted.
func TestValuationHandler_NegativeIntrinsicValue(t *testing.T) {
	// Setup
	mock := testutil.NewMockYahooClient().WithSummary(
		testutil.NewSummary().WithROE(0.4).WithPayoutRatio(4.0).Build(),
	)
	handler := newValuationHandler(t, mock)

	// Execute
	w := postValuation(t, handler, `{"ticker":"WMT","costOfEquity":0.10,"valuationDate":"2026-07-02"}`)

	// Assert
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.Len() == 0 {
		t.Fatal("Expected a response body")
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	result := resp["result"].(map[string]any)
	if iv := result["intrinsicValue"].(float64); iv >= 0 {
		t.Errorf("Expected a negative intrinsic value, got %f", iv)
	}
	if _, ok := result["impliedReturn"]; ok {
		t.Errorf("Expected impliedReturn omitted from the result, got %v", result["impliedReturn"])
	}
	summary := resp["summary"].(map[string]any)
	if _, ok := summary["impliedReturn"]; ok {
		t.Errorf("Expected impliedReturn omitted from the summary, got %v", summary["impliedReturn"])
	}
	if summary["recommendation"] != "SELL" {
		t.Errorf("Expected SELL, got %v", summary["recommendation"])
	}
}
