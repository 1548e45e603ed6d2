package api_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/testutil"
)

func newTestRouter(t *testing.T, rateLimit float64) http.Handler {
	t.Helper()
	mock := testutil.NewMockYahooClient()
	ms := testutil.NewTestMarketService(t, mock)
	cfg := &config.Config{
		Server:    config.ServerConfig{RateLimitPerSecond: rateLimit},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
		Market:    testutil.TestMarketConfig(),
		Valuation: config.ValuationConfig{DefaultLongTermGrowth: 0.035, DefaultTicker: "WMT"},
	}
	return api.NewRouter(service.NewSystemService(ms), ms, service.NewValuationService(ms, 0.035), cfg)
}

// TestRouter tests route wiring end to end through the middleware stack.
func TestRouter(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"dashboard form", http.MethodGet, "/", "", http.StatusOK},
		{"dashboard result", http.MethodGet, "/dashboard?ticker=WMT", "", http.StatusOK},
		{"health", http.MethodGet, "/api/system/health", "", http.StatusOK},
		{"version", http.MethodGet, "/api/system/version", "", http.StatusOK},
		{"rates", http.MethodGet, "/api/market/rates", "", http.StatusOK},
		{"fundamentals", http.MethodGet, "/api/market/fundamentals/WMT", "", http.StatusOK},
		{"fundamentals bad ticker", http.MethodGet, "/api/market/fundamentals/W%20MT", "", http.StatusBadRequest},
		{"value by GET", http.MethodGet, "/api/valuation/WMT?policy=default", "", http.StatusOK},
		{"value by POST", http.MethodPost, "/api/valuation", `{"ticker":"WMT"}`, http.StatusOK},
		{"value bad ticker", http.MethodGet, "/api/valuation/%3Cscript%3E", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/portfolio", "", http.StatusNotFound},
	}

	router := newTestRouter(t, 0)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.want {
				t.Errorf("Expected %d, got %d: %s", tt.want, w.Code, w.Body.String())
			}
		})
	}
}

func TestRouter_RateLimit(t *testing.T) {
	router := newTestRouter(t, 1)

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/market/rates", nil))
		codes[i] = w.Code
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Expected third request throttled, got %v", codes)
	}

	// Health checks are not throttled.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/system/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected health 200, got %d", w.Code)
	}
}

func TestRouter_CORS(t *testing.T) {
	router := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/api/valuation", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Expected allowed origin echoed, got %q", got)
	}
}
