package testutil

import (
	"testing"
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/config"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/yahoo"
)

// TestMarketConfig returns the production market defaults.
func TestMarketConfig() config.MarketConfig {
	return config.MarketConfig{
		RiskFreeSymbol:       "^TNX",
		EquityIndexSymbol:    "^SP500TR",
		RiskFreeFallback:     0.0422,
		EquityReturnFallback: 0.1119,
		RatesTTL:             time.Hour,
		RefreshSchedule:      "",
	}
}

func NewTestMarketService(t *testing.T, yahooClient yahoo.Client) *service.MarketService {
	t.Helper()

	return service.NewMarketService(yahooClient, TestMarketConfig())
}

func NewTestValuationService(t *testing.T, yahooClient yahoo.Client) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(NewTestMarketService(t, yahooClient), 0.035)
}

func NewTestSystemService(t *testing.T, yahooClient yahoo.Client) *service.SystemService {
	t.Helper()

	return service.NewSystemService(NewTestMarketService(t, yahooClient))
}
