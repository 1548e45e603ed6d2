package service_test

import (
	"testing"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/testutil"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/version"
)

// TestSystemService_CheckVersion tests the reported feature set.
//
// WHY: Clients read the features map to decide what to offer. The scheduled
// refresh must follow MARKET_REFRESH_SCHEDULE rather than claim to be on.
func TestSystemService_CheckVersion(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
		want     bool
	}{
		{"schedule configured", "@every 1h", true},
		{"schedule disabled", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			cfg := testutil.TestMarketConfig()
			cfg.RefreshSchedule = tt.schedule
			svc := service.NewSystemService(service.NewMarketService(testutil.NewMockYahooClient(), cfg))

			// Execute
			info, err := svc.CheckVersion()

			// Assert
			if err != nil {
				t.Fatalf("CheckVersion() returned unexpected error: %v", err)
			}
			if got, ok := info.Features[version.ScheduledRateRefresh]; !ok || got != tt.want {
				t.Errorf("Expected %s=%v, got %v (present=%v)", version.ScheduledRateRefresh, tt.want, got, ok)
			}
			if !info.Features["custom_cash_flows"] {
				t.Error("Expected built-in features to be reported")
			}
		})
	}

	t.Run("does not modify the shared feature map", func(t *testing.T) {
		cfg := testutil.TestMarketConfig()
		cfg.RefreshSchedule = "@every 1h"
		svc := service.NewSystemService(service.NewMarketService(testutil.NewMockYahooClient(), cfg))

		if _, err := svc.CheckVersion(); err != nil {
			t.Fatalf("CheckVersion() returned unexpected error: %v", err)
		}
		if _, ok := version.Features[version.ScheduledRateRefresh]; ok {
			t.Error("Expected the built-in feature map to stay unchanged")
		}
	})
}
