package service

import (
	"context"
	"maps"
	"runtime"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	marketService *MarketService
}

// NewSystemService creates a new SystemService
func NewSystemService(marketService *MarketService) *SystemService {
	return &SystemService{
		marketService: marketService,
	}
}

// CheckHealth reports whether the rate snapshot can be produced. Fallback
// constants count as healthy; only a cancelled or failed fetch does not.
func (s *SystemService) CheckHealth(ctx context.Context) (model.MarketSnapshot, error) {
	return s.marketService.GetMarketRates(ctx)
}

// CheckVersion returns build and feature information. The scheduled rate
// refresh is reported only when a refresh schedule is configured.
func (s *SystemService) CheckVersion() (model.VersionInfo, error) {
	features := maps.Clone(version.Features)
	features[version.ScheduledRateRefresh] = s.marketService.cfg.RefreshSchedule != ""
	return model.VersionInfo{
		AppVersion: version.Version,
		GoVersion:  runtime.Version(),
		Features:   features,
	}, nil
}
