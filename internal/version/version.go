// Package version exposes build information. Version is overridden at build
// time with -ldflags "-X github.com/AHMerrill/Basic-Dividend-Discount/internal/version.Version=...".
package version

// Version is the application version.
var Version = "dev"

// ScheduledRateRefresh is the feature key that depends on configuration.
const ScheduledRateRefresh = "scheduled_rate_refresh"

// Features lists the capabilities built into every binary. Configuration
// dependent features such as ScheduledRateRefresh are added at runtime.
var Features = map[string]bool{
	"custom_cash_flows":        true,
	"custom_short_term_growth": true,
	"non_dividend_override":    true,
}
