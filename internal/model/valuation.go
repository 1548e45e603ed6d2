package model

import (
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
)

// ValuationReport is one completed valuation run as returned by the API,
// the dashboard and the CLI.
type ValuationReport struct {
	ID           string           `json:"id"`           // Run identifier, also written to the log line
	Ticker       string           `json:"ticker"`       // Upper-cased ticker symbol
	GeneratedAt  time.Time        `json:"generatedAt"`  // Wall-clock time the run completed
	Fundamentals ddm.Fundamentals `json:"fundamentals"` // Per-ticker inputs as fetched
	Rates        MarketSnapshot   `json:"rates"`        // Market rates used, with provenance
	Result       ddm.Result       `json:"result"`       // Engine output
}

// Summary is the rounded statistics table shown beneath the schedule.
type Summary struct {
	TotalPresentValue   float64  `json:"totalPresentValue"`
	MarketPrice         float64  `json:"marketPrice"`
	ValuationDifference float64  `json:"valuationDifference"`
	ValuationRatio      float64  `json:"valuationRatio"`
	ImpliedReturn       *float64 `json:"impliedReturn,omitempty"` // nil when intrinsic value is not positive
	Recommendation      string   `json:"recommendation"`
}
