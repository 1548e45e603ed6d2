package model

import (
	"time"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
)

// Rate sources recorded on a MarketSnapshot.
const (
	SourceProvider = "provider"
	SourceFallback = "fallback"
)

// MarketSnapshot is the ticker-independent rate snapshot plus where each
// figure came from.
type MarketSnapshot struct {
	ddm.MarketRates
	RiskPremium        float64   `json:"riskPremium"`
	RiskFreeSource     string    `json:"riskFreeSource"`     // SourceProvider or SourceFallback
	EquityReturnSource string    `json:"equityReturnSource"` // SourceProvider or SourceFallback
	RiskFreeSymbol     string    `json:"riskFreeSymbol"`
	EquityIndexSymbol  string    `json:"equityIndexSymbol"`
	FetchedAt          time.Time `json:"fetchedAt"`
}

// UsedFallback reports whether either rate is a fallback constant.
func (s MarketSnapshot) UsedFallback() bool {
	return s.RiskFreeSource == SourceFallback || s.EquityReturnSource == SourceFallback
}
