package ddm

import (
	"fmt"
	"math"
	"time"
)

// Fundamentals is the per-ticker snapshot the engine values. Optional figures
// are pointers: nil means the market data provider did not report them.
type Fundamentals struct {
	CompanyName      string     `json:"companyName"`
	TrailingDividend float64    `json:"trailingDividend"`
	ForwardDividend  *float64   `json:"forwardDividend,omitempty"`
	ROE              *float64   `json:"roe,omitempty"`
	PayoutRatio      *float64   `json:"payoutRatio,omitempty"`
	Beta             *float64   `json:"beta,omitempty"`
	LastPrice        float64    `json:"lastPrice"`
	NextDividendDate *time.Time `json:"nextDividendDate,omitempty"`
}

// PaysDividend reports whether the provider announced an upcoming dividend.
func (f Fundamentals) PaysDividend() bool {
	return f.NextDividendDate != nil
}

// NearTermGrowth is ROE × plowback ratio, the growth used by DefaultGrowth.
func (f Fundamentals) NearTermGrowth() (float64, error) {
	roe, err := required("return on equity", f.ROE)
	if err != nil {
		return 0, err
	}
	payout, err := required("payout ratio", f.PayoutRatio)
	if err != nil {
		return 0, err
	}
	return roe * (1 - payout), nil
}

// MarketRates is the ticker-independent rate snapshot.
type MarketRates struct {
	RiskFreeRate float64 `json:"riskFreeRate"`
	EquityReturn float64 `json:"equityReturn"`
}

// RiskPremium is the equity return in excess of the risk-free rate.
func (r MarketRates) RiskPremium() float64 {
	return r.EquityReturn - r.RiskFreeRate
}

// CostOfEquity derives k_e by CAPM: rf + β × (equity return − rf).
func CostOfEquity(beta *float64, rates MarketRates) (float64, error) {
	b, err := required("beta", beta)
	if err != nil {
		return 0, err
	}
	if !finite(rates.RiskFreeRate) {
		return 0, fmt.Errorf("%w: risk-free rate is not a number", ErrInsufficientFundamentals)
	}
	if !finite(rates.EquityReturn) {
		return 0, fmt.Errorf("%w: equity return is not a number", ErrInsufficientFundamentals)
	}
	return rates.RiskFreeRate + b*rates.RiskPremium(), nil
}

func required(name string, v *float64) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("%w: %s is missing", ErrInsufficientFundamentals, name)
	}
	if !finite(*v) {
		return 0, fmt.Errorf("%w: %s is not a number", ErrInsufficientFundamentals, name)
	}
	return *v, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
