// Package ddm implements the five-year Dividend Discount Model.
//
// The package is pure: it performs no I/O, holds no state between calls and
// takes market data as already-resolved inputs. A valuation is a single call
// to Value with an immutable Request.
package ddm

import (
	"fmt"
	"math"
	"time"
)

// Recommendation compares intrinsic value with the market price.
type Recommendation string

const (
	Buy  Recommendation = "BUY"
	Sell Recommendation = "SELL"
	Hold Recommendation = "HOLD"
)

// Request is one valuation. LongTermGrowth and CostOfEquity are optional
// overrides; when CostOfEquity is nil it is derived by CAPM from Fundamentals.Beta
// and Rates.
type Request struct {
	Fundamentals   Fundamentals
	Rates          MarketRates
	Policy         Policy
	LongTermGrowth *float64
	CostOfEquity   *float64
	ValuationDate  time.Time

	// ProceedWithoutDividend runs the model for an equity with no announced
	// dividend instead of failing with ErrNonDividendPayingEquity.
	ProceedWithoutDividend bool
}

// Result is the output of a valuation.
type Result struct {
	Policy             PolicyKind     `json:"policy"`
	Schedule           Schedule       `json:"schedule"`
	IntrinsicValue     float64        `json:"intrinsicValue"`
	LastPrice          float64        `json:"lastPrice"`
	Difference         float64        `json:"valuationDifference"`
	Ratio              float64        `json:"valuationRatio"`
	ImpliedReturn      *float64       `json:"impliedReturn,omitempty"`
	Recommendation     Recommendation `json:"recommendation"`
	CostOfEquity       float64        `json:"costOfEquity"`
	CostOfEquitySource string         `json:"costOfEquitySource"`
	LongTermGrowth     float64        `json:"longTermGrowth"`
	NearTermGrowth     *float64       `json:"nearTermGrowth,omitempty"`
	RiskFreeRate       float64        `json:"riskFreeRate"`
	MarketRiskPremium  float64        `json:"marketRiskPremium"`
	YearFraction       float64        `json:"yearFraction"`
	NonDividendPayer   bool           `json:"nonDividendPayer"`
}

// Value runs the full model: partial-year adjustment, cash-flow projection,
// cost of equity, terminal value and discounting.
func Value(req Request) (Result, error) {
	f := req.Fundamentals

	nonPayer := !f.PaysDividend()
	if nonPayer && !req.ProceedWithoutDividend {
		return Result{}, fmt.Errorf("%w: %s has no upcoming dividend date", ErrNonDividendPayingEquity, displayName(f))
	}
	if err := checkFundamentals(f, req.Policy, nonPayer); err != nil {
		return Result{}, err
	}

	ltg := DefaultLongTermGrowth
	if req.LongTermGrowth != nil {
		ltg = *req.LongTermGrowth
	}

	ke, source, err := costOfEquity(req)
	if err != nil {
		return Result{}, err
	}
	if ke <= ltg {
		return Result{}, fmt.Errorf("%w (k_e=%.4f, g=%.4f)", ErrTerminalValueUndefined, ke, ltg)
	}

	projection, err := ProjectCashFlows(req.Policy, f)
	if err != nil {
		return Result{}, err
	}

	fraction, yearEnd := YearFraction(req.ValuationDate)
	schedule, err := BuildSchedule(ScheduleInput{
		Projection:     projection,
		YearFraction:   fraction,
		FirstDividend:  yearEnd,
		CostOfEquity:   ke,
		LongTermGrowth: ltg,
	})
	if err != nil {
		return Result{}, err
	}

	iv := schedule.IntrinsicValue()
	result := Result{
		Policy:             req.Policy.Kind(),
		Schedule:           schedule,
		IntrinsicValue:     iv,
		LastPrice:          f.LastPrice,
		Difference:         iv - f.LastPrice,
		Ratio:              iv / f.LastPrice,
		Recommendation:     Recommend(iv, f.LastPrice),
		CostOfEquity:       ke,
		CostOfEquitySource: source,
		LongTermGrowth:     ltg,
		RiskFreeRate:       req.Rates.RiskFreeRate,
		MarketRiskPremium:  req.Rates.RiskPremium(),
		YearFraction:       fraction,
		NonDividendPayer:   nonPayer,
	}
	if r, ok := ImpliedReturn(iv, f.LastPrice); ok {
		result.ImpliedReturn = &r
	}
	if g, err := f.NearTermGrowth(); err == nil {
		result.NearTermGrowth = &g
	}
	return result, nil
}

// ImpliedReturn is the annualised return over the five-year horizon if the
// price converges to intrinsic value: (iv/price)^(1/5) - 1. It is undefined,
// and ok is false, unless both intrinsic value and price are positive.
func ImpliedReturn(intrinsic, price float64) (float64, bool) {
	if !(intrinsic > 0) || !(price > 0) {
		return 0, false
	}
	return math.Pow(intrinsic/price, 1.0/Periods) - 1, true
}

// Recommend returns BUY when the equity is undervalued, SELL when overvalued.
func Recommend(intrinsic, price float64) Recommendation {
	switch {
	case intrinsic > price:
		return Buy
	case intrinsic < price:
		return Sell
	default:
		return Hold
	}
}

func costOfEquity(req Request) (float64, string, error) {
	if req.CostOfEquity != nil {
		if !finite(*req.CostOfEquity) {
			return 0, "", fmt.Errorf("%w: cost of equity override is not a number", ErrInvalidPolicyInput)
		}
		return *req.CostOfEquity, "custom", nil
	}
	ke, err := CostOfEquity(req.Fundamentals.Beta, req.Rates)
	if err != nil {
		return 0, "", err
	}
	return ke, "capm", nil
}

func checkFundamentals(f Fundamentals, policy Policy, nonPayer bool) error {
	if !finite(f.LastPrice) || f.LastPrice <= 0 {
		return fmt.Errorf("%w: last price must be positive", ErrInsufficientFundamentals)
	}
	if !finite(f.TrailingDividend) || f.TrailingDividend < 0 {
		return fmt.Errorf("%w: trailing dividend must be a non-negative number", ErrInsufficientFundamentals)
	}
	// A zero trailing dividend under CustomCashFlows surfaces as ErrDivisionByZero
	// from the projection instead.
	if _, custom := policy.(CustomCashFlows); !custom && !nonPayer && f.TrailingDividend == 0 {
		return fmt.Errorf("%w: trailing dividend must be positive for a dividend payer", ErrInsufficientFundamentals)
	}
	return nil
}

func displayName(f Fundamentals) string {
	if f.CompanyName == "" {
		return "equity"
	}
	return f.CompanyName
}
