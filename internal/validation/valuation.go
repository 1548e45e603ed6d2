package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/api/request"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/service"
)

// ValidateValuation checks a valuation request and converts it into service
// options. Every field problem is collected into one *Error.
func ValidateValuation(req request.ValuationRequest) (service.ValuationOptions, error) {
	var verr Error
	opts := service.ValuationOptions{
		Ticker:                 strings.ToUpper(strings.TrimSpace(req.Ticker)),
		LongTermGrowth:         req.LongTermGrowth,
		CostOfEquity:           req.CostOfEquity,
		ProceedWithoutDividend: req.ProceedWithoutDividend,
	}

	if opts.Ticker == "" {
		verr.Add("ticker", "ticker is required")
	} else if err := ValidateTicker(opts.Ticker); err != nil {
		verr.Add("ticker", err.Error())
	}

	switch ddm.PolicyKind(req.Policy) {
	case "", ddm.KindDefaultGrowth:
		opts.Policy = ddm.DefaultGrowth{}
		if req.ShortTermGrowth != nil {
			verr.Add("shortTermGrowth", "shortTermGrowth is only used by the customShortTermGrowth policy")
		}
	case ddm.KindCustomCashFlows:
		switch {
		case len(req.CashFlows) != ddm.Periods:
			verr.Add("cashFlows", fmt.Sprintf("exactly %d cash flows are required, got %d", ddm.Periods, len(req.CashFlows)))
		case anyNegative(req.CashFlows):
			verr.Add("cashFlows", "cash flows cannot be negative")
		}
		opts.Policy = ddm.CustomCashFlows{Dividends: req.CashFlows}
	case ddm.KindCustomShortTermGrowth:
		switch {
		case req.ShortTermGrowth == nil:
			verr.Add("shortTermGrowth", "shortTermGrowth is required for the customShortTermGrowth policy")
		case !finite(*req.ShortTermGrowth) || *req.ShortTermGrowth < 0:
			verr.Add("shortTermGrowth", "shortTermGrowth must be a non-negative number")
		default:
			opts.Policy = ddm.CustomShortTermGrowth{Rate: *req.ShortTermGrowth}
		}
	default:
		verr.Add("policy", fmt.Sprintf("policy must be one of %s, %s, %s",
			ddm.KindDefaultGrowth, ddm.KindCustomCashFlows, ddm.KindCustomShortTermGrowth))
	}

	if len(req.CashFlows) > 0 && ddm.PolicyKind(req.Policy) != ddm.KindCustomCashFlows {
		verr.Add("cashFlows", "cashFlows are only used by the customCashFlows policy")
	}

	if req.LongTermGrowth != nil && (!finite(*req.LongTermGrowth) || math.Abs(*req.LongTermGrowth) >= 1) {
		verr.Add("longTermGrowth", "longTermGrowth must be a decimal rate between -1 and 1")
	}
	if req.CostOfEquity != nil && (!finite(*req.CostOfEquity) || *req.CostOfEquity <= 0 || *req.CostOfEquity >= 1) {
		verr.Add("costOfEquity", "costOfEquity must be a decimal rate between 0 and 1")
	}

	if req.ValuationDate != "" {
		date, err := ParseDate(req.ValuationDate)
		if err != nil {
			verr.Add("valuationDate", err.Error())
		}
		opts.ValuationDate = date
	}

	if err := verr.Err(); err != nil {
		return service.ValuationOptions{}, err
	}
	return opts, nil
}

func anyNegative(values []float64) bool {
	for _, v := range values {
		if !finite(v) || v < 0 {
			return true
		}
	}
	return false
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
