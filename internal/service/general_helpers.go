package service

import (
	"math"

	"github.com/AHMerrill/Basic-Dividend-Discount/internal/ddm"
	"github.com/AHMerrill/Basic-Dividend-Discount/internal/model"
)

// RoundingPrecision is the display precision for monetary values (0.01).
const RoundingPrecision = 100

// round rounds a float64 value to two decimal places using the package RoundingPrecision constant.
// Rounding is for display only; the engine never sees rounded figures.
//
// Example:
//
//	round(123.456789)  // returns 123.46
//	round(0.005)       // returns 0.01
//	round(1.994)       // returns 1.99
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}

// roundRate rounds a rate to four decimal places (0.01%).
func roundRate(value float64) float64 {
	return math.Round(value*10000) / 10000
}

// Summarize builds the rounded statistics table for a valuation result.
func Summarize(r ddm.Result) model.Summary {
	return model.Summary{
		TotalPresentValue:   round(r.IntrinsicValue),
		MarketPrice:         round(r.LastPrice),
		ValuationDifference: round(r.Difference),
		ValuationRatio:      roundRate(r.Ratio),
		ImpliedReturn:       roundOptionalRate(r.ImpliedReturn),
		Recommendation:      string(r.Recommendation),
	}
}

func roundOptionalRate(value *float64) *float64 {
	if value == nil {
		return nil
	}
	v := roundRate(*value)
	return &v
}
