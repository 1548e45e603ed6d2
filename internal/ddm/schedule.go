package ddm

import (
	"fmt"
	"math"
	"time"
)

// Period is one row of the cash-flow schedule.
type Period struct {
	Index              int       `json:"period"`
	DividendDate       time.Time `json:"dividendDate"`
	PeriodsToDiscount  float64   `json:"periodsToDiscount"`
	Dividend           float64   `json:"dividend"`
	GrowthFromPrevious float64   `json:"growthFromPrevious"`
	PartialYearFactor  float64   `json:"partialYearAdjustment"`
	AdjustedDividend   float64   `json:"adjustedDividend"`
	TerminalValue      float64   `json:"terminalValue"`
	PeriodSum          float64   `json:"periodSum"`
	PresentValue       float64   `json:"presentValue"`
}

// Schedule is the fixed five-period discounting table.
type Schedule [Periods]Period

// IntrinsicValue sums the present values of all periods.
func (s Schedule) IntrinsicValue() float64 {
	var total float64
	for _, p := range s {
		total += p.PresentValue
	}
	return total
}

// ScheduleInput carries everything BuildSchedule needs. It is separate from
// Request so callers can supply a year fraction directly.
type ScheduleInput struct {
	Projection     Projection
	YearFraction   float64
	FirstDividend  time.Time
	CostOfEquity   float64
	LongTermGrowth float64
}

// PerpetuityPV is the Gordon growth value, at the final forecast period, of a
// dividend stream that grows at g forever: cf × (1+g) / (k − g).
func PerpetuityPV(cashFlow, growth, discount float64) (float64, error) {
	if !finite(cashFlow) || !finite(growth) || !finite(discount) {
		return 0, fmt.Errorf("%w: non-numeric perpetuity input", ErrTerminalValueUndefined)
	}
	if discount <= growth {
		return 0, fmt.Errorf("%w (k_e=%.4f, g=%.4f)", ErrTerminalValueUndefined, discount, growth)
	}
	return cashFlow * (1 + growth) / (discount - growth), nil
}

// DiscountExponent returns the number of years period k (1-based) is
// discounted by: the year fraction for period 1, then (k−1) + fraction.
func DiscountExponent(period int, yearFraction float64) float64 {
	return float64(period-1) + yearFraction
}

// BuildSchedule discounts the projected dividends, with the terminal value
// attached to period 5, back to today at the cost of equity.
//
// Only period 1 is scaled by the year fraction; every later period lands on
// an anniversary of the first dividend date.
func BuildSchedule(in ScheduleInput) (Schedule, error) {
	if !finite(in.YearFraction) || in.YearFraction < 0 {
		return Schedule{}, fmt.Errorf("%w: year fraction %g is out of range", ErrInvalidPolicyInput, in.YearFraction)
	}

	terminal, err := PerpetuityPV(in.Projection.CashFlows[Periods-1], in.LongTermGrowth, in.CostOfEquity)
	if err != nil {
		return Schedule{}, err
	}

	var s Schedule
	for i := range Periods {
		k := i + 1
		adjustment := 1.0
		if k == 1 {
			adjustment = in.YearFraction
		}
		var tv float64
		if k == Periods {
			tv = terminal
		}

		exponent := DiscountExponent(k, in.YearFraction)
		adjusted := in.Projection.CashFlows[i] * adjustment
		sum := adjusted + tv

		s[i] = Period{
			Index:              k,
			DividendDate:       in.FirstDividend.AddDate(i, 0, 0),
			PeriodsToDiscount:  exponent,
			Dividend:           in.Projection.CashFlows[i],
			GrowthFromPrevious: in.Projection.Growth[i],
			PartialYearFactor:  adjustment,
			AdjustedDividend:   adjusted,
			TerminalValue:      tv,
			PeriodSum:          sum,
			PresentValue:       sum / math.Pow(1+in.CostOfEquity, exponent),
		}
	}
	return s, nil
}
