package ddm

import (
	"fmt"
	"math"
)

// Projection holds the five projected dividends and the growth of each over
// the previous period. Growth[0] is measured against the trailing dividend.
type Projection struct {
	CashFlows [Periods]float64
	Growth    [Periods]float64
}

// ProjectCashFlows produces the dividend projection for the given policy.
//
// DefaultGrowth and CustomShortTermGrowth compound the trailing dividend at a
// constant rate, cf[i] = trailing × (1+g)^i, and report that rate for every
// period. CustomCashFlows takes the dividends as given and derives growth from
// consecutive pairs, refusing to divide by a zero trailing dividend or a zero
// prior cash flow.
func ProjectCashFlows(policy Policy, f Fundamentals) (Projection, error) {
	if policy == nil {
		return Projection{}, fmt.Errorf("%w: no policy selected", ErrInvalidPolicyInput)
	}
	if err := policy.validate(); err != nil {
		return Projection{}, err
	}

	switch p := policy.(type) {
	case DefaultGrowth:
		g, err := f.NearTermGrowth()
		if err != nil {
			return Projection{}, err
		}
		return compound(f.TrailingDividend, g), nil
	case CustomShortTermGrowth:
		return compound(f.TrailingDividend, p.Rate), nil
	case CustomCashFlows:
		return deriveGrowth(f.TrailingDividend, p.Dividends)
	default:
		return Projection{}, fmt.Errorf("%w: unknown policy %q", ErrInvalidPolicyInput, policy.Kind())
	}
}

func compound(trailing, g float64) Projection {
	var p Projection
	for i := range Periods {
		p.CashFlows[i] = trailing * math.Pow(1+g, float64(i+1))
		p.Growth[i] = g
	}
	return p
}

func deriveGrowth(trailing float64, dividends []float64) (Projection, error) {
	var p Projection
	prev := trailing
	for i := range Periods {
		if prev == 0 {
			if i == 0 {
				return Projection{}, fmt.Errorf("%w: trailing dividend is zero", ErrDivisionByZero)
			}
			return Projection{}, fmt.Errorf("%w: cash flow %d is zero", ErrDivisionByZero, i)
		}
		p.CashFlows[i] = dividends[i]
		p.Growth[i] = (dividends[i] - prev) / prev
		prev = dividends[i]
	}
	return p, nil
}
