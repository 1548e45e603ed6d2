package ddm

import (
	"fmt"
	"math"
)

// Periods is the length of the explicit forecast horizon.
const Periods = 5

// DefaultLongTermGrowth is used when a request carries no long-term growth override.
const DefaultLongTermGrowth = 0.035

// PolicyKind names a cash-flow projection policy.
type PolicyKind string

const (
	KindDefaultGrowth         PolicyKind = "default"
	KindCustomCashFlows       PolicyKind = "customCashFlows"
	KindCustomShortTermGrowth PolicyKind = "customShortTermGrowth"
)

// Policy selects how the five projected dividends are produced.
// The interface is sealed: DefaultGrowth, CustomCashFlows and
// CustomShortTermGrowth are the only implementations.
type Policy interface {
	Kind() PolicyKind
	validate() error
}

// DefaultGrowth compounds the trailing dividend at ROE × (1 − payout ratio).
type DefaultGrowth struct{}

// CustomCashFlows uses five caller-supplied dividend amounts and derives the
// growth figures from them.
type CustomCashFlows struct {
	Dividends []float64
}

// CustomShortTermGrowth compounds the trailing dividend at a caller-supplied rate.
type CustomShortTermGrowth struct {
	Rate float64
}

func (DefaultGrowth) Kind() PolicyKind         { return KindDefaultGrowth }
func (CustomCashFlows) Kind() PolicyKind       { return KindCustomCashFlows }
func (CustomShortTermGrowth) Kind() PolicyKind { return KindCustomShortTermGrowth }

func (DefaultGrowth) validate() error { return nil }

func (p CustomCashFlows) validate() error {
	if len(p.Dividends) != Periods {
		return fmt.Errorf("%w: expected %d custom cash flows, got %d", ErrInvalidPolicyInput, Periods, len(p.Dividends))
	}
	for i, d := range p.Dividends {
		if math.IsNaN(d) || math.IsInf(d, 0) {
			return fmt.Errorf("%w: cash flow %d is not a number", ErrInvalidPolicyInput, i+1)
		}
		if d < 0 {
			return fmt.Errorf("%w: cash flow %d is negative (%g)", ErrInvalidPolicyInput, i+1, d)
		}
	}
	return nil
}

func (p CustomShortTermGrowth) validate() error {
	if math.IsNaN(p.Rate) || math.IsInf(p.Rate, 0) {
		return fmt.Errorf("%w: short-term growth rate is not a number", ErrInvalidPolicyInput)
	}
	if p.Rate < 0 {
		return fmt.Errorf("%w: short-term growth rate is negative (%g)", ErrInvalidPolicyInput, p.Rate)
	}
	return nil
}
