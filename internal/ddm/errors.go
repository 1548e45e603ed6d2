package ddm

import "errors"

// Valuation errors. Every one of these terminates a single valuation run;
// the engine never returns a partial schedule alongside them.
var (
	// ErrInvalidPolicyInput indicates a negative custom cash flow or growth rate,
	// or a custom cash-flow list that does not hold exactly five entries.
	ErrInvalidPolicyInput = errors.New("invalid policy input")

	// ErrDivisionByZero indicates that a growth rate could not be derived from
	// custom cash flows because the trailing dividend or a prior cash flow is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrTerminalValueUndefined indicates that the cost of equity does not exceed
	// the long-term growth rate, so the perpetuity formula has no finite value.
	ErrTerminalValueUndefined = errors.New("terminal value undefined: cost of equity must exceed long-term growth")

	// ErrInsufficientFundamentals indicates that a fundamental needed by the
	// selected policy or cost-of-equity path is missing or not a number.
	ErrInsufficientFundamentals = errors.New("insufficient fundamentals")

	// ErrNonDividendPayingEquity indicates that the equity has no upcoming
	// dividend date and the caller did not opt in to running the model anyway.
	ErrNonDividendPayingEquity = errors.New("equity does not pay a dividend")
)
