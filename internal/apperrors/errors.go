package apperrors

import "errors"

// Lookup errors indicate that a requested resource does not exist upstream.
var (
	// ErrSymbolNotFound indicates that a symbol lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Validation errors for request parameters.
var (
	// ErrInvalidSymbol indicates a missing or malformed ticker symbol.
	ErrInvalidSymbol = errors.New("symbol is required")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// ErrFailedToRetrieveFundamentals wraps provider failures for per-ticker data.
	ErrFailedToRetrieveFundamentals = errors.New("failed to retrieve fundamentals")

	// ErrFailedToRetrieveMarketRates is returned only when no fallback applies.
	ErrFailedToRetrieveMarketRates = errors.New("failed to retrieve market rates")

	// ErrFailedToValue wraps an engine failure with the ticker being valued.
	ErrFailedToValue = errors.New("failed to value equity")
)
