package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Common validation errors
var (
	ErrInvalidTicker = fmt.Errorf("invalid ticker symbol")
	ErrInvalidDate   = fmt.Errorf("invalid date, expected YYYY-MM-DD")
)

// Yahoo-style symbols: letters, digits and . - = ^ (e.g. BRK-B, ^TNX, RDS.A, EURUSD=X).
var tickerPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-=^]{0,14}$`)

// ValidateTicker checks that a ticker symbol is well formed. Case is ignored.
func ValidateTicker(ticker string) error {
	if !tickerPattern.MatchString(strings.ToUpper(strings.TrimSpace(ticker))) {
		return fmt.Errorf("%w: %q", ErrInvalidTicker, ticker)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}
