package ddm

import "time"

// TropicalYear is the length of one year used for date fractions, so that
// leap days do not skew multi-year discounting.
const TropicalYear = 365*24*time.Hour + 5*time.Hour + 49*time.Minute + 12*time.Second

// FallbackYearFraction is returned by YearFraction when the valuation date is unusable.
const FallbackYearFraction = 0.5

// YearFraction returns the share of a tropical year left between today and the
// fiscal year-end dividend date, fixed at 31 December of today's year.
//
// Both dates are taken at midnight UTC, so the result lies in [0, 1): it is 0
// on 31 December and just under 1 on 1 January.
//
// A zero time is treated as malformed and yields (FallbackYearFraction, 31 December
// of the current year).
func YearFraction(today time.Time) (float64, time.Time) {
	if today.IsZero() {
		return FallbackYearFraction, yearEnd(time.Now().Year())
	}

	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	end := yearEnd(today.Year())

	return float64(end.Sub(day)) / float64(TropicalYear), end
}

func yearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}
