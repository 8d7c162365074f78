package timeseries

import (
	"strings"

	"projectdollar/internal/errors"
)

// Period selects the bucket granularity for a chart.
type Period int

const (
	Day Period = iota
	Week
	Month
	Year
)

// String implements fmt.Stringer.
func (p Period) String() string {
	switch p {
	case Week:
		return "week"
	case Month:
		return "month"
	case Year:
		return "year"
	default:
		return "day"
	}
}

// ParsePeriod parses a chart period name, case-insensitively.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day", "daily":
		return Day, nil
	case "week", "weekly":
		return Week, nil
	case "month", "monthly":
		return Month, nil
	case "year", "yearly":
		return Year, nil
	default:
		return Day, errors.WithMessage(errors.ErrInvalidPeriod, "Unknown period: "+s)
	}
}

// maxPoints is how many trailing buckets each view keeps. The numbers are
// what fits on the portfolio chart without crowding.
func (p Period) maxPoints() int {
	switch p {
	case Week:
		return 5
	case Month:
		return 4
	case Year:
		return 5
	default:
		return 8
	}
}
