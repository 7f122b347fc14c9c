package opendata

import (
	"fmt"
	"time"
)

// Period is a named aggregation window anchored at "now".
type Period string

const (
	PeriodThreeMonths Period = "3months"
	PeriodSixMonths   Period = "6months"
	PeriodOneYear     Period = "1year"

	// DefaultPeriod applies when the caller omits the period parameter.
	DefaultPeriod = PeriodSixMonths
)

// ParsePeriod validates a period query parameter. The empty string maps to
// DefaultPeriod; anything else outside the known set is a caller error.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case "":
		return DefaultPeriod, nil
	case PeriodThreeMonths, PeriodSixMonths, PeriodOneYear:
		return Period(s), nil
	default:
		return "", fmt.Errorf("unknown period %q (must be 3months, 6months or 1year)", s)
	}
}

// months returns the calendar length of the window.
func (p Period) months() int {
	switch p {
	case PeriodThreeMonths:
		return 3
	case PeriodOneYear:
		return 12
	default:
		return 6
	}
}

// Start returns the inclusive start of the current window: now minus the
// period's calendar length. Calendar subtraction (AddDate), not a fixed
// number of days, matching how the feed is queried.
func (p Period) Start(now time.Time) time.Time {
	return now.AddDate(0, -p.months(), 0)
}

// PreviousStart returns the inclusive start of the window immediately
// preceding the current one, with the same calendar length. The previous
// window is [PreviousStart, Start).
func (p Period) PreviousStart(now time.Time) time.Time {
	return p.Start(now).AddDate(0, -p.months(), 0)
}

// String implements fmt.Stringer for stats echoes and logging.
func (p Period) String() string {
	return string(p)
}
