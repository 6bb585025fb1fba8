package types

import (
	"time"

	ierr "github.com/subsynth/subsynth/internal/errors"
)

// DateFormat is the canonical layout for all emitted dates. Generated data is
// day-granular; times are always UTC midnight.
const DateFormat = "2006-01-02"

// NormalizeDate truncates t to UTC midnight.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's calendar month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of t's calendar month.
func MonthEnd(t time.Time) time.Time {
	return MonthStart(t).AddDate(0, 1, -1)
}

// Quarter returns the calendar quarter (1-4) of t.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// IsCampaignMonth reports whether t falls in a seasonal campaign window
// (Q1 or Q4). Campaign months bias discount probability and marketing spend
// upward.
func IsCampaignMonth(t time.Time) bool {
	q := Quarter(t)
	return q == 1 || q == 4
}

// AddClampedDate adds the given year/month/day offsets to t, clamping the day
// to the last valid day of the target month instead of letting it spill over
// the way time.AddDate does (Jan 31 + 1 month = Feb 28/29, not Mar 2/3).
func AddClampedDate(t time.Time, years, months, days int) time.Time {
	y, m, d := t.Date()

	newY := y + years
	newM := time.Month(int(m) + months)
	for newM > 12 {
		newM -= 12
		newY++
	}
	for newM < 1 {
		newM += 12
		newY--
	}

	firstOfNextMonth := time.Date(newY, newM+1, 1, 0, 0, 0, 0, time.UTC)
	lastDay := firstOfNextMonth.AddDate(0, 0, -1).Day()

	newD := d + days
	if newD > lastDay {
		newD = lastDay
	}

	return time.Date(newY, newM, newD, 0, 0, 0, 0, time.UTC)
}

// NextBillingDate returns the date one billing period after start for the
// given cycle, with month-end clamping.
func NextBillingDate(start time.Time, cycle BillingCycle) (time.Time, error) {
	switch cycle {
	case BillingCycleMonthly:
		return AddClampedDate(start, 0, 1, 0), nil
	case BillingCycleYearly:
		return AddClampedDate(start, 1, 0, 0), nil
	default:
		return start, ierr.NewError("invalid billing cycle").
			WithHintf("Cannot compute next billing date for cycle %q", cycle).
			Mark(ierr.ErrValidation)
	}
}

// Horizon is the fixed calendar window bounding every generated date.
// Both ends are inclusive.
type Horizon struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d falls inside the horizon.
func (h Horizon) Contains(d time.Time) bool {
	return !d.Before(h.Start) && !d.After(h.End)
}

// Days returns every day of the horizon in ascending order.
func (h Horizon) Days() []time.Time {
	days := make([]time.Time, 0, int(h.End.Sub(h.Start).Hours()/24)+1)
	for d := h.Start; !d.After(h.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// NumDays returns the number of days in the horizon, both ends counted.
func (h Horizon) NumDays() int {
	return int(h.End.Sub(h.Start).Hours()/24) + 1
}

func (h Horizon) Validate() error {
	if h.Start.IsZero() || h.End.IsZero() {
		return ierr.NewError("horizon bounds are required").
			WithHint("Both horizon start and end dates must be set").
			Mark(ierr.ErrValidation)
	}
	if h.End.Before(h.Start) {
		return ierr.NewError("horizon end before start").
			WithReportableDetails(map[string]any{
				"start": h.Start.Format(DateFormat),
				"end":   h.End.Format(DateFormat),
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
