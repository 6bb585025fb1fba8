package generator

import (
	"time"

	"github.com/subsynth/subsynth/internal/types"
)

// ClampCancellationDate corrects a sampled cancellation date so the emitted
// row can never violate its invariants. Domain: start is a day inside the
// horizon, end is start plus a positive number of months, horizonEnd is the
// last day of the horizon.
//
// The end is first clipped to the horizon; if clipping collapses it to or
// before the start, it is forced one month past the start (which may land
// past the horizon again, and that is accepted: end dates only need to be
// after their start).
func ClampCancellationDate(start, end, horizonEnd time.Time) time.Time {
	if end.After(horizonEnd) {
		end = horizonEnd
	}
	if !end.After(start) {
		end = types.AddClampedDate(start, 0, 1, 0)
	}
	return end
}

// ClampProbability clamps p into [lo, hi]. Domain: 0 <= lo <= hi <= 1.
func ClampProbability(p, lo, hi float64) float64 {
	if p < lo {
		return lo
	}
	if p > hi {
		return hi
	}
	return p
}

// ClampPeriodEnd clamps a billing period's natural end to the last billable
// day of its subscription window. Domain: end is the natural period end,
// windowEnd is min(cancellation date, horizon end).
func ClampPeriodEnd(end, windowEnd time.Time) time.Time {
	if end.After(windowEnd) {
		return windowEnd
	}
	return end
}
