package calendar

import (
	"time"

	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

// DateDim is one row of the calendar dimension: a day of the horizon with its
// commonly grouped-by attributes precomputed.
type DateDim struct {
	// Date is the day itself
	Date time.Time `json:"date"`

	// Year is the calendar year
	Year int `json:"year"`

	// Month is the calendar month (1-12)
	Month int `json:"month"`

	// Quarter is the calendar quarter (1-4)
	Quarter int `json:"quarter"`

	// MonthName is the short month name, e.g. "Jan"
	MonthName string `json:"month_name"`
}

// Validate checks the dimension covers exactly the horizon with unique,
// ascending days.
func Validate(rows []DateDim, horizon types.Horizon) error {
	if len(rows) == 0 {
		return ierr.NewError("empty date dimension").Mark(ierr.ErrRange)
	}
	if !rows[0].Date.Equal(horizon.Start) || !rows[len(rows)-1].Date.Equal(horizon.End) {
		return ierr.NewError("date dimension does not cover horizon").
			WithReportableDetails(map[string]any{
				"first": rows[0].Date.Format(types.DateFormat),
				"last":  rows[len(rows)-1].Date.Format(types.DateFormat),
			}).
			Mark(ierr.ErrRange)
	}
	for i := 1; i < len(rows); i++ {
		if !rows[i].Date.After(rows[i-1].Date) {
			return ierr.NewError("date dimension not strictly ascending").
				WithReportableDetails(map[string]any{
					"date": rows[i].Date.Format(types.DateFormat),
				}).
				Mark(ierr.ErrUniqueness)
		}
	}
	return nil
}
