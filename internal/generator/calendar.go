package generator

import (
	"github.com/subsynth/subsynth/internal/domain/calendar"
	"github.com/subsynth/subsynth/internal/types"
)

// GenerateDateDim builds the calendar dimension: one row per day of the
// horizon.
func GenerateDateDim(horizon types.Horizon) ([]calendar.DateDim, error) {
	days := horizon.Days()
	rows := make([]calendar.DateDim, 0, len(days))
	for _, d := range days {
		rows = append(rows, calendar.DateDim{
			Date:      d,
			Year:      d.Year(),
			Month:     int(d.Month()),
			Quarter:   types.Quarter(d),
			MonthName: d.Format("Jan"),
		})
	}

	if err := calendar.Validate(rows, horizon); err != nil {
		return nil, err
	}
	return rows, nil
}
