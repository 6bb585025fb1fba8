package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/subsynth/subsynth/internal/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClampCancellationDate(t *testing.T) {
	horizonEnd := date(2024, 6, 30)

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  time.Time
	}{
		{
			name:  "end inside horizon untouched",
			start: date(2023, 6, 15),
			end:   date(2023, 7, 15),
			want:  date(2023, 7, 15),
		},
		{
			name:  "end past horizon clipped",
			start: date(2024, 1, 10),
			end:   date(2024, 9, 10),
			want:  horizonEnd,
		},
		{
			name:  "clipping collapsing the period forces one month",
			start: horizonEnd,
			end:   date(2024, 8, 30),
			want:  date(2024, 7, 30),
		},
		{
			name:  "end equal to start forces one month",
			start: date(2023, 5, 1),
			end:   date(2023, 5, 1),
			want:  date(2023, 6, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampCancellationDate(tt.start, tt.end, horizonEnd)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.True(t, got.After(tt.start), "clamped end must stay after start")
		})
	}
}

func TestClampProbability(t *testing.T) {
	assert.Equal(t, 0.60, ClampProbability(0.15*1.8*3, 0, 0.60))
	assert.InDelta(t, 0.27, ClampProbability(0.15*1.8, 0, 0.60), 1e-9)
	assert.Equal(t, 0.0, ClampProbability(-0.1, 0, 0.60))
}

func TestClampPeriodEnd(t *testing.T) {
	windowEnd := date(2023, 7, 15)

	assert.True(t, ClampPeriodEnd(date(2023, 7, 31), windowEnd).Equal(windowEnd))
	assert.True(t, ClampPeriodEnd(date(2023, 7, 10), windowEnd).Equal(date(2023, 7, 10)))
}

func TestClampKeepsMonthEndSemantics(t *testing.T) {
	// A sampled one-month duration from mid-June lands mid-July.
	end := ClampCancellationDate(date(2023, 6, 15), types.AddClampedDate(date(2023, 6, 15), 0, 1, 0), date(2024, 6, 30))
	assert.True(t, end.Equal(date(2023, 7, 15)))
}
