package sampler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subsynth/subsynth/internal/types"
)

func TestSamplerDeterminism(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestUniformIntBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.UniformInt(3, 8)
		require.GreaterOrEqual(t, v, 3)
		require.LessOrEqual(t, v, 8)
	}
}

func TestUniformFloatBounds(t *testing.T) {
	s := New(1)
	for i := 0; i < 1000; i++ {
		v := s.UniformFloat(0.02, 0.03)
		require.GreaterOrEqual(t, v, 0.02)
		require.Less(t, v, 0.03)
	}
}

func TestDayStaysInHorizon(t *testing.T) {
	h := types.Horizon{
		Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2023, 1, 31, 0, 0, 0, 0, time.UTC),
	}
	s := New(7)
	for i := 0; i < 500; i++ {
		require.True(t, h.Contains(s.Day(h)))
	}
}

func TestDistributionCoversAllValues(t *testing.T) {
	s := New(3)
	seen := map[types.PlanTier]int{}
	for i := 0; i < 5000; i++ {
		seen[TierDist.Sample(s)]++
	}

	require.Len(t, seen, 3)
	// Basic carries half the mass; it must dominate premium by a wide margin.
	assert.Greater(t, seen[types.PlanTierBasic], seen[types.PlanTierPremium])
}

func TestChurnDurationMonthsInBuckets(t *testing.T) {
	s := New(9)
	for i := 0; i < 2000; i++ {
		months := s.ChurnDurationMonths()
		require.GreaterOrEqual(t, months, 1)
		require.LessOrEqual(t, months, 12)
	}
}

func TestSignupGapDays(t *testing.T) {
	s := New(11)
	for i := 0; i < 1000; i++ {
		gap := s.SignupGapDays()
		require.GreaterOrEqual(t, gap, 0)
		require.LessOrEqual(t, gap, 30)
	}
}
