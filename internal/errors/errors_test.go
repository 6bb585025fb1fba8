package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolationKinds(t *testing.T) {
	err := NewError("duplicate subscription id").
		WithReportableDetails(map[string]any{"subscription_id": 42}).
		Mark(ErrUniqueness)

	assert.True(t, IsUniqueness(err))
	assert.False(t, IsReferential(err))
	assert.False(t, IsStatisticalShape(err))
}

func TestWrappedSentinelSurvives(t *testing.T) {
	inner := NewError("churn rate outside tolerance band").Mark(ErrStatisticalShape)
	outer := WithError(inner).WithMessage("subscription stage").Err()

	assert.True(t, IsStatisticalShape(outer))
	assert.False(t, IsRange(outer))
}

func TestHintsAccumulate(t *testing.T) {
	err := NewErrorf("fee ratio %.4f out of band", 0.045).
		WithHint("Re-run with a different seed").
		Mark(ErrStatisticalShape)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "fee ratio")
}
