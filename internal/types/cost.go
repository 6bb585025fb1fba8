package types

import (
	"github.com/samber/lo"
	ierr "github.com/subsynth/subsynth/internal/errors"
)

// CostType is one of the four synthesized monthly operating-cost line items.
type CostType string

const (
	CostTypePaymentFees CostType = "payment_fees"
	CostTypeMarketing   CostType = "marketing"
	CostTypeInfra       CostType = "infra"
	CostTypeSupport     CostType = "support"
)

func (t CostType) String() string {
	return string(t)
}

func (t CostType) Validate() error {
	allowed := []CostType{
		CostTypePaymentFees,
		CostTypeMarketing,
		CostTypeInfra,
		CostTypeSupport,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid cost type").
			WithHint("Invalid cost type").
			WithReportableDetails(map[string]any{
				"cost_type":      t,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CostBehavior marks whether a cost line scales with revenue or is a noisy
// fixed base.
type CostBehavior string

const (
	CostBehaviorFixed    CostBehavior = "fixed"
	CostBehaviorVariable CostBehavior = "variable"
)

func (b CostBehavior) String() string {
	return string(b)
}

func (b CostBehavior) Validate() error {
	allowed := []CostBehavior{
		CostBehaviorFixed,
		CostBehaviorVariable,
	}
	if !lo.Contains(allowed, b) {
		return ierr.NewError("invalid cost behavior").
			WithHint("Invalid cost behavior").
			WithReportableDetails(map[string]any{
				"fixed_or_variable": b,
				"allowed_values":    allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
