package types

import (
	"github.com/samber/lo"
	ierr "github.com/subsynth/subsynth/internal/errors"
)

// PlanTier groups plans independently of their billing cycle. The annual plan
// shares the pro tier with its monthly sibling.
type PlanTier string

const (
	PlanTierBasic   PlanTier = "basic"
	PlanTierPro     PlanTier = "pro"
	PlanTierPremium PlanTier = "premium"
)

func (t PlanTier) String() string {
	return string(t)
}

func (t PlanTier) Validate() error {
	allowed := []PlanTier{
		PlanTierBasic,
		PlanTierPro,
		PlanTierPremium,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid plan tier").
			WithHint("Invalid plan tier").
			WithReportableDetails(map[string]any{
				"tier":           t,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
