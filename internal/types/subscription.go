package types

import (
	"github.com/samber/lo"
	ierr "github.com/subsynth/subsynth/internal/errors"
)

// SubscriptionStatus is the lifecycle state of a subscription at the end of
// the generation run. There is no pause/past-due machinery here: a period is
// either still running at the horizon end or was canceled before it.
type SubscriptionStatus string

const (
	SubscriptionStatusActive   SubscriptionStatus = "active"
	SubscriptionStatusCanceled SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusActive,
		SubscriptionStatusCanceled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":         s,
				"allowed_status": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// BillingCycle is the cadence a subscription is charged on.
type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

func (c BillingCycle) String() string {
	return string(c)
}

func (c BillingCycle) Validate() error {
	allowed := []BillingCycle{
		BillingCycleMonthly,
		BillingCycleYearly,
	}
	if !lo.Contains(allowed, c) {
		return ierr.NewError("invalid billing cycle").
			WithHint("Invalid billing cycle").
			WithReportableDetails(map[string]any{
				"billing_cycle":  c,
				"allowed_values": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// CancellationReason is the sampled reason attached to a canceled subscription.
type CancellationReason string

const (
	CancellationReasonPrice      CancellationReason = "price"
	CancellationReasonCompetitor CancellationReason = "competitor"
	CancellationReasonFeatures   CancellationReason = "features"
	CancellationReasonOther      CancellationReason = "other"
)

func (r CancellationReason) String() string {
	return string(r)
}

func (r CancellationReason) Validate() error {
	allowed := []CancellationReason{
		CancellationReasonPrice,
		CancellationReasonCompetitor,
		CancellationReasonFeatures,
		CancellationReasonOther,
	}
	if !lo.Contains(allowed, r) {
		return ierr.NewError("invalid cancellation reason").
			WithHint("Invalid cancellation reason").
			WithReportableDetails(map[string]any{
				"cancellation_reason": r,
				"allowed_values":      allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
