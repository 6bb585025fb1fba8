package subscription

import (
	"sort"
	"time"

	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

// Subscription represents one contiguous paid period of a customer on a plan.
// A customer has at most two periods and they never overlap; only the last
// one may still be active at the horizon end.
type Subscription struct {
	// SubscriptionID is the unique identifier, assigned in ascending
	// customer order so output is stable under a fixed seed
	SubscriptionID int64 `json:"subscription_id"`

	// CustomerID references the owning customer
	CustomerID int64 `json:"customer_id"`

	// PlanID references the plan billed for this period
	PlanID int64 `json:"plan_id"`

	// StartDate is the first day of the period, within the horizon
	StartDate time.Time `json:"start_date"`

	// EndDate is the cancellation day; set iff Status is canceled
	EndDate *time.Time `json:"end_date,omitempty"`

	// Status is active or canceled
	Status types.SubscriptionStatus `json:"status"`

	// BillingCycle is the cadence transactions are expanded on
	BillingCycle types.BillingCycle `json:"billing_cycle"`

	// CancellationReason is set iff Status is canceled
	CancellationReason *types.CancellationReason `json:"cancellation_reason,omitempty"`
}

// IsCanceled reports whether the period ended before the horizon did.
func (s Subscription) IsCanceled() bool {
	return s.Status == types.SubscriptionStatusCanceled
}

// WindowEnd returns the last day the subscription is billable: its end date
// when canceled, otherwise the horizon end.
func (s Subscription) WindowEnd(horizon types.Horizon) time.Time {
	if s.IsCanceled() && s.EndDate != nil {
		return *s.EndDate
	}
	return horizon.End
}

// ChurnRate returns the fraction of rows with status canceled.
func ChurnRate(subs []Subscription) float64 {
	if len(subs) == 0 {
		return 0
	}
	canceled := 0
	for _, s := range subs {
		if s.IsCanceled() {
			canceled++
		}
	}
	return float64(canceled) / float64(len(subs))
}

// IDSet returns the set of subscription ids for referential checks downstream.
func IDSet(subs []Subscription) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(subs))
	for _, s := range subs {
		ids[s.SubscriptionID] = struct{}{}
	}
	return ids
}

// ByID returns a subscription_id -> row lookup.
func ByID(subs []Subscription) map[int64]Subscription {
	m := make(map[int64]Subscription, len(subs))
	for _, s := range subs {
		m[s.SubscriptionID] = s
	}
	return m
}

// Validate checks row and cross-row invariants: id uniqueness, referential
// integrity against customers and plans, dates inside the horizon, the
// status/end-date/reason coupling, and per-customer non-overlap.
func Validate(subs []Subscription, customerIDs, planIDs map[int64]struct{}, horizon types.Horizon) error {
	seen := make(map[int64]struct{}, len(subs))
	byCustomer := make(map[int64][]Subscription)

	for _, s := range subs {
		if _, ok := seen[s.SubscriptionID]; ok {
			return ierr.NewError("duplicate subscription id").
				WithReportableDetails(map[string]any{"subscription_id": s.SubscriptionID}).
				Mark(ierr.ErrUniqueness)
		}
		seen[s.SubscriptionID] = struct{}{}

		if _, ok := customerIDs[s.CustomerID]; !ok {
			return ierr.NewError("subscription references unknown customer").
				WithReportableDetails(map[string]any{
					"subscription_id": s.SubscriptionID,
					"customer_id":     s.CustomerID,
				}).
				Mark(ierr.ErrReferential)
		}
		if _, ok := planIDs[s.PlanID]; !ok {
			return ierr.NewError("subscription references unknown plan").
				WithReportableDetails(map[string]any{
					"subscription_id": s.SubscriptionID,
					"plan_id":         s.PlanID,
				}).
				Mark(ierr.ErrReferential)
		}

		if !horizon.Contains(s.StartDate) {
			return ierr.NewError("subscription start outside horizon").
				WithReportableDetails(map[string]any{
					"subscription_id": s.SubscriptionID,
					"start_date":      s.StartDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}

		if err := s.Status.Validate(); err != nil {
			return err
		}
		if err := s.BillingCycle.Validate(); err != nil {
			return err
		}

		if s.IsCanceled() {
			if s.EndDate == nil || s.CancellationReason == nil {
				return ierr.NewError("canceled subscription missing end date or reason").
					WithReportableDetails(map[string]any{"subscription_id": s.SubscriptionID}).
					Mark(ierr.ErrValidation)
			}
			if !s.EndDate.After(s.StartDate) {
				return ierr.NewError("subscription end not after start").
					WithReportableDetails(map[string]any{
						"subscription_id": s.SubscriptionID,
						"start_date":      s.StartDate.Format(types.DateFormat),
						"end_date":        s.EndDate.Format(types.DateFormat),
					}).
					Mark(ierr.ErrRange)
			}
			if err := s.CancellationReason.Validate(); err != nil {
				return err
			}
		} else if s.EndDate != nil || s.CancellationReason != nil {
			return ierr.NewError("active subscription carries end date or reason").
				WithReportableDetails(map[string]any{"subscription_id": s.SubscriptionID}).
				Mark(ierr.ErrValidation)
		}

		byCustomer[s.CustomerID] = append(byCustomer[s.CustomerID], s)
	}

	for custID, periods := range byCustomer {
		if err := validateSequence(custID, periods); err != nil {
			return err
		}
	}
	return nil
}

// validateSequence enforces per-customer sequencing: periods ordered by start
// never overlap, and every period except the last is canceled.
func validateSequence(customerID int64, periods []Subscription) error {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].StartDate.Before(periods[j].StartDate)
	})
	for i := 0; i < len(periods)-1; i++ {
		cur, next := periods[i], periods[i+1]
		if !cur.IsCanceled() {
			return ierr.NewError("customer has a period after an active subscription").
				WithReportableDetails(map[string]any{
					"customer_id":     customerID,
					"subscription_id": cur.SubscriptionID,
				}).
				Mark(ierr.ErrValidation)
		}
		if cur.EndDate != nil && cur.EndDate.After(next.StartDate) {
			return ierr.NewError("overlapping subscription periods").
				WithReportableDetails(map[string]any{
					"customer_id":  customerID,
					"first_end":    cur.EndDate.Format(types.DateFormat),
					"second_start": next.StartDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
	}
	return nil
}

// Churn band for the realized cancellation share. The generator targets 0.35;
// a sample outside the band signals broken distribution parameters.
const (
	MinChurnRate = 0.30
	MaxChurnRate = 0.40
)

// ValidateChurnBand checks the realized churn rate against its tolerance
// band. This is a parameter-quality guard, not a per-row constraint.
func ValidateChurnBand(subs []Subscription) error {
	rate := ChurnRate(subs)
	if rate < MinChurnRate || rate > MaxChurnRate {
		return ierr.NewError("churn rate outside tolerance band").
			WithHintf("Realized churn rate %.3f outside [%.2f, %.2f]; re-run with a different seed or fix the status distribution", rate, MinChurnRate, MaxChurnRate).
			WithReportableDetails(map[string]any{
				"churn_rate": rate,
				"min":        MinChurnRate,
				"max":        MaxChurnRate,
			}).
			Mark(ierr.ErrStatisticalShape)
	}
	return nil
}
