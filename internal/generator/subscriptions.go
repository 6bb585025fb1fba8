package generator

import (
	"time"

	"github.com/subsynth/subsynth/internal/domain/customer"
	"github.com/subsynth/subsynth/internal/domain/plan"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	"github.com/subsynth/subsynth/internal/sampler"
	"github.com/subsynth/subsynth/internal/types"
)

// sequenceState is the per-customer sequencing state. A customer walks
// AwaitingFirstPeriod -> (PeriodCanceled ->)* PeriodActive -> Done, with Done
// also reached by exhausting the sampled period count or by a computed start
// past the horizon.
type sequenceState int

const (
	stateAwaitingFirstPeriod sequenceState = iota
	statePeriodActive
	statePeriodCanceled
	stateDone
)

// GenerateSubscriptions runs the sequencer over customers in id order,
// assigning subscription ids as a single ascending sequence so output is
// stable under a fixed seed.
func GenerateSubscriptions(
	smp *sampler.Sampler,
	horizon types.Horizon,
	customers []customer.Customer,
	catalog plan.Catalog,
) ([]subscription.Subscription, error) {
	subs := make([]subscription.Subscription, 0, len(customers))
	nextID := int64(1)

	for _, cust := range customers {
		rows, err := sequenceCustomer(smp, horizon, catalog, cust.CustomerID, &nextID)
		if err != nil {
			return nil, err
		}
		subs = append(subs, rows...)
	}

	if err := subscription.Validate(subs, customer.IDSet(customers), catalog.IDSet(), horizon); err != nil {
		return nil, err
	}
	if err := subscription.ValidateChurnBand(subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// sequenceCustomer emits one customer's subscription periods.
func sequenceCustomer(
	smp *sampler.Sampler,
	horizon types.Horizon,
	catalog plan.Catalog,
	customerID int64,
	nextID *int64,
) ([]subscription.Subscription, error) {
	count := sampler.SubscriptionCountDist.Sample(smp)

	var rows []subscription.Subscription
	var prevEnd time.Time
	state := stateAwaitingFirstPeriod

	for state != stateDone {
		var start time.Time
		switch state {
		case stateAwaitingFirstPeriod:
			start = smp.Day(horizon)
		case statePeriodActive:
			// An active period ends the sequence even if the sampled count
			// allowed another.
			state = stateDone
			continue
		case statePeriodCanceled:
			if len(rows) >= count {
				state = stateDone
				continue
			}
			start = prevEnd.AddDate(0, 0, smp.SignupGapDays())
			if start.After(horizon.End) {
				// The follow-up period does not fit in the horizon; it is
				// dropped without a row.
				state = stateDone
				continue
			}
		}

		cycle := sampler.BillingCycleDist.Sample(smp)

		var p plan.Plan
		var err error
		if cycle == types.BillingCycleMonthly {
			p, err = catalog.MonthlyPlanForTier(sampler.TierDist.Sample(smp))
		} else {
			p, err = catalog.AnnualPlan()
		}
		if err != nil {
			return nil, err
		}

		status := sampler.SubscriptionStatusDist.Sample(smp)

		row := subscription.Subscription{
			SubscriptionID: *nextID,
			CustomerID:     customerID,
			PlanID:         p.PlanID,
			StartDate:      start,
			Status:         status,
			BillingCycle:   cycle,
		}
		*nextID++

		if status == types.SubscriptionStatusCanceled {
			months := smp.ChurnDurationMonths()
			end := ClampCancellationDate(start, types.AddClampedDate(start, 0, months, 0), horizon.End)
			reason := sampler.CancellationReasonDist.Sample(smp)
			row.EndDate = &end
			row.CancellationReason = &reason
		}
		rows = append(rows, row)

		if status == types.SubscriptionStatusActive {
			state = statePeriodActive
		} else {
			prevEnd = *row.EndDate
			state = statePeriodCanceled
		}
	}
	return rows, nil
}
