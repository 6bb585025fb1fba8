package generator

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/subsynth/subsynth/internal/domain/plan"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	"github.com/subsynth/subsynth/internal/domain/transaction"
	"github.com/subsynth/subsynth/internal/sampler"
	"github.com/subsynth/subsynth/internal/types"
)

// GenerateTransactions expands every subscription's active window into
// billing-period transactions: one per calendar month for monthly cycles, and
// for yearly cycles a payment at the start plus at most one renewal a year
// later. The single-renewal bound is deliberate; windows longer than two
// years still get two payments.
func GenerateTransactions(
	smp *sampler.Sampler,
	horizon types.Horizon,
	subs []subscription.Subscription,
	catalog plan.Catalog,
) ([]transaction.Transaction, error) {
	prices := catalog.PriceByID()
	txns := make([]transaction.Transaction, 0, len(subs)*4)
	nextID := int64(1)

	for _, sub := range subs {
		if sub.StartDate.After(horizon.End) {
			continue
		}
		price := prices[sub.PlanID]

		if sub.BillingCycle == types.BillingCycleMonthly {
			txns = expandMonthly(smp, horizon, sub, price, txns, &nextID)
		} else {
			txns = expandYearly(smp, horizon, sub, price, txns, &nextID)
		}
	}

	if err := transaction.Validate(txns, subscription.ByID(subs), catalog.IDSet(), horizon); err != nil {
		return nil, err
	}
	if err := transaction.ValidateFailureBand(txns); err != nil {
		return nil, err
	}
	return txns, nil
}

// expandMonthly emits one transaction per calendar month, from the first
// month boundary at or after the start through the subscription window.
func expandMonthly(
	smp *sampler.Sampler,
	horizon types.Horizon,
	sub subscription.Subscription,
	price decimal.Decimal,
	txns []transaction.Transaction,
	nextID *int64,
) []transaction.Transaction {
	windowEnd := sub.WindowEnd(horizon)
	if windowEnd.After(horizon.End) {
		windowEnd = horizon.End
	}

	periodStart := types.MonthStart(sub.StartDate)
	if periodStart.Before(sub.StartDate) {
		periodStart = types.MonthStart(types.AddClampedDate(sub.StartDate, 0, 1, 0))
	}

	for !periodStart.After(windowEnd) {
		periodEnd := ClampPeriodEnd(types.MonthEnd(periodStart), windowEnd)
		txns = append(txns, buildTransaction(smp, sub, price, periodStart, periodStart, periodEnd, nextID))
		periodStart = types.AddClampedDate(periodStart, 0, 1, 0)
	}
	return txns
}

// expandYearly emits the initial payment and checks exactly one renewal
// cycle.
func expandYearly(
	smp *sampler.Sampler,
	horizon types.Horizon,
	sub subscription.Subscription,
	price decimal.Decimal,
	txns []transaction.Transaction,
	nextID *int64,
) []transaction.Transaction {
	windowEnd := sub.WindowEnd(horizon)

	paymentDate := sub.StartDate
	if horizon.Contains(paymentDate) {
		periodEnd := yearlyPeriodEnd(sub, paymentDate)
		txns = append(txns, buildTransaction(smp, sub, price, paymentDate, paymentDate, periodEnd, nextID))
	}

	renewalDate := types.AddClampedDate(paymentDate, 1, 0, 0)
	if !renewalDate.After(windowEnd) && !renewalDate.After(horizon.End) {
		periodEnd := yearlyPeriodEnd(sub, renewalDate)
		txns = append(txns, buildTransaction(smp, sub, price, renewalDate, renewalDate, periodEnd, nextID))
	}
	return txns
}

// yearlyPeriodEnd is the day before the next anniversary, clipped to the
// cancellation date for canceled subscriptions.
func yearlyPeriodEnd(sub subscription.Subscription, paymentDate time.Time) time.Time {
	end := types.AddClampedDate(paymentDate, 1, 0, 0).AddDate(0, 0, -1)
	if sub.IsCanceled() && sub.EndDate != nil {
		end = ClampPeriodEnd(end, *sub.EndDate)
	}
	return end
}

// buildTransaction samples the outcome, discount, and payment method for one
// billing period and assembles the row. Net revenue is forced to exactly zero
// for failed attempts regardless of any discount draw.
func buildTransaction(
	smp *sampler.Sampler,
	sub subscription.Subscription,
	price decimal.Decimal,
	paymentDate, periodStart, periodEnd time.Time,
	nextID *int64,
) transaction.Transaction {
	status := types.TransactionStatusCompleted
	if smp.Bernoulli(sampler.FailedRate) {
		status = types.TransactionStatusFailed
	}

	gross := price.Round(2)
	discount := decimal.Zero
	if status == types.TransactionStatusCompleted && smp.Bernoulli(discountProbability(sub.BillingCycle, paymentDate)) {
		discount = price.Mul(decimal.NewFromFloat(sampleDiscountPct(smp, sub.BillingCycle))).Round(2)
	}

	net := decimal.Zero.Round(2)
	if status == types.TransactionStatusCompleted {
		net = gross.Sub(discount).Round(2)
	}

	t := transaction.Transaction{
		TransactionID:      *nextID,
		PaymentDate:        paymentDate,
		CustomerID:         sub.CustomerID,
		SubscriptionID:     sub.SubscriptionID,
		PlanID:             sub.PlanID,
		GrossAmount:        gross,
		DiscountAmount:     discount,
		NetRevenue:         net,
		PaymentMethod:      sampler.PaymentMethodDist.Sample(smp),
		TransactionStatus:  status,
		BillingPeriodStart: periodStart,
		BillingPeriodEnd:   periodEnd,
	}
	*nextID++
	return t
}

// discountProbability is the per-transaction discount chance: a base rate for
// the cycle scaled by the seasonal multiplier, with the monthly rate capped.
func discountProbability(cycle types.BillingCycle, paymentDate time.Time) float64 {
	if cycle == types.BillingCycleMonthly {
		p := sampler.DiscountBaseRateMonthly
		if types.IsCampaignMonth(paymentDate) {
			p *= sampler.DiscountCampaignMultMonthly
		} else {
			p *= sampler.DiscountOffSeasonMultMonthly
		}
		return ClampProbability(p, 0, sampler.DiscountProbCapMonthly)
	}

	p := sampler.DiscountBaseRateYearly
	if types.IsCampaignMonth(paymentDate) {
		p *= sampler.DiscountCampaignMultYearly
	} else {
		p *= sampler.DiscountOffSeasonMultYearly
	}
	return p
}

func sampleDiscountPct(smp *sampler.Sampler, cycle types.BillingCycle) float64 {
	if cycle == types.BillingCycleMonthly {
		return smp.UniformFloat(sampler.DiscountPctMinMonthly, sampler.DiscountPctMaxMonthly)
	}
	return smp.UniformFloat(sampler.DiscountPctMinYearly, sampler.DiscountPctMaxYearly)
}
