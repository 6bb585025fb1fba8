package sampler

import (
	"github.com/subsynth/subsynth/internal/types"
)

// Static distribution tables. These are the tuning surface of the whole
// generator: every stage samples from a table here, and the post-condition
// bands in the domain packages guard that the realized aggregates still look
// like these targets.

// TierDist is the monthly-plan tier mix.
var TierDist = NewDistribution(
	Entry[types.PlanTier]{Value: types.PlanTierBasic, P: 0.50},
	Entry[types.PlanTier]{Value: types.PlanTierPro, P: 0.35},
	Entry[types.PlanTier]{Value: types.PlanTierPremium, P: 0.15},
)

// ChannelDist is the customer acquisition-channel mix.
var ChannelDist = NewDistribution(
	Entry[types.AcquisitionChannel]{Value: types.AcquisitionChannelOrganic, P: 0.40},
	Entry[types.AcquisitionChannel]{Value: types.AcquisitionChannelPaid, P: 0.30},
	Entry[types.AcquisitionChannel]{Value: types.AcquisitionChannelReferral, P: 0.20},
	Entry[types.AcquisitionChannel]{Value: types.AcquisitionChannelOther, P: 0.10},
)

// CountryDist is the customer country mix.
var CountryDist = NewDistribution(
	Entry[types.CountryCode]{Value: types.CountryAR, P: 0.55},
	Entry[types.CountryCode]{Value: types.CountryMX, P: 0.25},
	Entry[types.CountryCode]{Value: types.CountryCL, P: 0.12},
	Entry[types.CountryCode]{Value: types.CountryUY, P: 0.08},
)

// CancellationReasonDist is the reason mix for canceled subscriptions.
var CancellationReasonDist = NewDistribution(
	Entry[types.CancellationReason]{Value: types.CancellationReasonPrice, P: 0.35},
	Entry[types.CancellationReason]{Value: types.CancellationReasonCompetitor, P: 0.25},
	Entry[types.CancellationReason]{Value: types.CancellationReasonFeatures, P: 0.20},
	Entry[types.CancellationReason]{Value: types.CancellationReasonOther, P: 0.20},
)

// BillingCycleDist is the monthly/yearly cadence mix.
var BillingCycleDist = NewDistribution(
	Entry[types.BillingCycle]{Value: types.BillingCycleMonthly, P: 0.80},
	Entry[types.BillingCycle]{Value: types.BillingCycleYearly, P: 0.20},
)

// SubscriptionCountDist is how many periods a customer gets (before an active
// period or the horizon cuts the sequence short).
var SubscriptionCountDist = NewDistribution(
	Entry[int]{Value: 1, P: 0.82},
	Entry[int]{Value: 2, P: 0.18},
)

// SubscriptionStatusDist targets a global churn rate around 0.35.
var SubscriptionStatusDist = NewDistribution(
	Entry[types.SubscriptionStatus]{Value: types.SubscriptionStatusActive, P: 0.65},
	Entry[types.SubscriptionStatus]{Value: types.SubscriptionStatusCanceled, P: 0.35},
)

// PaymentMethodDist is the instrument mix, independent of outcome.
var PaymentMethodDist = NewDistribution(
	Entry[types.PaymentMethodType]{Value: types.PaymentMethodCard, P: 0.78},
	Entry[types.PaymentMethodType]{Value: types.PaymentMethodTransfer, P: 0.07},
	Entry[types.PaymentMethodType]{Value: types.PaymentMethodWallet, P: 0.15},
)

// FailedRate is the per-attempt payment failure probability.
const FailedRate = 0.05

// Discount sampling parameters. Base probabilities are biased up in campaign
// months and down otherwise; the monthly probability is additionally capped.
const (
	DiscountBaseRateMonthly = 0.15
	DiscountBaseRateYearly  = 0.08

	DiscountCampaignMultMonthly  = 1.8
	DiscountCampaignMultYearly   = 1.5
	DiscountOffSeasonMultMonthly = 0.7
	DiscountOffSeasonMultYearly  = 0.8

	DiscountProbCapMonthly = 0.60

	DiscountPctMinMonthly = 0.05
	DiscountPctMaxMonthly = 0.25
	DiscountPctMinYearly  = 0.03
	DiscountPctMaxYearly  = 0.15
)

// churnDurationBuckets is the three-bucket mixture over months-to-cancel:
// 40% short (1-2), 40% medium (3-8), 20% long (9-12).
var churnDurationBuckets = NewDistribution(
	Entry[[2]int]{Value: [2]int{1, 2}, P: 0.40},
	Entry[[2]int]{Value: [2]int{3, 8}, P: 0.40},
	Entry[[2]int]{Value: [2]int{9, 12}, P: 0.20},
)

// ChurnDurationMonths draws a canceled subscription's lifetime in months from
// the bucket mixture.
func (s *Sampler) ChurnDurationMonths() int {
	bucket := churnDurationBuckets.Sample(s)
	return s.UniformInt(bucket[0], bucket[1])
}

// SignupGapDays draws the gap between a canceled period's end and the next
// period's start.
func (s *Sampler) SignupGapDays() int {
	return s.UniformInt(0, 30)
}
