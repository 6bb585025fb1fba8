package generator

import (
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/subsynth/subsynth/internal/domain/cost"
	"github.com/subsynth/subsynth/internal/domain/transaction"
	"github.com/subsynth/subsynth/internal/sampler"
	"github.com/subsynth/subsynth/internal/types"
)

// Monthly cost bases. Payment fees are purely revenue-proportional; the other
// three lines are these bases with noise (and seasonal spikes for marketing).
var (
	baseMarketing = decimal.NewFromInt(9000)
	baseInfra     = decimal.NewFromInt(12000)
	baseSupport   = decimal.NewFromInt(7000)
)

// supportRevenueRate couples support cost weakly to revenue.
const supportRevenueRate = 0.002

// GenerateCosts aggregates completed-transaction net revenue by calendar
// month and synthesizes the four cost line items for each month present.
// Months without completed transactions get no rows.
func GenerateCosts(smp *sampler.Sampler, txns []transaction.Transaction) ([]cost.Cost, error) {
	revenueByMonth := MonthlyNetRevenue(txns)

	months := lo.Keys(revenueByMonth)
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	costs := make([]cost.Cost, 0, len(months)*4)
	nextID := int64(1)

	for _, month := range months {
		rev := revenueByMonth[month]

		feeRate := smp.UniformFloat(0.02, 0.03)
		paymentFees := rev.Mul(decimal.NewFromFloat(feeRate)).Round(2)

		var marketingMult float64
		if types.IsCampaignMonth(month) {
			marketingMult = smp.UniformFloat(1.3, 2.2)
		} else {
			marketingMult = smp.UniformFloat(0.6, 1.1)
		}
		marketing := baseMarketing.Mul(decimal.NewFromFloat(marketingMult)).Round(2)

		infra := baseInfra.Mul(decimal.NewFromFloat(smp.UniformFloat(0.95, 1.05))).Round(2)

		support := baseSupport.Mul(decimal.NewFromFloat(smp.UniformFloat(0.95, 1.08))).
			Add(rev.Mul(decimal.NewFromFloat(supportRevenueRate))).Round(2)

		for _, line := range []struct {
			costType types.CostType
			amount   decimal.Decimal
			behavior types.CostBehavior
		}{
			{types.CostTypePaymentFees, paymentFees, types.CostBehaviorVariable},
			{types.CostTypeMarketing, marketing, types.CostBehaviorVariable},
			{types.CostTypeInfra, infra, types.CostBehaviorFixed},
			{types.CostTypeSupport, support, types.CostBehaviorFixed},
		} {
			costs = append(costs, cost.Cost{
				CostID:          nextID,
				Date:            month,
				CostType:        line.costType,
				Amount:          line.amount,
				FixedOrVariable: line.behavior,
			})
			nextID++
		}
	}

	revenueMonths := make(map[time.Time]struct{}, len(revenueByMonth))
	for m := range revenueByMonth {
		revenueMonths[m] = struct{}{}
	}
	if err := cost.Validate(costs, revenueMonths); err != nil {
		return nil, err
	}
	if err := cost.ValidateFeeRatioBand(costs, revenueByMonth); err != nil {
		return nil, err
	}
	return costs, nil
}

// MonthlyNetRevenue sums completed-transaction net revenue per calendar
// month, keyed by the month's first day.
func MonthlyNetRevenue(txns []transaction.Transaction) map[time.Time]decimal.Decimal {
	completed := lo.Filter(txns, func(t transaction.Transaction, _ int) bool {
		return t.TransactionStatus == types.TransactionStatusCompleted
	})

	revenue := make(map[time.Time]decimal.Decimal)
	for _, t := range completed {
		month := types.MonthStart(t.PaymentDate)
		revenue[month] = revenue[month].Add(t.NetRevenue)
	}
	return revenue
}
