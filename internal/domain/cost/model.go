package cost

import (
	"time"

	"github.com/shopspring/decimal"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

// Cost represents one synthesized operating-cost line item for one calendar
// month.
type Cost struct {
	// CostID is the unique identifier
	CostID int64 `json:"cost_id"`

	// Date is the first day of the calendar month the line item covers
	Date time.Time `json:"date"`

	// CostType is one of payment_fees, marketing, infra, support
	CostType types.CostType `json:"cost_type"`

	// Amount is the line-item amount, never negative
	Amount decimal.Decimal `json:"amount"`

	// FixedOrVariable marks whether the line scales with revenue
	FixedOrVariable types.CostBehavior `json:"fixed_or_variable"`
}

// Validate checks the cost table: id uniqueness, month-start dates, one row
// per (date, cost_type), non-negative amounts, and that the month set equals
// the months carrying completed-transaction revenue.
func Validate(costs []Cost, revenueMonths map[time.Time]struct{}) error {
	seenIDs := make(map[int64]struct{}, len(costs))
	seenPairs := make(map[string]struct{}, len(costs))
	monthsSeen := make(map[time.Time]struct{})

	for _, c := range costs {
		if _, ok := seenIDs[c.CostID]; ok {
			return ierr.NewError("duplicate cost id").
				WithReportableDetails(map[string]any{"cost_id": c.CostID}).
				Mark(ierr.ErrUniqueness)
		}
		seenIDs[c.CostID] = struct{}{}

		if !c.Date.Equal(types.MonthStart(c.Date)) {
			return ierr.NewError("cost date is not a month start").
				WithReportableDetails(map[string]any{
					"cost_id": c.CostID,
					"date":    c.Date.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
		if err := c.CostType.Validate(); err != nil {
			return err
		}
		if err := c.FixedOrVariable.Validate(); err != nil {
			return err
		}
		if c.Amount.IsNegative() {
			return ierr.NewError("negative cost amount").
				WithReportableDetails(map[string]any{
					"cost_id": c.CostID,
					"amount":  c.Amount.String(),
				}).
				Mark(ierr.ErrRange)
		}

		pair := c.Date.Format(types.DateFormat) + "/" + c.CostType.String()
		if _, ok := seenPairs[pair]; ok {
			return ierr.NewError("duplicate (date, cost_type) pair").
				WithReportableDetails(map[string]any{"pair": pair}).
				Mark(ierr.ErrUniqueness)
		}
		seenPairs[pair] = struct{}{}

		if _, ok := revenueMonths[c.Date]; !ok {
			return ierr.NewError("cost row for a month without completed revenue").
				WithReportableDetails(map[string]any{
					"cost_id": c.CostID,
					"date":    c.Date.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
		monthsSeen[c.Date] = struct{}{}
	}

	for m := range revenueMonths {
		if _, ok := monthsSeen[m]; !ok {
			return ierr.NewError("revenue month missing cost rows").
				WithReportableDetails(map[string]any{"date": m.Format(types.DateFormat)}).
				Mark(ierr.ErrRange)
		}
	}
	return nil
}

// Fee-ratio band for the mean payment_fees / monthly net revenue across all
// months. The sampler draws the per-month ratio from U[0.02, 0.03].
const (
	MinFeeRatio = 0.019
	MaxFeeRatio = 0.031
)

// ValidateFeeRatioBand checks the mean realized payment-fee ratio against its
// tolerance band.
func ValidateFeeRatioBand(costs []Cost, revenueByMonth map[time.Time]decimal.Decimal) error {
	var sum decimal.Decimal
	n := 0
	for _, c := range costs {
		if c.CostType != types.CostTypePaymentFees {
			continue
		}
		rev, ok := revenueByMonth[c.Date]
		if !ok || rev.IsZero() {
			continue
		}
		sum = sum.Add(c.Amount.Div(rev))
		n++
	}
	if n == 0 {
		return nil
	}

	ratio, _ := sum.Div(decimal.NewFromInt(int64(n))).Float64()
	if ratio < MinFeeRatio || ratio > MaxFeeRatio {
		return ierr.NewError("payment fee ratio outside tolerance band").
			WithHintf("Mean fee ratio %.4f outside [%.3f, %.3f]", ratio, MinFeeRatio, MaxFeeRatio).
			WithReportableDetails(map[string]any{
				"fee_ratio": ratio,
				"min":       MinFeeRatio,
				"max":       MaxFeeRatio,
			}).
			Mark(ierr.ErrStatisticalShape)
	}
	return nil
}
