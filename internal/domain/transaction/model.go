package transaction

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

// Transaction represents one billing attempt for a subscription period.
type Transaction struct {
	// TransactionID is the unique identifier, assigned in ascending
	// subscription order
	TransactionID int64 `json:"transaction_id"`

	// PaymentDate is the day the charge was attempted, always the billing
	// period start
	PaymentDate time.Time `json:"payment_date"`

	// CustomerID references the owning customer
	CustomerID int64 `json:"customer_id"`

	// SubscriptionID references the owning subscription
	SubscriptionID int64 `json:"subscription_id"`

	// PlanID references the billed plan
	PlanID int64 `json:"plan_id"`

	// GrossAmount is the plan price before discounting
	GrossAmount decimal.Decimal `json:"gross_amount"`

	// DiscountAmount is the discount applied; zero when no discount fired
	DiscountAmount decimal.Decimal `json:"discount_amount"`

	// NetRevenue is gross minus discount for completed attempts, exactly
	// zero for failed ones
	NetRevenue decimal.Decimal `json:"net_revenue"`

	// PaymentMethod is the instrument used
	PaymentMethod types.PaymentMethodType `json:"payment_method"`

	// TransactionStatus is completed or failed
	TransactionStatus types.TransactionStatus `json:"transaction_status"`

	// BillingPeriodStart is the first day covered by this charge
	BillingPeriodStart time.Time `json:"billing_period_start"`

	// BillingPeriodEnd is the last day covered by this charge
	BillingPeriodEnd time.Time `json:"billing_period_end"`
}

// FailureRate returns the fraction of rows with status failed.
func FailureRate(txns []Transaction) float64 {
	if len(txns) == 0 {
		return 0
	}
	failed := 0
	for _, t := range txns {
		if t.TransactionStatus == types.TransactionStatusFailed {
			failed++
		}
	}
	return float64(failed) / float64(len(txns))
}

// Validate checks row and cross-row invariants: id uniqueness, referential
// integrity, payment dates inside the horizon and the owning subscription's
// window, the net-revenue arithmetic, and per-subscription billing-period
// ordering.
func Validate(txns []Transaction, subs map[int64]subscription.Subscription, planIDs map[int64]struct{}, horizon types.Horizon) error {
	seen := make(map[int64]struct{}, len(txns))
	bySub := make(map[int64][]Transaction)

	for _, t := range txns {
		if _, ok := seen[t.TransactionID]; ok {
			return ierr.NewError("duplicate transaction id").
				WithReportableDetails(map[string]any{"transaction_id": t.TransactionID}).
				Mark(ierr.ErrUniqueness)
		}
		seen[t.TransactionID] = struct{}{}

		sub, ok := subs[t.SubscriptionID]
		if !ok {
			return ierr.NewError("transaction references unknown subscription").
				WithReportableDetails(map[string]any{
					"transaction_id":  t.TransactionID,
					"subscription_id": t.SubscriptionID,
				}).
				Mark(ierr.ErrReferential)
		}
		if sub.CustomerID != t.CustomerID || sub.PlanID != t.PlanID {
			return ierr.NewError("transaction disagrees with its subscription").
				WithReportableDetails(map[string]any{
					"transaction_id":  t.TransactionID,
					"subscription_id": t.SubscriptionID,
				}).
				Mark(ierr.ErrReferential)
		}
		if _, ok := planIDs[t.PlanID]; !ok {
			return ierr.NewError("transaction references unknown plan").
				WithReportableDetails(map[string]any{
					"transaction_id": t.TransactionID,
					"plan_id":        t.PlanID,
				}).
				Mark(ierr.ErrReferential)
		}

		if !horizon.Contains(t.PaymentDate) {
			return ierr.NewError("payment date outside horizon").
				WithReportableDetails(map[string]any{
					"transaction_id": t.TransactionID,
					"payment_date":   t.PaymentDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
		if t.PaymentDate.Before(sub.StartDate) || t.PaymentDate.After(sub.WindowEnd(horizon)) {
			return ierr.NewError("payment date outside subscription window").
				WithReportableDetails(map[string]any{
					"transaction_id":  t.TransactionID,
					"subscription_id": t.SubscriptionID,
					"payment_date":    t.PaymentDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
		if t.BillingPeriodStart.Before(sub.StartDate) {
			return ierr.NewError("billing period starts before subscription").
				WithReportableDetails(map[string]any{
					"transaction_id":       t.TransactionID,
					"billing_period_start": t.BillingPeriodStart.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
		if sub.IsCanceled() && sub.EndDate != nil && t.BillingPeriodEnd.After(*sub.EndDate) {
			return ierr.NewError("billing period ends after cancellation").
				WithReportableDetails(map[string]any{
					"transaction_id":     t.TransactionID,
					"billing_period_end": t.BillingPeriodEnd.Format(types.DateFormat),
					"end_date":           sub.EndDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}

		if err := t.PaymentMethod.Validate(); err != nil {
			return err
		}
		if err := t.TransactionStatus.Validate(); err != nil {
			return err
		}
		if err := validateAmounts(t); err != nil {
			return err
		}

		bySub[t.SubscriptionID] = append(bySub[t.SubscriptionID], t)
	}

	for subID, rows := range bySub {
		if err := validatePeriods(subID, rows); err != nil {
			return err
		}
	}
	return nil
}

func validateAmounts(t Transaction) error {
	if t.DiscountAmount.IsNegative() || t.DiscountAmount.GreaterThan(t.GrossAmount) {
		return ierr.NewError("discount outside [0, gross]").
			WithReportableDetails(map[string]any{
				"transaction_id":  t.TransactionID,
				"gross_amount":    t.GrossAmount.String(),
				"discount_amount": t.DiscountAmount.String(),
			}).
			Mark(ierr.ErrRange)
	}

	if t.TransactionStatus == types.TransactionStatusFailed {
		if !t.NetRevenue.IsZero() {
			return ierr.NewError("failed transaction carries revenue").
				WithReportableDetails(map[string]any{
					"transaction_id": t.TransactionID,
					"net_revenue":    t.NetRevenue.String(),
				}).
				Mark(ierr.ErrRange)
		}
		return nil
	}

	want := t.GrossAmount.Sub(t.DiscountAmount).Round(2)
	if !t.NetRevenue.Equal(want) {
		return ierr.NewError("net revenue arithmetic mismatch").
			WithReportableDetails(map[string]any{
				"transaction_id": t.TransactionID,
				"net_revenue":    t.NetRevenue.String(),
				"expected":       want.String(),
			}).
			Mark(ierr.ErrRange)
	}
	return nil
}

// validatePeriods enforces that one subscription's billing periods never
// overlap when ordered by start date.
func validatePeriods(subID int64, rows []Transaction) error {
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].BillingPeriodStart.Before(rows[j].BillingPeriodStart)
	})
	for i := 0; i < len(rows)-1; i++ {
		if !rows[i].BillingPeriodEnd.Before(rows[i+1].BillingPeriodStart) {
			return ierr.NewError("overlapping billing periods").
				WithReportableDetails(map[string]any{
					"subscription_id": subID,
					"first_end":       rows[i].BillingPeriodEnd.Format(types.DateFormat),
					"second_start":    rows[i+1].BillingPeriodStart.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
	}
	return nil
}

// Failure band for the realized failed-payment share. The sampler targets
// 0.05 per attempt.
const (
	MinFailureRate = 0.03
	MaxFailureRate = 0.07
)

// ValidateFailureBand checks the realized failure rate against its tolerance
// band.
func ValidateFailureBand(txns []Transaction) error {
	rate := FailureRate(txns)
	if rate < MinFailureRate || rate > MaxFailureRate {
		return ierr.NewError("failure rate outside tolerance band").
			WithHintf("Realized failure rate %.3f outside [%.2f, %.2f]; re-run with a different seed or fix the outcome distribution", rate, MinFailureRate, MaxFailureRate).
			WithReportableDetails(map[string]any{
				"failure_rate": rate,
				"min":          MinFailureRate,
				"max":          MaxFailureRate,
			}).
			Mark(ierr.ErrStatisticalShape)
	}
	return nil
}
