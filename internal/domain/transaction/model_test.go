package transaction

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

var testHorizon = types.Horizon{
	Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testSubs() map[int64]subscription.Subscription {
	end := day(2023, 9, 10)
	reason := types.CancellationReasonPrice
	return map[int64]subscription.Subscription{
		1: {
			SubscriptionID: 1,
			CustomerID:     1,
			PlanID:         1,
			StartDate:      day(2023, 2, 1),
			Status:         types.SubscriptionStatusActive,
			BillingCycle:   types.BillingCycleMonthly,
		},
		2: {
			SubscriptionID:     2,
			CustomerID:         2,
			PlanID:             2,
			StartDate:          day(2023, 3, 5),
			EndDate:            &end,
			Status:             types.SubscriptionStatusCanceled,
			BillingCycle:       types.BillingCycleMonthly,
			CancellationReason: &reason,
		},
	}
}

func planIDs() map[int64]struct{} {
	return map[int64]struct{}{1: {}, 2: {}, 3: {}, 4: {}}
}

func completedTxn(id int64) Transaction {
	return Transaction{
		TransactionID:      id,
		PaymentDate:        day(2023, 2, 1),
		CustomerID:         1,
		SubscriptionID:     1,
		PlanID:             1,
		GrossAmount:        decimal.NewFromFloat(10.00),
		DiscountAmount:     decimal.NewFromFloat(1.50),
		NetRevenue:         decimal.NewFromFloat(8.50),
		PaymentMethod:      types.PaymentMethodCard,
		TransactionStatus:  types.TransactionStatusCompleted,
		BillingPeriodStart: day(2023, 2, 1),
		BillingPeriodEnd:   day(2023, 2, 28),
	}
}

func TestValidateAcceptsWellFormedTable(t *testing.T) {
	require.NoError(t, Validate([]Transaction{completedTxn(1)}, testSubs(), planIDs(), testHorizon))
}

func TestValidateRejectsDuplicateID(t *testing.T) {
	err := Validate([]Transaction{completedTxn(1), completedTxn(1)}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsUniqueness(err))
}

func TestValidateRejectsUnknownSubscription(t *testing.T) {
	txn := completedTxn(1)
	txn.SubscriptionID = 99

	err := Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsReferential(err))
}

func TestValidateRejectsFailedWithRevenue(t *testing.T) {
	txn := completedTxn(1)
	txn.TransactionStatus = types.TransactionStatusFailed

	err := Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsRange(err))
}

func TestValidateAcceptsFailedWithZeroRevenue(t *testing.T) {
	txn := completedTxn(1)
	txn.TransactionStatus = types.TransactionStatusFailed
	txn.NetRevenue = decimal.Zero

	require.NoError(t, Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon))
}

func TestValidateRejectsNetArithmeticMismatch(t *testing.T) {
	txn := completedTxn(1)
	txn.NetRevenue = decimal.NewFromFloat(9.99)

	err := Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsRange(err))
}

func TestValidateRejectsDiscountAboveGross(t *testing.T) {
	txn := completedTxn(1)
	txn.DiscountAmount = decimal.NewFromFloat(11.00)
	txn.NetRevenue = decimal.NewFromFloat(-1.00)

	err := Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsRange(err))
}

func TestValidateRejectsPaymentBeforeSubscriptionStart(t *testing.T) {
	txn := completedTxn(1)
	txn.PaymentDate = day(2023, 1, 15)
	txn.BillingPeriodStart = day(2023, 1, 15)

	err := Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsRange(err))
}

func TestValidateRejectsPeriodPastCancellation(t *testing.T) {
	txn := completedTxn(1)
	txn.CustomerID = 2
	txn.SubscriptionID = 2
	txn.PlanID = 2
	txn.PaymentDate = day(2023, 9, 1)
	txn.BillingPeriodStart = day(2023, 9, 1)
	txn.BillingPeriodEnd = day(2023, 9, 30)

	err := Validate([]Transaction{txn}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsRange(err))
}

func TestValidateRejectsOverlappingPeriods(t *testing.T) {
	a := completedTxn(1)
	b := completedTxn(2)
	b.PaymentDate = day(2023, 2, 15)
	b.BillingPeriodStart = day(2023, 2, 15)
	b.BillingPeriodEnd = day(2023, 3, 14)

	err := Validate([]Transaction{a, b}, testSubs(), planIDs(), testHorizon)
	require.Error(t, err)
	assert.True(t, ierr.IsRange(err))
}

func TestFailureRateAndBand(t *testing.T) {
	txns := make([]Transaction, 0, 100)
	for i := int64(1); i <= 100; i++ {
		txn := completedTxn(i)
		if i <= 5 {
			txn.TransactionStatus = types.TransactionStatusFailed
			txn.NetRevenue = decimal.Zero
		}
		txns = append(txns, txn)
	}

	assert.InDelta(t, 0.05, FailureRate(txns), 1e-9)
	require.NoError(t, ValidateFailureBand(txns))

	// All completed: rate 0 is below the band floor.
	err := ValidateFailureBand(txns[5:])
	require.Error(t, err)
	assert.True(t, ierr.IsStatisticalShape(err))
}
