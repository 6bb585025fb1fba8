package export

import (
	"strconv"

	"github.com/subsynth/subsynth/internal/domain/calendar"
	"github.com/subsynth/subsynth/internal/domain/cost"
	"github.com/subsynth/subsynth/internal/domain/customer"
	"github.com/subsynth/subsynth/internal/domain/plan"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	"github.com/subsynth/subsynth/internal/domain/transaction"
	"github.com/subsynth/subsynth/internal/types"
)

// Flat CSV records. Domain rows are converted to these before marshaling so
// the files carry plain dates and two-decimal amounts with no type baggage.

type dateDimRecord struct {
	Date      string `csv:"date"`
	Year      int    `csv:"year"`
	Month     int    `csv:"month"`
	Quarter   int    `csv:"quarter"`
	MonthName string `csv:"month_name"`
}

type planRecord struct {
	PlanID              int64  `csv:"plan_id"`
	PlanName            string `csv:"plan_name"`
	Tier                string `csv:"tier"`
	Price               string `csv:"price"`
	CostPerSubscription string `csv:"cost_per_subscription"`
	ActiveFlag          string `csv:"active_flag"`
}

type customerRecord struct {
	CustomerID         int64  `csv:"customer_id"`
	SignupDate         string `csv:"signup_date"`
	Country            string `csv:"country"`
	AcquisitionChannel string `csv:"acquisition_channel"`
}

type subscriptionRecord struct {
	SubscriptionID     int64  `csv:"subscription_id"`
	CustomerID         int64  `csv:"customer_id"`
	PlanID             int64  `csv:"plan_id"`
	StartDate          string `csv:"start_date"`
	EndDate            string `csv:"end_date"`
	Status             string `csv:"status"`
	BillingCycle       string `csv:"billing_cycle"`
	CancellationReason string `csv:"cancellation_reason"`
}

type transactionRecord struct {
	TransactionID      int64  `csv:"transaction_id"`
	PaymentDate        string `csv:"payment_date"`
	CustomerID         int64  `csv:"customer_id"`
	SubscriptionID     int64  `csv:"subscription_id"`
	PlanID             int64  `csv:"plan_id"`
	GrossAmount        string `csv:"gross_amount"`
	DiscountAmount     string `csv:"discount_amount"`
	NetRevenue         string `csv:"net_revenue"`
	PaymentMethod      string `csv:"payment_method"`
	TransactionStatus  string `csv:"transaction_status"`
	BillingPeriodStart string `csv:"billing_period_start"`
	BillingPeriodEnd   string `csv:"billing_period_end"`
}

type costRecord struct {
	CostID          int64  `csv:"cost_id"`
	Date            string `csv:"date"`
	CostType        string `csv:"cost_type"`
	Amount          string `csv:"amount"`
	FixedOrVariable string `csv:"fixed_or_variable"`
}

func toDateDimRecords(rows []calendar.DateDim) []dateDimRecord {
	records := make([]dateDimRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, dateDimRecord{
			Date:      r.Date.Format(types.DateFormat),
			Year:      r.Year,
			Month:     r.Month,
			Quarter:   r.Quarter,
			MonthName: r.MonthName,
		})
	}
	return records
}

func toPlanRecords(rows plan.Catalog) []planRecord {
	records := make([]planRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, planRecord{
			PlanID:              r.PlanID,
			PlanName:            r.PlanName,
			Tier:                r.Tier.String(),
			Price:               r.Price.StringFixed(2),
			CostPerSubscription: r.CostPerSubscription.StringFixed(2),
			ActiveFlag:          strconv.FormatBool(r.ActiveFlag),
		})
	}
	return records
}

func toCustomerRecords(rows []customer.Customer) []customerRecord {
	records := make([]customerRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, customerRecord{
			CustomerID:         r.CustomerID,
			SignupDate:         r.SignupDate.Format(types.DateFormat),
			Country:            r.Country.String(),
			AcquisitionChannel: r.AcquisitionChannel.String(),
		})
	}
	return records
}

func toSubscriptionRecords(rows []subscription.Subscription) []subscriptionRecord {
	records := make([]subscriptionRecord, 0, len(rows))
	for _, r := range rows {
		rec := subscriptionRecord{
			SubscriptionID: r.SubscriptionID,
			CustomerID:     r.CustomerID,
			PlanID:         r.PlanID,
			StartDate:      r.StartDate.Format(types.DateFormat),
			Status:         r.Status.String(),
			BillingCycle:   r.BillingCycle.String(),
		}
		if r.EndDate != nil {
			rec.EndDate = r.EndDate.Format(types.DateFormat)
		}
		if r.CancellationReason != nil {
			rec.CancellationReason = r.CancellationReason.String()
		}
		records = append(records, rec)
	}
	return records
}

func toTransactionRecords(rows []transaction.Transaction) []transactionRecord {
	records := make([]transactionRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, transactionRecord{
			TransactionID:      r.TransactionID,
			PaymentDate:        r.PaymentDate.Format(types.DateFormat),
			CustomerID:         r.CustomerID,
			SubscriptionID:     r.SubscriptionID,
			PlanID:             r.PlanID,
			GrossAmount:        r.GrossAmount.StringFixed(2),
			DiscountAmount:     r.DiscountAmount.StringFixed(2),
			NetRevenue:         r.NetRevenue.StringFixed(2),
			PaymentMethod:      r.PaymentMethod.String(),
			TransactionStatus:  r.TransactionStatus.String(),
			BillingPeriodStart: r.BillingPeriodStart.Format(types.DateFormat),
			BillingPeriodEnd:   r.BillingPeriodEnd.Format(types.DateFormat),
		})
	}
	return records
}

func toCostRecords(rows []cost.Cost) []costRecord {
	records := make([]costRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, costRecord{
			CostID:          r.CostID,
			Date:            r.Date.Format(types.DateFormat),
			CostType:        r.CostType.String(),
			Amount:          r.Amount.StringFixed(2),
			FixedOrVariable: r.FixedOrVariable.String(),
		})
	}
	return records
}
