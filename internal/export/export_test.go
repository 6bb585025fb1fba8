package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subsynth/subsynth/internal/config"
	"github.com/subsynth/subsynth/internal/domain/calendar"
	"github.com/subsynth/subsynth/internal/domain/cost"
	"github.com/subsynth/subsynth/internal/domain/customer"
	"github.com/subsynth/subsynth/internal/domain/plan"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	"github.com/subsynth/subsynth/internal/domain/transaction"
	"github.com/subsynth/subsynth/internal/generator"
	"github.com/subsynth/subsynth/internal/logger"
	"github.com/subsynth/subsynth/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func smallDataset() *generator.Dataset {
	end := day(2023, 1, 31)
	reason := types.CancellationReasonPrice
	return &generator.Dataset{
		RunID: "run_01HTESTTESTTESTTESTTESTTES",
		DateDim: []calendar.DateDim{
			{Date: day(2023, 1, 1), Year: 2023, Month: 1, Quarter: 1, MonthName: "Jan"},
		},
		Plans: plan.Catalog{
			{PlanID: 1, PlanName: plan.NameBasic, Tier: types.PlanTierBasic, Price: decimal.NewFromInt(10), CostPerSubscription: decimal.NewFromInt(1), ActiveFlag: true},
		},
		Customers: []customer.Customer{
			{CustomerID: 1, SignupDate: day(2023, 1, 1), Country: types.CountryAR, AcquisitionChannel: types.AcquisitionChannelOrganic},
		},
		Subscriptions: []subscription.Subscription{
			{SubscriptionID: 1, CustomerID: 1, PlanID: 1, StartDate: day(2023, 1, 1), EndDate: &end, Status: types.SubscriptionStatusCanceled, BillingCycle: types.BillingCycleMonthly, CancellationReason: &reason},
			{SubscriptionID: 2, CustomerID: 1, PlanID: 1, StartDate: day(2023, 2, 10), Status: types.SubscriptionStatusActive, BillingCycle: types.BillingCycleMonthly},
		},
		Transactions: []transaction.Transaction{
			{TransactionID: 1, PaymentDate: day(2023, 1, 1), CustomerID: 1, SubscriptionID: 1, PlanID: 1, GrossAmount: decimal.NewFromInt(10), DiscountAmount: decimal.NewFromFloat(1.50), NetRevenue: decimal.NewFromFloat(8.50), PaymentMethod: types.PaymentMethodCard, TransactionStatus: types.TransactionStatusCompleted, BillingPeriodStart: day(2023, 1, 1), BillingPeriodEnd: day(2023, 1, 31)},
		},
		Costs: []cost.Cost{
			{CostID: 1, Date: day(2023, 1, 1), CostType: types.CostTypePaymentFees, Amount: decimal.NewFromFloat(0.21), FixedOrVariable: types.CostBehaviorVariable},
		},
	}
}

func testExporter(t *testing.T) (*Exporter, string) {
	t.Helper()

	dir := t.TempDir()
	cfg := config.GetDefaultConfig()
	cfg.Output.Dir = dir

	log, err := logger.NewLogger(cfg)
	require.NoError(t, err)
	return NewExporter(cfg, log), dir
}

func readLines(t *testing.T, dir, name string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.NotEmpty(t, lines)
	return lines
}

func TestExportWritesAllFiles(t *testing.T) {
	exp, dir := testExporter(t)
	require.NoError(t, exp.Export(smallDataset()))

	for _, name := range []string{FileDateDim, FilePlans, FileCustomers, FileSubscriptions, FileTransactions, FileCosts, FileManifest} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestExportCSVContents(t *testing.T) {
	exp, dir := testExporter(t)
	require.NoError(t, exp.Export(smallDataset()))

	subs := readLines(t, dir, FileSubscriptions)
	require.Len(t, subs, 3)
	assert.Equal(t, "subscription_id,customer_id,plan_id,start_date,end_date,status,billing_cycle,cancellation_reason", subs[0])
	assert.Equal(t, "1,1,1,2023-01-01,2023-01-31,canceled,monthly,price", subs[1])
	// Active rows leave the cancellation columns empty.
	assert.Equal(t, "2,1,1,2023-02-10,,active,monthly,", subs[2])

	txns := readLines(t, dir, FileTransactions)
	require.Len(t, txns, 2)
	assert.Equal(t, "transaction_id,payment_date,customer_id,subscription_id,plan_id,gross_amount,discount_amount,net_revenue,payment_method,transaction_status,billing_period_start,billing_period_end", txns[0])
	assert.Equal(t, "1,2023-01-01,1,1,1,10.00,1.50,8.50,card,completed,2023-01-01,2023-01-31", txns[1])

	plans := readLines(t, dir, FilePlans)
	require.Len(t, plans, 2)
	assert.Equal(t, "1,Basic,basic,10.00,1.00,true", plans[1])

	costs := readLines(t, dir, FileCosts)
	require.Len(t, costs, 2)
	assert.Equal(t, "1,2023-01-01,payment_fees,0.21,variable", costs[1])
}

func TestExportManifest(t *testing.T) {
	exp, dir := testExporter(t)
	ds := smallDataset()
	require.NoError(t, exp.Export(ds))

	data, err := os.ReadFile(filepath.Join(dir, FileManifest))
	require.NoError(t, err)

	var manifest Manifest
	require.NoError(t, json.Unmarshal(data, &manifest))
	assert.Equal(t, ds.RunID, manifest.RunID)
	assert.Equal(t, int64(42), manifest.Seed)
	assert.Equal(t, "2023-01-01", manifest.StartDate)
	assert.Equal(t, "2024-06-30", manifest.EndDate)
	assert.Equal(t, 2, manifest.RowCounts[FileSubscriptions])
	assert.Equal(t, 1, manifest.RowCounts[FileTransactions])
}

func TestExportIsByteStableForIdenticalDatasets(t *testing.T) {
	expA, dirA := testExporter(t)
	expB, dirB := testExporter(t)
	require.NoError(t, expA.Export(smallDataset()))
	require.NoError(t, expB.Export(smallDataset()))

	for _, name := range []string{FileDateDim, FilePlans, FileCustomers, FileSubscriptions, FileTransactions, FileCosts} {
		a, err := os.ReadFile(filepath.Join(dirA, name))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(dirB, name))
		require.NoError(t, err)
		assert.Equal(t, a, b, name)
	}
}
