package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	"github.com/subsynth/subsynth/internal/sampler"
	"github.com/subsynth/subsynth/internal/types"
)

var genHorizon = types.Horizon{
	Start: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
}

func generateFixture(t *testing.T, seed int64, n int) []subscription.Subscription {
	t.Helper()

	smp := sampler.New(seed)
	catalog, err := GeneratePlans()
	require.NoError(t, err)
	customers, err := GenerateCustomers(smp, genHorizon, n)
	require.NoError(t, err)
	subs, err := GenerateSubscriptions(smp, genHorizon, customers, catalog)
	require.NoError(t, err)
	return subs
}

func TestGenerateSubscriptionsInvariants(t *testing.T) {
	subs := generateFixture(t, 42, 3000)
	require.NotEmpty(t, subs)

	for i, sub := range subs {
		assert.Equal(t, int64(i+1), sub.SubscriptionID)
		assert.False(t, sub.StartDate.Before(genHorizon.Start))
		assert.False(t, sub.StartDate.After(genHorizon.End))

		if sub.Status == types.SubscriptionStatusCanceled {
			require.NotNil(t, sub.EndDate)
			require.NotNil(t, sub.CancellationReason)
			// The forced end = start + 1 month correction may land past the
			// horizon; only end > start holds for every row.
			assert.True(t, sub.EndDate.After(sub.StartDate))
		} else {
			assert.Nil(t, sub.EndDate)
			assert.Nil(t, sub.CancellationReason)
		}
	}

	rate := subscription.ChurnRate(subs)
	assert.GreaterOrEqual(t, rate, subscription.MinChurnRate)
	assert.LessOrEqual(t, rate, subscription.MaxChurnRate)
}

func TestGenerateSubscriptionsPerCustomerSequencing(t *testing.T) {
	subs := generateFixture(t, 42, 3000)

	byCustomer := make(map[int64][]subscription.Subscription)
	for _, sub := range subs {
		byCustomer[sub.CustomerID] = append(byCustomer[sub.CustomerID], sub)
	}

	var zeroGap int
	for customerID, rows := range byCustomer {
		for i := 0; i < len(rows)-1; i++ {
			cur, next := rows[i], rows[i+1]
			require.Equal(t, types.SubscriptionStatusCanceled, cur.Status,
				"customer %d has a period after an active one", customerID)
			// The gap draw is [0, 30] days inclusive, so the follow-up period
			// may start on the cancellation day itself.
			assert.False(t, cur.EndDate.After(next.StartDate))
			if next.StartDate.Equal(*cur.EndDate) {
				zeroGap++
			}
		}
	}
	// This fixture contains back-to-back periods, so the tolerance above is
	// exercised, not just permitted.
	assert.Positive(t, zeroGap)
}

func TestGenerateSubscriptionsDeterministic(t *testing.T) {
	first := generateFixture(t, 42, 3000)
	second := generateFixture(t, 42, 3000)

	assert.Equal(t, first, second)
}
