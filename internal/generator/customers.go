package generator

import (
	"time"

	"github.com/subsynth/subsynth/internal/domain/customer"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/sampler"
	"github.com/subsynth/subsynth/internal/types"
)

// MaxChannelShare is the skew guard on the realized acquisition-channel mix:
// no single channel may account for this share or more.
const MaxChannelShare = 0.60

// GenerateCustomers builds n customers with ids 1..n. Signup dates get a mild
// seasonality (more signups in Q1 and Q4); country and channel are straight
// categorical draws.
func GenerateCustomers(smp *sampler.Sampler, horizon types.Horizon, n int) ([]customer.Customer, error) {
	days := horizon.Days()
	weights := seasonalWeights(days)

	customers := make([]customer.Customer, 0, n)
	for id := int64(1); id <= int64(n); id++ {
		customers = append(customers, customer.Customer{
			CustomerID:         id,
			SignupDate:         smp.WeightedDay(days, weights),
			Country:            sampler.CountryDist.Sample(smp),
			AcquisitionChannel: sampler.ChannelDist.Sample(smp),
		})
	}

	if err := customer.Validate(customers, horizon); err != nil {
		return nil, err
	}
	if share := customer.MaxChannelShare(customers); share >= MaxChannelShare {
		return nil, ierr.NewError("acquisition channel mix too skewed").
			WithHintf("Largest channel share %.3f >= %.2f; check the channel distribution", share, MaxChannelShare).
			WithReportableDetails(map[string]any{
				"max_share": share,
				"limit":     MaxChannelShare,
			}).
			Mark(ierr.ErrStatisticalShape)
	}
	return customers, nil
}

// seasonalWeights weights each horizon day for signup sampling: Q1/Q4 days
// get 1.25, the rest 1.0.
func seasonalWeights(days []time.Time) []float64 {
	weights := make([]float64, len(days))
	for i, d := range days {
		if types.IsCampaignMonth(d) {
			weights[i] = 1.25
		} else {
			weights[i] = 1.0
		}
	}
	return weights
}
