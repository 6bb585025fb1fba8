package customer

import (
	"time"

	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

// Customer represents one acquired customer. Rows are immutable once
// generated; downstream stages only read them.
type Customer struct {
	// CustomerID is the unique identifier, a dense sequence starting at 1
	CustomerID int64 `json:"customer_id"`

	// SignupDate is the day the customer signed up, within the horizon
	SignupDate time.Time `json:"signup_date"`

	// Country is the customer's billing country
	Country types.CountryCode `json:"country"`

	// AcquisitionChannel is how the customer was acquired
	AcquisitionChannel types.AcquisitionChannel `json:"acquisition_channel"`
}

// Validate checks row-level invariants for the whole table: id uniqueness,
// signup dates inside the horizon, and categorical domains.
func Validate(customers []Customer, horizon types.Horizon) error {
	seen := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		if c.CustomerID < 1 {
			return ierr.NewError("customer id out of range").
				WithReportableDetails(map[string]any{"customer_id": c.CustomerID}).
				Mark(ierr.ErrRange)
		}
		if _, ok := seen[c.CustomerID]; ok {
			return ierr.NewError("duplicate customer id").
				WithReportableDetails(map[string]any{"customer_id": c.CustomerID}).
				Mark(ierr.ErrUniqueness)
		}
		seen[c.CustomerID] = struct{}{}

		if !horizon.Contains(c.SignupDate) {
			return ierr.NewError("signup date outside horizon").
				WithReportableDetails(map[string]any{
					"customer_id": c.CustomerID,
					"signup_date": c.SignupDate.Format(types.DateFormat),
				}).
				Mark(ierr.ErrRange)
		}
		if err := c.Country.Validate(); err != nil {
			return err
		}
		if err := c.AcquisitionChannel.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// MaxChannelShare returns the largest realized share of any single
// acquisition channel. Used as a skew guard on the channel distribution.
func MaxChannelShare(customers []Customer) float64 {
	if len(customers) == 0 {
		return 0
	}
	counts := make(map[types.AcquisitionChannel]int)
	for _, c := range customers {
		counts[c.AcquisitionChannel]++
	}
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	return float64(max) / float64(len(customers))
}

// IDSet returns the set of customer ids for referential checks downstream.
func IDSet(customers []Customer) map[int64]struct{} {
	ids := make(map[int64]struct{}, len(customers))
	for _, c := range customers {
		ids[c.CustomerID] = struct{}{}
	}
	return ids
}
