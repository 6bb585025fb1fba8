package generator

import (
	"github.com/shopspring/decimal"
	"github.com/subsynth/subsynth/internal/domain/plan"
	"github.com/subsynth/subsynth/internal/types"
)

// GeneratePlans builds the static plan catalog. The annual plan carries an
// implicit discount against twelve months of Pro.
func GeneratePlans() (plan.Catalog, error) {
	catalog := plan.Catalog{
		{
			PlanID:              1,
			PlanName:            plan.NameBasic,
			Tier:                types.PlanTierBasic,
			Price:               decimal.NewFromFloat(10.0),
			CostPerSubscription: decimal.NewFromFloat(1.0),
			ActiveFlag:          true,
		},
		{
			PlanID:              2,
			PlanName:            plan.NamePro,
			Tier:                types.PlanTierPro,
			Price:               decimal.NewFromFloat(25.0),
			CostPerSubscription: decimal.NewFromFloat(2.5),
			ActiveFlag:          true,
		},
		{
			PlanID:              3,
			PlanName:            plan.NamePremium,
			Tier:                types.PlanTierPremium,
			Price:               decimal.NewFromFloat(40.0),
			CostPerSubscription: decimal.NewFromFloat(4.0),
			ActiveFlag:          true,
		},
		{
			PlanID:              4,
			PlanName:            plan.NameProYear,
			Tier:                types.PlanTierPro,
			Price:               decimal.NewFromFloat(250.0),
			CostPerSubscription: decimal.NewFromFloat(20.0),
			ActiveFlag:          true,
		},
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}
