package plan

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/types"
)

// Plan names of the static catalog. Sequencing maps tier samples onto the
// monthly plans and always maps yearly periods onto the discounted annual
// plan.
const (
	NameBasic   = "Basic"
	NamePro     = "Pro"
	NamePremium = "Premium"
	NameProYear = "Pro Year"
)

// Plan represents one catalog offering.
type Plan struct {
	// PlanID is the unique identifier
	PlanID int64 `json:"plan_id"`

	// PlanName is the display name; the four catalog names are fixed
	PlanName string `json:"plan_name"`

	// Tier groups plans independently of billing cycle
	Tier types.PlanTier `json:"tier"`

	// Price is the gross amount charged per billing period
	Price decimal.Decimal `json:"price"`

	// CostPerSubscription is the internal serving cost per period
	CostPerSubscription decimal.Decimal `json:"cost_per_subscription"`

	// ActiveFlag marks whether the plan is currently sellable
	ActiveFlag bool `json:"active_flag"`
}

// Catalog is the full plan table with lookup helpers.
type Catalog []Plan

// ByName returns the plan with the given name.
func (c Catalog) ByName(name string) (Plan, bool) {
	return lo.Find(c, func(p Plan) bool { return p.PlanName == name })
}

// MonthlyPlanForTier maps a sampled tier to its monthly plan row.
func (c Catalog) MonthlyPlanForTier(tier types.PlanTier) (Plan, error) {
	var name string
	switch tier {
	case types.PlanTierBasic:
		name = NameBasic
	case types.PlanTierPro:
		name = NamePro
	case types.PlanTierPremium:
		name = NamePremium
	default:
		return Plan{}, ierr.NewErrorf("no monthly plan for tier %q", tier).
			Mark(ierr.ErrValidation)
	}
	p, ok := c.ByName(name)
	if !ok {
		return Plan{}, ierr.NewErrorf("catalog is missing plan %q", name).
			Mark(ierr.ErrReferential)
	}
	return p, nil
}

// AnnualPlan returns the discounted annual plan.
func (c Catalog) AnnualPlan() (Plan, error) {
	p, ok := c.ByName(NameProYear)
	if !ok {
		return Plan{}, ierr.NewErrorf("catalog is missing plan %q", NameProYear).
			Mark(ierr.ErrReferential)
	}
	return p, nil
}

// PriceByID returns a plan_id -> price lookup for transaction expansion.
func (c Catalog) PriceByID() map[int64]decimal.Decimal {
	prices := make(map[int64]decimal.Decimal, len(c))
	for _, p := range c {
		prices[p.PlanID] = p.Price
	}
	return prices
}

// IDSet returns the set of plan ids for referential checks downstream.
func (c Catalog) IDSet() map[int64]struct{} {
	ids := make(map[int64]struct{}, len(c))
	for _, p := range c {
		ids[p.PlanID] = struct{}{}
	}
	return ids
}

// Validate checks the catalog: unique ids, positive prices, known tiers, and
// exactly one row for each of the four required plan names.
func (c Catalog) Validate() error {
	seen := make(map[int64]struct{}, len(c))
	for _, p := range c {
		if _, ok := seen[p.PlanID]; ok {
			return ierr.NewError("duplicate plan id").
				WithReportableDetails(map[string]any{"plan_id": p.PlanID}).
				Mark(ierr.ErrUniqueness)
		}
		seen[p.PlanID] = struct{}{}

		if !p.Price.IsPositive() {
			return ierr.NewError("plan price must be positive").
				WithReportableDetails(map[string]any{
					"plan_id": p.PlanID,
					"price":   p.Price.String(),
				}).
				Mark(ierr.ErrRange)
		}
		if err := p.Tier.Validate(); err != nil {
			return err
		}
	}

	for _, name := range []string{NameBasic, NamePro, NamePremium, NameProYear} {
		n := lo.CountBy(c, func(p Plan) bool { return p.PlanName == name })
		if n != 1 {
			return ierr.NewErrorf("catalog must contain exactly one %q plan", name).
				WithReportableDetails(map[string]any{"plan_name": name, "count": n}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}
