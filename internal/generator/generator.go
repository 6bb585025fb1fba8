package generator

import (
	"github.com/subsynth/subsynth/internal/config"
	"github.com/subsynth/subsynth/internal/domain/calendar"
	"github.com/subsynth/subsynth/internal/domain/cost"
	"github.com/subsynth/subsynth/internal/domain/customer"
	"github.com/subsynth/subsynth/internal/domain/plan"
	"github.com/subsynth/subsynth/internal/domain/subscription"
	"github.com/subsynth/subsynth/internal/domain/transaction"
	"github.com/subsynth/subsynth/internal/logger"
	"github.com/subsynth/subsynth/internal/sampler"
	"github.com/subsynth/subsynth/internal/types"
)

// Generator runs the whole pipeline. Stages are strictly sequential: each one
// fully materializes and validates its table before the next stage reads it,
// and all randomness flows through one sampler seeded once per run.
type Generator struct {
	cfg *config.Configuration
	log *logger.Logger
}

func New(cfg *config.Configuration, log *logger.Logger) *Generator {
	return &Generator{cfg: cfg, log: log}
}

// Dataset is the full output of one generation run, every table sorted
// ascending by its id column.
type Dataset struct {
	RunID         string
	DateDim       []calendar.DateDim
	Plans         plan.Catalog
	Customers     []customer.Customer
	Subscriptions []subscription.Subscription
	Transactions  []transaction.Transaction
	Costs         []cost.Cost
}

// Run executes the pipeline. The first invariant violation aborts the run;
// nothing is handed to persistence unless every stage validated.
func (g *Generator) Run() (*Dataset, error) {
	horizon, err := g.cfg.Generation.Horizon()
	if err != nil {
		return nil, err
	}

	runID := types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RUN)
	smp := sampler.New(g.cfg.Generation.Seed)

	g.log.Infow("starting generation run",
		"run_id", runID,
		"seed", g.cfg.Generation.Seed,
		"horizon_start", horizon.Start.Format(types.DateFormat),
		"horizon_end", horizon.End.Format(types.DateFormat),
		"customers", g.cfg.Generation.Customers,
	)

	dateDim, err := GenerateDateDim(horizon)
	if err != nil {
		return nil, err
	}

	plans, err := GeneratePlans()
	if err != nil {
		return nil, err
	}

	customers, err := GenerateCustomers(smp, horizon, g.cfg.Generation.Customers)
	if err != nil {
		return nil, err
	}
	g.log.Infow("generated customers", "run_id", runID, "rows", len(customers))

	subs, err := GenerateSubscriptions(smp, horizon, customers, plans)
	if err != nil {
		return nil, err
	}
	g.log.Infow("generated subscriptions",
		"run_id", runID,
		"rows", len(subs),
		"churn_rate", subscription.ChurnRate(subs),
	)

	txns, err := GenerateTransactions(smp, horizon, subs, plans)
	if err != nil {
		return nil, err
	}
	g.log.Infow("generated transactions",
		"run_id", runID,
		"rows", len(txns),
		"failure_rate", transaction.FailureRate(txns),
	)

	costs, err := GenerateCosts(smp, txns)
	if err != nil {
		return nil, err
	}
	g.log.Infow("generated costs", "run_id", runID, "rows", len(costs))

	return &Dataset{
		RunID:         runID,
		DateDim:       dateDim,
		Plans:         plans,
		Customers:     customers,
		Subscriptions: subs,
		Transactions:  txns,
		Costs:         costs,
	}, nil
}
