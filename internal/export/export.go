package export

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/subsynth/subsynth/internal/config"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/generator"
	"github.com/subsynth/subsynth/internal/logger"
)

// Output file names. Downstream analytics jobs key on these.
const (
	FileDateDim       = "date_dim.csv"
	FilePlans         = "plans.csv"
	FileCustomers     = "customers.csv"
	FileSubscriptions = "subscriptions.csv"
	FileTransactions  = "transactions.csv"
	FileCosts         = "costs.csv"
	FileManifest      = "manifest.json"
)

// Exporter persists a validated dataset as flat CSV files plus a run
// manifest. It only ever sees datasets that passed every stage's validation;
// it writes them unchanged.
type Exporter struct {
	cfg *config.Configuration
	log *logger.Logger
}

func NewExporter(cfg *config.Configuration, log *logger.Logger) *Exporter {
	return &Exporter{cfg: cfg, log: log}
}

// Export writes all six tables and the manifest into the configured output
// directory, creating it if needed.
func (e *Exporter) Export(ds *generator.Dataset) error {
	dir := e.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to create output directory %s", dir).
			Mark(ierr.ErrInternal)
	}

	if err := writeCSV(dir, FileDateDim, toDateDimRecords(ds.DateDim)); err != nil {
		return err
	}
	if err := writeCSV(dir, FilePlans, toPlanRecords(ds.Plans)); err != nil {
		return err
	}
	if err := writeCSV(dir, FileCustomers, toCustomerRecords(ds.Customers)); err != nil {
		return err
	}
	if err := writeCSV(dir, FileSubscriptions, toSubscriptionRecords(ds.Subscriptions)); err != nil {
		return err
	}
	if err := writeCSV(dir, FileTransactions, toTransactionRecords(ds.Transactions)); err != nil {
		return err
	}
	if err := writeCSV(dir, FileCosts, toCostRecords(ds.Costs)); err != nil {
		return err
	}
	if err := e.writeManifest(dir, ds); err != nil {
		return err
	}

	e.log.Infow("exported dataset",
		"run_id", ds.RunID,
		"dir", dir,
		"date_dim_rows", len(ds.DateDim),
		"plan_rows", len(ds.Plans),
		"customer_rows", len(ds.Customers),
		"subscription_rows", len(ds.Subscriptions),
		"transaction_rows", len(ds.Transactions),
		"cost_rows", len(ds.Costs),
	)
	return nil
}

func writeCSV[T any](dir, name string, records []T) error {
	var buf bytes.Buffer
	if err := gocsv.Marshal(records, &buf); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to marshal %s", name).
			Mark(ierr.ErrInternal)
	}

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to write %s", path).
			Mark(ierr.ErrInternal)
	}
	return nil
}
