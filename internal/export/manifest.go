package export

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	ierr "github.com/subsynth/subsynth/internal/errors"
	"github.com/subsynth/subsynth/internal/generator"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Manifest summarizes one run: what produced the files sitting next to it.
type Manifest struct {
	RunID     string         `json:"run_id"`
	Seed      int64          `json:"seed"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	RowCounts map[string]int `json:"row_counts"`
}

func (e *Exporter) writeManifest(dir string, ds *generator.Dataset) error {
	manifest := Manifest{
		RunID:     ds.RunID,
		Seed:      e.cfg.Generation.Seed,
		StartDate: e.cfg.Generation.StartDate,
		EndDate:   e.cfg.Generation.EndDate,
		RowCounts: map[string]int{
			FileDateDim:       len(ds.DateDim),
			FilePlans:         len(ds.Plans),
			FileCustomers:     len(ds.Customers),
			FileSubscriptions: len(ds.Subscriptions),
			FileTransactions:  len(ds.Transactions),
			FileCosts:         len(ds.Costs),
		},
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to marshal run manifest").
			Mark(ierr.ErrInternal)
	}

	path := filepath.Join(dir, FileManifest)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ierr.WithError(err).
			WithHintf("Failed to write %s", path).
			Mark(ierr.ErrInternal)
	}
	return nil
}
