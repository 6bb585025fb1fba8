package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/subsynth/subsynth/internal/config"
	"github.com/subsynth/subsynth/internal/export"
	"github.com/subsynth/subsynth/internal/generator"
	"github.com/subsynth/subsynth/internal/logger"
	"go.uber.org/fx"
)

func init() {
	// All generated dates are day-granular UTC; pin the process so nothing
	// ever formats in a local zone.
	time.Local = time.UTC
}

func main() {
	app := fx.New(
		fx.Provide(
			config.NewConfig,
			logger.NewLogger,
			generator.New,
			export.NewExporter,
		),
		fx.Invoke(run),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	_ = app.Stop(context.Background())
}

// run executes one batch generation: pipeline, then persistence. A violation
// in any stage aborts before anything touches disk.
func run(gen *generator.Generator, exp *export.Exporter, log *logger.Logger) error {
	ds, err := gen.Run()
	if err != nil {
		log.Errorw("generation run failed", "error", err)
		return err
	}

	if err := exp.Export(ds); err != nil {
		log.Errorw("export failed", "run_id", ds.RunID, "error", err)
		return err
	}
	return nil
}
