// Command pipelinefit fits the preprocessing pipeline on the reference
// dataset and writes the JSON cache the server loads at startup.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bibbank/guestrisk/internal/domain/port"
	"github.com/bibbank/guestrisk/internal/infrastructure/config"
	"github.com/bibbank/guestrisk/internal/infrastructure/ml"
	"github.com/bibbank/guestrisk/internal/infrastructure/reference"
	"github.com/bibbank/guestrisk/migrations"
	"github.com/bibbank/guestrisk/pkg/observability"
	pkgpostgres "github.com/bibbank/guestrisk/pkg/postgres"
)

type options struct {
	source      string
	dataset     string
	out         string
	weights     string
	databaseURL string
	importCSV   bool
	migrate     bool
}

func main() {
	cfg := config.Load()

	var opts options
	flag.StringVar(&opts.source, "source", cfg.ReferenceSource, "reference source: csv or postgres")
	flag.StringVar(&opts.dataset, "dataset", cfg.ReferenceDatasetPath, "reference CSV path")
	flag.StringVar(&opts.out, "out", cfg.PipelineCachePath, "pipeline cache output path")
	flag.StringVar(&opts.weights, "weights", cfg.ModelWeightsPath, "network weights to check the pipeline against; empty skips the check")
	flag.StringVar(&opts.databaseURL, "database-url", cfg.DatabaseURL, "PostgreSQL URL for the postgres source")
	flag.BoolVar(&opts.importCSV, "import", false, "import the CSV into PostgreSQL before fitting")
	flag.BoolVar(&opts.migrate, "migrate", cfg.RunMigrations, "apply database migrations first")
	flag.Parse()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  "text",
		Service: "guestrisk-pipelinefit",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("pipeline fit failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	usePostgres := opts.importCSV || opts.source == config.ReferenceSourcePostgres

	var source port.ReferenceSource = reference.NewCSVSource(opts.dataset)
	if usePostgres {
		if opts.migrate {
			if err := pkgpostgres.RunMigrations(opts.databaseURL, migrations.FS, "."); err != nil {
				return err
			}
			logger.Info("database migrations applied")
		}

		pool, err := pkgpostgres.NewPool(ctx, pkgpostgres.Config{URL: opts.databaseURL, ApplicationName: "guestrisk-pipelinefit"})
		if err != nil {
			return err
		}
		defer pool.Close()
		pgSource := reference.NewPostgresSource(pool)

		if opts.importCSV {
			rows, err := reference.NewCSVSource(opts.dataset).Load(ctx)
			if err != nil {
				return err
			}
			n, err := pgSource.Import(ctx, rows)
			if err != nil {
				return err
			}
			logger.Info("reference dataset imported", "rows", n, "dataset", opts.dataset)
		}
		if opts.source == config.ReferenceSourcePostgres {
			source = pgSource
		}
	}

	rows, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference dataset: %w", err)
	}
	pipeline, err := ml.FitPipeline(rows)
	if err != nil {
		return fmt.Errorf("failed to fit pipeline: %w", err)
	}

	if opts.weights != "" {
		network, err := ml.LoadNetwork(opts.weights)
		if err != nil {
			return err
		}
		if network.InputDim != pipeline.OutputDim() {
			return fmt.Errorf("network expects %d inputs but pipeline produces %d", network.InputDim, pipeline.OutputDim())
		}
	}

	if err := ml.SavePipeline(opts.out, pipeline); err != nil {
		return err
	}

	logger.Info("pipeline cache written",
		"path", opts.out,
		"rows", len(rows),
		"output_dim", pipeline.OutputDim(),
	)
	return nil
}
