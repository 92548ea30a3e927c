package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bibbank/guestrisk/internal/application/usecase"
	"github.com/bibbank/guestrisk/internal/domain/port"
	"github.com/bibbank/guestrisk/internal/domain/service"
	"github.com/bibbank/guestrisk/internal/infrastructure/config"
	"github.com/bibbank/guestrisk/internal/infrastructure/kafka"
	"github.com/bibbank/guestrisk/internal/infrastructure/messaging"
	"github.com/bibbank/guestrisk/internal/infrastructure/metrics"
	"github.com/bibbank/guestrisk/internal/infrastructure/ml"
	"github.com/bibbank/guestrisk/internal/infrastructure/reference"
	"github.com/bibbank/guestrisk/internal/infrastructure/sentiment"
	grpcpresentation "github.com/bibbank/guestrisk/internal/presentation/grpc"
	"github.com/bibbank/guestrisk/internal/presentation/rest"
	"github.com/bibbank/guestrisk/migrations"
	"github.com/bibbank/guestrisk/pkg/auth"
	pkgkafka "github.com/bibbank/guestrisk/pkg/kafka"
	"github.com/bibbank/guestrisk/pkg/observability"
	pkgpostgres "github.com/bibbank/guestrisk/pkg/postgres"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Service:     "guestrisk",
		Version:     rest.ServiceVersion,
		Environment: cfg.Environment,
	})

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("guestrisk exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting guestrisk",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"reference_source", cfg.ReferenceSource,
	)

	// Tracing.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName:    "guestrisk",
		ServiceVersion: rest.ServiceVersion,
		Endpoint:       cfg.OTLPEndpoint,
		Insecure:       cfg.OTLPInsecure,
		SampleRatio:    cfg.TraceSampleRatio,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }()
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName:    "guestrisk",
		ServiceVersion: rest.ServiceVersion,
	})
	if err != nil {
		return err
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	recorder, err := metrics.NewRecorder(meterProvider.Meter("github.com/bibbank/guestrisk"))
	if err != nil {
		return err
	}

	// Reference dataset for pipeline fitting.
	var (
		source port.ReferenceSource
		checks []rest.ReadinessCheck
	)
	switch cfg.ReferenceSource {
	case config.ReferenceSourcePostgres:
		if cfg.RunMigrations {
			if err := pkgpostgres.RunMigrations(cfg.DatabaseURL, migrations.FS, "."); err != nil {
				return err
			}
			logger.Info("database migrations applied")
		}

		dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
		defer dbCancel()
		pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{URL: cfg.DatabaseURL, MaxConns: 4})
		if err != nil {
			return err
		}
		defer pool.Close()
		logger.Info("connected to database")

		source = reference.NewPostgresSource(pool)
		checks = append(checks, rest.ReadinessCheck{
			Name:  "postgres",
			Check: func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
		})
	default:
		source = reference.NewCSVSource(cfg.ReferenceDatasetPath)
	}

	// Inference engine, warmed up in the background.
	engine := ml.NewEngine(ml.EngineConfig{
		Source:             source,
		WeightsPath:        cfg.ModelWeightsPath,
		CachePath:          cfg.PipelineCachePath,
		LoadTimeout:        cfg.ModelLoadTimeout,
		BreakerMaxFailures: uint32(max(cfg.BreakerMaxFailures, 0)),
		BreakerTimeout:     cfg.BreakerTimeout,
	}, logger)
	go func() {
		status := engine.Init(ctx)
		logger.Info("inference engine settled", "status", status.String())
	}()

	// Event publishing.
	var publisher port.EventPublisher
	if cfg.KafkaEnabled() {
		producer, err := pkgkafka.NewProducer(pkgkafka.Config{
			Brokers:  cfg.KafkaBrokers,
			ClientID: "guestrisk",
		})
		if err != nil {
			return err
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("failed to close kafka producer", "error", err)
			}
		}()
		publisher = kafka.NewPublisher(producer, cfg.KafkaTopic, logger)
		logger.Info("publishing events to kafka", "topic", cfg.KafkaTopic)
	} else {
		publisher = messaging.NewLogPublisher(logger, slog.LevelInfo)
		logger.Info("no kafka brokers configured, logging events")
	}

	// Wire domain services.
	scorer := service.NewBlendedScorer(
		service.NewFeatureMapper(),
		service.NewHeuristicScorer(),
		engine,
		cfg.ANNWeight,
		logger,
	)
	analyzer := sentiment.NewLexiconAnalyzer()

	// Wire use cases.
	predictGuestUC := usecase.NewPredictGuest(scorer, service.NewSmartTagger(), analyzer, publisher, recorder, logger)
	predictBatchUC := usecase.NewPredictBatch(predictGuestUC)
	analyzeTagsUC := usecase.NewAnalyzeTags(service.NewCRMTagger(), analyzer, recorder)
	demoScenariosUC := usecase.NewListDemoScenarios()

	// gRPC server.
	var jwtService *auth.JWTService
	if cfg.JWTSecret != "" {
		jwtService, err = auth.NewJWTService(auth.JWTConfig{
			Secret:     cfg.JWTSecret,
			Issuer:     "guestrisk",
			Expiration: time.Hour,
		})
		if err != nil {
			return err
		}
	}

	grpcHandler := grpcpresentation.NewGuestRiskHandler(predictGuestUC, predictBatchUC, analyzeTagsUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:     cfg.GRPCAddress(),
		TLSCertFile: cfg.TLSCertFile,
		TLSKeyFile:  cfg.TLSKeyFile,
		Reflection:  cfg.GRPCReflection,
	}, logger, jwtService)
	if err != nil {
		return err
	}

	// HTTP server.
	router := rest.NewRouter(
		rest.NewGuestRiskHandler(predictGuestUC, predictBatchUC, analyzeTagsUC, demoScenariosUC, logger),
		rest.NewHealthHandler(logger, engine, checks...),
		metricsHandler,
		rest.NewTenantRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger),
		logger,
	)
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("guestrisk started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down guestrisk")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("guestrisk stopped")
	return serveErr
}
