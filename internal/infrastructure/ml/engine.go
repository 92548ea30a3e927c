package ml

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/internal/domain/port"
)

// EngineConfig configures the inference engine.
type EngineConfig struct {
	// Source fits the pipeline when the cache is missing. May be nil.
	Source             port.ReferenceSource
	WeightsPath        string
	CachePath          string
	LoadTimeout        time.Duration
	BreakerTimeout     time.Duration
	BreakerMaxFailures uint32
}

// Engine wraps the frozen network and its preprocessing pipeline. It loads
// lazily on the first Init and settles permanently into Available or
// Unavailable.
type Engine struct {
	network  *Network
	pipeline *Pipeline
	breaker  *gobreaker.CircuitBreaker[float64]
	logger   *slog.Logger
	cfg      EngineConfig
	once     sync.Once
	status   atomic.Int32
}

var _ port.ReliabilityModel = (*Engine)(nil)

// NewEngine creates an engine in the not-loaded state.
func NewEngine(cfg EngineConfig, logger *slog.Logger) *Engine {
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}
	if cfg.LoadTimeout == 0 {
		cfg.LoadTimeout = DefaultLoadTimeout
	}

	e := &Engine{cfg: cfg, logger: logger}
	e.breaker = gobreaker.NewCircuitBreaker[float64](gobreaker.Settings{
		Name:        "guestrisk-inference",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("inference circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return e
}

// DefaultLoadTimeout bounds the one-time load of the pipeline and network.
const DefaultLoadTimeout = 2 * time.Minute

// Init loads the pipeline and network exactly once. Concurrent callers block
// until the first load finishes. The load keeps the values of ctx but not its
// cancellation, so an abandoned first request cannot mark the engine
// Unavailable.
func (e *Engine) Init(ctx context.Context) model.EngineStatus {
	e.once.Do(func() {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.LoadTimeout)
		defer cancel()

		if err := e.load(loadCtx); err != nil {
			e.status.Store(int32(model.EngineUnavailable))
			e.logger.Warn("reliability model unavailable, using heuristic fallback", "error", err)
			return
		}
		e.status.Store(int32(model.EngineAvailable))
		e.logger.Info("reliability model loaded",
			"input_dim", e.network.InputDim,
			"layers", len(e.network.Layers),
		)
	})
	return e.Status()
}

// Status reports the lifecycle status without loading.
func (e *Engine) Status() model.EngineStatus {
	return model.EngineStatus(e.status.Load())
}

// Predict transforms the record and runs the forward pass behind the circuit
// breaker.
func (e *Engine) Predict(ctx context.Context, rec model.FeatureRecord) (float64, error) {
	if e.Status() != model.EngineAvailable {
		return 0, model.ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	x, err := e.pipeline.Transform(rec)
	if err != nil {
		return 0, err
	}

	return e.breaker.Execute(func() (float64, error) {
		return e.network.Forward(x)
	})
}

func (e *Engine) load(ctx context.Context) error {
	pipeline, err := e.loadPipeline(ctx)
	if err != nil {
		return err
	}

	network, err := LoadNetwork(e.cfg.WeightsPath)
	if err != nil {
		return err
	}
	if network.InputDim != pipeline.OutputDim() {
		return fmt.Errorf("network expects %d inputs but pipeline produces %d", network.InputDim, pipeline.OutputDim())
	}

	e.pipeline = pipeline
	e.network = network
	return nil
}

func (e *Engine) loadPipeline(ctx context.Context) (*Pipeline, error) {
	if e.cfg.CachePath != "" {
		p, err := LoadPipeline(e.cfg.CachePath)
		if err == nil {
			return p, nil
		}
		e.logger.Info("pipeline cache unusable, fitting from reference data", "error", err)
	}

	if e.cfg.Source == nil {
		return nil, fmt.Errorf("no pipeline cache and no reference source configured")
	}

	rows, err := e.cfg.Source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference dataset: %w", err)
	}
	p, err := FitPipeline(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to fit pipeline: %w", err)
	}

	if e.cfg.CachePath != "" {
		if err := SavePipeline(e.cfg.CachePath, p); err != nil {
			e.logger.Warn("failed to write pipeline cache", "error", err)
		}
	}
	return p, nil
}
