package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/bibbank/guestrisk/internal/domain/model"
)

// Service identity reported by GET /api/health.
const (
	ServiceName    = "eMenu Smart Tags - Predictive Intelligence"
	ServiceVersion = "3.0.0"
	DomainAdapter  = "restaurant-to-hotel-v1"
)

// ModelStatus reports the inference engine state.
type ModelStatus interface {
	Status() model.EngineStatus
}

// ReadinessCheck is one dependency probed by /readyz.
type ReadinessCheck struct {
	Check func(ctx context.Context) error
	Name  string
}

// HealthHandler provides HTTP health check endpoints for the guest risk service.
type HealthHandler struct {
	startTime time.Time
	model     ModelStatus
	logger    *slog.Logger
	checks    []ReadinessCheck
}

// NewHealthHandler creates a new health check handler. A nil model reports
// heuristic-only scoring.
func NewHealthHandler(logger *slog.Logger, modelStatus ModelStatus, checks ...ReadinessCheck) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		model:     modelStatus,
		checks:    checks,
		startTime: time.Now(),
	}
}

// ServiceHealthResponse is the JSON response of GET /api/health.
type ServiceHealthResponse struct {
	Status        string `json:"status"`
	Service       string `json:"service"`
	Version       string `json:"version"`
	DomainAdapter string `json:"domain_adapter"`
	ModelLoaded   bool   `json:"model_loaded"`
}

// HealthResponse is the JSON response for liveness checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Checks  map[string]string `json:"checks"`
	Status  string            `json:"status"`
	Service string            `json:"service"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.ServiceHealth)
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// ServiceHealth reports the service identity and whether the network is loaded.
func (h *HealthHandler) ServiceHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, ServiceHealthResponse{
		Status:        "healthy",
		Service:       ServiceName,
		Version:       ServiceVersion,
		ModelLoaded:   h.modelStatus() == model.EngineAvailable,
		DomainAdapter: DomainAdapter,
	})
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "guestrisk",
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests. The model state is informational
// since scoring falls back to the heuristic.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"model": h.modelStatus().String()}
	code, state := http.StatusOK, "ready"

	for _, c := range h.checks {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		err := c.Check(ctx)
		cancel()
		if err != nil {
			h.logger.WarnContext(r.Context(), "readiness check failed",
				slog.String("check", c.Name),
				slog.String("error", err.Error()),
			)
			checks[c.Name] = "failed"
			code, state = http.StatusServiceUnavailable, "not_ready"
			continue
		}
		checks[c.Name] = "ok"
	}

	writeJSON(w, code, ReadinessResponse{
		Status:  state,
		Service: "guestrisk",
		Checks:  checks,
	})
}

func (h *HealthHandler) modelStatus() model.EngineStatus {
	if h.model == nil {
		return model.EngineNotLoaded
	}
	return h.model.Status()
}
