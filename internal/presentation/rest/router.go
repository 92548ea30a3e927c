package rest

import (
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts the API, health and metrics endpoints. Only the API
// routes are rate limited. A nil metrics handler skips /metrics.
func NewRouter(
	api *GuestRiskHandler,
	health *HealthHandler,
	metrics http.Handler,
	limiter *TenantRateLimiter,
	logger *slog.Logger,
) http.Handler {
	apiMux := http.NewServeMux()
	api.RegisterRoutes(apiMux)

	var apiHandler http.Handler = apiMux
	if limiter != nil {
		apiHandler = limiter.Middleware()(apiMux)
	}

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", apiHandler)
	health.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	return Chain(mux, chimiddleware.RequestID, RequestLogger(logger), Recoverer, CORS())
}
