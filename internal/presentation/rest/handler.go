package rest

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bibbank/guestrisk/internal/application/dto"
	"github.com/bibbank/guestrisk/internal/application/usecase"
	"github.com/bibbank/guestrisk/internal/domain/model"
)

// TenantHeader carries the restaurant tenant on every request.
const TenantHeader = "X-Tenant-ID"

// GuestRiskHandler serves the prediction and tagging endpoints.
type GuestRiskHandler struct {
	predictGuest  *usecase.PredictGuest
	predictBatch  *usecase.PredictBatch
	analyzeTags   *usecase.AnalyzeTags
	demoScenarios *usecase.ListDemoScenarios
	logger        *slog.Logger
}

// NewGuestRiskHandler creates a new REST handler.
func NewGuestRiskHandler(
	predictGuest *usecase.PredictGuest,
	predictBatch *usecase.PredictBatch,
	analyzeTags *usecase.AnalyzeTags,
	demoScenarios *usecase.ListDemoScenarios,
	logger *slog.Logger,
) *GuestRiskHandler {
	return &GuestRiskHandler{
		predictGuest:  predictGuest,
		predictBatch:  predictBatch,
		analyzeTags:   analyzeTags,
		demoScenarios: demoScenarios,
		logger:        logger,
	}
}

// AnalysisHistoryResponse is the body of GET /api/v1/analysis-history.
type AnalysisHistoryResponse struct {
	Message string `json:"message"`
	History []any  `json:"history"`
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *GuestRiskHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/predict-guest-behavior", h.PredictGuestBehavior)
	mux.HandleFunc("POST /api/v1/predict-batch", h.PredictBatch)
	mux.HandleFunc("POST /api/v1/reservations/analyze-tags", h.AnalyzeTags)
	mux.HandleFunc("GET /api/v1/demo-scenarios", h.DemoScenarios)
	mux.HandleFunc("GET /api/v1/analysis-history", h.AnalysisHistory)
}

// PredictGuestBehavior scores one reservation.
func (h *GuestRiskHandler) PredictGuestBehavior(w http.ResponseWriter, r *http.Request) {
	req := dto.NewPredictRequest()
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	req.TenantID = tenantFromRequest(r)

	resp, err := h.predictGuest.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, "failed to predict guest", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// PredictBatch scores a list of reservations, such as tonight's table list.
func (h *GuestRiskHandler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchPredictRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	req.TenantID = tenantFromRequest(r)

	resp, err := h.predictBatch.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, "failed to predict batch", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AnalyzeTags extracts CRM tags and sentiment from reservation text.
func (h *GuestRiskHandler) AnalyzeTags(w http.ResponseWriter, r *http.Request) {
	var req dto.AnalyzeTagsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	req.TenantID = tenantFromRequest(r)

	writeJSON(w, http.StatusOK, h.analyzeTags.Execute(r.Context(), req))
}

// DemoScenarios returns the pre-built demo reservations.
func (h *GuestRiskHandler) DemoScenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.demoScenarios.Execute())
}

// AnalysisHistory always returns an empty history.
func (h *GuestRiskHandler) AnalysisHistory(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, AnalysisHistoryResponse{
		History: []any{},
		Message: "History is stored client-side in this version.",
	})
}

func tenantFromRequest(r *http.Request) string {
	if tenant := strings.TrimSpace(r.Header.Get(TenantHeader)); tenant != "" {
		return tenant
	}
	return model.DefaultTenantID
}
