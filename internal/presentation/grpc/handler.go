package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/bibbank/guestrisk/internal/application/dto"
	"github.com/bibbank/guestrisk/internal/application/usecase"
	"github.com/bibbank/guestrisk/internal/domain/model"
	"github.com/bibbank/guestrisk/pkg/auth"
)

// TenantMetadataKey is the metadata key read when the caller carries no
// tenant claim.
const TenantMetadataKey = "x-tenant-id"

var scoringRoles = []string{auth.RoleAdmin, auth.RoleFloorStaff, auth.RoleAPIClient}

// requireRole checks that the caller has at least one of the given roles.
// Calls without claims pass, since they only reach the handler when the auth
// interceptor is not installed.
func requireRole(ctx context.Context, roles ...string) error {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil
	}
	if claims.HasAnyRole(roles...) {
		return nil
	}
	return status.Error(codes.PermissionDenied, "insufficient permissions")
}

// tenantIDFromContext resolves the tenant from the JWT claim, then the
// x-tenant-id metadata, then the default tenant.
func tenantIDFromContext(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok && claims.TenantID != "" {
		return claims.TenantID
	}
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if v := md.Get(TenantMetadataKey); len(v) > 0 && strings.TrimSpace(v[0]) != "" {
			return strings.TrimSpace(v[0])
		}
	}
	return model.DefaultTenantID
}

// Compile-time assertion that GuestRiskHandler implements GuestRiskServiceServer.
var _ GuestRiskServiceServer = (*GuestRiskHandler)(nil)

// GuestRiskHandler implements the gRPC GuestRiskServiceServer interface.
type GuestRiskHandler struct {
	UnimplementedGuestRiskServiceServer
	predictGuest *usecase.PredictGuest
	predictBatch *usecase.PredictBatch
	analyzeTags  *usecase.AnalyzeTags
	logger       *slog.Logger
}

// NewGuestRiskHandler creates a new gRPC handler.
func NewGuestRiskHandler(
	predictGuest *usecase.PredictGuest,
	predictBatch *usecase.PredictBatch,
	analyzeTags *usecase.AnalyzeTags,
	logger *slog.Logger,
) *GuestRiskHandler {
	return &GuestRiskHandler{
		predictGuest: predictGuest,
		predictBatch: predictBatch,
		analyzeTags:  analyzeTags,
		logger:       logger,
	}
}

// PredictGuestRequest wraps one reservation.
type PredictGuestRequest struct {
	Reservation dto.PredictRequest `json:"reservation"`
}

// PredictGuestResponse wraps one prediction.
type PredictGuestResponse struct {
	Prediction dto.PredictionResponse `json:"prediction"`
}

// PredictBatchRequest carries a list of reservations.
type PredictBatchRequest struct {
	Reservations []dto.PredictRequest `json:"reservations"`
}

// PredictBatchResponse carries predictions in input order.
type PredictBatchResponse struct {
	Predictions []dto.PredictionResponse `json:"predictions"`
	Count       int                      `json:"count"`
}

// AnalyzeTagsRequest carries the free text of a CRM profile.
type AnalyzeTagsRequest struct {
	SpecialRequestText string `json:"special_request_text"`
	DietaryPreferences string `json:"dietary_preferences"`
	CustomerName       string `json:"customer_name"`
}

// AnalyzeTagsResponse wraps the tag analysis.
type AnalyzeTagsResponse struct {
	Analysis dto.AnalyzeTagsResponse `json:"analysis"`
}

// PredictGuest scores a single reservation.
func (h *GuestRiskHandler) PredictGuest(ctx context.Context, req *PredictGuestRequest) (*PredictGuestResponse, error) {
	if err := requireRole(ctx, scoringRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := req.Reservation
	in.TenantID = tenantIDFromContext(ctx)

	result, err := h.predictGuest.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "failed to predict guest", err)
	}
	return &PredictGuestResponse{Prediction: result}, nil
}

// PredictBatch scores a list of reservations.
func (h *GuestRiskHandler) PredictBatch(ctx context.Context, req *PredictBatchRequest) (*PredictBatchResponse, error) {
	if err := requireRole(ctx, scoringRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.predictBatch.Execute(ctx, dto.BatchPredictRequest{
		TenantID:     tenantIDFromContext(ctx),
		Reservations: req.Reservations,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "failed to predict batch", err)
	}
	return &PredictBatchResponse{Predictions: result.Predictions, Count: result.Count}, nil
}

// AnalyzeTags extracts CRM tags and sentiment from profile text.
func (h *GuestRiskHandler) AnalyzeTags(ctx context.Context, req *AnalyzeTagsRequest) (*AnalyzeTagsResponse, error) {
	if err := requireRole(ctx, scoringRoles...); err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result := h.analyzeTags.Execute(ctx, dto.AnalyzeTagsRequest{
		TenantID:           tenantIDFromContext(ctx),
		SpecialRequestText: req.SpecialRequestText,
		DietaryPreferences: req.DietaryPreferences,
		CustomerName:       req.CustomerName,
	})
	return &AnalyzeTagsResponse{Analysis: result}, nil
}

func (h *GuestRiskHandler) toStatus(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, model.ErrMalformedInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}
	h.logger.ErrorContext(ctx, msg, slog.String("error", err.Error()))
	return status.Error(codes.Internal, "internal error")
}
