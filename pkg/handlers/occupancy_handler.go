package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spacewise-io/occupancy-engine/pkg/apperrors"
	"github.com/spacewise-io/occupancy-engine/pkg/auth"
	"github.com/spacewise-io/occupancy-engine/pkg/models"
	"github.com/spacewise-io/occupancy-engine/pkg/services"
	"github.com/spacewise-io/occupancy-engine/pkg/validation"
)

// Middleware wraps a handler func, e.g. tenant scoping or rate limiting.
type Middleware func(http.HandlerFunc) http.HandlerFunc

// ============================================================================
// Request/Response Types
// ============================================================================

// BatchEventsRequest for POST /api/events/batch
type BatchEventsRequest struct {
	Events []validation.EventPayload `json:"events"`
}

// BatchEventsResult reports how many submitted events were persisted.
type BatchEventsResult struct {
	TotalSubmitted int    `json:"total_submitted"`
	TotalProcessed int    `json:"total_processed"`
	Message        string `json:"message"`
}

// HealthStatus for GET /api/health: liveness plus tenant echo.
type HealthStatus struct {
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Tenant    string `json:"tenant"`
}

// RecommendationSummary aggregates an office's recommendation report.
type RecommendationSummary struct {
	TotalRoomsAnalyzed    int     `json:"total_rooms_analyzed"`
	Underutilized         int     `json:"underutilized"`
	Overutilized          int     `json:"overutilized"`
	Optimal               int     `json:"optimal"`
	TotalPotentialSavings float64 `json:"total_potential_savings"`
}

// RecommendationReport for GET /api/recommend/{tenant_id}/{office_id}
type RecommendationReport struct {
	OfficeID             string                   `json:"office_id"`
	AnalysisPeriodDays   int                      `json:"analysis_period_days"`
	UtilizationThreshold float64                  `json:"utilization_threshold"`
	Recommendations      []*models.Recommendation `json:"recommendations"`
	Summary              RecommendationSummary    `json:"summary"`
}

// ============================================================================
// Handler
// ============================================================================

// OccupancyHandler handles occupancy ingestion and analytics HTTP requests.
type OccupancyHandler struct {
	service services.OccupancyService
	logger  *zap.Logger
}

// NewOccupancyHandler creates a new occupancy handler.
func NewOccupancyHandler(service services.OccupancyService, logger *zap.Logger) *OccupancyHandler {
	return &OccupancyHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the handler's routes on the given mux.
// ingestLimit and readLimit are the per-IP rate limiters for the two route
// classes; tenantMiddleware establishes the tenant-scoped store connection.
func (h *OccupancyHandler) RegisterRoutes(
	mux *http.ServeMux,
	authMiddleware *auth.Middleware,
	tenantMiddleware Middleware,
	ingestLimit Middleware,
	readLimit Middleware,
) {
	mux.HandleFunc("GET /api/health",
		authMiddleware.RequireTenant(h.Health))
	mux.HandleFunc("POST /api/events",
		ingestLimit(authMiddleware.RequireTenant(tenantMiddleware(h.CreateEvent))))
	mux.HandleFunc("POST /api/events/batch",
		ingestLimit(authMiddleware.RequireTenant(tenantMiddleware(h.BatchCreateEvents))))
	mux.HandleFunc("GET /api/utilization/{tenant_id}/{room_id}",
		readLimit(authMiddleware.RequireTenantWithPathValidation("tenant_id")(tenantMiddleware(h.GetUtilization))))
	mux.HandleFunc("GET /api/recommend/{tenant_id}/{office_id}",
		readLimit(authMiddleware.RequireTenantWithPathValidation("tenant_id")(tenantMiddleware(h.GetRecommendations))))

	// Unmatched /api routes get a JSON 404 naming the missing route.
	mux.HandleFunc("/api/", h.NotFound)
}

// Health handles GET /api/health: liveness plus authenticated tenant echo.
func (h *OccupancyHandler) Health(w http.ResponseWriter, r *http.Request) {
	slug := "unknown"
	if tenant, ok := auth.GetTenant(r.Context()); ok {
		slug = tenant.Slug
	}

	status := HealthStatus{
		Service:   "occupancy-engine",
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Tenant:    slug,
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: status}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// CreateEvent handles POST /api/events.
func (h *OccupancyHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var payload validation.EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	input, verr := validation.ValidateEvent(&payload)
	if verr != nil {
		h.logger.Warn("Event validation failed", zap.String("error", verr.Error()))
		_ = ValidationErrorResponse(w, "Invalid request data", verr.Fields)
		return
	}

	tenant, ok := auth.GetTenant(r.Context())
	if !ok {
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// A valid credential for one tenant must not write events for another.
	if input.TenantID != tenant.ID {
		_ = ErrorResponse(w, http.StatusForbidden, "Tenant access violation")
		return
	}

	event, err := h.service.CreateEvent(r.Context(), tenant.ID, input)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound,
				fmt.Sprintf("Room %s not found for tenant", input.RoomID))
			return
		}
		h.logger.Error("Failed to create occupancy event",
			zap.String("tenant_id", tenant.ID.String()),
			zap.String("room_id", input.RoomID),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: event}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// BatchCreateEvents handles POST /api/events/batch.
func (h *OccupancyHandler) BatchCreateEvents(w http.ResponseWriter, r *http.Request) {
	var req BatchEventsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if len(req.Events) == 0 {
		_ = ErrorResponse(w, http.StatusBadRequest, "Events array is required and cannot be empty")
		return
	}

	tenant, ok := auth.GetTenant(r.Context())
	if !ok {
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	// Every event must belong to the authenticated tenant before any
	// per-event validation happens.
	for _, payload := range req.Events {
		if payload.TenantID != tenant.ID.String() {
			_ = ErrorResponse(w, http.StatusForbidden, "All events must belong to the authenticated tenant")
			return
		}
	}

	inputs := make([]*models.EventInput, 0, len(req.Events))
	var fields []apperrors.FieldError
	for i, payload := range req.Events {
		input, verr := validation.ValidateEvent(&payload)
		if verr != nil {
			for _, f := range verr.Fields {
				fields = append(fields, apperrors.FieldError{
					Field:   fmt.Sprintf("events[%d].%s", i, f.Field),
					Message: f.Message,
				})
			}
			continue
		}
		inputs = append(inputs, input)
	}
	if len(fields) > 0 {
		_ = ValidationErrorResponse(w, "Invalid request data", fields)
		return
	}

	processed, err := h.service.CreateEventsBatch(r.Context(), tenant.ID, inputs)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoValidEvents) {
			_ = ErrorResponse(w, http.StatusBadRequest, "No valid events to insert")
			return
		}
		h.logger.Error("Failed to create batch occupancy events",
			zap.String("tenant_id", tenant.ID.String()),
			zap.Int("submitted", len(req.Events)),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := BatchEventsResult{
		TotalSubmitted: len(req.Events),
		TotalProcessed: processed,
		Message:        fmt.Sprintf("Successfully processed %d out of %d events", processed, len(req.Events)),
	}
	if err := WriteJSON(w, http.StatusCreated, ApiResponse{Success: true, Data: result}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetUtilization handles GET /api/utilization/{tenant_id}/{room_id}?days=N.
func (h *OccupancyHandler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	params, verr := validation.ValidateUtilizationParams(
		r.PathValue("tenant_id"),
		r.PathValue("room_id"),
		r.URL.Query().Get("days"),
	)
	if verr != nil {
		h.logger.Warn("Utilization params validation failed", zap.String("error", verr.Error()))
		_ = ValidationErrorResponse(w, "Invalid request parameters", verr.Fields)
		return
	}

	utilization, err := h.service.GetUtilization(r.Context(), params.TenantID, params.RoomID, params.Days)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "Room not found or no data available")
			return
		}
		h.logger.Error("Failed to get utilization",
			zap.String("tenant_id", params.TenantID.String()),
			zap.String("room_id", params.RoomID),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: utilization}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// GetRecommendations handles GET /api/recommend/{tenant_id}/{office_id}?days=N&threshold=F.
func (h *OccupancyHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	params, verr := validation.ValidateRecommendationParams(
		r.PathValue("tenant_id"),
		r.PathValue("office_id"),
		r.URL.Query().Get("days"),
		r.URL.Query().Get("threshold"),
	)
	if verr != nil {
		h.logger.Warn("Recommendation params validation failed", zap.String("error", verr.Error()))
		_ = ValidationErrorResponse(w, "Invalid request parameters", verr.Fields)
		return
	}

	recommendations, err := h.service.GetRecommendations(
		r.Context(), params.TenantID, params.OfficeID, params.Days, params.Threshold)
	if err != nil {
		h.logger.Error("Failed to get recommendations",
			zap.String("tenant_id", params.TenantID.String()),
			zap.String("office_id", params.OfficeID.String()),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	report := RecommendationReport{
		OfficeID:             params.OfficeID.String(),
		AnalysisPeriodDays:   params.Days,
		UtilizationThreshold: params.Threshold,
		Recommendations:      recommendations,
		Summary:              summarize(recommendations),
	}
	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: report}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// NotFound handles unmatched /api routes with a JSON 404 envelope.
func (h *OccupancyHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	_ = ErrorResponse(w, http.StatusNotFound,
		fmt.Sprintf("Route %s %s not found", r.Method, r.URL.Path))
}

func summarize(recommendations []*models.Recommendation) RecommendationSummary {
	summary := RecommendationSummary{TotalRoomsAnalyzed: len(recommendations)}
	for _, rec := range recommendations {
		switch rec.Type {
		case models.RecommendationUnderutilized:
			summary.Underutilized++
		case models.RecommendationOverutilized:
			summary.Overutilized++
		case models.RecommendationOptimal:
			summary.Optimal++
		}
		if rec.PotentialSavings != nil {
			summary.TotalPotentialSavings += *rec.PotentialSavings
		}
	}
	return summary
}
