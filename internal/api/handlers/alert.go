package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/farmvet/herdsafe/internal/api/dto"
	"github.com/farmvet/herdsafe/internal/domain/alert"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/utils"
	"github.com/farmvet/herdsafe/internal/pkg/validator"
)

type AlertHandler struct {
	service   alert.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAlertHandler(service alert.Service, log *logger.Logger, val *validator.Validator) *AlertHandler {
	return &AlertHandler{service: service, logger: log, validator: val}
}

// List returns alerts with pagination and filtering
// @Summary List alerts
// @Description Get a paginated list of compliance alerts with optional filtering
// @Tags Alerts
// @Produce json
// @Param farm_id query string false "Filter by farm"
// @Param animal_id query string false "Filter by animal"
// @Param type query string false "Filter by alert type"
// @Param severity query string false "Filter by severity"
// @Param resolved query bool false "Filter by resolved flag"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.AlertDTO} "List of alerts"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /alerts [get]
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	filter := alert.Filter{
		FarmID:   r.URL.Query().Get("farm_id"),
		AnimalID: r.URL.Query().Get("animal_id"),
		Type:     r.URL.Query().Get("type"),
		Severity: r.URL.Query().Get("severity"),
	}
	if raw := r.URL.Query().Get("resolved"); raw != "" {
		resolved, err := strconv.ParseBool(raw)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid resolved flag"))
			return
		}
		filter.Resolved = &resolved
	}

	alerts, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list alerts")
		utils.WriteAppError(w, err)
		return
	}

	page := paginate(alerts, params)
	dtos := make([]dto.AlertDTO, len(page))
	for i, a := range page {
		dtos[i] = toAlertDTO(a)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, len(alerts)))
}

// Get returns a single alert by ID
// @Summary Get alert by ID
// @Tags Alerts
// @Produce json
// @Param id path string true "Alert ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.AlertDTO} "Alert"
// @Failure 404 {object} utils.ErrorResponse "Alert not found"
// @Router /alerts/{id} [get]
func (h *AlertHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAlertDTO(a))
}

// Resolve marks an alert as resolved
// @Summary Resolve an alert
// @Description Transition an open alert to resolved; resolved alerts are never reopened
// @Tags Alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param request body dto.ResolveAlertRequest true "Resolution data"
// @Success 200 {object} utils.SuccessResponse{data=dto.AlertDTO} "Resolved alert"
// @Failure 404 {object} utils.ErrorResponse "Alert not found"
// @Failure 409 {object} utils.ErrorResponse "Alert already resolved"
// @Router /alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ResolveAlertRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := h.validator.Validate(req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	if err := h.service.Resolve(r.Context(), id, req.ResolvedBy); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	a, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toAlertDTO(a))
}

// Summary returns unresolved alert counts by severity
// @Summary Alert summary
// @Tags Alerts
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=map[string]int} "Open alert counts by severity"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /alerts/summary [get]
func (h *AlertHandler) Summary(w http.ResponseWriter, r *http.Request) {
	counts, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to summarize alerts")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, counts)
}

func toAlertDTO(a *alert.Alert) dto.AlertDTO {
	return dto.AlertDTO{
		ID:          a.ID,
		FarmID:      a.FarmID,
		AnimalID:    a.AnimalID,
		TreatmentID: a.TreatmentID,
		Type:        a.Type,
		Severity:    a.Severity,
		Message:     a.Message,
		IsResolved:  a.IsResolved,
		ResolvedAt:  a.ResolvedAt,
		ResolvedBy:  a.ResolvedBy,
		CreatedAt:   a.CreatedAt,
	}
}
