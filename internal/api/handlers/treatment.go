package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farmvet/herdsafe/internal/api/dto"
	"github.com/farmvet/herdsafe/internal/domain/treatment"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/utils"
	"github.com/farmvet/herdsafe/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

type TreatmentHandler struct {
	service   treatment.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewTreatmentHandler(service treatment.Service, log *logger.Logger, val *validator.Validator) *TreatmentHandler {
	return &TreatmentHandler{service: service, logger: log, validator: val}
}

// Create records an antimicrobial treatment
// @Summary Record a treatment
// @Description Record an antimicrobial administration; end and withdrawal dates are derived from the referenced drug
// @Tags Treatments
// @Accept json
// @Produce json
// @Param request body dto.RecordTreatmentRequest true "Treatment data"
// @Success 201 {object} utils.SuccessResponse{data=dto.TreatmentDTO} "Recorded treatment"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Drug not found"
// @Router /treatments [post]
func (h *TreatmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordTreatmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := h.validator.Validate(req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid start_date"))
		return
	}

	t := &treatment.Treatment{
		AnimalID:            req.AnimalID,
		DrugID:              req.DrugID,
		VeterinarianID:      req.VeterinarianID,
		Dosage:              req.Dosage,
		DosageUnit:          req.DosageUnit,
		Frequency:           req.Frequency,
		AdministrationRoute: req.AdministrationRoute,
		StartDate:           startDate,
		DurationDays:        req.DurationDays,
		TreatmentReason:     req.TreatmentReason,
		Notes:               req.Notes,
	}

	id, err := h.service.Record(r.Context(), t)
	if err != nil {
		h.logger.WithError(err).Error("Failed to record treatment")
		utils.WriteAppError(w, err)
		return
	}

	created, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, toTreatmentDTO(created))
}

// Get returns a single treatment by ID
// @Summary Get treatment by ID
// @Tags Treatments
// @Produce json
// @Param id path string true "Treatment ID"
// @Success 200 {object} utils.SuccessResponse{data=dto.TreatmentDTO} "Treatment"
// @Failure 404 {object} utils.ErrorResponse "Treatment not found"
// @Router /treatments/{id} [get]
func (h *TreatmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toTreatmentDTO(t))
}

// Update replaces a treatment's input fields; derived dates are recomputed
// when the start date, duration or drug reference changed
// @Summary Update a treatment
// @Tags Treatments
// @Accept json
// @Produce json
// @Param id path string true "Treatment ID"
// @Param request body dto.RecordTreatmentRequest true "Treatment data"
// @Success 200 {object} utils.SuccessResponse{data=dto.TreatmentDTO} "Updated treatment"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 404 {object} utils.ErrorResponse "Treatment not found"
// @Router /treatments/{id} [put]
func (h *TreatmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RecordTreatmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := h.validator.Validate(req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid start_date"))
		return
	}

	t := &treatment.Treatment{
		ID:                  id,
		AnimalID:            req.AnimalID,
		DrugID:              req.DrugID,
		VeterinarianID:      req.VeterinarianID,
		Dosage:              req.Dosage,
		DosageUnit:          req.DosageUnit,
		Frequency:           req.Frequency,
		AdministrationRoute: req.AdministrationRoute,
		StartDate:           startDate,
		DurationDays:        req.DurationDays,
		TreatmentReason:     req.TreatmentReason,
		Notes:               req.Notes,
	}

	if err := h.service.Update(r.Context(), t); err != nil {
		h.logger.WithError(err).Error("Failed to update treatment")
		utils.WriteAppError(w, err)
		return
	}

	updated, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, toTreatmentDTO(updated))
}

// List returns treatments with pagination and filtering
// @Summary List treatments
// @Tags Treatments
// @Produce json
// @Param animal_id query string false "Filter by animal"
// @Param farm_id query string false "Filter by farm"
// @Param drug_id query string false "Filter by drug"
// @Param from query string false "Start date lower bound (YYYY-MM-DD)"
// @Param to query string false "Start date upper bound (YYYY-MM-DD)"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]dto.TreatmentDTO} "List of treatments"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /treatments [get]
func (h *TreatmentHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	filter := treatment.Filter{
		AnimalID: r.URL.Query().Get("animal_id"),
		FarmID:   r.URL.Query().Get("farm_id"),
		DrugID:   r.URL.Query().Get("drug_id"),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		ts, err := time.Parse(dateLayout, from)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid from date"))
			return
		}
		filter.From = ts
	}
	if to := r.URL.Query().Get("to"); to != "" {
		ts, err := time.Parse(dateLayout, to)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid to date"))
			return
		}
		filter.To = ts
	}

	treatments, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list treatments")
		utils.WriteAppError(w, err)
		return
	}

	page := paginate(treatments, params)
	dtos := make([]dto.TreatmentDTO, len(page))
	for i, t := range page {
		dtos[i] = toTreatmentDTO(t)
	}

	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(dtos, params.Page, params.PageSize, len(treatments)))
}

func toTreatmentDTO(t *treatment.Treatment) dto.TreatmentDTO {
	return dto.TreatmentDTO{
		ID:                  t.ID,
		AnimalID:            t.AnimalID,
		DrugID:              t.DrugID,
		VeterinarianID:      t.VeterinarianID,
		Dosage:              t.Dosage,
		DosageUnit:          t.DosageUnit,
		Frequency:           t.Frequency,
		AdministrationRoute: t.AdministrationRoute,
		StartDate:           t.StartDate.Format(dateLayout),
		DurationDays:        t.DurationDays,
		EndDate:             t.EndDate.Format(dateLayout),
		WithdrawalEndDate:   t.WithdrawalEndDate.Format(dateLayout),
		TreatmentReason:     t.TreatmentReason,
		ComplianceStatus:    t.ComplianceStatus,
		Notes:               t.Notes,
		CreatedAt:           t.CreatedAt,
	}
}
