package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmvet/herdsafe/internal/api/dto"
	"github.com/farmvet/herdsafe/internal/domain/drug"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/utils"
	"github.com/farmvet/herdsafe/internal/pkg/validator"
)

type DrugHandler struct {
	repo      drug.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewDrugHandler(repo drug.Repository, log *logger.Logger, val *validator.Validator) *DrugHandler {
	return &DrugHandler{repo: repo, logger: log, validator: val}
}

// Create registers antimicrobial reference data
// @Summary Register a drug
// @Description Register antimicrobial reference data including MRL limit, withdrawal periods and dosage ceiling
// @Tags Drugs
// @Accept json
// @Produce json
// @Param request body dto.CreateDrugRequest true "Drug data"
// @Success 201 {object} utils.SuccessResponse{data=drug.Drug} "Created drug"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /drugs [post]
func (h *DrugHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDrugRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := h.validator.Validate(req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	d := &drug.Drug{
		ID:                   uuid.New().String(),
		Name:                 req.Name,
		ActiveIngredient:     req.ActiveIngredient,
		DrugType:             req.DrugType,
		MRLLimit:             req.MRLLimit,
		WithdrawalPeriodMeat: req.WithdrawalPeriodMeat,
		WithdrawalPeriodMilk: req.WithdrawalPeriodMilk,
		MaxDosage:            req.MaxDosage,
		Unit:                 req.Unit,
		CreatedAt:            time.Now().UTC(),
	}

	if err := h.repo.Create(r.Context(), d); err != nil {
		h.logger.WithError(err).Error("Failed to create drug")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, d)
}

// Get returns a single drug by ID
// @Summary Get drug by ID
// @Tags Drugs
// @Produce json
// @Param id path string true "Drug ID"
// @Success 200 {object} utils.SuccessResponse{data=drug.Drug} "Drug"
// @Failure 404 {object} utils.ErrorResponse "Drug not found"
// @Router /drugs/{id} [get]
func (h *DrugHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	d, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, d)
}

// List returns all registered drugs with pagination
// @Summary List drugs
// @Tags Drugs
// @Produce json
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]drug.Drug} "List of drugs"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /drugs [get]
func (h *DrugHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	drugs, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list drugs")
		utils.WriteAppError(w, err)
		return
	}

	page := paginate(drugs, params)
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(page, params.Page, params.PageSize, len(drugs)))
}
