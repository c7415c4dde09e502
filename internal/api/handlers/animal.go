package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/farmvet/herdsafe/internal/api/dto"
	"github.com/farmvet/herdsafe/internal/domain/animal"
	"github.com/farmvet/herdsafe/internal/pkg/errors"
	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/utils"
	"github.com/farmvet/herdsafe/internal/pkg/validator"
)

type AnimalHandler struct {
	repo      animal.Repository
	logger    *logger.Logger
	validator *validator.Validator
}

func NewAnimalHandler(repo animal.Repository, log *logger.Logger, val *validator.Validator) *AnimalHandler {
	return &AnimalHandler{repo: repo, logger: log, validator: val}
}

// Create registers an animal
// @Summary Register an animal
// @Tags Animals
// @Accept json
// @Produce json
// @Param request body dto.CreateAnimalRequest true "Animal data"
// @Success 201 {object} utils.SuccessResponse{data=animal.Animal} "Created animal"
// @Failure 400 {object} utils.ErrorResponse "Invalid request"
// @Failure 409 {object} utils.ErrorResponse "Duplicate tag number"
// @Router /animals [post]
func (h *AnimalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAnimalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if validationErrors := h.validator.Validate(req); len(validationErrors) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrors))
		return
	}

	status := req.Status
	if status == "" {
		status = animal.StatusActive
	}

	a := &animal.Animal{
		ID:        uuid.New().String(),
		FarmID:    req.FarmID,
		TagNumber: req.TagNumber,
		Species:   req.Species,
		Breed:     req.Breed,
		Weight:    req.Weight,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}

	if req.BirthDate != "" {
		birth, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			utils.WriteError(w, errors.BadRequest("Invalid birth_date"))
			return
		}
		a.BirthDate = &birth
	}

	if err := h.repo.Create(r.Context(), a); err != nil {
		h.logger.WithError(err).Error("Failed to create animal")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, a)
}

// Get returns a single animal by ID
// @Summary Get animal by ID
// @Tags Animals
// @Produce json
// @Param id path string true "Animal ID"
// @Success 200 {object} utils.SuccessResponse{data=animal.Animal} "Animal"
// @Failure 404 {object} utils.ErrorResponse "Animal not found"
// @Router /animals/{id} [get]
func (h *AnimalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, a)
}

// List returns animals, optionally scoped to a farm
// @Summary List animals
// @Tags Animals
// @Produce json
// @Param farm_id query string false "Filter by farm"
// @Param page query int false "Page number (default: 1)"
// @Param page_size query int false "Page size (default: 20, max: 100)"
// @Success 200 {object} utils.PaginatedResponse{data=[]animal.Animal} "List of animals"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /animals [get]
func (h *AnimalHandler) List(w http.ResponseWriter, r *http.Request) {
	params := utils.ParsePaginationParams(r)

	var (
		animals []*animal.Animal
		err     error
	)
	if farmID := r.URL.Query().Get("farm_id"); farmID != "" {
		animals, err = h.repo.ListByFarm(r.Context(), farmID)
	} else {
		animals, err = h.repo.List(r.Context())
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to list animals")
		utils.WriteAppError(w, err)
		return
	}

	page := paginate(animals, params)
	utils.WriteSuccess(w, http.StatusOK, utils.NewPaginatedResponse(page, params.Page, params.PageSize, len(animals)))
}
