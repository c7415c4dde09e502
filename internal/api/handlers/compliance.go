package handlers

import (
	"net/http"

	"github.com/farmvet/herdsafe/internal/pkg/logger"
	"github.com/farmvet/herdsafe/internal/pkg/utils"
	"github.com/farmvet/herdsafe/internal/services"
)

type ComplianceHandler struct {
	service *services.ComplianceService
	logger  *logger.Logger
}

func NewComplianceHandler(service *services.ComplianceService, log *logger.Logger) *ComplianceHandler {
	return &ComplianceHandler{service: service, logger: log}
}

// Run triggers a compliance sweep on demand
// @Summary Run compliance checks
// @Description Evaluate recent treatments, detect overuse patterns and materialize alerts
// @Tags Compliance
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.RunSummary} "Run summary"
// @Failure 500 {object} utils.ErrorResponse "Run failed"
// @Router /compliance/run [post]
func (h *ComplianceHandler) Run(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.RunComplianceChecks(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Compliance run failed")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, summary)
}

// Summary returns a point-in-time compliance overview
// @Summary Compliance overview
// @Description Open alert counts, treatment status counts over the trailing window and active withdrawals
// @Tags Compliance
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=services.Overview} "Compliance overview"
// @Failure 500 {object} utils.ErrorResponse "Internal server error"
// @Router /compliance/summary [get]
func (h *ComplianceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	overview, err := h.service.Summary(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to build compliance overview")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, overview)
}
