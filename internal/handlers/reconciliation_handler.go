package handlers

import (
	"net/http"

	"github.com/tinybank/backend/internal/services"
)

type ReconciliationHandler struct {
	service *services.ReconciliationService
}

func NewReconciliationHandler(service *services.ReconciliationService) *ReconciliationHandler {
	return &ReconciliationHandler{service: service}
}

// Run reconciles every account on demand
// @Summary Run reconciliation
// @Description Check that every balance matches its opening balance plus its entries
// @Tags reconciliation
// @Produce json
// @Success 200 {object} services.ReconciliationReport
// @Failure 500 {object} services.ErrorResponse
// @Router /reconciliation [get]
func (h *ReconciliationHandler) Run(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Run(r.Context())
	if err != nil {
		services.SendErrorResponse(w, err.Error(), http.StatusInternalServerError, nil)
		return
	}

	services.SendJSON(w, http.StatusOK, report)
}
