package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

// ReconcileHandler handles administrative reconciliation endpoints.
type ReconcileHandler struct {
	reconcileSvc service.ReconcileService
}

// NewReconcileHandler creates a ReconcileHandler.
func NewReconcileHandler(reconcileSvc service.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileSvc: reconcileSvc}
}

// MigrateAll runs a full reconciliation pass over every training.
// POST /api/v1/admin/reconcile/trainings
func (h *ReconcileHandler) MigrateAll(c *gin.Context) {
	summary, err := h.reconcileSvc.MigrateAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}

// MigrateOne reconciles a single training.
// POST /api/v1/admin/reconcile/trainings/:id
func (h *ReconcileHandler) MigrateOne(c *gin.Context) {
	summary, err := h.reconcileSvc.MigrateTraining(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			response.NotFound(c, 14001, "training not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, summary)
}
