package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	pkgerrors "github.com/MattU27/301st-personnel-management-sub002/pkg/errors"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TrainingHandler handles training endpoints, including registration and
// exports.
type TrainingHandler struct {
	trainingSvc service.TrainingService
	exportSvc   service.ExportService
}

// NewTrainingHandler creates a TrainingHandler.
func NewTrainingHandler(trainingSvc service.TrainingService, exportSvc service.ExportService) *TrainingHandler {
	return &TrainingHandler{trainingSvc: trainingSvc, exportSvc: exportSvc}
}

// Create creates a training.
// POST /api/v1/trainings
func (h *TrainingHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.trainingSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get returns one training with its validated attendee list.
// GET /api/v1/trainings/:id
func (h *TrainingHandler) Get(c *gin.Context) {
	result, err := h.trainingSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			response.NotFound(c, 14001, "training not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns a filtered training page.
// GET /api/v1/trainings
func (h *TrainingHandler) List(c *gin.Context) {
	var req dto.TrainingListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.trainingSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update updates a training.
// PUT /api/v1/trainings/:id
func (h *TrainingHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.trainingSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			response.NotFound(c, 14001, "training not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Cancel cancels a training.
// POST /api/v1/trainings/:id/cancel-training
func (h *TrainingHandler) Cancel(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.trainingSvc.Cancel(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			response.NotFound(c, 14001, "training not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// Register registers the caller for a training.
// POST /api/v1/trainings/:id/register
func (h *TrainingHandler) Register(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.trainingSvc.Register(c.Request.Context(), c.Param("id"), callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrTrainingNotFound):
			response.NotFound(c, 14001, "training not found")
		case errors.Is(err, service.ErrTrainingClosed):
			response.BadRequest(c, 14002, "training is not open for registration")
		case errors.Is(err, service.ErrTrainingFull):
			response.Conflict(c, 14003, "training is at capacity")
		case errors.Is(err, service.ErrAlreadyRegistered):
			response.Conflict(c, 14004, "already registered")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Error(c, http.StatusConflict, 14005, "training was modified, retry")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// CancelRegistration withdraws the caller's registration.
// POST /api/v1/trainings/:id/cancel
func (h *TrainingHandler) CancelRegistration(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.trainingSvc.CancelRegistration(c.Request.Context(), c.Param("id"), callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrTrainingNotFound):
			response.NotFound(c, 14001, "training not found")
		case errors.Is(err, service.ErrNotRegistered):
			response.BadRequest(c, 14006, "not registered for this training")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			response.Error(c, http.StatusConflict, 14005, "training was modified, retry")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Attendees returns the validated attendee list with removal reasons.
// GET /api/v1/trainings/:id/attendees
func (h *TrainingHandler) Attendees(c *gin.Context) {
	result, err := h.trainingSvc.GetAttendees(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			response.NotFound(c, 14001, "training not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// RegistrationCount returns one training's registration summary.
// GET /api/v1/trainings/:id/registrations/count
func (h *TrainingHandler) RegistrationCount(c *gin.Context) {
	result, err := h.trainingSvc.GetRegistrationCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrTrainingNotFound) {
			response.NotFound(c, 14001, "training not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// AllRegistrationCounts returns every training's registration summary.
// GET /api/v1/trainings/registrations/counts
func (h *TrainingHandler) AllRegistrationCounts(c *gin.Context) {
	result, err := h.trainingSvc.GetAllRegistrationCounts(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// ExportRoster streams a training's attendee roster as xlsx.
// GET /api/v1/trainings/:id/roster.xlsx
func (h *TrainingHandler) ExportRoster(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportRoster(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainingNotFound):
			response.NotFound(c, 14001, "training not found")
		case errors.Is(err, service.ErrExportNoAttendees):
			response.BadRequest(c, 14007, "training has no attendees")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportCalendar streams the training schedule as an iCalendar feed.
// GET /api/v1/trainings/calendar.ics
func (h *TrainingHandler) ExportCalendar(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportCalendar(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
}
