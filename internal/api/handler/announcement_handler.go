package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

// AnnouncementHandler handles announcement endpoints.
type AnnouncementHandler struct {
	announcementSvc service.AnnouncementService
}

// NewAnnouncementHandler creates an AnnouncementHandler.
func NewAnnouncementHandler(announcementSvc service.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementSvc: announcementSvc}
}

// Create creates an announcement.
// POST /api/v1/announcements
func (h *AnnouncementHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.announcementSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get returns one announcement.
// GET /api/v1/announcements/:id
func (h *AnnouncementHandler) Get(c *gin.Context) {
	result, err := h.announcementSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 16001, "announcement not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns an announcement page. Reservists only see published entries.
// GET /api/v1/announcements
func (h *AnnouncementHandler) List(c *gin.Context) {
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	publishedOnly := role == model.RoleReservist
	list, total, err := h.announcementSvc.List(c.Request.Context(), publishedOnly, req.GetPage(), req.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update updates an announcement.
// PUT /api/v1/announcements/:id
func (h *AnnouncementHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.announcementSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 16001, "announcement not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Delete removes an announcement.
// DELETE /api/v1/announcements/:id
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.announcementSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrAnnouncementNotFound) {
			response.NotFound(c, 16001, "announcement not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
