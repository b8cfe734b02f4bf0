package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/model"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

// DocumentHandler handles document metadata endpoints.
type DocumentHandler struct {
	documentSvc service.DocumentService
}

// NewDocumentHandler creates a DocumentHandler.
func NewDocumentHandler(documentSvc service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentSvc: documentSvc}
}

// Create records a document for the caller.
// POST /api/v1/documents
func (h *DocumentHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.documentSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get returns one document.
// GET /api/v1/documents/:id
func (h *DocumentHandler) Get(c *gin.Context) {
	result, err := h.documentSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDocumentNotFound) {
			response.NotFound(c, 18001, "document not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns a document page. Reservists only see their own documents.
// GET /api/v1/documents
func (h *DocumentHandler) List(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.DocumentListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	if role == model.RoleReservist {
		req.UserID = callerID
	}

	list, total, err := h.documentSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Verify settles a pending document.
// POST /api/v1/documents/:id/verify
func (h *DocumentHandler) Verify(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.VerifyDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.documentSvc.Verify(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			response.NotFound(c, 18001, "document not found")
		case errors.Is(err, service.ErrDocumentSettled):
			response.Conflict(c, 18002, "document already verified or rejected")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete removes a document.
// DELETE /api/v1/documents/:id
func (h *DocumentHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.documentSvc.Delete(c.Request.Context(), c.Param("id"), callerID, role); err != nil {
		switch {
		case errors.Is(err, service.ErrDocumentNotFound):
			response.NotFound(c, 18001, "document not found")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "not permitted")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
