package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

// PersonnelHandler handles personnel endpoints.
type PersonnelHandler struct {
	personnelSvc service.PersonnelService
}

// NewPersonnelHandler creates a PersonnelHandler.
func NewPersonnelHandler(personnelSvc service.PersonnelService) *PersonnelHandler {
	return &PersonnelHandler{personnelSvc: personnelSvc}
}

// Create creates a personnel record.
// POST /api/v1/personnel
func (h *PersonnelHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.personnelSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 12002, "email already registered")
		case errors.Is(err, service.ErrServiceIDExists):
			response.Conflict(c, 12003, "service number already registered")
		case errors.Is(err, service.ErrCompanyNotFound):
			response.BadRequest(c, 13001, "company not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, result)
}

// Get returns one personnel record.
// GET /api/v1/personnel/:id
func (h *PersonnelHandler) Get(c *gin.Context) {
	result, err := h.personnelSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPersonnelNotFound) {
			response.NotFound(c, 12001, "personnel record not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns a filtered personnel page.
// GET /api/v1/personnel
func (h *PersonnelHandler) List(c *gin.Context) {
	var req dto.PersonnelListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.personnelSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update updates a personnel record.
// PUT /api/v1/personnel/:id
func (h *PersonnelHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	var req dto.UpdatePersonnelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.personnelSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID, callerRole)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPersonnelNotFound):
			response.NotFound(c, 12001, "personnel record not found")
		case errors.Is(err, service.ErrNoPermission):
			response.Forbidden(c, 10003, "not permitted")
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 12002, "email already registered")
		case errors.Is(err, service.ErrServiceIDExists):
			response.Conflict(c, 12003, "service number already registered")
		case errors.Is(err, service.ErrCompanyNotFound):
			response.BadRequest(c, 13001, "company not found")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete soft-deletes a personnel record.
// DELETE /api/v1/personnel/:id
func (h *PersonnelHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.personnelSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrPersonnelNotFound):
			response.NotFound(c, 12001, "personnel record not found")
		case errors.Is(err, service.ErrSelfDelete):
			response.BadRequest(c, 12004, "cannot delete own record")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// AssignRole changes a personnel record's role.
// PUT /api/v1/personnel/:id/role
func (h *PersonnelHandler) AssignRole(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	if err := h.personnelSvc.AssignRole(c.Request.Context(), c.Param("id"), &req, callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrPersonnelNotFound):
			response.NotFound(c, 12001, "personnel record not found")
		case errors.Is(err, service.ErrSelfRoleChange):
			response.BadRequest(c, 12005, "cannot change own role")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// Import bulk-creates personnel from an uploaded xlsx workbook.
// POST /api/v1/personnel/import
func (h *PersonnelHandler) Import(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "missing file upload")
		return
	}
	defer file.Close()

	rows, err := h.personnelSvc.ParseImportFile(file)
	if err != nil {
		response.BadRequest(c, 12006, "workbook could not be parsed")
		return
	}

	result, err := h.personnelSvc.Import(c.Request.Context(), rows, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
