package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

// CompanyHandler handles company endpoints.
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler creates a CompanyHandler.
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// Create creates a company.
// POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrCompanyCodeExists) {
			response.Conflict(c, 13002, "company code already in use")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get returns one company.
// GET /api/v1/companies/:id
func (h *CompanyHandler) Get(c *gin.Context) {
	result, err := h.companySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			response.NotFound(c, 13001, "company not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns all companies.
// GET /api/v1/companies
func (h *CompanyHandler) List(c *gin.Context) {
	result, err := h.companySvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Update updates a company.
// PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.companySvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			response.NotFound(c, 13001, "company not found")
		case errors.Is(err, service.ErrCompanyCodeExists):
			response.Conflict(c, 13002, "company code already in use")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}

// Delete removes an empty company.
// DELETE /api/v1/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.companySvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		switch {
		case errors.Is(err, service.ErrCompanyNotFound):
			response.NotFound(c, 13001, "company not found")
		case errors.Is(err, service.ErrCompanyNotEmpty):
			response.Conflict(c, 13003, "company still has assigned personnel")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}
