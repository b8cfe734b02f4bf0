package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MattU27/301st-personnel-management-sub002/internal/dto"
	"github.com/MattU27/301st-personnel-management-sub002/internal/service"
	"github.com/MattU27/301st-personnel-management-sub002/pkg/response"
)

// PolicyHandler handles policy endpoints.
type PolicyHandler struct {
	policySvc service.PolicyService
}

// NewPolicyHandler creates a PolicyHandler.
func NewPolicyHandler(policySvc service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policySvc: policySvc}
}

// Create creates a policy.
// POST /api/v1/policies
func (h *PolicyHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.policySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, result)
}

// Get returns one policy.
// GET /api/v1/policies/:id
func (h *PolicyHandler) Get(c *gin.Context) {
	result, err := h.policySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPolicyNotFound) {
			response.NotFound(c, 17001, "policy not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// List returns a policy page, optionally filtered by status.
// GET /api/v1/policies
func (h *PolicyHandler) List(c *gin.Context) {
	var req dto.PaginationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	list, total, err := h.policySvc.List(c.Request.Context(), c.Query("status"), req.GetPage(), req.GetPageSize())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update updates a policy.
// PUT /api/v1/policies/:id
func (h *PolicyHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request body")
		return
	}

	result, err := h.policySvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		if errors.Is(err, service.ErrPolicyNotFound) {
			response.NotFound(c, 17001, "policy not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// Delete removes a policy.
// DELETE /api/v1/policies/:id
func (h *PolicyHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.policySvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		if errors.Is(err, service.ErrPolicyNotFound) {
			response.NotFound(c, 17001, "policy not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}
