package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/platform/response"
)

// BranchHandler handles HTTP requests for bank branches and the products
// each one offers.
type BranchHandler struct {
	branches     *application.BranchService
	availability *application.AvailabilityService
}

// NewBranchHandler creates a new BranchHandler.
func NewBranchHandler(branches *application.BranchService, availability *application.AvailabilityService) *BranchHandler {
	return &BranchHandler{branches: branches, availability: availability}
}

// RegisterRoutes registers branch and availability routes. Changes require the admin role.
func (h *BranchHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	branches := r.Group("/branches")
	branches.Use(authMW)
	{
		branches.GET("", h.ListBranches)
		branches.GET("/:id", h.GetBranch)
		branches.POST("", adminRole, h.CreateBranch)
		branches.PUT("/:id", adminRole, h.UpdateBranch)
		branches.DELETE("/:id", adminRole, h.DeleteBranch)
	}

	avail := r.Group("/availability")
	avail.Use(authMW)
	{
		avail.GET("", h.ListAvailability)
		avail.GET("/:id", h.GetAvailability)
		avail.POST("", adminRole, h.CreateAvailability)
		avail.PUT("/:id", adminRole, h.UpdateAvailability)
		avail.DELETE("/:id", adminRole, h.DeleteAvailability)
	}
}

// ListBranches handles GET /api/v1/branches.
func (h *BranchHandler) ListBranches(c *gin.Context) {
	result, err := h.branches.ListBranches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBranch handles GET /api/v1/branches/:id.
func (h *BranchHandler) GetBranch(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	result, err := h.branches.GetBranch(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateBranch handles POST /api/v1/branches.
func (h *BranchHandler) CreateBranch(c *gin.Context) {
	var req application.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.branches.CreateBranch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateBranch handles PUT /api/v1/branches/:id.
func (h *BranchHandler) UpdateBranch(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req application.BranchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.branches.UpdateBranch(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBranch handles DELETE /api/v1/branches/:id.
func (h *BranchHandler) DeleteBranch(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.branches.DeleteBranch(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAvailability handles GET /api/v1/availability.
func (h *BranchHandler) ListAvailability(c *gin.Context) {
	result, err := h.availability.ListAvailability(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAvailability handles GET /api/v1/availability/:id.
func (h *BranchHandler) GetAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	result, err := h.availability.GetAvailability(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateAvailability handles POST /api/v1/availability.
func (h *BranchHandler) CreateAvailability(c *gin.Context) {
	var req application.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.availability.CreateAvailability(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateAvailability handles PUT /api/v1/availability/:id.
func (h *BranchHandler) UpdateAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req application.AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.availability.UpdateAvailability(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteAvailability handles DELETE /api/v1/availability/:id.
func (h *BranchHandler) DeleteAvailability(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.availability.DeleteAvailability(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
