package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/platform/response"
)

// ClientHandler handles HTTP requests for client accounts.
type ClientHandler struct {
	service *application.ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(service *application.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

// RegisterRoutes registers client routes. Changes require the admin role.
func (h *ClientHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	clients := r.Group("/clients")
	clients.Use(authMW)
	{
		clients.GET("", h.ListClients)
		clients.GET("/:id", h.GetClient)
		clients.GET("/:id/balance", h.GetBalance)
		clients.POST("", adminRole, h.CreateClient)
		clients.PUT("/:id", adminRole, h.UpdateClient)
		clients.DELETE("/:id", adminRole, h.DeleteClient)
	}
}

// ListClients handles GET /api/v1/clients.
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.service.ListClients(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, clients)
}

// GetClient handles GET /api/v1/clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	result, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBalance handles GET /api/v1/clients/:id/balance.
func (h *ClientHandler) GetBalance(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	result, err := h.service.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateClient handles POST /api/v1/clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req application.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateClient handles PUT /api/v1/clients/:id.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req application.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteClient handles DELETE /api/v1/clients/:id.
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
