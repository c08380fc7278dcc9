package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/platform/response"
)

// SubscriptionHandler handles HTTP requests for subscription operations.
type SubscriptionHandler struct {
	service *application.SubscriptionService
	limiter *middleware.RateLimiter
}

// NewSubscriptionHandler creates a new SubscriptionHandler. A nil limiter
// leaves the lifecycle endpoints unthrottled.
func NewSubscriptionHandler(service *application.SubscriptionService, limiter *middleware.RateLimiter) *SubscriptionHandler {
	return &SubscriptionHandler{service: service, limiter: limiter}
}

// RegisterRoutes registers all subscription and transaction routes.
func (h *SubscriptionHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	limit := rateLimit(h.limiter)

	subs := r.Group("/subscriptions")
	subs.Use(authMW)
	{
		subs.GET("", h.ListSubscriptions)
		subs.GET("/:id", h.GetSubscription)
		subs.POST("", limit, h.Subscribe)
		subs.POST("/:id/cancel", limit, h.Cancel)
	}

	r.GET("/transactions", authMW, h.ListTransactions)
}

// Subscribe handles POST /api/v1/subscriptions.
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req application.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Subscribe(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Cancel handles POST /api/v1/subscriptions/:id/cancel.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetSubscription handles GET /api/v1/subscriptions/:id.
func (h *SubscriptionHandler) GetSubscription(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	result, err := h.service.GetSubscription(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListSubscriptions handles GET /api/v1/subscriptions[?client_id=].
func (h *SubscriptionHandler) ListSubscriptions(c *gin.Context) {
	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid client_id")
			return
		}
		clientID = &id
	}

	result, err := h.service.ListSubscriptions(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListTransactions handles GET /api/v1/transactions?client_id=.
func (h *SubscriptionHandler) ListTransactions(c *gin.Context) {
	clientID, err := uuid.Parse(c.Query("client_id"))
	if err != nil {
		response.BadRequest(c, "client_id query parameter is required")
		return
	}

	result, err := h.service.ListTransactions(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
