package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/platform/response"
)

// ScheduleHandler handles HTTP requests for branch appointments.
type ScheduleHandler struct {
	service *application.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(service *application.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// RegisterRoutes registers appointment routes.
func (h *ScheduleHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	appointments := r.Group("/appointments")
	appointments.Use(middleware.AuthMiddleware(jwtManager))
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("", h.BookAppointment)
		appointments.PUT("/:id", h.RescheduleAppointment)
		appointments.DELETE("/:id", h.CancelAppointment)
	}
}

// ListAppointments handles GET /api/v1/appointments[?client_id=].
func (h *ScheduleHandler) ListAppointments(c *gin.Context) {
	var clientID *uuid.UUID
	if raw := c.Query("client_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid client_id")
			return
		}
		clientID = &id
	}

	result, err := h.service.ListAppointments(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetAppointment handles GET /api/v1/appointments/:id.
func (h *ScheduleHandler) GetAppointment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	result, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BookAppointment handles POST /api/v1/appointments.
func (h *ScheduleHandler) BookAppointment(c *gin.Context) {
	var req application.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.BookAppointment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// RescheduleAppointment handles PUT /api/v1/appointments/:id.
func (h *ScheduleHandler) RescheduleAppointment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req application.AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	result, err := h.service.RescheduleAppointment(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CancelAppointment handles DELETE /api/v1/appointments/:id.
func (h *ScheduleHandler) CancelAppointment(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.service.CancelAppointment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
