package handler

import (
	"strconv"

	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/platform/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uuidParam parses a path parameter, writing 400 when it is malformed.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// productIDParam parses a positive integer product id.
func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid product id")
		return 0, false
	}
	return id, true
}

// rateLimit returns the limiter middleware, or a no-op when limiting is off.
func rateLimit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}
