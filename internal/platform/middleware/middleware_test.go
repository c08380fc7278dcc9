package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

func TestAuthAndRole(t *testing.T) {
	jwtManager := auth.NewJWTManager("secret", time.Minute)
	userID := uuid.New()

	r := gin.New()
	r.GET("/me", AuthMiddleware(jwtManager), func(c *gin.Context) {
		id, ok := GetUserID(c)
		require.True(t, ok)
		c.String(http.StatusOK, id.String())
	})
	r.GET("/admin", AuthMiddleware(jwtManager), RequireRole(auth.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	clientToken, err := jwtManager.GenerateAccessToken(userID, auth.RoleClient)
	require.NoError(t, err)
	adminToken, err := jwtManager.GenerateAccessToken(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)

	tests := []struct {
		path   string
		header string
		status int
	}{
		{"/me", "", http.StatusUnauthorized},
		{"/me", "Token abc", http.StatusUnauthorized},
		{"/me", "Bearer nope", http.StatusUnauthorized},
		{"/me", "Bearer " + clientToken, http.StatusOK},
		{"/admin", "Bearer " + clientToken, http.StatusForbidden},
		{"/admin", "Bearer " + adminToken, http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tt.status, rec.Code, "%s %q", tt.path, tt.header)
		if tt.status == http.StatusOK {
			assert.Equal(t, userID.String(), rec.Body.String())
		}
	}
}

func TestRecoveryAndRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware(zap.NewNop()), SecurityHeadersMiddleware())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Minute)
	r := gin.New()
	r.POST("/subscriptions", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusCreated) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/subscriptions", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusCreated, http.StatusCreated, http.StatusTooManyRequests}, codes)

	rl.Cleanup(time.Now().Add(2 * time.Minute))
	rl.mu.Lock()
	assert.Empty(t, rl.visitors)
	rl.mu.Unlock()
}
