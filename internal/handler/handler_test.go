package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/events"
	"github.com/fondos-platform/service-subscription/internal/handler"
	"github.com/fondos-platform/service-subscription/internal/platform/auth"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/fondos-platform/service-subscription/internal/repository/memory"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

type apiEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	router    *gin.Engine
	clientTok string
	adminTok  string
}

func newTestServer(t *testing.T, limiter *middleware.RateLimiter) *testServer {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	gateway := events.NewEventGateway(events.NewLogPublisher(logger), logger)

	products := application.NewProductService(store.Products(), logger)
	clients := application.NewClientService(store, store.Clients(), logger)
	subs := application.NewSubscriptionService(store, store.Repositories(), gateway, application.SystemClock{}, nil, logger)
	branches := application.NewBranchService(store, store.Branches(), logger)
	availability := application.NewAvailabilityService(store, store.Availability(), logger)
	appointments := application.NewScheduleService(store, store.Appointments(), logger)

	ctx := context.Background()
	require.NoError(t, products.EnsureCatalog(ctx))
	require.NoError(t, clients.EnsureDefaultClient(ctx))

	jwtManager := auth.NewJWTManager("test-secret", time.Minute)
	r := gin.New()
	api := r.Group("/api/v1")
	handler.NewProductHandler(products).RegisterRoutes(api, jwtManager)
	handler.NewClientHandler(clients).RegisterRoutes(api, jwtManager)
	handler.NewSubscriptionHandler(subs, limiter).RegisterRoutes(api, jwtManager)
	handler.NewBranchHandler(branches, availability).RegisterRoutes(api, jwtManager)
	handler.NewScheduleHandler(appointments).RegisterRoutes(api, jwtManager)

	clientTok, err := jwtManager.GenerateAccessToken(client.DefaultUserID, auth.RoleClient)
	require.NoError(t, err)
	adminTok, err := jwtManager.GenerateAccessToken(uuid.New(), auth.RoleAdmin)
	require.NoError(t, err)

	return &testServer{router: r, clientTok: clientTok, adminTok: adminTok}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env apiEnvelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decodeData(t *testing.T, env apiEnvelope, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, v))
}
