package handler_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/platform/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeAndCancelOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(t, http.MethodPost, "/api/v1/subscriptions", s.clientTok, map[string]any{
		"client_id":  client.DefaultClientID,
		"product_id": 1,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var sub application.SubscriptionDTO
	decodeData(t, env, &sub)
	assert.True(t, sub.IsActive)
	assert.Equal(t, "75000", sub.Amount.String())

	w, env = s.do(t, http.MethodGet, "/api/v1/clients/"+client.DefaultClientID.String()+"/balance", s.clientTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bal application.BalanceDTO
	decodeData(t, env, &bal)
	assert.Equal(t, "425000", bal.Balance.String())

	w, env = s.do(t, http.MethodPost, "/api/v1/subscriptions/"+sub.ID.String()+"/cancel", s.clientTok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, env, &sub)
	assert.False(t, sub.IsActive)
	assert.NotNil(t, sub.CancelledAt)

	w, env = s.do(t, http.MethodPost, "/api/v1/subscriptions/"+sub.ID.String()+"/cancel", s.clientTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_cancelled", env.Error.Code)

	w, env = s.do(t, http.MethodGet, "/api/v1/transactions?client_id="+client.DefaultClientID.String(), s.clientTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var txs []application.TransactionDTO
	decodeData(t, env, &txs)
	require.Len(t, txs, 2)
	assert.Equal(t, "cancellation", txs[0].Type)
	assert.Equal(t, "subscription", txs[1].Type)
}

func TestSubscribe_ErrorMapping(t *testing.T) {
	s := newTestServer(t, nil)

	tests := []struct {
		name   string
		body   map[string]any
		status int
		code   string
	}{
		{"below minimum", map[string]any{"client_id": client.DefaultClientID, "product_id": 4, "amount": "1000"}, http.StatusBadRequest, "below_minimum_amount"},
		{"insufficient funds", map[string]any{"client_id": client.DefaultClientID, "product_id": 4, "amount": "600000"}, http.StatusBadRequest, "insufficient_funds"},
		{"unknown product", map[string]any{"client_id": client.DefaultClientID, "product_id": 99}, http.StatusNotFound, "not_found"},
		{"unknown client", map[string]any{"client_id": "5a2b1f1e-0000-4000-8000-000000000000", "product_id": 1}, http.StatusNotFound, "not_found"},
		{"sub-cent amount", map[string]any{"client_id": client.DefaultClientID, "product_id": 3, "amount": "50000.001"}, http.StatusBadRequest, "invalid_amount"},
		{"bad channel", map[string]any{"client_id": client.DefaultClientID, "product_id": 3, "notification_channel": "fax"}, http.StatusBadRequest, "validation_error"},
		{"missing product", map[string]any{"client_id": client.DefaultClientID}, http.StatusBadRequest, "bad_request"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := s.do(t, http.MethodPost, "/api/v1/subscriptions", s.clientTok, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestSubscriptionRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t, nil)

	w, _ := s.do(t, http.MethodGet, "/api/v1/subscriptions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubscriptionRoutes_BadParams(t *testing.T) {
	s := newTestServer(t, nil)

	w, _ := s.do(t, http.MethodGet, "/api/v1/subscriptions/not-a-uuid", s.clientTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/subscriptions?client_id=nope", s.clientTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/transactions", s.clientTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListSubscriptions_FiltersByClient(t *testing.T) {
	s := newTestServer(t, nil)
	for _, id := range []int{1, 3} {
		w, _ := s.do(t, http.MethodPost, "/api/v1/subscriptions", s.clientTok, map[string]any{
			"client_id": client.DefaultClientID, "product_id": id,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, env := s.do(t, http.MethodGet, "/api/v1/subscriptions?client_id="+client.DefaultClientID.String(), s.clientTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var subs []application.SubscriptionDTO
	decodeData(t, env, &subs)
	assert.Len(t, subs, 2)
}

func TestSubscribe_RateLimited(t *testing.T) {
	s := newTestServer(t, middleware.NewRateLimiter(1, 1, time.Minute))
	body := map[string]any{"client_id": client.DefaultClientID, "product_id": 3}

	w, _ := s.do(t, http.MethodPost, "/api/v1/subscriptions", s.clientTok, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/subscriptions", s.clientTok, body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	w, _ = s.do(t, http.MethodGet, "/api/v1/subscriptions", s.clientTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
