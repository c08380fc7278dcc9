package handler_test

import (
	"net/http"
	"testing"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(t, http.MethodGet, "/api/v1/products", s.clientTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []application.ProductDTO
	decodeData(t, env, &products)
	require.Len(t, products, 5)
	assert.Equal(t, 1, products[0].ID)

	w, _ = s.do(t, http.MethodGet, "/api/v1/products/abc", s.clientTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	newProduct := map[string]any{"id": 6, "name": "FIC_RENTA_FIJA", "minimum_amount": "20000", "category": "fic"}
	w, _ = s.do(t, http.MethodPost, "/api/v1/products", s.clientTok, newProduct)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/products", s.adminTok, newProduct)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created application.ProductDTO
	decodeData(t, env, &created)
	assert.Equal(t, "FIC", created.Category)

	w, env = s.do(t, http.MethodPost, "/api/v1/products", s.adminTok, newProduct)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", env.Error.Code)

	w, _ = s.do(t, http.MethodPut, "/api/v1/products/6", s.adminTok, map[string]any{
		"name": "FIC_RENTA_FIJA", "minimum_amount": "25000", "category": "FIC",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/v1/products/6", s.adminTok, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/products/6", s.clientTok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClientRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	w, env := s.do(t, http.MethodGet, "/api/v1/clients/"+client.DefaultClientID.String(), s.clientTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var demo application.ClientDTO
	decodeData(t, env, &demo)
	assert.Equal(t, "500000", demo.Balance.String())

	w, env = s.do(t, http.MethodPost, "/api/v1/clients", s.adminTok, map[string]any{
		"user_id": "0b4a6a3e-6b9a-4c55-9d2e-0e1b2c3d4e5f", "first_name": "Ana", "last_name": "Ruiz",
		"city": "Medellin", "email": "ana@example.com", "phone": "+573009998877",
		"notification_channel": "sms",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created application.ClientDTO
	decodeData(t, env, &created)
	assert.Equal(t, "sms", created.NotificationChannel)

	w, _ = s.do(t, http.MethodGet, "/api/v1/clients", s.clientTok, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/subscriptions", s.clientTok, map[string]any{
		"client_id": created.ID, "product_id": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(t, http.MethodDelete, "/api/v1/clients/"+created.ID.String(), s.adminTok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", env.Error.Code)

	w, _ = s.do(t, http.MethodDelete, "/api/v1/clients/not-a-uuid", s.adminTok, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
