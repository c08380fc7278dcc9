package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/fondos-platform/service-subscription/internal/application"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) NowUTC() time.Time { return c.now }

type mockGateway struct{ mock.Mock }

func (m *mockGateway) Notify(ctx context.Context, c *client.Client, p *product.Product, channel client.NotificationChannel, subscriptionID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	args := m.Called(ctx, c, p, channel, subscriptionID, amount, at)
	return args.Error(0)
}

func (m *mockGateway) NotifyCancellation(ctx context.Context, c *client.Client, p *product.Product, channel client.NotificationChannel, subscriptionID uuid.UUID, amount decimal.Decimal, at time.Time) error {
	args := m.Called(ctx, c, p, channel, subscriptionID, amount, at)
	return args.Error(0)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func amountEq(want string) interface{} {
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(dec(want)) })
}

type fixture struct {
	store    *memory.Store
	gateway  *mockGateway
	service  *application.SubscriptionService
	products *application.ProductService
	clients  *application.ClientService
	branches *application.BranchService
	avail    *application.AvailabilityService
	schedule *application.ScheduleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := memory.NewStore()
	gw := &mockGateway{}

	f := &fixture{
		store:    store,
		gateway:  gw,
		service:  application.NewSubscriptionService(store, store.Repositories(), gw, fixedClock{now: testNow}, nil, logger),
		products: application.NewProductService(store.Products(), logger),
		clients:  application.NewClientService(store, store.Clients(), logger),
		branches: application.NewBranchService(store, store.Branches(), logger),
		avail:    application.NewAvailabilityService(store, store.Availability(), logger),
		schedule: application.NewScheduleService(store, store.Appointments(), logger),
	}
	ctx := context.Background()
	require.NoError(t, f.products.EnsureCatalog(ctx))
	require.NoError(t, f.clients.EnsureDefaultClient(ctx))
	return f
}

func (f *fixture) balance(t *testing.T, id uuid.UUID) decimal.Decimal {
	t.Helper()
	b, err := f.clients.GetBalance(context.Background(), id)
	require.NoError(t, err)
	return b.Balance
}

func (f *fixture) transactions(t *testing.T, id uuid.UUID) []*application.TransactionDTO {
	t.Helper()
	txs, err := f.service.ListTransactions(context.Background(), id)
	require.NoError(t, err)
	return txs
}

func (f *fixture) expectNotifications() {
	f.gateway.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	f.gateway.On("NotifyCancellation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
}
