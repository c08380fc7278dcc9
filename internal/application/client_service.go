package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateClientRequest holds data to register a client.
type CreateClientRequest struct {
	UserID              uuid.UUID        `json:"user_id" binding:"required"`
	FirstName           string           `json:"first_name" binding:"required"`
	LastName            string           `json:"last_name" binding:"required"`
	City                string           `json:"city" binding:"required"`
	Email               string           `json:"email" binding:"required"`
	Phone               string           `json:"phone" binding:"required"`
	Balance             *decimal.Decimal `json:"balance"`
	NotificationChannel string           `json:"notification_channel"`
}

// UpdateClientRequest holds the editable client fields. Balance is not one of them.
type UpdateClientRequest struct {
	FirstName           string `json:"first_name" binding:"required"`
	LastName            string `json:"last_name" binding:"required"`
	City                string `json:"city" binding:"required"`
	Email               string `json:"email" binding:"required"`
	Phone               string `json:"phone" binding:"required"`
	NotificationChannel string `json:"notification_channel" binding:"required"`
}

// ClientService handles client management use cases.
type ClientService struct {
	uow    UnitOfWork
	repo   client.ClientRepository
	logger *zap.Logger
}

// NewClientService creates a new ClientService.
func NewClientService(uow UnitOfWork, repo client.ClientRepository, logger *zap.Logger) *ClientService {
	return &ClientService{uow: uow, repo: repo, logger: logger}
}

// ListClients returns all clients ordered by name.
func (s *ClientService) ListClients(ctx context.Context) ([]*ClientDTO, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	result := make([]*ClientDTO, 0, len(clients))
	for _, c := range clients {
		result = append(result, toClientDTO(c))
	}
	return result, nil
}

// GetClient returns a single client.
func (s *ClientService) GetClient(ctx context.Context, id uuid.UUID) (*ClientDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toClientDTO(c), nil
}

// GetBalance returns the client's current balance.
func (s *ClientService) GetBalance(ctx context.Context, id uuid.UUID) (*BalanceDTO, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BalanceDTO{ClientID: c.ID(), Balance: c.Balance()}, nil
}

// CreateClient registers a client. Balance defaults to the initial balance
// and the channel to email.
func (s *ClientService) CreateClient(ctx context.Context, req CreateClientRequest) (*ClientDTO, error) {
	info, err := client.NewPersonalInfo(req.FirstName, req.LastName, req.City, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}

	channel := client.ChannelEmail
	if req.NotificationChannel != "" {
		if channel, err = client.ParseNotificationChannel(req.NotificationChannel); err != nil {
			return nil, err
		}
	}

	balance := client.InitialBalance
	if req.Balance != nil {
		balance = *req.Balance
	}

	c, err := client.NewClient(uuid.New(), req.UserID, info, balance, channel)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save client: %w", err)
	}

	s.logger.Info("client created", zap.String("client_id", c.ID().String()))
	return toClientDTO(c), nil
}

// UpdateClient changes contact details and notification preference.
func (s *ClientService) UpdateClient(ctx context.Context, id uuid.UUID, req UpdateClientRequest) (*ClientDTO, error) {
	info, err := client.NewPersonalInfo(req.FirstName, req.LastName, req.City, req.Email, req.Phone)
	if err != nil {
		return nil, err
	}
	channel, err := client.ParseNotificationChannel(req.NotificationChannel)
	if err != nil {
		return nil, err
	}

	var updated *client.Client
	err = s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		c, err := repos.Clients.FindByID(ctx, id)
		if err != nil {
			return err
		}
		c.UpdatePersonalInfo(info)
		if err := c.UpdateNotificationChannel(channel); err != nil {
			return err
		}
		if err := repos.Clients.Update(ctx, c); err != nil {
			return fmt.Errorf("failed to update client: %w", err)
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("client updated", zap.String("client_id", id.String()))
	return toClientDTO(updated), nil
}

// DeleteClient removes a client that no subscription references.
func (s *ClientService) DeleteClient(ctx context.Context, id uuid.UUID) error {
	err := s.uow.Atomic(ctx, func(ctx context.Context, repos Repositories) error {
		if _, err := repos.Clients.FindByID(ctx, id); err != nil {
			return err
		}
		referenced, err := repos.Subscriptions.ExistsForClient(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to check subscriptions: %w", err)
		}
		if referenced {
			return domain.NewConflictError("client %s still has subscriptions", id)
		}
		return repos.Clients.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("client deleted", zap.String("client_id", id.String()))
	return nil
}

// EnsureDefaultClient seeds the demo client when it does not exist yet.
func (s *ClientService) EnsureDefaultClient(ctx context.Context) error {
	_, err := s.repo.FindByID(ctx, client.DefaultClientID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("failed to check default client: %w", err)
	}
	if err := s.repo.Save(ctx, client.NewDefaultClient()); err != nil {
		return fmt.Errorf("failed to seed default client: %w", err)
	}
	s.logger.Info("seeded default client", zap.String("client_id", client.DefaultClientID.String()))
	return nil
}
