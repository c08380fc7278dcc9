package client

import (
	"context"

	"github.com/google/uuid"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindAll(ctx context.Context) ([]*Client, error)
	Save(ctx context.Context, c *Client) error
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}
