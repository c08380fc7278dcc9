package application

import (
	"time"

	"github.com/fondos-platform/service-subscription/internal/domain/availability"
	"github.com/fondos-platform/service-subscription/internal/domain/branch"
	"github.com/fondos-platform/service-subscription/internal/domain/client"
	"github.com/fondos-platform/service-subscription/internal/domain/product"
	"github.com/fondos-platform/service-subscription/internal/domain/schedule"
	"github.com/fondos-platform/service-subscription/internal/domain/subscription"
	"github.com/fondos-platform/service-subscription/internal/domain/transaction"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO is the API response for a product.
type ProductDTO struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	MinimumAmount decimal.Decimal `json:"minimum_amount"`
	Category      string          `json:"category"`
}

// ClientDTO is the API response for a client.
type ClientDTO struct {
	ID                  uuid.UUID       `json:"id"`
	UserID              uuid.UUID       `json:"user_id"`
	FirstName           string          `json:"first_name"`
	LastName            string          `json:"last_name"`
	City                string          `json:"city"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	Balance             decimal.Decimal `json:"balance"`
	NotificationChannel string          `json:"notification_channel"`
}

// BalanceDTO is the API response for a balance lookup.
type BalanceDTO struct {
	ClientID uuid.UUID       `json:"client_id"`
	Balance  decimal.Decimal `json:"balance"`
}

// SubscriptionDTO is the API response for a subscription.
type SubscriptionDTO struct {
	ID           uuid.UUID       `json:"id"`
	ClientID     uuid.UUID       `json:"client_id"`
	ProductID    int             `json:"product_id"`
	Amount       decimal.Decimal `json:"amount"`
	SubscribedAt time.Time       `json:"subscribed_at"`
	CancelledAt  *time.Time      `json:"cancelled_at,omitempty"`
	IsActive     bool            `json:"is_active"`
}

// TransactionDTO is the API response for a transaction log entry.
type TransactionDTO struct {
	ID             uuid.UUID       `json:"id"`
	SubscriptionID uuid.UUID       `json:"subscription_id"`
	ProductID      int             `json:"product_id"`
	Amount         decimal.Decimal `json:"amount"`
	Type           string          `json:"type"`
	OccurredAt     time.Time       `json:"occurred_at"`
}

// BranchDTO is the API response for a bank branch.
type BranchDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	City string    `json:"city"`
}

// AvailabilityDTO is the API response for a branch and product pairing.
type AvailabilityDTO struct {
	ID        uuid.UUID `json:"id"`
	BranchID  uuid.UUID `json:"branch_id"`
	ProductID int       `json:"product_id"`
}

// AppointmentDTO is the API response for a booked branch visit.
type AppointmentDTO struct {
	ID          uuid.UUID `json:"id"`
	BranchID    uuid.UUID `json:"branch_id"`
	ClientID    uuid.UUID `json:"client_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

func toProductDTO(p *product.Product) *ProductDTO {
	return &ProductDTO{
		ID: p.ID(), Name: p.Name(), MinimumAmount: p.MinimumAmount(), Category: string(p.Category()),
	}
}

func toClientDTO(c *client.Client) *ClientDTO {
	info := c.Info()
	return &ClientDTO{
		ID: c.ID(), UserID: c.UserID(),
		FirstName: info.FirstName, LastName: info.LastName, City: info.City,
		Email: info.Email, Phone: info.Phone,
		Balance: c.Balance(), NotificationChannel: string(c.NotificationChannel()),
	}
}

func toSubscriptionDTO(s *subscription.Subscription) *SubscriptionDTO {
	return &SubscriptionDTO{
		ID: s.ID(), ClientID: s.ClientID(), ProductID: s.ProductID(),
		Amount: s.Amount(), SubscribedAt: s.SubscribedAt(),
		CancelledAt: s.CancelledAt(), IsActive: s.IsActive(),
	}
}

func toTransactionDTO(t *transaction.Transaction) *TransactionDTO {
	return &TransactionDTO{
		ID: t.ID(), SubscriptionID: t.SubscriptionID(), ProductID: t.ProductID(),
		Amount: t.Amount(), Type: string(t.Type()), OccurredAt: t.OccurredAt(),
	}
}

func toBranchDTO(b *branch.Branch) *BranchDTO {
	return &BranchDTO{ID: b.ID(), Name: b.Name(), City: b.City()}
}

func toAvailabilityDTO(a *availability.Availability) *AvailabilityDTO {
	return &AvailabilityDTO{ID: a.ID(), BranchID: a.BranchID(), ProductID: a.ProductID()}
}

func toAppointmentDTO(a *schedule.Appointment) *AppointmentDTO {
	return &AppointmentDTO{ID: a.ID(), BranchID: a.BranchID(), ClientID: a.ClientID(), ScheduledAt: a.ScheduledAt()}
}
