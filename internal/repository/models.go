package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID            int             `gorm:"primaryKey;autoIncrement:false"`
	Name          string          `gorm:"type:varchar(120);not null"`
	MinimumAmount decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Category      string          `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt     time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ProductModel) TableName() string { return "products" }

// ClientModel is the GORM model for the clients table.
type ClientModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	FirstName           string          `gorm:"type:varchar(100);not null"`
	LastName            string          `gorm:"type:varchar(100);not null"`
	City                string          `gorm:"type:varchar(100);not null"`
	Email               string          `gorm:"type:varchar(255);not null"`
	Phone               string          `gorm:"type:varchar(20);not null"`
	Balance             decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	NotificationChannel string          `gorm:"type:varchar(10);not null;default:'email'"`
	CreatedAt           time.Time       `gorm:"type:timestamptz;not null"`
	UpdatedAt           time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (ClientModel) TableName() string { return "clients" }

// SubscriptionModel is the GORM model for the subscriptions table.
type SubscriptionModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ClientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Client       *ClientModel    `gorm:"foreignKey:ClientID;constraint:OnDelete:RESTRICT"`
	ProductID    int             `gorm:"not null;index"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	SubscribedAt time.Time       `gorm:"type:timestamptz;not null"`
	CancelledAt  *time.Time      `gorm:"type:timestamptz"`
}

// TableName sets the table name.
func (SubscriptionModel) TableName() string { return "subscriptions" }

// TransactionModel is the GORM model for the transactions table. Seq breaks
// ties between entries recorded at the same instant.
type TransactionModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey"`
	Seq            int64              `gorm:"autoIncrement;not null;uniqueIndex"`
	SubscriptionID uuid.UUID          `gorm:"type:uuid;not null;index"`
	Subscription   *SubscriptionModel `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:RESTRICT"`
	ProductID      int                `gorm:"not null"`
	Amount         decimal.Decimal    `gorm:"type:numeric(18,2);not null"`
	Type           string             `gorm:"type:varchar(20);not null"`
	OccurredAt     time.Time          `gorm:"type:timestamptz;not null;index"`
}

// TableName sets the table name.
func (TransactionModel) TableName() string { return "transactions" }

// BranchModel is the GORM model for the bank_branches table.
type BranchModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(150);not null"`
	City      string    `gorm:"type:varchar(120);not null"`
	CreatedAt time.Time `gorm:"type:timestamptz;not null"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null"`
}

// TableName sets the table name.
func (BranchModel) TableName() string { return "bank_branches" }

// AvailabilityModel is the GORM model for the availability table.
type AvailabilityModel struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey"`
	BranchID  uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:ux_availability_branch_product,priority:1"`
	Branch    *BranchModel  `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE"`
	ProductID int           `gorm:"not null;uniqueIndex:ux_availability_branch_product,priority:2;index"`
	Product   *ProductModel `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName sets the table name.
func (AvailabilityModel) TableName() string { return "availability" }

// AppointmentModel is the GORM model for the appointments table.
type AppointmentModel struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	BranchID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:ux_appointment_slot,priority:1"`
	Branch      *BranchModel `gorm:"foreignKey:BranchID;constraint:OnDelete:CASCADE"`
	ClientID    uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:ux_appointment_slot,priority:2;index"`
	Client      *ClientModel `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
	ScheduledAt time.Time    `gorm:"type:timestamptz;not null;uniqueIndex:ux_appointment_slot,priority:3"`
}

// TableName sets the table name.
func (AppointmentModel) TableName() string { return "appointments" }

// Models lists every persisted model, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&ProductModel{}, &ClientModel{}, &SubscriptionModel{}, &TransactionModel{},
		&BranchModel{}, &AvailabilityModel{}, &AppointmentModel{},
	}
}
