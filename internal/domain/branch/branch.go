package branch

import (
	"strings"
	"unicode/utf8"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/google/uuid"
)

// Column limits of the bank_branches table.
const (
	MaxNameLength = 150
	MaxCityLength = 120
)

// Branch is a physical bank office where products are offered and clients
// book appointments.
type Branch struct {
	id   uuid.UUID
	name string
	city string
}

// NewBranch validates and builds a Branch. A nil id gets a fresh one.
func NewBranch(id uuid.UUID, name, city string) (*Branch, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	b := &Branch{id: id}
	if err := b.Rename(name, city); err != nil {
		return nil, err
	}
	return b, nil
}

// Reconstruct rebuilds a Branch from persistence.
func Reconstruct(id uuid.UUID, name, city string) *Branch {
	return &Branch{id: id, name: name, city: city}
}

// Rename replaces the name and city. The branch is untouched on error.
func (b *Branch) Rename(name, city string) error {
	name, err := requiredText("name", name, MaxNameLength)
	if err != nil {
		return err
	}
	city, err = requiredText("city", city, MaxCityLength)
	if err != nil {
		return err
	}
	b.name, b.city = name, city
	return nil
}

func requiredText(field, value string, limit int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError("branch %s is required", field)
	}
	if utf8.RuneCountInString(value) > limit {
		return "", domain.NewValidationError("branch %s must be at most %d characters", field, limit)
	}
	return value, nil
}

// Getters.
func (b *Branch) ID() uuid.UUID { return b.id }
func (b *Branch) Name() string  { return b.name }
func (b *Branch) City() string  { return b.city }
