package repository

import (
	"errors"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"gorm.io/gorm"
)

// translate maps driver errors onto domain kinds. notFound is the
// entity-specific kind reported when no row matched.
func translate(err error, notFound error, id any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError(notFound, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError("%s already exists: %v", entityName(notFound), id)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.NewConflictError("%s %v is still referenced", entityName(notFound), id)
	default:
		return err
	}
}

func entityName(notFound error) string {
	switch notFound {
	case domain.ErrProductNotFound:
		return "product"
	case domain.ErrClientNotFound:
		return "client"
	case domain.ErrSubscriptionNotFound:
		return "subscription"
	case domain.ErrBranchNotFound:
		return "branch"
	case domain.ErrAvailabilityNotFound:
		return "availability"
	case domain.ErrAppointmentNotFound:
		return "appointment"
	default:
		return "record"
	}
}
