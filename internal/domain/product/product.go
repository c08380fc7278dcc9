package product

import (
	"strings"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/shopspring/decimal"
)

// Category classifies a fund.
type Category string

const (
	CategoryFPV Category = "FPV" // voluntary pension fund
	CategoryFIC Category = "FIC" // collective investment fund
)

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryFPV:
		return CategoryFPV, nil
	case CategoryFIC:
		return CategoryFIC, nil
	default:
		return "", domain.NewValidationError("unknown product category %q", s)
	}
}

// Product is a subscribable fund. It is immutable once built.
type Product struct {
	id            int
	name          string
	minimumAmount decimal.Decimal
	category      Category
}

// NewProduct validates and builds a Product.
func NewProduct(id int, name string, minimumAmount decimal.Decimal, category Category) (*Product, error) {
	if id <= 0 {
		return nil, domain.NewValidationError("product id must be a positive integer")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("product name is required")
	}
	if err := domain.CheckAmount(minimumAmount); err != nil {
		return nil, domain.NewValidationError("minimum amount must be greater than zero with at most %d decimal places", domain.CurrencyPlaces)
	}
	parsed, err := ParseCategory(string(category))
	if err != nil {
		return nil, err
	}
	return &Product{id: id, name: name, minimumAmount: minimumAmount, category: parsed}, nil
}

// Reconstruct rebuilds a Product from persistence.
func Reconstruct(id int, name string, minimumAmount decimal.Decimal, category Category) *Product {
	return &Product{id: id, name: name, minimumAmount: minimumAmount, category: category}
}

// Getters.
func (p *Product) ID() int                        { return p.id }
func (p *Product) Name() string                   { return p.name }
func (p *Product) MinimumAmount() decimal.Decimal { return p.minimumAmount }
func (p *Product) Category() Category             { return p.category }

// DefaultCatalog returns the funds offered out of the box.
func DefaultCatalog() []*Product {
	return []*Product{
		Reconstruct(1, "FPV_BTG_PACTUAL_RECAUDADORA", decimal.NewFromInt(75000), CategoryFPV),
		Reconstruct(2, "FPV_BTG_PACTUAL_ECOPTROL", decimal.NewFromInt(125000), CategoryFPV),
		Reconstruct(3, "DEUDAPRIVADA", decimal.NewFromInt(50000), CategoryFIC),
		Reconstruct(4, "FDO-ACCIONES", decimal.NewFromInt(250000), CategoryFIC),
		Reconstruct(5, "FPV_BTG_PACTUAL_DINAMICA", decimal.NewFromInt(100000), CategoryFPV),
	}
}
