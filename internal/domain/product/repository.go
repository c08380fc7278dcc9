package product

import "context"

// Catalog is the read side of the product store.
type Catalog interface {
	FindByID(ctx context.Context, id int) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
}

// ProductRepository adds catalog management on top of Catalog.
type ProductRepository interface {
	Catalog
	Save(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int) error
}
