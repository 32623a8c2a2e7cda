package usecase

import (
	"context"

	"ecofinds/internal/domain/entity"
)

// CatalogUsecase defines the listing management use cases
type CatalogUsecase interface {
	// List returns the products whose title or category contains filter, in insertion order
	List(ctx context.Context, filter string) ([]entity.Product, error)
	Get(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, draft *entity.ProductDraft) (*entity.Product, error)
	// Update applies the non-nil fields of patch to the product with the given id
	Update(ctx context.Context, id int64, patch *entity.ProductPatch) (*entity.Product, error)
	// Delete removes the product. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
}
