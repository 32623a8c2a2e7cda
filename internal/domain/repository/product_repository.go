package repository

import (
	"context"

	"ecofinds/internal/domain/entity"
)

// ProductRepository persists the catalog as one ordered collection.
type ProductRepository interface {
	// FindAll returns every product in insertion order.
	FindAll(ctx context.Context) ([]entity.Product, error)

	// SaveAll replaces the whole collection.
	SaveAll(ctx context.Context, products []entity.Product) error
}
