package kv

import (
	"context"
	"log/slog"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	store  repository.KeyValueStore
	key    string
	logger *slog.Logger
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(store repository.KeyValueStore, keys Keys, logger *slog.Logger) repository.ProductRepository {
	return &productRepository{store: store, key: keys.Products, logger: logger}
}

func (repo *productRepository) FindAll(ctx context.Context) ([]entity.Product, error) {
	return loadCollection[entity.Product](ctx, repo.store, repo.logger, repo.key)
}

func (repo *productRepository) SaveAll(ctx context.Context, products []entity.Product) error {
	return saveCollection(ctx, repo.store, repo.key, products)
}
