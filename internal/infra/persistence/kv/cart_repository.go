package kv

import (
	"context"
	"log/slog"

	"ecofinds/internal/domain/entity"
	"ecofinds/internal/domain/repository"
)

type cartRepository struct {
	store  repository.KeyValueStore
	key    string
	logger *slog.Logger
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(store repository.KeyValueStore, keys Keys, logger *slog.Logger) repository.CartRepository {
	return &cartRepository{store: store, key: keys.Cart, logger: logger}
}

func (repo *cartRepository) FindAll(ctx context.Context) ([]entity.CartItem, error) {
	return loadCollection[entity.CartItem](ctx, repo.store, repo.logger, repo.key)
}

func (repo *cartRepository) SaveAll(ctx context.Context, items []entity.CartItem) error {
	return saveCollection(ctx, repo.store, repo.key, items)
}

type purchaseRepository struct {
	store  repository.KeyValueStore
	key    string
	logger *slog.Logger
}

// NewPurchaseRepository is the constructor for purchaseRepository.
func NewPurchaseRepository(store repository.KeyValueStore, keys Keys, logger *slog.Logger) repository.PurchaseRepository {
	return &purchaseRepository{store: store, key: keys.Purchases, logger: logger}
}

func (repo *purchaseRepository) FindAll(ctx context.Context) ([]entity.PurchaseRecord, error) {
	return loadCollection[entity.PurchaseRecord](ctx, repo.store, repo.logger, repo.key)
}

func (repo *purchaseRepository) SaveAll(ctx context.Context, records []entity.PurchaseRecord) error {
	return saveCollection(ctx, repo.store, repo.key, records)
}
